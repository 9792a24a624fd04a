package domain

// PlayerID is a 1-based seat number. Board cells hold the seat of the
// player who dropped the piece there, or Empty.
type PlayerID int

const Empty PlayerID = 0

const (
	DefaultWidth  = 7
	DefaultHeight = 6
	ToWin         = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn       Error = "invalid column"
	ErrColumnFull          Error = "column is full"
	ErrGameOver            Error = "game is over"
	ErrComputerMovePending Error = "computer move pending"
	ErrNotComputerTurn     Error = "not a computer turn"
	ErrNoOpenColumns       Error = "no open columns"
)

// ValidationError is returned when a Player or Game cannot be built from
// the given inputs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
