package domain

const (
	EventGameStart    = "game_start"
	EventMoveMade     = "move_made"
	EventColumnFull   = "column_full"
	EventComputerTurn = "computer_turn"
	EventGameOver     = "game_over"
	EventError        = "error"
)

// GameEvent is pushed to every presentation layer watching a game.
type GameEvent struct {
	Type        string  `json:"type"`
	GameID      string  `json:"gameId,omitempty"`
	Message     string  `json:"message,omitempty"`
	Column      int     `json:"column"`
	Row         int     `json:"row"`
	Player      string  `json:"player,omitempty"`
	Color       string  `json:"color,omitempty"`
	Computer    bool    `json:"computer,omitempty"`
	NextTurn    string  `json:"nextTurn,omitempty"`
	NextColor   string  `json:"nextColor,omitempty"`
	Winner      string  `json:"winner,omitempty"`
	Board       [][]int `json:"board,omitempty"`
	Outcome     string  `json:"outcome,omitempty"`
	ComputerDue bool    `json:"computerPending,omitempty"`
}

// ClientMessage is what a browser sends over the socket.
type ClientMessage struct {
	Type   string `json:"type"`
	Column int    `json:"column"`
}

// EventFromOutcome builds the event announcing a move attempt.
func EventFromOutcome(gameID string, o MoveOutcome, board Board) GameEvent {
	evt := GameEvent{
		GameID:      gameID,
		Column:      o.Column,
		Row:         o.Row,
		Player:      o.Player.ID(),
		Color:       o.Player.Color(),
		Computer:    o.Player.IsComputer(),
		Board:       board.Ints(),
		Outcome:     string(o.Kind),
		ComputerDue: o.ComputerMovePending,
	}

	switch o.Kind {
	case OutcomeColumnFull:
		evt.Type = EventColumnFull
		evt.Message = o.Message()
	case OutcomeWin:
		evt.Type = EventGameOver
		evt.Winner = o.Player.ID()
		evt.Message = o.Message()
	case OutcomeTie:
		evt.Type = EventGameOver
		evt.Message = o.Message()
	default:
		evt.Type = EventMoveMade
		evt.NextTurn = o.Next.ID()
		evt.NextColor = o.Next.Color()
	}
	return evt
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
