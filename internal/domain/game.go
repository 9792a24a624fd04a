package domain

import "strconv"

// Game is the Connect Four engine. It is not safe for concurrent use; the
// caller serialises moves.
type Game struct {
	board        Board
	players      []Player
	currentIndex int
	status       GameStatus
	winner       PlayerID
	moveCount    int
}

func NewGame(players []Player, width, height int) (*Game, error) {
	if width <= 0 {
		return nil, invalid("width", "must be a positive number")
	}
	if height <= 0 {
		return nil, invalid("height", "must be a positive number")
	}
	if len(players) == 0 {
		return nil, invalid("players", "cannot be empty")
	}
	for i, p := range players {
		if p.id == "" {
			return nil, invalid("players", "player at seat "+strconv.Itoa(i+1)+" was not built with NewPlayer")
		}
	}

	return &Game{
		board:   NewBoard(width, height),
		players: append([]Player(nil), players...),
		status:  StatusActive,
		winner:  Empty,
	}, nil
}

func (g *Game) Width() int  { return g.board.Width() }
func (g *Game) Height() int { return g.board.Height() }

// Board returns a copy of the grid; mutating it does not affect the game.
func (g *Game) Board() Board {
	return g.board.Copy()
}

func (g *Game) Players() []Player {
	return append([]Player(nil), g.players...)
}

func (g *Game) CurrentIndex() int {
	return g.currentIndex
}

func (g *Game) CurrentPlayer() Player {
	return g.players[g.currentIndex]
}

// CurrentSeat is the board value the current player's pieces carry.
func (g *Game) CurrentSeat() PlayerID {
	return PlayerID(g.currentIndex + 1)
}

// Player resolves a seat found on the board.
func (g *Game) Player(seat PlayerID) (Player, bool) {
	if seat < 1 || int(seat) > len(g.players) {
		return Player{}, false
	}
	return g.players[seat-1], true
}

func (g *Game) PlayerAt(row, column int) (Player, bool) {
	if !g.board.InBounds(row, column) {
		return Player{}, false
	}
	return g.Player(g.board[row][column])
}

func (g *Game) Status() GameStatus {
	return g.status
}

func (g *Game) IsOver() bool {
	return g.status == StatusWon || g.status == StatusDraw
}

func (g *Game) Winner() (Player, bool) {
	if g.status != StatusWon {
		return Player{}, false
	}
	return g.Player(g.winner)
}

func (g *Game) MoveCount() int {
	return g.moveCount
}

// ComputerMovePending is true while the game waits for a computer player
// to drop a piece. Human moves are refused in that state.
func (g *Game) ComputerMovePending() bool {
	return !g.IsOver() && g.CurrentPlayer().IsComputer()
}

func (g *Game) OpenColumns() []int {
	return g.board.OpenColumns()
}

// FindSpotForColumn returns the row a piece dropped in column would land
// in. ok is false when the column is full.
func (g *Game) FindSpotForColumn(column int) (row int, ok bool, err error) {
	if !g.board.IsValidColumn(column) {
		return -1, false, ErrInvalidColumn
	}
	row, ok = g.board.FindSpot(column)
	return row, ok, nil
}

// CheckForWin reports whether the player in seat owns four in a row
// anywhere on the board.
func (g *Game) CheckForWin(seat PlayerID) bool {
	return g.board.CheckForWin(seat)
}

// AttemptMove drops a piece for a human player.
func (g *Game) AttemptMove(column int) (MoveOutcome, error) {
	if g.IsOver() {
		return MoveOutcome{}, ErrGameOver
	}
	if g.CurrentPlayer().IsComputer() {
		return MoveOutcome{}, ErrComputerMovePending
	}
	return g.move(column)
}

// AttemptComputerMove drops a piece for the computer whose turn it is. A
// full column yields OutcomeColumnFull and the caller picks again.
func (g *Game) AttemptComputerMove(column int) (MoveOutcome, error) {
	if g.IsOver() {
		return MoveOutcome{}, ErrGameOver
	}
	if !g.CurrentPlayer().IsComputer() {
		return MoveOutcome{}, ErrNotComputerTurn
	}
	return g.move(column)
}

func (g *Game) move(column int) (MoveOutcome, error) {
	mover := g.CurrentPlayer()
	seat := g.CurrentSeat()

	row, ok, err := g.FindSpotForColumn(column)
	if err != nil {
		return MoveOutcome{}, err
	}
	if !ok {
		return MoveOutcome{
			Kind:                OutcomeColumnFull,
			Row:                 -1,
			Column:              column,
			Player:              mover,
			Seat:                seat,
			Next:                mover,
			ComputerMovePending: mover.IsComputer(),
		}, nil
	}

	g.board[row][column] = seat
	g.moveCount++

	outcome := MoveOutcome{Row: row, Column: column, Player: mover, Seat: seat}

	// a move that wins and fills the board is a win
	if g.board.CheckWinAt(row, column, seat) {
		g.status = StatusWon
		g.winner = seat
		outcome.Kind = OutcomeWin
		return outcome, nil
	}

	if g.board.IsFull() {
		g.status = StatusDraw
		outcome.Kind = OutcomeTie
		return outcome, nil
	}

	g.currentIndex = (g.currentIndex + 1) % len(g.players)
	outcome.Kind = OutcomeContinue
	outcome.Next = g.CurrentPlayer()
	outcome.ComputerMovePending = outcome.Next.IsComputer()
	return outcome, nil
}
