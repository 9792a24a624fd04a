package domain

type OutcomeKind string

const (
	OutcomeColumnFull OutcomeKind = "column_full"
	OutcomeWin        OutcomeKind = "win"
	OutcomeTie        OutcomeKind = "tie"
	OutcomeContinue   OutcomeKind = "continue"
)

// MoveOutcome describes what a single move attempt did. Player is the
// mover (the winner for OutcomeWin); Next is whose turn it is afterwards.
type MoveOutcome struct {
	Kind                OutcomeKind
	Row                 int
	Column              int
	Player              Player
	Seat                PlayerID
	Next                Player
	ComputerMovePending bool
}

func (o MoveOutcome) IsTerminal() bool {
	return o.Kind == OutcomeWin || o.Kind == OutcomeTie
}

// Message is the announcement shown when the game ends.
func (o MoveOutcome) Message() string {
	switch o.Kind {
	case OutcomeWin:
		return "The " + o.Player.Color() + " player won!"
	case OutcomeTie:
		return "Tie!"
	case OutcomeColumnFull:
		return "Column is full, pick another one"
	}
	return ""
}
