// Package terminal plays and follows games on a text console.
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

const symbols = "XO@#%&*+"

// Symbol is the character drawn for a seat. Seats past the symbol set fall
// back to their number.
func Symbol(seat int) string {
	switch {
	case seat == int(domain.Empty):
		return "."
	case seat <= len(symbols):
		return string(symbols[seat-1])
	default:
		return strconv.Itoa(seat)
	}
}

// RenderBoard draws board top row first with 1-based column numbers
// underneath.
func RenderBoard(w io.Writer, board [][]int) {
	var sb strings.Builder
	for _, row := range board {
		sb.WriteString("|")
		for _, cell := range row {
			sb.WriteString(" " + Symbol(cell))
		}
		sb.WriteString(" |\n")
	}
	if len(board) > 0 {
		sb.WriteString(" ")
		for col := range board[0] {
			sb.WriteString(" " + strconv.Itoa((col+1)%10))
		}
		sb.WriteString("\n")
	}
	io.WriteString(w, sb.String())
}

// Console prints game events. It is a game.Notifier and is safe to call
// from the computer's timer goroutine.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// Legend lists who plays which symbol.
func (c *Console) Legend(view game.View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range view.Players {
		kind := "player"
		if p.IsComputer {
			kind = "computer"
		}
		fmt.Fprintf(c.out, "  %s  %s %s (%s)\n", Symbol(p.Seat), kind, p.ID, p.Color)
	}
	RenderBoard(c.out, view.Board)
}

func (c *Console) Publish(evt domain.GameEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch evt.Type {
	case domain.EventGameStart:
		fmt.Fprintf(c.out, "Game %s started, %s (%s) moves first\n", evt.GameID, evt.NextTurn, evt.NextColor)
	case domain.EventMoveMade:
		fmt.Fprintf(c.out, "%s dropped in column %d\n", evt.Player, evt.Column+1)
		RenderBoard(c.out, evt.Board)
		fmt.Fprintf(c.out, "%s (%s) to move\n", evt.NextTurn, evt.NextColor)
	case domain.EventColumnFull:
		fmt.Fprintf(c.out, "Column %d: %s\n", evt.Column+1, evt.Message)
	case domain.EventComputerTurn:
		fmt.Fprintf(c.out, "Computer %s is thinking...\n", evt.Player)
	case domain.EventGameOver:
		RenderBoard(c.out, evt.Board)
		fmt.Fprintln(c.out, evt.Message)
	default:
		fmt.Fprintf(c.out, "%s: %s\n", evt.Type, evt.Message)
	}
}
