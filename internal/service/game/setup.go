package game

import (
	"fmt"
	"strings"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	ErrMissingColors  domain.Error = "Please select colors for all players"
	ErrInvalidColor   domain.Error = "Invalid Color"
	ErrTooManyPlayers domain.Error = "too many players"
	ErrGameNotFound   domain.Error = "game not found"
)

// Setup is what the new-game form collects: one color per human player in
// seat order, plus an optional computer opponent.
type Setup struct {
	Colors        []string `json:"colors"`
	ComputerColor string   `json:"computerColor,omitempty"`
	Width         int      `json:"width,omitempty"`
	Height        int      `json:"height,omitempty"`
}

func (s Setup) PlayerCount() int {
	n := len(s.Colors)
	if s.ComputerColor != "" {
		n++
	}
	return n
}

// Players builds the seat list. Humans are p1..pN and the computer takes
// the next id.
func (s Setup) Players() ([]domain.Player, error) {
	if len(s.Colors) == 0 {
		return nil, ErrMissingColors
	}

	colors := append([]string(nil), s.Colors...)
	if s.ComputerColor != "" {
		colors = append(colors, s.ComputerColor)
	}
	for _, c := range colors {
		if strings.TrimSpace(c) == "" {
			return nil, ErrMissingColors
		}
	}
	for _, c := range colors {
		if !domain.IsValidColor(c) {
			return nil, ErrInvalidColor
		}
	}

	players := make([]domain.Player, 0, len(colors))
	for i, c := range colors {
		isComputer := s.ComputerColor != "" && i == len(colors)-1
		p, err := domain.NewPlayer(fmt.Sprintf("p%d", i+1), c, isComputer)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}
