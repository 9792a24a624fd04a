package domain

import (
	"fmt"
	"strings"
)

// Player is an immutable participant record. Build one with NewPlayer.
type Player struct {
	id         string
	color      string
	isComputer bool
}

func NewPlayer(id, color string, isComputer bool) (Player, error) {
	if strings.TrimSpace(id) == "" {
		return Player{}, invalid("id", "must be a non-empty string")
	}
	if !IsValidColor(color) {
		return Player{}, invalid("color", fmt.Sprintf("%q is not a valid color", color))
	}

	return Player{
		id:         id,
		color:      strings.TrimSpace(color),
		isComputer: isComputer,
	}, nil
}

func (p Player) ID() string {
	return p.id
}

func (p Player) Color() string {
	return p.color
}

func (p Player) IsComputer() bool {
	return p.isComputer
}

func (p Player) String() string {
	if p.isComputer {
		return fmt.Sprintf("%s (%s, computer)", p.id, p.color)
	}
	return fmt.Sprintf("%s (%s)", p.id, p.color)
}
