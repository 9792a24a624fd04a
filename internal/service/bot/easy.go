package bot

import (
	"github.com/iamasit07/connect-four/internal/domain"
)

// OpenColumnPicker samples uniformly among the columns that still have
// room, so it never needs a retry.
type OpenColumnPicker struct {
	rng *lockedRand
}

func (p *OpenColumnPicker) PickColumn(board domain.Board) (int, error) {
	validColumns := board.OpenColumns()
	if len(validColumns) == 0 {
		return -1, domain.ErrNoOpenColumns
	}
	return validColumns[p.rng.Intn(len(validColumns))], nil
}

// LegacyPicker samples uniformly over every column, full or not. The
// caller retries with a fresh pick when the column turns out to be full,
// so the expected number of picks grows as the board fills.
type LegacyPicker struct {
	rng *lockedRand
}

func (p *LegacyPicker) PickColumn(board domain.Board) (int, error) {
	if board.Width() == 0 {
		return -1, domain.ErrNoOpenColumns
	}
	return p.rng.Intn(board.Width()), nil
}
