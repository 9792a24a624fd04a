package bot

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	PolicyOpen   = "open"
	PolicyLegacy = "legacy"
)

// Picker chooses the column a computer player drops its piece in.
type Picker interface {
	PickColumn(board domain.Board) (int, error)
}

// NewPicker selects the computer move policy by name. A nil rng gets a
// time seeded source.
func NewPicker(policy string, rng *rand.Rand) (Picker, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	src := &lockedRand{rng: rng}

	switch policy {
	case PolicyOpen, "":
		return &OpenColumnPicker{rng: src}, nil
	case PolicyLegacy:
		return &LegacyPicker{rng: src}, nil
	default:
		return nil, fmt.Errorf("unknown computer policy %q", policy)
	}
}

// rand.Rand is not safe for concurrent use and one picker serves every
// session.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
