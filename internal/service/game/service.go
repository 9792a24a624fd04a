package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/pkg/uid"
	"github.com/puzpuzpuz/xsync/v3"
)

type GameSession struct {
	GameID        string
	Setup         Setup
	Game          *domain.Game
	CreatedAt     time.Time
	UpdatedAt     time.Time
	FinishedAt    time.Time
	ComputerTimer *time.Timer // pending computer move, nil when none is scheduled
	closed        bool
	delay         time.Duration
	picker        bot.Picker
	notifier      Notifier
	mu            sync.Mutex
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions *xsync.MapOf[string, *GameSession]
	notifier Notifier
	picker   bot.Picker
	delay    time.Duration
}

func NewSessionManager(notifier Notifier, picker bot.Picker, computerDelay time.Duration) *SessionManager {
	if notifier == nil {
		notifier = discard{}
	}
	if picker == nil {
		picker, _ = bot.NewPicker(bot.PolicyOpen, nil)
	}
	return &SessionManager{
		sessions: xsync.NewMapOf[string, *GameSession](),
		notifier: notifier,
		picker:   picker,
		delay:    computerDelay,
	}
}

func (sm *SessionManager) CreateSession(setup Setup) (*GameSession, error) {
	players, err := setup.Players()
	if err != nil {
		return nil, err
	}
	g, err := domain.NewGame(players, setup.Width, setup.Height)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &GameSession{
		GameID:    uid.GenerateGameID(),
		Setup:     setup,
		Game:      g,
		CreatedAt: now,
		UpdatedAt: now,
		delay:     sm.delay,
		picker:    sm.picker,
		notifier:  sm.notifier,
	}
	sm.sessions.Store(session.GameID, session)

	log.Printf("[SESSION] Created session %s: %d players on a %dx%d board",
		session.GameID, len(players), g.Width(), g.Height())
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	return sm.sessions.Load(gameID)
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	session, exists := sm.sessions.LoadAndDelete(gameID)
	if !exists {
		return fmt.Errorf("remove %s: %w", gameID, ErrGameNotFound)
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	session.Close()
	return nil
}

func (sm *SessionManager) Count() int {
	return sm.sessions.Size()
}

// LiveGame is a summary of a session that has not finished yet.
type LiveGame struct {
	GameID    string    `json:"gameId"`
	Players   int       `json:"players"`
	MoveCount int       `json:"moveCount"`
	StartedAt time.Time `json:"startedAt"`
}

func (sm *SessionManager) GetActiveGames() []LiveGame {
	games := []LiveGame{}
	sm.sessions.Range(func(gameID string, session *GameSession) bool {
		session.mu.Lock()
		defer session.mu.Unlock()

		if !session.Game.IsOver() {
			games = append(games, LiveGame{
				GameID:    gameID,
				Players:   len(session.Game.Players()),
				MoveCount: session.Game.MoveCount(),
				StartedAt: session.CreatedAt,
			})
		}
		return true
	})
	return games
}

// CleanupOldSessions drops finished games older than finishedTTL and games
// nobody touched for staleTTL. It returns how many were removed.
func (sm *SessionManager) CleanupOldSessions(finishedTTL, staleTTL time.Duration) int {
	count := 0
	now := time.Now()

	sm.sessions.Range(func(gameID string, session *GameSession) bool {
		session.mu.Lock()
		expired := false
		if session.Game.IsOver() {
			expired = now.Sub(session.FinishedAt) > finishedTTL
		} else {
			expired = now.Sub(session.UpdatedAt) > staleTTL
		}
		session.mu.Unlock()

		if expired {
			sm.sessions.Delete(gameID)
			session.Close()
			count++
		}
		return true
	})

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}

// Start announces the game and, when the first seat belongs to a computer,
// schedules its opening move.
func (gs *GameSession) Start() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	current := gs.Game.CurrentPlayer()
	gs.notifier.Publish(domain.GameEvent{
		Type:        domain.EventGameStart,
		GameID:      gs.GameID,
		Row:         -1,
		Column:      -1,
		NextTurn:    current.ID(),
		NextColor:   current.Color(),
		Board:       gs.Game.Board().Ints(),
		ComputerDue: gs.Game.ComputerMovePending(),
	})

	if gs.Game.ComputerMovePending() {
		gs.scheduleComputerMoveLocked()
	}
}

// HandleMove applies a human move. While a computer move is pending the
// engine refuses it with domain.ErrComputerMovePending.
func (gs *GameSession) HandleMove(column int) (domain.MoveOutcome, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	outcome, err := gs.Game.AttemptMove(column)
	if err != nil {
		return outcome, err
	}

	gs.afterMoveLocked(outcome)
	return outcome, nil
}

func (gs *GameSession) afterMoveLocked(outcome domain.MoveOutcome) {
	gs.UpdatedAt = time.Now()
	gs.notifier.Publish(domain.EventFromOutcome(gs.GameID, outcome, gs.Game.Board()))

	switch {
	case outcome.IsTerminal():
		gs.FinishedAt = gs.UpdatedAt
		log.Printf("[GAME] Game %s finished after %d moves: %s", gs.GameID, gs.Game.MoveCount(), outcome.Message())
	case outcome.Kind == domain.OutcomeContinue && outcome.ComputerMovePending:
		gs.notifier.Publish(domain.GameEvent{
			Type:        domain.EventComputerTurn,
			GameID:      gs.GameID,
			Row:         -1,
			Column:      -1,
			Player:      outcome.Next.ID(),
			Color:       outcome.Next.Color(),
			Computer:    true,
			ComputerDue: true,
		})
		gs.scheduleComputerMoveLocked()
	}
}

func (gs *GameSession) scheduleComputerMoveLocked() {
	if gs.closed || gs.ComputerTimer != nil {
		return
	}
	gs.ComputerTimer = time.AfterFunc(gs.delay, gs.playComputerTurn)
}

// playComputerTurn runs on the timer goroutine.
func (gs *GameSession) playComputerTurn() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.ComputerTimer = nil
	if gs.closed || !gs.Game.ComputerMovePending() {
		return
	}

	for {
		column, err := gs.picker.PickColumn(gs.Game.Board())
		if err != nil {
			log.Printf("[BOT] Game %s: no column for %s: %v", gs.GameID, gs.Game.CurrentPlayer().ID(), err)
			return
		}

		outcome, err := gs.Game.AttemptComputerMove(column)
		if err != nil {
			log.Printf("[BOT] Error handling computer move in game %s: %v", gs.GameID, err)
			return
		}
		if outcome.Kind == domain.OutcomeColumnFull {
			continue
		}

		gs.afterMoveLocked(outcome)
		return
	}
}

// ComputerMoveScheduled reports whether a computer move is waiting on its timer.
func (gs *GameSession) ComputerMoveScheduled() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.ComputerTimer != nil
}

// Close stops any scheduled computer move. The session stays readable.
func (gs *GameSession) Close() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.closed = true
	if gs.ComputerTimer != nil {
		gs.ComputerTimer.Stop()
		gs.ComputerTimer = nil
	}
}

// View is a consistent snapshot of a session for rendering.
type View struct {
	GameID          string            `json:"gameId"`
	Width           int               `json:"width"`
	Height          int               `json:"height"`
	Board           [][]int           `json:"board"`
	Players         []PlayerView      `json:"players"`
	CurrentPlayer   string            `json:"currentPlayer"`
	Status          domain.GameStatus `json:"status"`
	Winner          string            `json:"winner,omitempty"`
	MoveCount       int               `json:"moveCount"`
	ComputerPending bool              `json:"computerPending"`
	Message         string            `json:"message,omitempty"`
}

type PlayerView struct {
	Seat       int    `json:"seat"`
	ID         string `json:"id"`
	Color      string `json:"color"`
	IsComputer bool   `json:"isComputer"`
}

func (gs *GameSession) Snapshot() View {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.snapshotLocked()
}

// Watch calls fn with a snapshot while holding the session lock, so no
// event can be published between the snapshot and whatever fn registers.
// fn must not call back into the session.
func (gs *GameSession) Watch(fn func(View)) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	fn(gs.snapshotLocked())
}

func (gs *GameSession) snapshotLocked() View {
	g := gs.Game
	view := View{
		GameID:          gs.GameID,
		Width:           g.Width(),
		Height:          g.Height(),
		Board:           g.Board().Ints(),
		CurrentPlayer:   g.CurrentPlayer().ID(),
		Status:          g.Status(),
		MoveCount:       g.MoveCount(),
		ComputerPending: g.ComputerMovePending(),
	}
	for i, p := range g.Players() {
		view.Players = append(view.Players, PlayerView{
			Seat:       i + 1,
			ID:         p.ID(),
			Color:      p.Color(),
			IsComputer: p.IsComputer(),
		})
	}

	switch g.Status() {
	case domain.StatusWon:
		winner, _ := g.Winner()
		view.Winner = winner.ID()
		view.Message = domain.MoveOutcome{Kind: domain.OutcomeWin, Player: winner}.Message()
	case domain.StatusDraw:
		view.Message = domain.MoveOutcome{Kind: domain.OutcomeTie}.Message()
	}
	return view
}
