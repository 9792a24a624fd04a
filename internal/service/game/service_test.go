package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.GameEvent
	ch     chan domain.GameEvent
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan domain.GameEvent, 64)}
}

func (r *recorder) Publish(evt domain.GameEvent) {
	r.mu.Lock()
	r.events = append(r.events, evt)
	r.mu.Unlock()
	select {
	case r.ch <- evt:
	default:
	}
}

func (r *recorder) waitFor(t *testing.T, eventType string) domain.GameEvent {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case evt := <-r.ch:
			if evt.Type == eventType {
				return evt
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s event", eventType)
		}
	}
}

type scriptedPicker struct {
	mu      sync.Mutex
	columns []int
	calls   int
}

func (p *scriptedPicker) PickColumn(board domain.Board) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	col := p.columns[p.calls%len(p.columns)]
	p.calls++
	return col, nil
}

func (p *scriptedPicker) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestSetupPlayers(t *testing.T) {
	players, err := Setup{Colors: []string{"red"}, ComputerColor: "blue"}.Players()
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 2 {
		t.Fatalf("got %d players", len(players))
	}
	if players[0].ID() != "p1" || players[0].IsComputer() {
		t.Errorf("seat 1 = %v", players[0])
	}
	if players[1].ID() != "p2" || !players[1].IsComputer() || players[1].Color() != "blue" {
		t.Errorf("seat 2 = %v", players[1])
	}

	cases := []struct {
		name  string
		setup Setup
		want  error
	}{
		{"no colors", Setup{}, ErrMissingColors},
		{"computer only", Setup{ComputerColor: "red"}, ErrMissingColors},
		{"blank color", Setup{Colors: []string{"red", " "}}, ErrMissingColors},
		{"bad color", Setup{Colors: []string{"red", "hello"}}, ErrInvalidColor},
		{"bad computer color", Setup{Colors: []string{"red"}, ComputerColor: "#afy9b"}, ErrInvalidColor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.setup.Players(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func newTestManager(picker *scriptedPicker, rec *recorder, delay time.Duration) *SessionManager {
	return NewSessionManager(rec, picker, delay)
}

func TestHumanMovesPublishEvents(t *testing.T) {
	rec := newRecorder()
	sm := newTestManager(&scriptedPicker{columns: []int{0}}, rec, time.Millisecond)

	session, err := sm.CreateSession(Setup{Colors: []string{"red", "blue"}, Width: 7, Height: 6})
	if err != nil {
		t.Fatal(err)
	}
	session.Start()
	rec.waitFor(t, domain.EventGameStart)

	outcome, err := session.HandleMove(3)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Kind != domain.OutcomeContinue || outcome.Next.ID() != "p2" {
		t.Fatalf("outcome = %+v", outcome)
	}

	evt := rec.waitFor(t, domain.EventMoveMade)
	if evt.Row != 5 || evt.Column != 3 || evt.Player != "p1" || evt.NextTurn != "p2" {
		t.Errorf("unexpected event %+v", evt)
	}
	if evt.Board[5][3] != 1 {
		t.Errorf("event board not updated: %v", evt.Board)
	}
}

func TestComputerReplyIsScheduled(t *testing.T) {
	rec := newRecorder()
	picker := &scriptedPicker{columns: []int{4}}
	sm := newTestManager(picker, rec, 200*time.Millisecond)

	session, err := sm.CreateSession(Setup{Colors: []string{"red"}, ComputerColor: "yellow", Width: 7, Height: 6})
	if err != nil {
		t.Fatal(err)
	}
	session.Start()

	outcome, err := session.HandleMove(0)
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.ComputerMovePending {
		t.Fatal("expected a pending computer move")
	}
	if !session.ComputerMoveScheduled() {
		t.Fatal("computer move was not scheduled")
	}

	if _, err := session.HandleMove(1); !errors.Is(err, domain.ErrComputerMovePending) {
		t.Fatalf("expected ErrComputerMovePending, got %v", err)
	}

	rec.waitFor(t, domain.EventComputerTurn)
	evt := rec.waitFor(t, domain.EventMoveMade)
	if evt.Player != "p2" || evt.Column != 4 || !evt.Computer {
		t.Fatalf("unexpected computer move %+v", evt)
	}

	if _, err := session.HandleMove(1); err != nil {
		t.Fatalf("human should be back on turn: %v", err)
	}
}

func TestComputerRetriesFullColumn(t *testing.T) {
	rec := newRecorder()
	picker := &scriptedPicker{columns: []int{0, 0, 1}}
	sm := newTestManager(picker, rec, time.Millisecond)

	session, err := sm.CreateSession(Setup{Colors: []string{"red"}, ComputerColor: "blue", Width: 2, Height: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := session.HandleMove(0); err != nil {
		t.Fatal(err)
	}

	evt := rec.waitFor(t, domain.EventGameOver)
	if evt.Outcome != string(domain.OutcomeTie) || evt.Message != "Tie!" {
		t.Fatalf("unexpected game over %+v", evt)
	}
	if picker.Calls() != 3 {
		t.Fatalf("picker called %d times, want 3", picker.Calls())
	}

	view := session.Snapshot()
	if view.Status != domain.StatusDraw || view.ComputerPending {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestCloseCancelsComputerMove(t *testing.T) {
	rec := newRecorder()
	picker := &scriptedPicker{columns: []int{1}}
	sm := newTestManager(picker, rec, 100*time.Millisecond)

	session, _ := sm.CreateSession(Setup{Colors: []string{"red"}, ComputerColor: "blue", Width: 7, Height: 6})
	session.HandleMove(0)
	session.Close()

	time.Sleep(250 * time.Millisecond)
	if picker.Calls() != 0 {
		t.Fatal("closed session still played a computer move")
	}
	if session.Snapshot().MoveCount != 1 {
		t.Fatal("closed session changed")
	}
}

func TestWinningMoveFinishesSession(t *testing.T) {
	rec := newRecorder()
	sm := newTestManager(&scriptedPicker{columns: []int{0}}, rec, time.Millisecond)
	session, _ := sm.CreateSession(Setup{Colors: []string{"red", "blue"}, Width: 7, Height: 6})

	for _, col := range []int{0, 0, 1, 1, 2, 2, 3} {
		if _, err := session.HandleMove(col); err != nil {
			t.Fatal(err)
		}
	}

	evt := rec.waitFor(t, domain.EventGameOver)
	if evt.Winner != "p1" || evt.Message != "The red player won!" {
		t.Fatalf("unexpected game over %+v", evt)
	}
	if session.FinishedAt.IsZero() {
		t.Fatal("FinishedAt not set")
	}
	if len(sm.GetActiveGames()) != 0 {
		t.Fatal("finished game listed as live")
	}
	if _, err := session.HandleMove(4); !errors.Is(err, domain.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestCleanupOldSessions(t *testing.T) {
	sm := newTestManager(&scriptedPicker{columns: []int{0}}, newRecorder(), time.Millisecond)
	setup := Setup{Colors: []string{"red", "blue"}, Width: 7, Height: 6}

	fresh, _ := sm.CreateSession(setup)
	stale, _ := sm.CreateSession(setup)
	stale.UpdatedAt = time.Now().Add(-48 * time.Hour)
	finished, _ := sm.CreateSession(Setup{Colors: []string{"red"}, Width: 1, Height: 1})
	finished.HandleMove(0)
	finished.FinishedAt = time.Now().Add(-2 * time.Hour)

	removed := sm.CleanupOldSessions(time.Hour, 24*time.Hour)
	if removed != 2 {
		t.Fatalf("removed %d sessions, want 2", removed)
	}
	if _, ok := sm.GetSession(fresh.GameID); !ok {
		t.Error("fresh session was removed")
	}
	if _, ok := sm.GetSession(stale.GameID); ok {
		t.Error("stale session survived")
	}
	if _, ok := sm.GetSession(finished.GameID); ok {
		t.Error("finished session survived")
	}
}

func TestServiceCreateAndRestart(t *testing.T) {
	rec := newRecorder()
	sm := newTestManager(&scriptedPicker{columns: []int{0}}, rec, time.Millisecond)
	svc := NewService(sm, 7, 6, 3)

	session, err := svc.CreateGame(Setup{Colors: []string{"red", "blue"}})
	if err != nil {
		t.Fatal(err)
	}
	view := session.Snapshot()
	if view.Width != 7 || view.Height != 6 || len(view.Players) != 2 {
		t.Fatalf("unexpected view %+v", view)
	}
	rec.waitFor(t, domain.EventGameStart)

	if _, _, err := svc.Move(session.GameID, 2); err != nil {
		t.Fatal(err)
	}

	restarted, err := svc.Restart(session.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if restarted.GameID == session.GameID {
		t.Fatal("restart reused the game id")
	}
	if restarted.Snapshot().MoveCount != 0 {
		t.Fatal("restarted game is not empty")
	}
	if _, err := svc.Get(session.GameID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("old game should be gone, got %v", err)
	}

	if _, err := svc.CreateGame(Setup{Colors: []string{"red", "blue", "green"}, ComputerColor: "black"}); !errors.Is(err, ErrTooManyPlayers) {
		t.Fatalf("expected ErrTooManyPlayers, got %v", err)
	}
	if _, _, err := svc.Move("missing", 0); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestServiceRejectsBadDimensions(t *testing.T) {
	sm := newTestManager(&scriptedPicker{columns: []int{0}}, newRecorder(), time.Millisecond)
	svc := NewService(sm, 7, 6, 0)

	_, err := svc.CreateGame(Setup{Colors: []string{"red"}, Width: -2})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "width" {
		t.Fatalf("expected width ValidationError, got %v", err)
	}
}

func TestNilPickerDefaultsToRandomOpenColumn(t *testing.T) {
	rec := newRecorder()
	sm := NewSessionManager(rec, nil, time.Millisecond)

	session, err := sm.CreateSession(Setup{Colors: []string{"red"}, ComputerColor: "blue", Width: 7, Height: 6})
	if err != nil {
		t.Fatal(err)
	}
	defer session.Close()
	if _, err := session.HandleMove(0); err != nil {
		t.Fatal(err)
	}

	rec.waitFor(t, domain.EventMoveMade)
	reply := rec.waitFor(t, domain.EventMoveMade)
	if reply.Player != "p2" || !reply.Computer {
		t.Fatalf("expected the computer to reply, got %+v", reply)
	}
}

func TestGetRejectsMalformedID(t *testing.T) {
	sm := newTestManager(&scriptedPicker{columns: []int{0}}, newRecorder(), time.Hour)
	session, err := sm.CreateSession(Setup{Colors: []string{"red"}, Width: 7, Height: 6})
	if err != nil {
		t.Fatal(err)
	}
	sm.sessions.Store("not-a-game-id", session)

	svc := NewService(sm, 7, 6, 0)
	if _, err := svc.Get("not-a-game-id"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if _, err := svc.Get(session.GameID); err != nil {
		t.Fatalf("Get(%s): %v", session.GameID, err)
	}
}

func TestWatchBlocksMovesUntilRegistered(t *testing.T) {
	rec := newRecorder()
	sm := newTestManager(&scriptedPicker{columns: []int{0}}, rec, time.Hour)
	session, err := sm.CreateSession(Setup{Colors: []string{"red", "blue"}, Width: 7, Height: 6})
	if err != nil {
		t.Fatal(err)
	}

	moved := make(chan struct{})
	session.Watch(func(view View) {
		if view.MoveCount != 0 {
			t.Errorf("snapshot has %d moves", view.MoveCount)
		}
		go func() {
			session.HandleMove(2)
			close(moved)
		}()

		select {
		case <-moved:
			t.Error("a move went through while the watcher was registering")
		case <-time.After(50 * time.Millisecond):
		}
	})

	select {
	case <-moved:
	case <-time.After(2 * time.Second):
		t.Fatal("move never completed after Watch returned")
	}
	if evt := rec.waitFor(t, domain.EventMoveMade); evt.Column != 2 {
		t.Fatalf("unexpected event %+v", evt)
	}
}
