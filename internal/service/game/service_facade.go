package game

import (
	"fmt"
	"log"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/pkg/uid"
)

// Service is the entry point for game logic (facade)
type Service struct {
	Sessions   *SessionManager
	Width      int
	Height     int
	MaxPlayers int
}

func NewService(sm *SessionManager, width, height, maxPlayers int) *Service {
	return &Service{
		Sessions:   sm,
		Width:      width,
		Height:     height,
		MaxPlayers: maxPlayers,
	}
}

// CreateGame starts a session, filling in the default board size.
func (s *Service) CreateGame(setup Setup) (*GameSession, error) {
	if setup.Width == 0 {
		setup.Width = s.Width
	}
	if setup.Height == 0 {
		setup.Height = s.Height
	}
	if s.MaxPlayers > 0 && setup.PlayerCount() > s.MaxPlayers {
		return nil, fmt.Errorf("%w: at most %d", ErrTooManyPlayers, s.MaxPlayers)
	}

	session, err := s.Sessions.CreateSession(setup)
	if err != nil {
		return nil, err
	}
	session.Start()
	return session, nil
}

func (s *Service) Get(gameID string) (*GameSession, error) {
	if !uid.IsGameID(gameID) {
		return nil, ErrGameNotFound
	}
	session, ok := s.Sessions.GetSession(gameID)
	if !ok {
		return nil, ErrGameNotFound
	}
	return session, nil
}

func (s *Service) Move(gameID string, column int) (View, MoveResult, error) {
	session, err := s.Get(gameID)
	if err != nil {
		return View{}, MoveResult{}, err
	}

	outcome, err := session.HandleMove(column)
	if err != nil {
		return View{}, MoveResult{}, err
	}
	return session.Snapshot(), NewMoveResult(outcome), nil
}

// Restart replaces a game with a fresh one for the same players.
func (s *Service) Restart(gameID string) (*GameSession, error) {
	old, err := s.Get(gameID)
	if err != nil {
		return nil, err
	}

	session, err := s.CreateGame(old.Setup)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.RemoveSession(gameID); err != nil {
		log.Printf("[SESSION] Restart of %s: %v", gameID, err)
	}
	return session, nil
}

func (s *Service) LiveGames() []LiveGame {
	return s.Sessions.GetActiveGames()
}

// MoveResult is the JSON form of a domain.MoveOutcome.
type MoveResult struct {
	Outcome         string `json:"outcome"`
	Row             int    `json:"row"`
	Column          int    `json:"column"`
	Player          string `json:"player"`
	Next            string `json:"next,omitempty"`
	ComputerPending bool   `json:"computerPending"`
	Message         string `json:"message,omitempty"`
}

func NewMoveResult(o domain.MoveOutcome) MoveResult {
	return MoveResult{
		Outcome:         string(o.Kind),
		Row:             o.Row,
		Column:          o.Column,
		Player:          o.Player.ID(),
		Next:            o.Next.ID(),
		ComputerPending: o.ComputerMovePending,
		Message:         o.Message(),
	}
}
