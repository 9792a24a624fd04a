package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

type GamesHandler struct {
	GameService *game.Service
}

func NewGamesHandler(gs *game.Service) *GamesHandler {
	return &GamesHandler{GameService: gs}
}

// Register mounts the game routes on r.
func (h *GamesHandler) Register(r gin.IRouter) {
	r.POST("/api/games", h.CreateGame)
	r.GET("/api/games", h.GetLiveGames)
	r.GET("/api/games/:id", h.GetGame)
	r.POST("/api/games/:id/moves", h.MakeMove)
	r.POST("/api/games/:id/restart", h.RestartGame)
	r.GET("/api/colors/validate", h.ValidateColor)
	r.GET("/health", h.Health)
}

type moveRequest struct {
	Column *int `json:"column"`
}

type moveResponse struct {
	Outcome game.MoveResult `json:"outcome"`
	Game    game.View       `json:"game"`
}

func (h *GamesHandler) CreateGame(c *gin.Context) {
	var setup game.Setup
	if err := c.ShouldBindJSON(&setup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, err := h.GameService.CreateGame(setup)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session.Snapshot())
}

// GetLiveGames lists games that are still being played.
func (h *GamesHandler) GetLiveGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.GameService.LiveGames())
}

func (h *GamesHandler) GetGame(c *gin.Context) {
	session, err := h.GameService.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GamesHandler) MakeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Column == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	view, result, err := h.GameService.Move(c.Param("id"), *req.Column)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, moveResponse{Outcome: result, Game: view})
}

// RestartGame is the "New Game" button: same players, empty board, new id.
func (h *GamesHandler) RestartGame(c *gin.Context) {
	session, err := h.GameService.Restart(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session.Snapshot())
}

func (h *GamesHandler) ValidateColor(c *gin.Context) {
	value := c.Query("value")
	c.JSON(http.StatusOK, gin.H{"value": value, "valid": domain.IsValidColor(value)})
}

func (h *GamesHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"games":  h.GameService.Sessions.Count(),
	})
}

func statusFor(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, game.ErrMissingColors),
		errors.Is(err, game.ErrInvalidColor),
		errors.Is(err, game.ErrTooManyPlayers):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidColumn):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrGameOver),
		errors.Is(err, domain.ErrComputerMovePending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
