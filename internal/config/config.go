package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port              string
	AllowedOrigins    []string
	FrontendURL       string
	BoardWidth        int
	BoardHeight       int
	ComputerMoveDelay time.Duration
	ComputerPolicy    string
	FinishedGameTTL   time.Duration
	StaleGameTTL      time.Duration
	CleanupInterval   time.Duration
	RedisURL          string
	RedisPassword     string
	MaxPlayersPerGame int
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:"+port)
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Game defaults
	boardWidth := GetEnvAsInt("BOARD_WIDTH", 7)
	boardHeight := GetEnvAsInt("BOARD_HEIGHT", 6)
	computerDelayMs := GetEnvAsInt("COMPUTER_MOVE_DELAY_MS", 800)
	computerPolicy := GetEnv("COMPUTER_POLICY", "open")
	maxPlayers := GetEnvAsInt("MAX_PLAYERS_PER_GAME", 8)

	// Session housekeeping
	finishedTTLMin := GetEnvAsInt("FINISHED_GAME_TTL_MINUTES", 60)
	staleTTLHours := GetEnvAsInt("STALE_GAME_TTL_HOURS", 24)
	cleanupIntervalMin := GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 10)

	AppConfig = &Config{
		Port:              port,
		AllowedOrigins:    allowedOrigins,
		FrontendURL:       frontendURL,
		BoardWidth:        boardWidth,
		BoardHeight:       boardHeight,
		ComputerMoveDelay: time.Duration(computerDelayMs) * time.Millisecond,
		ComputerPolicy:    computerPolicy,
		FinishedGameTTL:   time.Duration(finishedTTLMin) * time.Minute,
		StaleGameTTL:      time.Duration(staleTTLHours) * time.Hour,
		CleanupInterval:   time.Duration(cleanupIntervalMin) * time.Minute,
		RedisURL:          GetEnv("REDIS_URL", ""),
		RedisPassword:     GetEnv("REDIS_PASSWORD", ""),
		MaxPlayersPerGame: maxPlayers,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
