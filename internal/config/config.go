package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the application.
type Config struct {
	Addr            string
	DatabasePath    string
	ModelScriptPath string
	ModelRuntime    string
	ModelTimeout    time.Duration
	ServerURL       string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables.
// Every field has a workable default: in particular an unset model script
// path is legal and routes all planning to the local fallback.
func NewFromEnv() (*Config, error) {
	addr := os.Getenv("BAKEPLAN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dbPath := os.Getenv("BAKEPLAN_DB_PATH")
	if dbPath == "" {
		dbPath = "data/bakeplan.db"
	}

	modelRuntime := os.Getenv("BAKEPLAN_MODEL_RUNTIME")
	if modelRuntime == "" {
		modelRuntime = "python3"
	}

	modelTimeout := 8 * time.Second
	if raw := os.Getenv("BAKEPLAN_MODEL_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BAKEPLAN_MODEL_TIMEOUT %q: %w", raw, err)
		}
		modelTimeout = parsed
	}

	serverURL := os.Getenv("BAKEPLAN_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}

	var allowedIDs []int64
	if raw := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	return &Config{
		Addr:                   addr,
		DatabasePath:           dbPath,
		ModelScriptPath:        os.Getenv("BAKEPLAN_MODEL_SCRIPT"),
		ModelRuntime:           modelRuntime,
		ModelTimeout:           modelTimeout,
		ServerURL:              serverURL,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
	}, nil
}
