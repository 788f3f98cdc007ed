package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

type Config struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID int64

	Endpoint    string
	RetryPeriod time.Duration
	HTTPTimeout time.Duration

	LogFile  string
	LogLevel string

	IncludeReviewerComment bool
	ErrorRepeatWindow      time.Duration
}

// Load reads the environment, optionally seeded from envFile (".env" when empty).
// Missing secrets are not an error here; callers decide via CheckTokens.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cfg := &Config{
		PracticumToken: os.Getenv("PRACTICUM_TOKEN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Endpoint:       getEnv("PRACTICUM_ENDPOINT", DefaultEndpoint),
		LogFile:        getEnv("LOG_FILE", "main.log"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "debug")),
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", raw, err)
		}
		cfg.TelegramChatID = id
	}

	var err error
	if cfg.RetryPeriod, err = getDuration("RETRY_PERIOD", 600*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetryPeriod <= 0 {
		return nil, fmt.Errorf("RETRY_PERIOD must be positive, got %s", cfg.RetryPeriod)
	}
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ErrorRepeatWindow, err = getDuration("ERROR_REPEAT_WINDOW", 0); err != nil {
		return nil, err
	}

	if raw := os.Getenv("INCLUDE_REVIEWER_COMMENT"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid INCLUDE_REVIEWER_COMMENT %q: %w", raw, err)
		}
		cfg.IncludeReviewerComment = v
	}

	return cfg, nil
}

// CheckTokens reports whether every secret the bot needs is present.
func CheckTokens(cfg *Config, logger *zap.Logger) bool {
	logger.Info("Checking required tokens")
	return cfg.PracticumToken != "" && cfg.TelegramToken != "" && cfg.TelegramChatID != 0
}

// MissingTokens lists the environment variables that are not set.
func MissingTokens(cfg *Config) []string {
	var missing []string
	if cfg.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if cfg.TelegramChatID == 0 {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	return missing
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback, nil
	}

	// Bare integers are seconds.
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
