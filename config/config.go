package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"pinbot/core/log"
)

type DiscordConfig struct {
	BotToken string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != ""
}

type AlertConfig struct {
	WebhookURL string
	LogsURL    string
}

// IsConfigured returns true if error alerts should be delivered
func (c AlertConfig) IsConfigured() bool {
	return c.WebhookURL != ""
}

type AppConfig struct {
	CommandPrefix  string // Single trigger character, default "-"
	Port           string // Health endpoint port, default "8080"
	Environment    string
	LogLevel       string
	WorkerPoolSize int
	LockDir        string

	DiscordConfig DiscordConfig
	AlertConfig   AlertConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("⚠️ Could not load .env file, continuing with system env vars")
	}

	botToken, err := getEnvRequired("DISCORD_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	workerPoolSize, err := strconv.Atoi(getEnvWithDefault("WORKER_POOL_SIZE", "16"))
	if err != nil || workerPoolSize < 1 {
		return nil, fmt.Errorf("WORKER_POOL_SIZE must be a positive integer")
	}

	config := &AppConfig{
		CommandPrefix:  getEnvWithDefault("COMMAND_PREFIX", "-"),
		Port:           getEnvWithDefault("PORT", "8080"),
		Environment:    getEnvWithDefault("ENVIRONMENT", "dev"),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),
		WorkerPoolSize: workerPoolSize,
		LockDir:        getEnvWithDefault("LOCK_DIR", filepath.Join(os.TempDir(), "pinbot")),

		DiscordConfig: DiscordConfig{
			BotToken: botToken,
		},

		// Alerting (optional)
		AlertConfig: AlertConfig{
			WebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
			LogsURL:    os.Getenv("SERVER_LOGS_URL"),
		},
	}

	if err := ValidateCommandPrefix(config.CommandPrefix); err != nil {
		return nil, err
	}

	if config.AlertConfig.IsConfigured() {
		log.Info("✅ Slack error alerts configured")
	} else {
		log.Info("⚠️ Slack error alerts not configured - errors will only be logged")
	}

	return config, nil
}

// ValidateCommandPrefix requires exactly one non-space character.
func ValidateCommandPrefix(prefix string) error {
	if utf8.RuneCountInString(prefix) != 1 || prefix == " " {
		return fmt.Errorf("command prefix must be a single non-space character, got %q", prefix)
	}
	return nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
