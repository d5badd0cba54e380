package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/strem2jelly/telegram-media-bridge/internal/utils"
)

const (
	DefaultJellyfinURL            = "http://localhost:8096"
	DefaultProgressUpdateInterval = 2 * time.Second

	// Rewrite for loopback Stremio streaming-server links so they are
	// fetched through the relay. Blank URL_REWRITE_FROM disables it.
	DefaultURLRewriteFrom = "127.0.0.1:11471"
	DefaultURLRewriteTo   = "65.109.234.74:11470"
)

type Config struct {
	BotToken  string
	AdminIDs  []int64
	MediaPath string

	JellyfinURL    string
	JellyfinAPIKey string
	JellyfinUserID string

	TelegramAppID   int
	TelegramAppHash string
	PhoneNumber     string
	SessionFilePath string

	URLRewriteFrom string
	URLRewriteTo   string

	ProgressUpdateInterval time.Duration

	Lang     string
	LogLevel string
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func parseAdminIDs(value string) ([]int64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func NewConfig() (*Config, error) {
	config := &Config{
		BotToken:  getEnv("BOT_TOKEN", ""),
		MediaPath: getEnv("MEDIA_FOLDER_PATH", ""),

		JellyfinURL:    getEnv("JELLYFIN_API_URL", DefaultJellyfinURL),
		JellyfinAPIKey: getEnv("JELLYFIN_API_KEY", ""),
		JellyfinUserID: getEnv("JELLYFIN_USER_ID", ""),

		TelegramAppID:   getEnvInt("TELEGRAM_API_ID", 0),
		TelegramAppHash: getEnv("TELEGRAM_API_HASH", ""),
		PhoneNumber:     getEnv("PHONE_NUMBER", ""),
		SessionFilePath: getEnv("SESSION_FILE_PATH", ""),

		URLRewriteFrom: getEnv("URL_REWRITE_FROM", DefaultURLRewriteFrom),
		URLRewriteTo:   getEnv("URL_REWRITE_TO", DefaultURLRewriteTo),

		ProgressUpdateInterval: getEnvDuration("PROGRESS_UPDATE_INTERVAL", DefaultProgressUpdateInterval),

		Lang:     getEnv("LANG", "en"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	adminIDs, err := parseAdminIDs(getEnv("ADMIN_USERS", ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrConfigurationError, err)
	}
	config.AdminIDs = adminIDs

	if config.SessionFilePath == "" && config.MediaPath != "" {
		config.SessionFilePath = filepath.Join(config.MediaPath, "session.json")
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	var missingFields []string

	if c.BotToken == "" {
		missingFields = append(missingFields, "BOT_TOKEN")
	}
	if c.MediaPath == "" {
		missingFields = append(missingFields, "MEDIA_FOLDER_PATH")
	}
	if len(c.AdminIDs) == 0 {
		missingFields = append(missingFields, "ADMIN_USERS")
	}
	if c.TelegramAppID == 0 {
		missingFields = append(missingFields, "TELEGRAM_API_ID")
	}
	if c.TelegramAppHash == "" {
		missingFields = append(missingFields, "TELEGRAM_API_HASH")
	}
	if c.PhoneNumber == "" {
		missingFields = append(missingFields, "PHONE_NUMBER")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("%w: missing required environment variables: %s",
			utils.ErrConfigurationError, strings.Join(missingFields, ", "))
	}

	if c.ProgressUpdateInterval <= 0 {
		return fmt.Errorf("%w: progress update interval must be positive", utils.ErrConfigurationError)
	}

	if (c.URLRewriteFrom == "") != (c.URLRewriteTo == "") {
		return fmt.Errorf("%w: URL_REWRITE_FROM and URL_REWRITE_TO must be set together", utils.ErrConfigurationError)
	}

	return nil
}

// IsAdmin reports whether the given Telegram user id is on the allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
