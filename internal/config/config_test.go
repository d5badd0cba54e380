package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/strem2jelly/telegram-media-bridge/internal/utils"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("MEDIA_FOLDER_PATH", "/media")
	t.Setenv("ADMIN_USERS", "100,200")
	t.Setenv("TELEGRAM_API_ID", "12345")
	t.Setenv("TELEGRAM_API_HASH", "hash")
	t.Setenv("PHONE_NUMBER", "+15551234567")
}

func TestNewConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	config, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}

	if config.JellyfinURL != DefaultJellyfinURL {
		t.Errorf("JellyfinURL = %q, want default", config.JellyfinURL)
	}
	if config.ProgressUpdateInterval != DefaultProgressUpdateInterval {
		t.Errorf("ProgressUpdateInterval = %v, want %v", config.ProgressUpdateInterval, DefaultProgressUpdateInterval)
	}
	if config.URLRewriteFrom != DefaultURLRewriteFrom || config.URLRewriteTo != DefaultURLRewriteTo {
		t.Errorf("rewrite pair = (%q, %q), want defaults", config.URLRewriteFrom, config.URLRewriteTo)
	}
	if config.SessionFilePath != "/media/session.json" {
		t.Errorf("SessionFilePath = %q, want /media/session.json", config.SessionFilePath)
	}
	if len(config.AdminIDs) != 2 || config.AdminIDs[0] != 100 || config.AdminIDs[1] != 200 {
		t.Errorf("AdminIDs = %v", config.AdminIDs)
	}
}

func TestNewConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PROGRESS_UPDATE_INTERVAL", "5s")
	t.Setenv("SESSION_FILE_PATH", "/var/lib/bridge/session.json")
	t.Setenv("URL_REWRITE_FROM", "127.0.0.1:9999")
	t.Setenv("URL_REWRITE_TO", "relay:9999")

	config, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if config.ProgressUpdateInterval != 5*time.Second {
		t.Errorf("ProgressUpdateInterval = %v, want 5s", config.ProgressUpdateInterval)
	}
	if config.SessionFilePath != "/var/lib/bridge/session.json" {
		t.Errorf("SessionFilePath = %q", config.SessionFilePath)
	}
	if config.URLRewriteFrom != "127.0.0.1:9999" || config.URLRewriteTo != "relay:9999" {
		t.Errorf("rewrite pair = (%q, %q)", config.URLRewriteFrom, config.URLRewriteTo)
	}
}

func TestNewConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("PHONE_NUMBER", "")

	_, err := NewConfig()
	if !errors.Is(err, utils.ErrConfigurationError) {
		t.Fatalf("err = %v, want ErrConfigurationError", err)
	}
	for _, field := range []string{"BOT_TOKEN", "PHONE_NUMBER"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not name missing field %s", err, field)
		}
	}
}

func TestNewConfigInvalidAdminList(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_USERS", "100,notanumber")

	if _, err := NewConfig(); !errors.Is(err, utils.ErrConfigurationError) {
		t.Fatalf("err = %v, want ErrConfigurationError", err)
	}
}

func TestNewConfigLopsidedRewritePair(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("URL_REWRITE_FROM", "127.0.0.1:9999")
	t.Setenv("URL_REWRITE_TO", "")

	if _, err := NewConfig(); !errors.Is(err, utils.ErrConfigurationError) {
		t.Fatalf("err = %v, want ErrConfigurationError", err)
	}
}

func TestIsAdmin(t *testing.T) {
	config := &Config{AdminIDs: []int64{100, 200}}

	if !config.IsAdmin(100) {
		t.Error("IsAdmin(100) = false, want true")
	}
	if config.IsAdmin(300) {
		t.Error("IsAdmin(300) = true, want false")
	}
}
