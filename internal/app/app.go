package app

import (
	tmbbot "github.com/strem2jelly/telegram-media-bridge/internal/bot"
	tmbconfig "github.com/strem2jelly/telegram-media-bridge/internal/config"
	"github.com/strem2jelly/telegram-media-bridge/internal/database"
	"github.com/strem2jelly/telegram-media-bridge/internal/downloader"
	"github.com/strem2jelly/telegram-media-bridge/internal/folders"
	"github.com/strem2jelly/telegram-media-bridge/internal/session"
)

// App aggregates the collaborators the handlers need.
type App struct {
	Config    *tmbconfig.Config
	Bot       tmbbot.Service
	Sessions  *session.Manager
	Folders   *folders.Registry
	DB        database.Store
	Downloads *downloader.Orchestrator
}
