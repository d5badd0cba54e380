package handlers

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/strem2jelly/telegram-media-bridge/internal/app"
)

// Router dispatches one update. Callback queries, commands and menu
// keywords are handled regardless of conversational state; everything
// else goes through the per-chat state machine.
func Router(a *app.App, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		HandleCallbackQuery(a, &update)
		return
	}
	if update.Message == nil {
		return
	}

	LoggingMiddleware(&update)
	if !AuthMiddleware(a, &update) {
		return
	}

	msg := update.Message
	if msg.IsCommand() {
		handleCommand(a, msg)
		return
	}

	switch strings.ToLower(strings.TrimSpace(msg.Text)) {
	case "create folder", "select folder", "cancel":
		handleMenuKeyword(a, msg.Chat.ID, strings.ToLower(strings.TrimSpace(msg.Text)))
		return
	case "back to main menu":
		resetToMainMenu(a, msg.Chat.ID)
		return
	}

	if msg.Video != nil || msg.Document != nil {
		HandleForwardedMedia(a, msg)
		return
	}
	if strings.HasPrefix(msg.Text, "http") {
		HandleDownloadRequest(a, msg)
		return
	}

	HandleTextInput(a, msg)
}

func handleCommand(a *app.App, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		resetToMainMenu(a, msg.Chat.ID)
	case "history":
		HandleHistory(a, msg)
	default:
		logrus.Debugf("Unknown command: %s", msg.Command())
		resetToMainMenu(a, msg.Chat.ID)
	}
}
