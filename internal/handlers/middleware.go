package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/strem2jelly/telegram-media-bridge/internal/app"
	"github.com/strem2jelly/telegram-media-bridge/internal/lang"
	"github.com/strem2jelly/telegram-media-bridge/internal/utils"
)

func LoggingMiddleware(update *tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	logrus.WithFields(logrus.Fields{
		"username": update.Message.From.UserName,
		"chat_id":  update.Message.Chat.ID,
		"text":     update.Message.Text,
	}).Info("Received a new message")
}

// AuthMiddleware reports whether the sender is an authorized admin.
// Unauthorized senders get a fixed rejection and nothing else: no
// session is created and no state changes.
func AuthMiddleware(a *app.App, update *tgbotapi.Update) bool {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return false
	}
	if !a.Config.IsAdmin(msg.From.ID) {
		logrus.WithError(utils.ErrUnauthorized).Warnf("Access attempt from user %d (%s)", msg.From.ID, msg.From.UserName)
		a.Bot.SendMessage(msg.Chat.ID, lang.GetMessage(lang.NotAuthorizedMsgID), nil)
		return false
	}
	return true
}
