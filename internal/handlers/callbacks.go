package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/strem2jelly/telegram-media-bridge/internal/app"
	"github.com/strem2jelly/telegram-media-bridge/internal/downloader"
	"github.com/strem2jelly/telegram-media-bridge/internal/handlers/ui"
	"github.com/strem2jelly/telegram-media-bridge/internal/lang"
	"github.com/strem2jelly/telegram-media-bridge/internal/session"
)

// HandleCallbackQuery dispatches an inline-keyboard press. The query is
// always answered so the client stops showing a spinner.
func HandleCallbackQuery(a *app.App, update *tgbotapi.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message == nil {
		return
	}
	defer a.Bot.AnswerCallbackQuery(tgbotapi.NewCallback(cb.ID, ""))

	chatID := cb.Message.Chat.ID
	if !a.Config.IsAdmin(cb.From.ID) {
		logrus.Warnf("Unauthorized callback from user %d", cb.From.ID)
		a.Bot.SendMessage(chatID, lang.GetMessage(lang.NotAuthorizedMsgID), nil)
		return
	}

	switch cb.Data {
	case ui.CallbackConfirmDownload:
		handleConfirmDownload(a, cb)
	case ui.CallbackChangeFolder:
		handleChangeFolder(a, cb)
	case ui.CallbackCancelDownload:
		handleCancelDownload(a, cb)
	default:
		logrus.Warnf("Unknown callback data: %s", cb.Data)
	}
}

// handleConfirmDownload consumes the pending download and runs it in
// the background. The chat returns to the main menu once the transfer
// finishes, whatever its outcome.
func handleConfirmDownload(a *app.App, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	if err := a.Bot.DeleteMessage(chatID, cb.Message.MessageID); err != nil {
		logrus.WithError(err).Debug("Failed to delete confirmation prompt")
	}

	p := a.Sessions.TakePending(chatID)
	if p == nil {
		a.Bot.SendMessage(chatID, lang.GetMessage(lang.PendingLostMsgID), nil)
		resetToMainMenu(a, chatID)
		return
	}

	req := downloader.Request{
		ChatID:   chatID,
		UserID:   cb.From.ID,
		Username: cb.From.UserName,
		Pending:  *p,
	}
	go func() {
		a.Downloads.Run(context.Background(), req)
		resetToMainMenu(a, chatID)
	}()
}

// handleChangeFolder keeps the pending download and re-enters folder
// selection.
func handleChangeFolder(a *app.App, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	if err := a.Bot.DeleteMessage(chatID, cb.Message.MessageID); err != nil {
		logrus.WithError(err).Debug("Failed to delete confirmation prompt")
	}

	promptID := lang.SelectFolderMsgID
	if p := a.Sessions.Get(chatID).Pending; p != nil && p.Kind == session.SourceForwardedMedia {
		promptID = lang.SelectFolderForwardID
	}
	a.Sessions.SetState(chatID, session.StateSelectingFolder)
	sendFolderSelection(a, chatID, promptID)
}

func handleCancelDownload(a *app.App, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	if err := a.Bot.DeleteMessage(chatID, cb.Message.MessageID); err != nil {
		logrus.WithError(err).Debug("Failed to delete confirmation prompt")
	}

	a.Sessions.ClearPending(chatID)
	a.Bot.SendMessage(chatID, lang.GetMessage(lang.DownloadCancelledMsgID), nil)
	resetToMainMenu(a, chatID)
}
