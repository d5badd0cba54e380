package handlers

import (
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/strem2jelly/telegram-media-bridge/internal/app"
	"github.com/strem2jelly/telegram-media-bridge/internal/handlers/ui"
	"github.com/strem2jelly/telegram-media-bridge/internal/lang"
	"github.com/strem2jelly/telegram-media-bridge/internal/session"
	"github.com/strem2jelly/telegram-media-bridge/internal/utils"
)

func resetToMainMenu(a *app.App, chatID int64) {
	a.Sessions.SetState(chatID, session.StateMainMenu)
	ui.SendMainMenu(a.Bot, chatID)
}

// handleMenuKeyword reacts to the global menu keywords, which work from
// any conversational state. "cancel" leaves a pending download intact;
// only the inline Cancel button discards it.
func handleMenuKeyword(a *app.App, chatID int64, keyword string) {
	switch keyword {
	case "create folder":
		a.Sessions.SetState(chatID, session.StateCreatingFolder)
		a.Bot.SendMessage(chatID, lang.GetMessage(lang.CreateFolderPromptMsgID), ui.CreateFolderKeyboard())
	case "select folder":
		a.Sessions.SetState(chatID, session.StateSelectingFolder)
		sendFolderSelection(a, chatID, lang.SelectFolderMsgID)
	case "cancel":
		a.Bot.SendMessage(chatID, lang.GetMessage(lang.OperationCancelledID), nil)
		resetToMainMenu(a, chatID)
	default:
		resetToMainMenu(a, chatID)
	}
}

func sendFolderSelection(a *app.App, chatID int64, promptID lang.MessageID) {
	names, err := a.Folders.List()
	if err != nil {
		logrus.WithError(err).Error("Failed to list folders")
	}
	a.Bot.SendMessage(chatID, lang.GetMessage(promptID), ui.FolderSelectionKeyboard(names))
}

// HandleTextInput routes plain text through the chat's state machine.
func HandleTextInput(a *app.App, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch a.Sessions.Get(chatID).State {
	case session.StateMainMenu:
		handleMenuKeyword(a, chatID, strings.ToLower(strings.TrimSpace(msg.Text)))
	case session.StateCreatingFolder:
		handleCreateFolderInput(a, chatID, strings.TrimSpace(msg.Text))
	case session.StateSelectingFolder:
		handleSelectFolderInput(a, chatID, strings.TrimSpace(msg.Text))
	default:
		// Typed text while a confirmation prompt is up (or in any
		// unexpected state) falls back to the main menu.
		resetToMainMenu(a, chatID)
	}
}

func handleCreateFolderInput(a *app.App, chatID int64, name string) {
	path, created, err := a.Folders.Create(name)
	if err != nil {
		if errors.Is(err, utils.ErrReservedName) {
			a.Bot.SendMessage(chatID, lang.GetMessage(lang.ReservedNameMsgID), nil)
			return
		}
		logrus.WithError(err).Errorf("Failed to create folder %q", name)
		a.Bot.SendMessage(chatID, lang.GetMessage(lang.FolderCreateErrorMsgID, name), nil)
		return
	}

	a.Sessions.SetSelectedFolder(chatID, path)
	if created {
		a.Bot.SendMessage(chatID, lang.GetMessage(lang.FolderCreatedMsgID, name), nil)
	} else {
		a.Bot.SendMessage(chatID, lang.GetMessage(lang.FolderExistsMsgID, name), nil)
	}
	finishFolderChoice(a, chatID, name, path)
}

func handleSelectFolderInput(a *app.App, chatID int64, name string) {
	names, err := a.Folders.List()
	if err != nil {
		logrus.WithError(err).Error("Failed to list folders")
	}
	if !containsName(names, name) {
		logrus.WithError(utils.ErrInvalidFolderSelection).Debugf("Chat %d picked %q", chatID, name)
		a.Bot.SendMessage(chatID, lang.GetMessage(lang.InvalidFolderMsgID), ui.FolderSelectionKeyboard(names))
		return
	}

	path := a.Folders.Resolve(name)
	a.Sessions.SetSelectedFolder(chatID, path)
	a.Bot.SendMessage(chatID, lang.GetMessage(lang.FolderSelectedMsgID, name), nil)
	finishFolderChoice(a, chatID, name, path)
}

// finishFolderChoice returns to the main menu, or re-issues the
// confirmation prompt when a pending download was waiting on a folder
// change.
func finishFolderChoice(a *app.App, chatID int64, folderName, folderPath string) {
	if p := a.Sessions.UpdatePendingFolder(chatID, folderName, folderPath); p != nil {
		a.Sessions.SetState(chatID, session.StateAwaitingConfirmation)
		sendConfirmPrompt(a, chatID, p)
		return
	}
	resetToMainMenu(a, chatID)
}

func sendConfirmPrompt(a *app.App, chatID int64, p *session.PendingDownload) {
	var text string
	if p.Kind == session.SourceForwardedMedia {
		text = lang.GetMessage(lang.ConfirmForwardDownloadMsgID, p.FileName, p.FolderName)
	} else {
		text = lang.GetMessage(lang.ConfirmURLDownloadMsgID, p.FolderName)
	}
	a.Bot.SendMessage(chatID, text, ui.ConfirmKeyboard())
}

func containsName(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}
