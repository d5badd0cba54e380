package ui

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	tmbbot "github.com/strem2jelly/telegram-media-bridge/internal/bot"
	tmblang "github.com/strem2jelly/telegram-media-bridge/internal/lang"
)

// Callback payloads for the pending-download prompt.
const (
	CallbackConfirmDownload = "confirm_download"
	CallbackChangeFolder    = "change_folder"
	CallbackCancelDownload  = "cancel_download"
)

func SendMainMenu(bot tmbbot.Service, chatID int64) {
	bot.SendMessage(chatID, tmblang.GetMessage(tmblang.MainMenuMsgID), MainMenuKeyboard())
}

func MainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(tmblang.GetMessage(tmblang.CreateFolderButtonID)),
			tgbotapi.NewKeyboardButton(tmblang.GetMessage(tmblang.SelectFolderButtonID)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(tmblang.GetMessage(tmblang.CancelButtonID)),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func CreateFolderKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(tmblang.GetMessage(tmblang.BackToMainMenuButtonID)),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func FolderSelectionKeyboard(folderNames []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(folderNames)+1)
	for _, name := range folderNames {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(name)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(tmblang.GetMessage(tmblang.BackToMainMenuButtonID)),
	))

	return tgbotapi.ReplyKeyboardMarkup{
		Keyboard:       rows,
		ResizeKeyboard: true,
	}
}

func ConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tmblang.GetMessage(tmblang.ConfirmButtonID), CallbackConfirmDownload),
			tgbotapi.NewInlineKeyboardButtonData(tmblang.GetMessage(tmblang.ChangeFolderButtonID), CallbackChangeFolder),
			tgbotapi.NewInlineKeyboardButtonData(tmblang.GetMessage(tmblang.CancelButtonID), CallbackCancelDownload),
		),
	)
}
