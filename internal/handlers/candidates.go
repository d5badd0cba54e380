package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/strem2jelly/telegram-media-bridge/internal/app"
	"github.com/strem2jelly/telegram-media-bridge/internal/lang"
	"github.com/strem2jelly/telegram-media-bridge/internal/session"
)

// selectedFolder returns the chat's destination folder, falling back to
// the default folder when nothing was picked yet.
func selectedFolder(a *app.App, chatID int64) (name, path string) {
	path = a.Sessions.Get(chatID).SelectedFolder
	if path == "" {
		path = a.Folders.DefaultPath()
	}
	return a.Folders.DisplayName(path), path
}

// HandleDownloadRequest registers a URL message as a download candidate
// and asks for confirmation.
func HandleDownloadRequest(a *app.App, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	folderName, folderPath := selectedFolder(a, chatID)

	p := &session.PendingDownload{
		Kind:       session.SourceURL,
		URL:        msg.Text,
		MessageID:  msg.MessageID,
		FolderName: folderName,
		FolderPath: folderPath,
	}
	a.Sessions.SetPending(chatID, p)
	a.Sessions.SetState(chatID, session.StateAwaitingConfirmation)
	sendConfirmPrompt(a, chatID, p)
}

// HandleForwardedMedia registers a forwarded video or document as a
// download candidate. If the target file already exists the candidate
// is rejected up-front and the chat stays in the main menu.
func HandleForwardedMedia(a *app.App, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	folderName, folderPath := selectedFolder(a, chatID)

	fileName, sizeHint := forwardedFileInfo(msg)
	filePath := filepath.Join(folderPath, fileName)

	if _, err := os.Stat(filePath); err == nil {
		a.Bot.SendMessage(chatID, lang.GetMessage(lang.FileExistsMsgID, fileName, folderName), nil)
		return
	}

	origin := session.ForwardOrigin{Date: msg.ForwardDate}
	if msg.ForwardFromChat != nil {
		origin.ChannelID = msg.ForwardFromChat.ID
	}
	if msg.ForwardFrom != nil {
		origin.UserID = msg.ForwardFrom.ID
	}

	p := &session.PendingDownload{
		Kind:         session.SourceForwardedMedia,
		MessageID:    msg.MessageID,
		FileName:     fileName,
		FilePath:     filePath,
		FileSizeHint: sizeHint,
		FolderName:   folderName,
		FolderPath:   folderPath,
		Origin:       origin,
	}
	a.Sessions.SetPending(chatID, p)
	a.Sessions.SetState(chatID, session.StateAwaitingConfirmation)
	sendConfirmPrompt(a, chatID, p)
}

// forwardedFileInfo extracts the attachment name and size, preferring
// the document over the video when both are present. Nameless media
// gets a timestamped fallback name.
func forwardedFileInfo(msg *tgbotapi.Message) (fileName string, size int64) {
	switch {
	case msg.Document != nil:
		fileName = msg.Document.FileName
		size = int64(msg.Document.FileSize)
		if fileName == "" {
			fileName = fmt.Sprintf("document_%d", time.Now().Unix())
		}
	case msg.Video != nil:
		fileName = msg.Video.FileName
		size = int64(msg.Video.FileSize)
		if fileName == "" {
			fileName = fmt.Sprintf("video_%d.mp4", time.Now().Unix())
		}
	}
	return fileName, size
}
