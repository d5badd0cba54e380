package downloader

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/strem2jelly/telegram-media-bridge/internal/lang"
	"github.com/strem2jelly/telegram-media-bridge/internal/utils"
)

const fallbackFileName = "downloaded_file"

// rewriteURL applies the configured host:port substitution. Intended
// for relay/proxy redirection of loopback streaming-server links.
func (o *Orchestrator) rewriteURL(rawURL string) string {
	if o.rewriteFrom == "" {
		return rawURL
	}
	return strings.Replace(rawURL, o.rewriteFrom, o.rewriteTo, 1)
}

// fileNameFromDisposition extracts the suggested file name from a
// Content-Disposition header, or returns the fallback name.
func fileNameFromDisposition(disposition string) string {
	if disposition == "" {
		return fallbackFileName
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return fallbackFileName
	}
	if name := strings.Trim(params["filename"], `"'`); name != "" {
		return name
	}
	return fallbackFileName
}

// DownloadFromURL performs the direct-URL path: metadata probe,
// extension and duplicate checks, then a streamed transfer with
// throttled progress edits.
func (o *Orchestrator) DownloadFromURL(ctx context.Context, req Request) {
	p := req.Pending
	chatID := req.ChatID
	downloadURL := o.rewriteURL(p.URL)

	head, err := o.probe.R().SetContext(ctx).Head(downloadURL)
	if err != nil {
		o.reportFailure(chatID, err, 0)
		return
	}
	if head.IsError() {
		o.reportFailure(chatID, fmt.Errorf("metadata probe failed"), head.StatusCode())
		return
	}

	totalBytes, _ := strconv.ParseInt(head.Header().Get("Content-Length"), 10, 64)
	fileName := fileNameFromDisposition(head.Header().Get("Content-Disposition"))

	ext := strings.ToLower(filepath.Ext(fileName))
	if !supportedExtensions[ext] {
		if ext == "" {
			ext = "unknown"
		}
		o.reportFailure(chatID, fmt.Errorf("%w: %s", utils.ErrUnsupportedFormat, ext), 0)
		return
	}

	filePath := filepath.Join(p.FolderPath, fileName)
	if _, err := os.Stat(filePath); err == nil {
		logrus.WithError(utils.ErrAlreadyExists).Infof("Skipping download of %s", filePath)
		o.bot.SendMessage(chatID, lang.GetMessage(lang.FileExistsMsgID, fileName, p.FolderName), nil)
		return
	}

	progressID, err := o.bot.SendMessageReturningID(chatID, lang.GetMessage(lang.StartingDownloadMsgID), nil)
	if err != nil {
		o.reportFailure(chatID, err, 0)
		return
	}

	resp, err := o.stream.R().SetContext(ctx).SetDoNotParseResponse(true).Get(downloadURL)
	if err != nil {
		o.reportFailure(chatID, err, 0)
		return
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.IsError() {
		o.reportFailure(chatID, fmt.Errorf("download request failed"), resp.StatusCode())
		return
	}

	file, err := os.Create(filePath)
	if err != nil {
		o.reportFailure(chatID, err, 0)
		return
	}

	tracker := newProgressTracker(o.bot, chatID, progressID, p.FolderName, totalBytes, o.progressInterval)
	_, copyErr := io.Copy(io.MultiWriter(file, tracker), body)
	closeErr := file.Close()
	if copyErr != nil {
		// Partial file is left in place on purpose.
		o.reportFailure(chatID, copyErr, 0)
		return
	}
	if closeErr != nil {
		o.reportFailure(chatID, closeErr, 0)
		return
	}

	tracker.Finish()

	jellyfinStatus := o.refreshStatus(ctx)
	o.record(ctx, req, fileName, filePath)

	final := lang.GetMessage(lang.URLDownloadCompletedMsgID, tracker.FinalText(), fileName, jellyfinStatus)
	if err := o.bot.EditMessageText(chatID, progressID, final); err != nil {
		logrus.WithError(err).Error("Failed to edit final download message")
	}
}

// reportFailure sends the error to the chat, appending the HTTP status
// when one is available.
func (o *Orchestrator) reportFailure(chatID int64, err error, status int) {
	logrus.WithError(err).Error("Download error")
	root := utils.RootError(err)
	if status != 0 {
		o.bot.SendMessage(chatID, lang.GetMessage(lang.DownloadErrorStatusMsgID, root.Error(), status), nil)
		return
	}
	o.bot.SendMessage(chatID, lang.GetMessage(lang.DownloadErrorMsgID, root.Error()), nil)
}
