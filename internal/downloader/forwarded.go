package downloader

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/strem2jelly/telegram-media-bridge/internal/lang"
	"github.com/strem2jelly/telegram-media-bridge/internal/session"
	"github.com/strem2jelly/telegram-media-bridge/internal/userclient"
	"github.com/strem2jelly/telegram-media-bridge/internal/utils"
)

// normalizeChannelID strips the Bot API's -100 channel prefix so the
// id can be compared with the MTProto channel id.
func normalizeChannelID(id int64) int64 {
	if id >= 0 {
		return id
	}
	s := strconv.FormatInt(id, 10)
	trimmed := strings.TrimPrefix(s, "-100")
	if trimmed == s {
		return id
	}
	normalized, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return id
	}
	return normalized
}

// findForwardedMatch scans the window (oldest first) for the message
// whose forward origin and origin timestamp both match.
func findForwardedMatch(messages []userclient.MediaMessage, origin session.ForwardOrigin) (*userclient.MediaMessage, error) {
	wantChannel := normalizeChannelID(origin.ChannelID)
	for i := range messages {
		m := &messages[i]
		channelMatch := m.FromChannelID != 0 && origin.ChannelID != 0 && m.FromChannelID == wantChannel
		userMatch := m.FromUserID != 0 && m.FromUserID == origin.UserID
		if !channelMatch && !userMatch {
			continue
		}
		if m.Date != origin.Date {
			continue
		}
		return m, nil
	}
	return nil, utils.ErrForwardedMessageNotFound
}

// DownloadForwarded performs the forwarded-media path: the bot
// re-forwards the message to the user session's account, the session
// locates its copy by forward origin and timestamp, and the attachment
// is streamed to disk through the session client.
func (o *Orchestrator) DownloadForwarded(ctx context.Context, req Request) {
	p := req.Pending
	chatID := req.ChatID

	progressID, err := o.bot.SendMessageReturningID(chatID, lang.GetMessage(lang.StartingDownloadMsgID), nil)
	if err != nil {
		o.reportFailure(chatID, err, 0)
		return
	}

	if err := o.bot.ForwardMessage(o.media.SelfID(), chatID, p.MessageID); err != nil {
		o.reportFailure(chatID, fmt.Errorf("failed to forward message to user session: %w", err), 0)
		return
	}

	messages, err := o.media.ListRecentMessages(ctx, correlationWindow)
	if err != nil {
		o.reportFailure(chatID, err, 0)
		return
	}

	match, err := findForwardedMatch(messages, p.Origin)
	if err != nil {
		o.reportFailure(chatID, err, 0)
		return
	}
	if match.Document == nil {
		o.reportFailure(chatID, utils.ErrNoDownloadableContent, 0)
		return
	}

	totalBytes := match.Document.Size
	if totalBytes <= 0 {
		totalBytes = p.FileSizeHint
	}

	file, err := os.Create(p.FilePath)
	if err != nil {
		o.reportFailure(chatID, err, 0)
		return
	}

	tracker := newProgressTracker(o.bot, chatID, progressID, p.FolderName, totalBytes, o.progressInterval)
	downloadErr := o.media.DownloadMedia(ctx, match.Document, io.MultiWriter(file, tracker))
	closeErr := file.Close()
	if downloadErr != nil {
		o.reportFailure(chatID, downloadErr, 0)
		return
	}
	if closeErr != nil {
		o.reportFailure(chatID, closeErr, 0)
		return
	}

	tracker.Finish()

	jellyfinStatus := o.refreshStatus(ctx)
	o.record(ctx, req, p.FileName, p.FilePath)

	final := lang.GetMessage(lang.DownloadCompletedMsgID, p.FileName, jellyfinStatus)
	if err := o.bot.EditMessageText(chatID, progressID, final); err != nil {
		logrus.WithError(err).Error("Failed to edit final download message")
	}
}
