package downloader

import (
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	tmbbot "github.com/strem2jelly/telegram-media-bridge/internal/bot"
	"github.com/strem2jelly/telegram-media-bridge/internal/lang"
)

const progressBarCells = 20

// ProgressBar renders a fixed-width bar for the given percentage.
func ProgressBar(percent int) string {
	filled := int(math.Round(float64(progressBarCells) * float64(percent) / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > progressBarCells {
		filled = progressBarCells
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarCells-filled)
}

// progressTracker accumulates downloaded bytes and edits a single chat
// message with a throttled progress bar. It implements io.Writer so it
// can sit in an io.MultiWriter next to the file being written.
type progressTracker struct {
	bot        tmbbot.Service
	chatID     int64
	messageID  int
	folderName string

	interval time.Duration
	now      func() time.Time

	total       int64
	downloaded  int64
	lastEdit    time.Time
	lastPercent int
}

func newProgressTracker(bot tmbbot.Service, chatID int64, messageID int, folderName string, total int64, interval time.Duration) *progressTracker {
	return &progressTracker{
		bot:         bot,
		chatID:      chatID,
		messageID:   messageID,
		folderName:  folderName,
		interval:    interval,
		now:         time.Now,
		total:       total,
		lastPercent: -1,
	}
}

func (t *progressTracker) Write(p []byte) (int, error) {
	t.downloaded += int64(len(p))
	t.update(false)
	return len(p), nil
}

func (t *progressTracker) percent() int {
	if t.total <= 0 {
		return 0
	}
	return int(math.Round(float64(t.downloaded) * 100 / float64(t.total)))
}

// update edits the progress message when forced, or when the throttle
// interval has elapsed and the rounded percentage changed.
func (t *progressTracker) update(force bool) {
	percent := t.percent()
	if !force && (t.now().Sub(t.lastEdit) < t.interval || percent == t.lastPercent) {
		return
	}
	t.lastEdit = t.now()
	t.lastPercent = percent

	text := lang.GetMessage(lang.DownloadProgressMsgID, t.folderName, percent, ProgressBar(percent))
	if err := t.bot.EditMessageText(t.chatID, t.messageID, text); err != nil {
		logrus.WithError(err).Debug("Error updating progress message")
	}
}

// Finish forces a final 100% update regardless of throttling.
func (t *progressTracker) Finish() {
	if t.total <= 0 {
		t.total = t.downloaded
	}
	if t.total == 0 {
		t.total, t.downloaded = 1, 1
	} else {
		t.downloaded = t.total
	}
	t.update(true)
}

// FinalText is the 100% progress text the completion report builds on.
func (t *progressTracker) FinalText() string {
	return lang.GetMessage(lang.DownloadProgressMsgID, t.folderName, 100, ProgressBar(100))
}
