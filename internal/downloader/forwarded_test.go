package downloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tmbconfig "github.com/strem2jelly/telegram-media-bridge/internal/config"
	"github.com/strem2jelly/telegram-media-bridge/internal/session"
	"github.com/strem2jelly/telegram-media-bridge/internal/testutils"
	"github.com/strem2jelly/telegram-media-bridge/internal/userclient"
	"github.com/strem2jelly/telegram-media-bridge/internal/utils"
)

func TestNormalizeChannelID(t *testing.T) {
	tests := []struct {
		in   int64
		want int64
	}{
		{-1001234567890, 1234567890},
		{1234567890, 1234567890},
		{-42, -42},
		{0, 0},
	}

	for _, tt := range tests {
		if got := normalizeChannelID(tt.in); got != tt.want {
			t.Errorf("normalizeChannelID(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFindForwardedMatch(t *testing.T) {
	doc := &userclient.MediaRef{ID: 7, Size: 100}
	window := []userclient.MediaMessage{
		{FromChannelID: 1234567890, Date: 1700000000, Document: doc},
		{FromUserID: 555, Date: 1700000100, Document: doc},
		{Date: 1700000200},
	}

	tests := []struct {
		name    string
		origin  session.ForwardOrigin
		wantErr bool
	}{
		{
			name:   "channel match with bot api prefix",
			origin: session.ForwardOrigin{ChannelID: -1001234567890, Date: 1700000000},
		},
		{
			name:   "user match",
			origin: session.ForwardOrigin{UserID: 555, Date: 1700000100},
		},
		{
			name:    "date mismatch",
			origin:  session.ForwardOrigin{ChannelID: -1001234567890, Date: 1700000001},
			wantErr: true,
		},
		{
			name:    "unknown origin",
			origin:  session.ForwardOrigin{ChannelID: -1009999999999, Date: 1700000000},
			wantErr: true,
		},
		{
			name:    "no identity at all",
			origin:  session.ForwardOrigin{Date: 1700000200},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := findForwardedMatch(window, tt.origin)
			if tt.wantErr {
				if !errors.Is(err, utils.ErrForwardedMessageNotFound) {
					t.Errorf("err = %v, want ErrForwardedMessageNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if match.Document != doc {
				t.Error("matched the wrong message")
			}
		})
	}
}

func testOrchestrator(bot *testutils.MockBot, recorder *testutils.MockRecorder, refresher *testutils.MockRefresher, media *testutils.MockMediaClient) *Orchestrator {
	config := &tmbconfig.Config{
		ProgressUpdateInterval: time.Millisecond,
	}
	return New(bot, recorder, refresher, media, config)
}

func TestDownloadForwarded(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("fake video bytes")

	bot := testutils.NewMockBot()
	recorder := &testutils.MockRecorder{}
	refresher := &testutils.MockRefresher{}
	media := &testutils.MockMediaClient{
		Self: 9000,
		Messages: []userclient.MediaMessage{
			{FromChannelID: 777, Date: 1700000000, Document: &userclient.MediaRef{ID: 1, Size: int64(len(payload))}},
		},
		Payload: payload,
	}

	o := testOrchestrator(bot, recorder, refresher, media)
	filePath := filepath.Join(dir, "movie.mkv")
	o.DownloadForwarded(context.Background(), Request{
		ChatID:   1,
		UserID:   100,
		Username: "admin",
		Pending: session.PendingDownload{
			Kind:      session.SourceForwardedMedia,
			MessageID: 55,
			FileName:  "movie.mkv",
			FilePath:  filePath,
			Origin:    session.ForwardOrigin{ChannelID: -100777, Date: 1700000000},
		},
	})

	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("downloaded file missing: %v", err)
	}
	if string(data) != string(payload) {
		t.Error("file content does not match the media payload")
	}

	if len(bot.Forwards) != 1 || bot.Forwards[0].ToChatID != 9000 || bot.Forwards[0].MessageID != 55 {
		t.Errorf("forward calls = %+v, want one forward of message 55 to the session account", bot.Forwards)
	}
	if refresher.Calls != 1 {
		t.Errorf("refresh calls = %d, want 1", refresher.Calls)
	}
	if recorder.Count() != 1 {
		t.Errorf("recorded downloads = %d, want 1", recorder.Count())
	}

	if len(bot.Edits) == 0 {
		t.Fatal("no progress edits were sent")
	}
	final := bot.Edits[len(bot.Edits)-1]
	if !strings.Contains(final.Text, "movie.mkv") {
		t.Errorf("final message = %q, want file name", final.Text)
	}
}

func TestDownloadForwardedNotFound(t *testing.T) {
	bot := testutils.NewMockBot()
	media := &testutils.MockMediaClient{Self: 9000}

	o := testOrchestrator(bot, &testutils.MockRecorder{}, &testutils.MockRefresher{}, media)
	o.DownloadForwarded(context.Background(), Request{
		ChatID: 1,
		Pending: session.PendingDownload{
			Kind:     session.SourceForwardedMedia,
			FileName: "movie.mkv",
			FilePath: filepath.Join(t.TempDir(), "movie.mkv"),
			Origin:   session.ForwardOrigin{ChannelID: -100777, Date: 1700000000},
		},
	})

	last := bot.LastSent()
	if last == nil || !strings.Contains(last.Text, utils.ErrForwardedMessageNotFound.Error()) {
		t.Errorf("last message = %+v, want forwarded-message-not-found error", last)
	}
}

func TestDownloadForwardedNoDocument(t *testing.T) {
	bot := testutils.NewMockBot()
	media := &testutils.MockMediaClient{
		Self: 9000,
		Messages: []userclient.MediaMessage{
			{FromUserID: 555, Date: 1700000100},
		},
	}

	o := testOrchestrator(bot, &testutils.MockRecorder{}, &testutils.MockRefresher{}, media)
	o.DownloadForwarded(context.Background(), Request{
		ChatID: 1,
		Pending: session.PendingDownload{
			Kind:     session.SourceForwardedMedia,
			FileName: "movie.mkv",
			FilePath: filepath.Join(t.TempDir(), "movie.mkv"),
			Origin:   session.ForwardOrigin{UserID: 555, Date: 1700000100},
		},
	})

	last := bot.LastSent()
	if last == nil || !strings.Contains(last.Text, utils.ErrNoDownloadableContent.Error()) {
		t.Errorf("last message = %+v, want no-downloadable-content error", last)
	}
}
