package downloader

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	tmbbot "github.com/strem2jelly/telegram-media-bridge/internal/bot"
	tmbconfig "github.com/strem2jelly/telegram-media-bridge/internal/config"
	"github.com/strem2jelly/telegram-media-bridge/internal/lang"
	"github.com/strem2jelly/telegram-media-bridge/internal/session"
	"github.com/strem2jelly/telegram-media-bridge/internal/userclient"
)

const (
	// headProbeTimeout bounds the metadata probe; the streamed GET is
	// bounded on connection establishment only.
	headProbeTimeout = 10 * time.Second
	connectTimeout   = 30 * time.Second

	// correlationWindow is how many recent messages the user session
	// searches when matching a forwarded message.
	correlationWindow = 100
)

// supportedExtensions is the allow-list for direct URL downloads.
var supportedExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpg":  true,
	".mpeg": true,
}

// Recorder persists completed downloads.
type Recorder interface {
	RecordDownload(ctx context.Context, telegramID int64, username, fileName, filePath string) error
}

// Refresher tells the media server to rescan its library.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// MediaClient is the user-session capability the forwarded path needs.
type MediaClient interface {
	SelfID() int64
	ListRecentMessages(ctx context.Context, limit int) ([]userclient.MediaMessage, error)
	DownloadMedia(ctx context.Context, ref *userclient.MediaRef, sink io.Writer) error
}

// Request carries one confirmed download. The orchestrator borrows the
// descriptor for the duration of the transfer and does not retain it.
type Request struct {
	ChatID   int64
	UserID   int64
	Username string
	Pending  session.PendingDownload
}

// Orchestrator executes confirmed downloads and reports progress and
// outcome into the originating chat.
type Orchestrator struct {
	bot      tmbbot.Service
	recorder Recorder
	library  Refresher
	media    MediaClient

	probe  *resty.Client
	stream *resty.Client

	rewriteFrom      string
	rewriteTo        string
	progressInterval time.Duration
}

func New(bot tmbbot.Service, recorder Recorder, library Refresher, media MediaClient, config *tmbconfig.Config) *Orchestrator {
	streamClient := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
		},
	}
	return &Orchestrator{
		bot:              bot,
		recorder:         recorder,
		library:          library,
		media:            media,
		probe:            resty.New().SetTimeout(headProbeTimeout),
		stream:           resty.NewWithClient(streamClient),
		rewriteFrom:      config.URLRewriteFrom,
		rewriteTo:        config.URLRewriteTo,
		progressInterval: config.ProgressUpdateInterval,
	}
}

// Run executes the pending download. It reports success or failure to
// the chat itself; callers are responsible for returning the session
// to the main menu afterwards.
func (o *Orchestrator) Run(ctx context.Context, req Request) {
	switch req.Pending.Kind {
	case session.SourceForwardedMedia:
		o.DownloadForwarded(ctx, req)
	default:
		o.DownloadFromURL(ctx, req)
	}
}

// refreshStatus triggers the library rescan and maps the outcome to an
// informational string; it never fails the download.
func (o *Orchestrator) refreshStatus(ctx context.Context) string {
	if err := o.library.Refresh(ctx); err != nil {
		logrus.WithError(err).Error("Error refreshing Jellyfin library")
		return lang.GetMessage(lang.JellyfinRefreshFailedMsgID)
	}
	return lang.GetMessage(lang.JellyfinRefreshOKMsgID)
}

// record appends the download to persistence; failures are logged but
// do not demote an already completed transfer.
func (o *Orchestrator) record(ctx context.Context, req Request, fileName, filePath string) {
	if err := o.recorder.RecordDownload(ctx, req.UserID, req.Username, fileName, filePath); err != nil {
		logrus.WithError(err).Error("Failed to record download")
	}
}
