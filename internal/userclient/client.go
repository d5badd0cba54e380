package userclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"github.com/sirupsen/logrus"

	tmbconfig "github.com/strem2jelly/telegram-media-bridge/internal/config"
	"github.com/strem2jelly/telegram-media-bridge/internal/utils"
)

// MediaRef points at a downloadable document on Telegram's servers.
type MediaRef struct {
	ID            int64
	AccessHash    int64
	FileReference []byte
	Size          int64
}

// MediaMessage is one message from the user session's dialog with the
// bot, reduced to what forwarded-message correlation needs.
type MediaMessage struct {
	// FromChannelID/FromUserID identify the forward origin; zero when
	// the message is not a forward or the origin is hidden.
	FromChannelID int64
	FromUserID    int64
	// Date is the origin message's unix timestamp.
	Date int
	// Document is nil when the message carries nothing downloadable.
	Document *MediaRef
}

// Client wraps a gotd user session. The account must share a dialog
// with the bot: the bot forwards media there and the session reads it
// back, because bot and MTProto file identifiers are not compatible.
type Client struct {
	appID       int
	appHash     string
	phone       string
	botUsername string
	sessionPath string

	mu      sync.Mutex
	api     *tg.Client
	selfID  int64
	botPeer *tg.InputPeerUser

	readyOnce sync.Once
	ready     chan struct{}
	readyErr  error
}

func New(config *tmbconfig.Config, botUsername string) *Client {
	return &Client{
		appID:       config.TelegramAppID,
		appHash:     config.TelegramAppHash,
		phone:       config.PhoneNumber,
		botUsername: botUsername,
		sessionPath: config.SessionFilePath,
		ready:       make(chan struct{}),
	}
}

// Run connects and authorizes the user session, then blocks until ctx
// is cancelled. A stale persisted session is deleted and the login
// flow retried once; a second failure is returned to the caller.
func (c *Client) Run(ctx context.Context) error {
	var err error
	for attempt := 0; attempt <= 1; attempt++ {
		err = c.runOnce(ctx)
		if ctx.Err() != nil {
			return err
		}
		if errors.Is(err, utils.ErrSessionAuthInvalid) && attempt == 0 {
			logrus.Warn("Saved session is invalid, removing it and logging in again")
			if removeErr := os.Remove(c.sessionPath); removeErr != nil && !os.IsNotExist(removeErr) {
				logrus.WithError(removeErr).Warn("Failed to remove stale session file")
			}
			continue
		}
		break
	}
	c.failReady(err)
	return err
}

func (c *Client) runOnce(ctx context.Context) error {
	client := telegram.NewClient(c.appID, c.appHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: c.sessionPath},
	})

	err := client.Run(ctx, func(ctx context.Context) error {
		status, err := client.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to check auth status: %w", err)
		}
		if !status.Authorized {
			logrus.Info("No valid session found, starting login flow")
			flow := auth.NewFlow(termAuth{phone: c.phone}, auth.SendCodeOptions{})
			if err := flow.Run(ctx, client.Auth()); err != nil {
				return fmt.Errorf("login flow failed: %w", err)
			}
			logrus.Info("Login successful, session saved")
		}

		self, err := client.Self(ctx)
		if err != nil {
			return fmt.Errorf("failed to get self: %w", err)
		}

		api := client.API()
		botPeer, err := resolveBotPeer(ctx, api, c.botUsername)
		if err != nil {
			return err
		}

		c.mu.Lock()
		c.api = api
		c.selfID = self.ID
		c.botPeer = botPeer
		c.mu.Unlock()

		logrus.Infof("User session authorized as id %d", self.ID)
		c.signalReady()

		<-ctx.Done()
		return ctx.Err()
	})
	if err != nil && tgerr.Is(err, "AUTH_KEY_UNREGISTERED") {
		return fmt.Errorf("%w: %v", utils.ErrSessionAuthInvalid, err)
	}
	return err
}

// WaitReady blocks until the session is authorized or Run has failed.
func (c *Client) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return c.readyErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) signalReady() {
	c.readyOnce.Do(func() { close(c.ready) })
}

func (c *Client) failReady(err error) {
	c.readyOnce.Do(func() {
		c.readyErr = err
		close(c.ready)
	})
}

func resolveBotPeer(ctx context.Context, api *tg.Client, username string) (*tg.InputPeerUser, error) {
	resolved, err := api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: username,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bot username %q: %w", username, err)
	}
	for _, u := range resolved.Users {
		user, ok := u.(*tg.User)
		if !ok {
			continue
		}
		if name, _ := user.GetUsername(); strings.EqualFold(name, username) {
			return &tg.InputPeerUser{UserID: user.ID, AccessHash: user.AccessHash}, nil
		}
	}
	return nil, fmt.Errorf("bot peer %q not found in resolve result", username)
}

// SelfID returns the user account's own Telegram id.
func (c *Client) SelfID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selfID
}

func (c *Client) snapshot() (*tg.Client, *tg.InputPeerUser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.api == nil || c.botPeer == nil {
		return nil, nil, errors.New("user session is not connected")
	}
	return c.api, c.botPeer, nil
}

// ListRecentMessages returns up to limit messages from the dialog with
// the bot, oldest first within that window.
func (c *Client) ListRecentMessages(ctx context.Context, limit int) ([]MediaMessage, error) {
	api, peer, err := c.snapshot()
	if err != nil {
		return nil, err
	}

	history, err := api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
		Peer:  peer,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	modified, ok := history.AsModified()
	if !ok {
		return nil, fmt.Errorf("unexpected history response %T", history)
	}

	raw := modified.GetMessages()
	out := make([]MediaMessage, 0, len(raw))
	// getHistory returns newest first; callers match oldest first.
	for i := len(raw) - 1; i >= 0; i-- {
		msg, ok := raw[i].(*tg.Message)
		if !ok {
			continue
		}
		mm := MediaMessage{Date: msg.Date}
		if fwd, ok := msg.GetFwdFrom(); ok {
			mm.Date = fwd.Date
			if from, ok := fwd.GetFromID(); ok {
				switch peer := from.(type) {
				case *tg.PeerChannel:
					mm.FromChannelID = peer.ChannelID
				case *tg.PeerUser:
					mm.FromUserID = peer.UserID
				}
			}
		}
		mm.Document = documentRef(msg)
		out = append(out, mm)
	}
	return out, nil
}

// documentRef extracts the downloadable attachment, if any. Videos,
// audio and voice notes are all documents at the MTProto layer.
func documentRef(msg *tg.Message) *MediaRef {
	media, ok := msg.GetMedia()
	if !ok {
		return nil
	}
	mediaDoc, ok := media.(*tg.MessageMediaDocument)
	if !ok {
		return nil
	}
	doc, ok := mediaDoc.Document.AsNotEmpty()
	if !ok {
		return nil
	}
	return &MediaRef{
		ID:            doc.ID,
		AccessHash:    doc.AccessHash,
		FileReference: doc.FileReference,
		Size:          doc.Size,
	}
}

// DownloadMedia streams the referenced document into sink.
func (c *Client) DownloadMedia(ctx context.Context, ref *MediaRef, sink io.Writer) error {
	api, _, err := c.snapshot()
	if err != nil {
		return err
	}

	location := &tg.InputDocumentFileLocation{
		ID:            ref.ID,
		AccessHash:    ref.AccessHash,
		FileReference: ref.FileReference,
	}
	if _, err := downloader.NewDownloader().Download(api, location).Stream(ctx, sink); err != nil {
		return fmt.Errorf("media download failed: %w", err)
	}
	return nil
}
