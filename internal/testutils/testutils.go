package testutils

import (
	"context"
	"io"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/strem2jelly/telegram-media-bridge/internal/userclient"
)

// SentMessage records one SendMessage/SendMessageReturningID call.
type SentMessage struct {
	ChatID   int64
	Text     string
	Keyboard any
}

// EditedMessage records one EditMessageText call.
type EditedMessage struct {
	ChatID    int64
	MessageID int
	Text      string
}

// ForwardedMessage records one ForwardMessage call.
type ForwardedMessage struct {
	ToChatID   int64
	FromChatID int64
	MessageID  int
}

// MockBot implements bot.Service and records everything sent through
// it. Message ids are handed out sequentially starting at 1.
type MockBot struct {
	mu sync.Mutex

	Sent      []SentMessage
	Edits     []EditedMessage
	Deleted   []int
	Forwards  []ForwardedMessage
	Callbacks []tgbotapi.CallbackConfig

	nextMessageID int

	// SendIDErr, when set, is returned by SendMessageReturningID.
	SendIDErr error
	// ForwardErr, when set, is returned by ForwardMessage.
	ForwardErr error
}

func NewMockBot() *MockBot {
	return &MockBot{}
}

func (m *MockBot) SendMessage(chatID int64, text string, keyboard any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, Text: text, Keyboard: keyboard})
}

func (m *MockBot) SendMessageReturningID(chatID int64, text string, keyboard any) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendIDErr != nil {
		return 0, m.SendIDErr
	}
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, Text: text, Keyboard: keyboard})
	m.nextMessageID++
	return m.nextMessageID, nil
}

func (m *MockBot) EditMessageText(chatID int64, messageID int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Edits = append(m.Edits, EditedMessage{ChatID: chatID, MessageID: messageID, Text: text})
	return nil
}

func (m *MockBot) DeleteMessage(chatID int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, messageID)
	return nil
}

func (m *MockBot) AnswerCallbackQuery(config tgbotapi.CallbackConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Callbacks = append(m.Callbacks, config)
}

func (m *MockBot) ForwardMessage(toChatID, fromChatID int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForwardErr != nil {
		return m.ForwardErr
	}
	m.Forwards = append(m.Forwards, ForwardedMessage{ToChatID: toChatID, FromChatID: fromChatID, MessageID: messageID})
	return nil
}

// LastSent returns the most recent sent message, or nil.
func (m *MockBot) LastSent() *SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	return &m.Sent[len(m.Sent)-1]
}

// MockRecorder implements downloader.Recorder.
type MockRecorder struct {
	mu      sync.Mutex
	Records []RecordedDownload
	Err     error
}

type RecordedDownload struct {
	TelegramID int64
	Username   string
	FileName   string
	FilePath   string
}

func (m *MockRecorder) RecordDownload(_ context.Context, telegramID int64, username, fileName, filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Records = append(m.Records, RecordedDownload{
		TelegramID: telegramID,
		Username:   username,
		FileName:   fileName,
		FilePath:   filePath,
	})
	return nil
}

func (m *MockRecorder) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records)
}

// MockRefresher implements downloader.Refresher.
type MockRefresher struct {
	mu    sync.Mutex
	Calls int
	Err   error
}

func (m *MockRefresher) Refresh(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Err
}

// MockMediaClient implements downloader.MediaClient with canned data.
type MockMediaClient struct {
	Self     int64
	Messages []userclient.MediaMessage
	ListErr  error

	// Payload is written to the sink on DownloadMedia.
	Payload     []byte
	DownloadErr error

	mu        sync.Mutex
	Downloads int
}

func (m *MockMediaClient) SelfID() int64 {
	return m.Self
}

func (m *MockMediaClient) ListRecentMessages(context.Context, int) ([]userclient.MediaMessage, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Messages, nil
}

func (m *MockMediaClient) DownloadMedia(_ context.Context, _ *userclient.MediaRef, sink io.Writer) error {
	m.mu.Lock()
	m.Downloads++
	m.mu.Unlock()
	if m.DownloadErr != nil {
		return m.DownloadErr
	}
	_, err := sink.Write(m.Payload)
	return err
}
