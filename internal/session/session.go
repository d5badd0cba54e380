package session

import (
	"path/filepath"
	"sync"
)

// State is the conversational state of a single chat.
type State string

const (
	StateMainMenu             State = "main_menu"
	StateCreatingFolder       State = "creating_folder"
	StateSelectingFolder      State = "selecting_folder"
	StateAwaitingConfirmation State = "awaiting_download_confirmation"
)

// SourceKind tags the origin of a pending download.
type SourceKind int

const (
	SourceURL SourceKind = iota
	SourceForwardedMedia
)

// ForwardOrigin identifies where a forwarded message originally came
// from, as reported by the Bot API. Exactly one of ChannelID/UserID is
// set for messages whose origin is visible.
type ForwardOrigin struct {
	ChannelID int64
	UserID    int64
	Date      int
}

// PendingDownload is a download candidate awaiting user confirmation.
// At most one exists per chat; a new candidate overwrites the previous
// one (last-write-wins).
type PendingDownload struct {
	Kind SourceKind

	// URL is set for SourceURL.
	URL string
	// MessageID is the originating chat message (the link message or
	// the forwarded media message).
	MessageID int

	// FileName/FilePath are known up-front for forwarded media; for
	// URL downloads the name is discovered from response headers at
	// transfer time and FilePath stays empty until then.
	FileName     string
	FilePath     string
	FileSizeHint int64

	FolderName string
	FolderPath string

	Origin ForwardOrigin
}

type ChatSession struct {
	ChatID int64
	State  State
	// SelectedFolder is the absolute path of the chat's destination
	// folder; empty means the default folder.
	SelectedFolder string
	Pending        *PendingDownload
}

// Manager is the in-memory per-chat session store. Sessions are
// created lazily and live for the process lifetime.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*ChatSession
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*ChatSession),
	}
}

// Get returns the session for chatID, creating a fresh MainMenu
// session if none exists. It never fails.
func (m *Manager) Get(chatID int64) *ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(chatID)
}

func (m *Manager) get(chatID int64) *ChatSession {
	s, ok := m.sessions[chatID]
	if !ok {
		s = &ChatSession{ChatID: chatID, State: StateMainMenu}
		m.sessions[chatID] = s
	}
	return s
}

func (m *Manager) SetState(chatID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(chatID).State = state
}

func (m *Manager) SetSelectedFolder(chatID int64, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(chatID).SelectedFolder = path
}

func (m *Manager) SetPending(chatID int64, p *PendingDownload) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(chatID).Pending = p
}

// TakePending removes and returns the pending download, or nil.
// Confirmation consumes the descriptor exactly once.
func (m *Manager) TakePending(chatID int64) *PendingDownload {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.get(chatID)
	p := s.Pending
	s.Pending = nil
	return p
}

// UpdatePendingFolder retargets the pending download at a new folder,
// recomputing the resolved file path when the file name is known.
// Returns the updated descriptor, or nil when nothing is pending.
func (m *Manager) UpdatePendingFolder(chatID int64, folderName, folderPath string) *PendingDownload {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.get(chatID)
	if s.Pending == nil {
		return nil
	}
	s.Pending.FolderName = folderName
	s.Pending.FolderPath = folderPath
	if s.Pending.FileName != "" {
		s.Pending.FilePath = filepath.Join(folderPath, s.Pending.FileName)
	}
	return s.Pending
}

func (m *Manager) ClearPending(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(chatID).Pending = nil
}
