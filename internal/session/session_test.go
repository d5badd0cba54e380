package session

import (
	"path/filepath"
	"testing"
)

func TestGetCreatesMainMenuSession(t *testing.T) {
	m := NewManager()

	s := m.Get(42)
	if s.State != StateMainMenu {
		t.Errorf("new session state = %q, want %q", s.State, StateMainMenu)
	}
	if s.Pending != nil {
		t.Error("new session has a pending download")
	}

	m.SetState(42, StateCreatingFolder)
	if got := m.Get(42).State; got != StateCreatingFolder {
		t.Errorf("state = %q, want %q", got, StateCreatingFolder)
	}
	// Other chats are unaffected.
	if got := m.Get(43).State; got != StateMainMenu {
		t.Errorf("other chat state = %q, want %q", got, StateMainMenu)
	}
}

func TestTakePendingConsumesOnce(t *testing.T) {
	m := NewManager()
	m.SetPending(1, &PendingDownload{Kind: SourceURL, URL: "http://example.com/a.mkv"})

	first := m.TakePending(1)
	if first == nil || first.URL != "http://example.com/a.mkv" {
		t.Fatalf("TakePending returned %+v", first)
	}
	if second := m.TakePending(1); second != nil {
		t.Errorf("second TakePending returned %+v, want nil", second)
	}
}

func TestSetPendingOverwrites(t *testing.T) {
	m := NewManager()
	m.SetPending(1, &PendingDownload{URL: "http://old"})
	m.SetPending(1, &PendingDownload{URL: "http://new"})

	if p := m.TakePending(1); p == nil || p.URL != "http://new" {
		t.Errorf("TakePending = %+v, want the newer candidate", p)
	}
}

func TestUpdatePendingFolder(t *testing.T) {
	m := NewManager()

	if p := m.UpdatePendingFolder(1, "Movies", "/media/Movies"); p != nil {
		t.Errorf("UpdatePendingFolder with no pending = %+v, want nil", p)
	}

	m.SetPending(1, &PendingDownload{
		Kind:     SourceForwardedMedia,
		FileName: "movie.mkv",
		FilePath: filepath.Join("/media/no_cat", "movie.mkv"),
	})
	p := m.UpdatePendingFolder(1, "Movies", "/media/Movies")
	if p == nil {
		t.Fatal("UpdatePendingFolder returned nil with a pending download")
	}
	if p.FolderName != "Movies" || p.FolderPath != "/media/Movies" {
		t.Errorf("folder not updated: %+v", p)
	}
	if want := filepath.Join("/media/Movies", "movie.mkv"); p.FilePath != want {
		t.Errorf("FilePath = %q, want %q", p.FilePath, want)
	}
}

func TestUpdatePendingFolderLeavesUnknownFilePath(t *testing.T) {
	m := NewManager()
	m.SetPending(1, &PendingDownload{Kind: SourceURL, URL: "http://example.com/a.mkv"})

	p := m.UpdatePendingFolder(1, "Movies", "/media/Movies")
	if p == nil {
		t.Fatal("UpdatePendingFolder returned nil")
	}
	if p.FilePath != "" {
		t.Errorf("FilePath = %q, want empty until the transfer discovers the name", p.FilePath)
	}
}

func TestClearPending(t *testing.T) {
	m := NewManager()
	m.SetPending(1, &PendingDownload{URL: "http://example.com"})
	m.ClearPending(1)

	if p := m.Get(1).Pending; p != nil {
		t.Errorf("Pending = %+v after ClearPending, want nil", p)
	}
}
