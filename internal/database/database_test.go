package database

import (
	"context"
	"testing"

	tmbconfig "github.com/strem2jelly/telegram-media-bridge/internal/config"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db := NewDatabase()
	if err := db.Init(&tmbconfig.Config{MediaPath: t.TempDir()}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return db
}

func TestRecordDownloadAndHistory(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	files := []string{"first.mkv", "second.mkv", "third.mkv"}
	for _, name := range files {
		if err := db.RecordDownload(ctx, 100, "admin", name, "/media/Movies/"+name); err != nil {
			t.Fatalf("RecordDownload(%s) failed: %v", name, err)
		}
	}

	records, err := db.History(ctx, 100, 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(records) != len(files) {
		t.Fatalf("history length = %d, want %d", len(records), len(files))
	}
	for _, record := range records {
		if record.FilePath == "" {
			t.Errorf("record %q has no file path", record.FileName)
		}
	}
}

func TestHistoryLimit(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := db.RecordDownload(ctx, 100, "admin", "file.mkv", "/media/file.mkv"); err != nil {
			t.Fatalf("RecordDownload failed: %v", err)
		}
	}

	records, err := db.History(ctx, 100, 3)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("history length = %d, want 3", len(records))
	}
}

func TestHistoryUnknownUser(t *testing.T) {
	db := newTestDatabase(t)

	records, err := db.History(context.Background(), 999, 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("history for unknown user = %d records, want 0", len(records))
	}
}

func TestRecordDownloadReusesUser(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	if err := db.RecordDownload(ctx, 100, "admin", "a.mkv", "/media/a.mkv"); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordDownload(ctx, 100, "renamed", "b.mkv", "/media/b.mkv"); err != nil {
		t.Fatal(err)
	}

	var count int64
	if result := db.db.Model(&User{}).Count(&count); result.Error != nil {
		t.Fatal(result.Error)
	}
	if count != 1 {
		t.Errorf("user rows = %d, want 1", count)
	}
}
