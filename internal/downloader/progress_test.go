package downloader

import (
	"strings"
	"testing"
	"time"

	"github.com/strem2jelly/telegram-media-bridge/internal/testutils"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent int
		filled  int
	}{
		{0, 0},
		{25, 5},
		{50, 10},
		{99, 20},
		{100, 20},
		{-5, 0},
		{150, 20},
	}

	for _, tt := range tests {
		bar := ProgressBar(tt.percent)
		filled := strings.Count(bar, "█")
		empty := strings.Count(bar, "░")
		if filled != tt.filled {
			t.Errorf("ProgressBar(%d): filled = %d, want %d", tt.percent, filled, tt.filled)
		}
		if filled+empty != progressBarCells {
			t.Errorf("ProgressBar(%d): width = %d, want %d", tt.percent, filled+empty, progressBarCells)
		}
	}
}

func TestTrackerThrottlesEdits(t *testing.T) {
	bot := testutils.NewMockBot()
	tracker := newProgressTracker(bot, 1, 10, "Movies", 200, 2*time.Second)

	clock := time.Unix(1000, 0)
	tracker.now = func() time.Time { return clock }

	// First write edits immediately (lastEdit is the zero time).
	tracker.Write(make([]byte, 50))
	if len(bot.Edits) != 1 {
		t.Fatalf("edits after first write = %d, want 1", len(bot.Edits))
	}
	if !strings.Contains(bot.Edits[0].Text, "25%") {
		t.Errorf("first edit text = %q, want 25%%", bot.Edits[0].Text)
	}

	// More progress inside the throttle window is suppressed.
	tracker.Write(make([]byte, 50))
	if len(bot.Edits) != 1 {
		t.Errorf("edits inside throttle window = %d, want 1", len(bot.Edits))
	}

	// After the interval elapses and the percent changed, an edit goes out.
	clock = clock.Add(3 * time.Second)
	tracker.Write(make([]byte, 50))
	if len(bot.Edits) != 2 {
		t.Fatalf("edits after interval = %d, want 2", len(bot.Edits))
	}
	if !strings.Contains(bot.Edits[1].Text, "75%") {
		t.Errorf("second edit text = %q, want 75%%", bot.Edits[1].Text)
	}

	// Interval elapsed but percent unchanged: still suppressed.
	clock = clock.Add(3 * time.Second)
	tracker.Write(nil)
	if len(bot.Edits) != 2 {
		t.Errorf("edits with unchanged percent = %d, want 2", len(bot.Edits))
	}
}

func TestTrackerFinishForcesFinalEdit(t *testing.T) {
	bot := testutils.NewMockBot()
	tracker := newProgressTracker(bot, 1, 10, "Movies", 100, time.Hour)

	clock := time.Unix(1000, 0)
	tracker.now = func() time.Time { return clock }

	tracker.Write(make([]byte, 40))
	tracker.Finish()

	last := bot.Edits[len(bot.Edits)-1]
	if !strings.Contains(last.Text, "100%") {
		t.Errorf("final edit = %q, want 100%%", last.Text)
	}
	if !strings.Contains(last.Text, strings.Repeat("█", progressBarCells)) {
		t.Errorf("final edit bar not full: %q", last.Text)
	}
}

func TestTrackerUnknownTotal(t *testing.T) {
	bot := testutils.NewMockBot()
	tracker := newProgressTracker(bot, 1, 10, "Movies", 0, time.Hour)
	tracker.now = func() time.Time { return time.Unix(1000, 0) }

	tracker.Write(make([]byte, 4096))
	tracker.Finish()

	last := bot.Edits[len(bot.Edits)-1]
	if !strings.Contains(last.Text, "100%") {
		t.Errorf("final edit with unknown total = %q, want 100%%", last.Text)
	}
}
