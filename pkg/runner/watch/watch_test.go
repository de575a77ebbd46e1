package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

const limited = `<html><body>
  <main>Chat</main>
  <div role="alert">You are out of free messages until 5 PM</div>
</body></html>`

type marker struct {
	marks chan time.Time
}

func (m *marker) MarkLimited(_ context.Context, at time.Time) (bool, error) {
	m.marks <- at
	return true, nil
}

func TestWatchMarksLimitOnStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(limited), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &marker{marks: make(chan time.Time, 4)}
	w := &Watch{
		Page:     path,
		Marker:   m,
		Cooldown: 10 * time.Millisecond,
		Out:      io.Discard,
		Log:      log.New(io.Discard),
	}
	done := make(chan error, 1)
	go func() { done <- w.Do(ctx) }()

	select {
	case at := <-m.marks:
		if at.Hour() != 17 || at.Minute() != 0 {
			t.Fatalf("expected 5 PM reset, got %s", at)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("limit was not detected")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Do returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchRequiresPage(t *testing.T) {
	w := &Watch{Marker: &marker{}}
	if err := w.Do(context.Background()); err == nil {
		t.Fatal("expected error without a page")
	}
}
