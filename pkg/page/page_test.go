package page

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/switcher/pkg/detect"
)

const banner = `<!doctype html>
<html><head><title>until 1 PM</title><script>var s = "until 2 PM";</script></head>
<body>
  <div class="chat">Hello there, nothing to see</div>
  <chat-footer>
    <template shadowrootmode="open">
      <div class="notice">Usage limit reached ∙ Resets 11:00 PM</div>
    </template>
    <span>footer</span>
  </chat-footer>
</body></html>`

func TestParseFindsShadowBanner(t *testing.T) {
	root, err := Parse(strings.NewReader(banner))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, ok := detect.NewScanner().Scan(root)
	if !ok {
		t.Fatalf("expected banner inside shadow root")
	}
	if m.Token != "11:00 PM" {
		t.Fatalf("head and script text must be ignored, got %q", m.Token)
	}
}

func TestParsePrefersLightDOMText(t *testing.T) {
	doc := `<html><body>
<x-banner><template shadowrootmode="open"><p>Resets 9:00 PM</p></template></x-banner>
<p>Your limit resets soon, available again until 6 PM</p>
</body></html>`
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, ok := detect.NewScanner().Scan(root)
	if !ok || m.Token != "6 PM" {
		t.Fatalf("expected light DOM banner, got %q %v", m.Token, ok)
	}
}

func TestParseSkipsHiddenElements(t *testing.T) {
	doc := `<html><body><div hidden>limit until 3 PM</div><template><p>until 4 PM</p></template></body></html>`
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m, ok := detect.NewScanner().Scan(root); ok {
		t.Fatalf("hidden text matched: %q", m.Token)
	}
}

func TestReadProfile(t *testing.T) {
	doc := `<html><body>
<div class="truncate">Recent chat</div>
<button><div class="text-sm truncate">Ada Lovelace</div><div class="truncate text-xs">Pro plan</div></button>
</body></html>`
	p, err := ReadProfile(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("read profile: %v", err)
	}
	if p.Name != "Ada Lovelace" || p.Plan != "Pro plan" {
		t.Fatalf("unexpected profile: %#v", p)
	}

	p, err = ReadProfile(strings.NewReader(`<div class="truncate">only one</div>`))
	if err != nil || !p.Empty() {
		t.Fatalf("expected empty profile, got %#v %v", p, err)
	}
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := Watch(ctx, path, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.html"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte(banner), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestWatchUsesGivenLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")

	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := Watch(ctx, path, log.New(&buf))
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			for range ch {
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
	if buf.Len() != 0 {
		t.Fatalf("clean shutdown logged %q", buf.String())
	}

	if _, err := Watch(context.Background(), filepath.Join(dir, "missing", "page.html"), log.New(&buf)); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
