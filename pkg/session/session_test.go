package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCookieSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	jar := filepath.Join(t.TempDir(), "cookies.json")
	s := NewCookieSession(CookieOptions{Jar: jar})

	key, err := s.ActiveKey(ctx)
	if err != nil || key != "" {
		t.Fatalf("expected signed out, got %q %v", key, err)
	}

	if err := s.Activate(ctx, "sk-ant-first-0001"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := s.Activate(ctx, "sk-ant-second-0002"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	key, err = s.ActiveKey(ctx)
	if err != nil {
		t.Fatalf("active key: %v", err)
	}
	if key != "sk-ant-second-0002" {
		t.Fatalf("expected second key, got %q", key)
	}

	data, err := os.ReadFile(jar)
	if err != nil {
		t.Fatalf("read jar: %v", err)
	}
	var got jarFile
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode jar: %v", err)
	}
	if len(got.Cookies) != 1 {
		t.Fatalf("expected a single session cookie, got %d", len(got.Cookies))
	}
	c := got.Cookies[0]
	if c.Domain != DefaultDomain || c.Path != "/" || !c.Secure || c.SameSite != "lax" {
		t.Fatalf("unexpected cookie attributes: %#v", c)
	}

	if err := s.Deactivate(ctx); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	key, err = s.ActiveKey(ctx)
	if err != nil || key != "" {
		t.Fatalf("expected signed out after deactivate, got %q %v", key, err)
	}
	if _, err := os.Stat(jar); !os.IsNotExist(err) {
		t.Fatalf("empty jar should be removed, stat err %v", err)
	}
}

func TestCookieSessionKeepsOtherCookies(t *testing.T) {
	ctx := context.Background()
	jar := filepath.Join(t.TempDir(), "cookies.json")
	seed := `{"cookies":[{"name":"lastActiveOrg","value":"org-1","domain":".claude.ai","path":"/"}]}`
	if err := os.WriteFile(jar, []byte(seed), 0o600); err != nil {
		t.Fatalf("seed jar: %v", err)
	}
	s := NewCookieSession(CookieOptions{Jar: jar})
	if err := s.Activate(ctx, "sk-ant-key-0001"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := s.Deactivate(ctx); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	data, err := os.ReadFile(jar)
	if err != nil {
		t.Fatalf("read jar: %v", err)
	}
	var got jarFile
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode jar: %v", err)
	}
	if len(got.Cookies) != 1 || got.Cookies[0].Name != "lastActiveOrg" {
		t.Fatalf("unrelated cookies must survive: %#v", got.Cookies)
	}
}

func TestCookieSessionUnescapesValue(t *testing.T) {
	ctx := context.Background()
	jar := filepath.Join(t.TempDir(), "cookies.json")
	seed := `[{"name":"sessionKey","value":"sk-ant%2Fkey%3D%3D","domain":".claude.ai","path":"/","secure":true}]`
	if err := os.WriteFile(jar, []byte(seed), 0o600); err != nil {
		t.Fatalf("seed jar: %v", err)
	}
	key, err := NewCookieSession(CookieOptions{Jar: jar}).ActiveKey(ctx)
	if err != nil {
		t.Fatalf("active key: %v", err)
	}
	if key != "sk-ant/key==" {
		t.Fatalf("expected decoded key, got %q", key)
	}
}

func TestCookieSessionIgnoresExpired(t *testing.T) {
	ctx := context.Background()
	jar := filepath.Join(t.TempDir(), "cookies.json")
	s := NewCookieSession(CookieOptions{
		Jar: jar,
		Now: func() time.Time { return time.Now().Add(-2 * Lifetime) },
	})
	if err := s.Activate(ctx, "sk-ant-old-0001"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	key, err := s.ActiveKey(ctx)
	if err != nil || key != "" {
		t.Fatalf("expired cookie must not count, got %q %v", key, err)
	}
}

func TestURLs(t *testing.T) {
	if got := ChatsURL(""); got != "https://claude.ai/chats" {
		t.Fatalf("chats url %q", got)
	}
	if got := LoginURL("https://example.test/"); got != "https://example.test/login" {
		t.Fatalf("login url %q", got)
	}
}
