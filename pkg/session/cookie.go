package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/steipete/sweetcookie"
)

// Lifetime is how long an activated credential stays valid.
const Lifetime = 30 * 24 * time.Hour

// CookieOptions configures a CookieSession.
type CookieOptions struct {
	URL    string
	Name   string
	Domain string

	// Jar is the cookie file written on Activate. It is always read first.
	Jar string
	// Browsers are consulted after the jar, in order.
	Browsers []sweetcookie.Browser

	Now func() time.Time
}

// CookieSession keeps the credential in a cookie jar file and falls back to
// the cookie stores of local browser profiles when reading.
type CookieSession struct {
	opts CookieOptions
}

var _ Session = (*CookieSession)(nil)

// NewCookieSession fills unset options with the service defaults.
func NewCookieSession(opts CookieOptions) *CookieSession {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Name == "" {
		opts.Name = DefaultCookieName
	}
	if opts.Domain == "" {
		opts.Domain = DefaultDomain
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &CookieSession{opts: opts}
}

func (s *CookieSession) ActiveKey(ctx context.Context) (string, error) {
	opts := sweetcookie.Options{
		URL:      s.opts.URL,
		Names:    []string{s.opts.Name},
		Browsers: s.opts.Browsers,
		Mode:     sweetcookie.ModeFirst,
	}
	if len(opts.Browsers) == 0 {
		opts.Browsers = []sweetcookie.Browser{sweetcookie.BrowserInline}
	}
	if s.opts.Jar != "" {
		if _, err := os.Stat(s.opts.Jar); err == nil {
			opts.Inline = sweetcookie.InlineCookies{File: s.opts.Jar}
		}
	}

	res, err := sweetcookie.Get(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("session: read cookie: %w", err)
	}
	for _, c := range res.Cookies {
		if c.Name != s.opts.Name || c.Value == "" {
			continue
		}
		if v, err := url.QueryUnescape(c.Value); err == nil {
			return v, nil
		}
		return c.Value, nil
	}
	return "", nil
}

func (s *CookieSession) Activate(_ context.Context, key string) error {
	if key == "" {
		return errors.New("session: empty key")
	}
	jar, err := s.readJar()
	if err != nil {
		return err
	}
	jar.Cookies = s.without(jar.Cookies)
	jar.Cookies = append(jar.Cookies, jarCookie{
		Name:     s.opts.Name,
		Value:    key,
		Domain:   s.opts.Domain,
		Path:     "/",
		Secure:   true,
		SameSite: "lax",
		Expires:  s.opts.Now().Add(Lifetime).Unix(),
	})
	return s.writeJar(jar)
}

func (s *CookieSession) Deactivate(_ context.Context) error {
	jar, err := s.readJar()
	if err != nil {
		return err
	}
	jar.Cookies = s.without(jar.Cookies)
	return s.writeJar(jar)
}

// jarFile is the inline cookie payload format understood by sweetcookie.
type jarFile struct {
	Cookies []jarCookie `json:"cookies"`
}

type jarCookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`
	Secure   bool   `json:"secure"`
	HTTPOnly bool   `json:"httpOnly,omitempty"`
	SameSite string `json:"sameSite,omitempty"`
	Expires  int64  `json:"expires,omitempty"`
}

func (s *CookieSession) without(cookies []jarCookie) []jarCookie {
	out := cookies[:0]
	for _, c := range cookies {
		if c.Name == s.opts.Name && c.Domain == s.opts.Domain {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *CookieSession) readJar() (jarFile, error) {
	var jar jarFile
	if s.opts.Jar == "" {
		return jar, errors.New("session: cookie jar path not configured")
	}
	data, err := os.ReadFile(s.opts.Jar)
	if errors.Is(err, os.ErrNotExist) {
		return jar, nil
	}
	if err != nil {
		return jar, fmt.Errorf("session: read jar: %w", err)
	}
	if len(data) == 0 {
		return jar, nil
	}
	if err := json.Unmarshal(data, &jar); err != nil {
		return jar, fmt.Errorf("session: decode jar %s: %w", s.opts.Jar, err)
	}
	return jar, nil
}

func (s *CookieSession) writeJar(jar jarFile) error {
	if len(jar.Cookies) == 0 {
		if err := os.Remove(s.opts.Jar); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("session: remove jar: %w", err)
		}
		return nil
	}
	data, err := json.MarshalIndent(jar, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.opts.Jar), 0o700); err != nil {
		return fmt.Errorf("session: ensure jar dir: %w", err)
	}
	tmp := s.opts.Jar + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write jar: %w", err)
	}
	return os.Rename(tmp, s.opts.Jar)
}
