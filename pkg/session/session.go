// Package session is the boundary to the browser session credential: the
// cookie whose value is an account key.
package session

import (
	"context"
	"strings"
)

const (
	DefaultURL        = "https://claude.ai"
	DefaultCookieName = "sessionKey"
	DefaultDomain     = ".claude.ai"
)

// Session reads and replaces the active credential.
type Session interface {
	// ActiveKey returns the key of the signed-in account, or "" when signed out.
	ActiveKey(ctx context.Context) (string, error)
	// Activate makes key the session credential.
	Activate(ctx context.Context, key string) error
	// Deactivate removes the session credential.
	Deactivate(ctx context.Context) error
}

// ChatsURL is where the browser goes after a switch.
func ChatsURL(base string) string {
	return join(base, "chats")
}

// LoginURL is where the browser goes after a logout.
func LoginURL(base string) string {
	return join(base, "login")
}

func join(base, path string) string {
	if base == "" {
		base = DefaultURL
	}
	return strings.TrimRight(base, "/") + "/" + path
}
