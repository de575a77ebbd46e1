// Package account defines the account and tag records held by the registry,
// their validation rules, and the JSON import/export format.
package account

import (
	"strings"
	"time"
)

// MinKeyLength is the shortest credential accepted from an import file.
const MinKeyLength = 10

// Account is one stored credential for the service.
type Account struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	Plan   string   `json:"plan,omitempty"`
	TagIDs []string `json:"tagIds,omitempty"`
	// AvailableAt is the epoch-millis instant the account's quota resets; zero when unknown.
	AvailableAt int64 `json:"availableAt,omitempty"`
}

// Untagged reports whether the account carries no tags.
func (a Account) Untagged() bool {
	return len(a.TagIDs) == 0
}

// HasTag reports whether id is one of the account's tags.
func (a Account) HasTag(id string) bool {
	for _, t := range a.TagIDs {
		if t == id {
			return true
		}
	}
	return false
}

// AvailableTime returns AvailableAt as a time, or the zero time when unset.
func (a Account) AvailableTime() time.Time {
	if a.AvailableAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(a.AvailableAt)
}

// Limited reports whether the account is waiting on a quota reset at now.
func (a Account) Limited(now time.Time) bool {
	return a.AvailableAt != 0 && now.Before(a.AvailableTime())
}

// MaskedKey shortens the credential for display.
func (a Account) MaskedKey() string {
	if len(a.Key) <= 16 {
		return a.Key
	}
	return a.Key[:10] + "..." + a.Key[len(a.Key)-6:]
}

// Badge classifies the free-form plan text.
type Badge string

const (
	BadgeNone Badge = ""
	BadgePro  Badge = "Pro"
	BadgeTeam Badge = "Team"
	BadgeFree Badge = "Free"
)

// PlanBadge maps the plan text onto a badge. Pro wins over Team wins over Free.
func (a Account) PlanBadge() Badge {
	plan := strings.ToLower(a.Plan)
	switch {
	case plan == "":
		return BadgeNone
	case strings.Contains(plan, "pro"):
		return BadgePro
	case strings.Contains(plan, "team"):
		return BadgeTeam
	case strings.Contains(plan, "free"):
		return BadgeFree
	default:
		return BadgeNone
	}
}

// Clone returns a copy that shares no slices with a.
func (a Account) Clone() Account {
	if a.TagIDs != nil {
		a.TagIDs = append([]string(nil), a.TagIDs...)
	}
	return a
}

// Keys returns the account keys in registry order.
func Keys(accounts []Account) []string {
	keys := make([]string, len(accounts))
	for i, a := range accounts {
		keys[i] = a.Key
	}
	return keys
}

// IndexAccounts builds the key lookup for accounts. Later duplicates win.
func IndexAccounts(accounts []Account) map[string]Account {
	m := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		m[a.Key] = a
	}
	return m
}

// Find returns the position of key in accounts, or -1.
func Find(accounts []Account, key string) int {
	for i, a := range accounts {
		if a.Key == key {
			return i
		}
	}
	return -1
}
