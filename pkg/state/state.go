// Package state holds the popup state and notifies subscribers after every
// update.
package state

import (
	"sync"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/ordering"
)

// State is the current registry copy plus the ephemeral view state.
// AccountMap and TagMap are derived from Accounts and Tags.
type State struct {
	Accounts   []account.Account
	AccountMap map[string]account.Account
	Tags       []account.Tag
	TagMap     map[string]account.Tag
	TagOrders  ordering.Orders

	FilterTagID string
	Filter      string
	ActiveKey   string
	Theme       string
}

// Patch updates a subset of the state fields.
type Patch func(*State)

// Accounts replaces the account list and rebuilds its lookup map.
func Accounts(accounts []account.Account) Patch {
	return func(s *State) {
		s.Accounts = accounts
		s.AccountMap = account.IndexAccounts(accounts)
	}
}

// Tags replaces the tag list and rebuilds its lookup map.
func Tags(tags []account.Tag) Patch {
	return func(s *State) {
		s.Tags = tags
		s.TagMap = account.IndexTags(tags)
	}
}

// TagOrders replaces the ordering table.
func TagOrders(o ordering.Orders) Patch {
	return func(s *State) { s.TagOrders = o }
}

// FilterTag selects the tag filter.
func FilterTag(id string) Patch {
	return func(s *State) { s.FilterTagID = id }
}

// Filter sets the free-text search.
func Filter(text string) Patch {
	return func(s *State) { s.Filter = text }
}

// ActiveKey records the credential behind the live session.
func ActiveKey(key string) Patch {
	return func(s *State) { s.ActiveKey = key }
}

// Theme records the color theme.
func Theme(theme string) Patch {
	return func(s *State) { s.Theme = theme }
}

// Listener receives the state after each update.
type Listener func(State)

// Store is a publish/subscribe state container. Updates are applied in order
// and each one notifies every listener synchronously, in registration order.
type Store struct {
	mu        sync.Mutex
	state     State
	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

// New creates a store seeded with initial. Derived maps are rebuilt from the
// initial lists.
func New(initial State) *Store {
	Accounts(initial.Accounts)(&initial)
	Tags(initial.Tags)(&initial)
	return &Store{state: initial}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetState applies patches to a copy of the current state, installs it, and
// notifies listeners. Fields not touched by a patch keep their value.
func (s *Store) SetState(patches ...Patch) {
	s.Update(func(State) []Patch { return patches })
}

// Update computes patches from the current state and applies them as SetState
// does.
func (s *Store) Update(fn func(State) []Patch) {
	s.mu.Lock()
	next := s.state
	for _, p := range fn(next) {
		p(&next)
	}
	s.state = next
	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.fn
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: l})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
