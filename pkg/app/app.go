// Package app holds the command handlers shared by the CLI, the interactive
// list and the MCP server. Every mutation persists first and publishes to the
// state store only after the write succeeded.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/ordering"
	"tableflip.dev/switcher/pkg/session"
	"tableflip.dev/switcher/pkg/state"
	"tableflip.dev/switcher/pkg/store"
	"tableflip.dev/switcher/pkg/view"
)

// DefaultDebounce is the tolerance under which a detected reset time is
// considered the same as the stored one.
const DefaultDebounce = 60 * time.Second

var (
	ErrNoPersistence   = errors.New("app: no persistence configured")
	ErrNoSession       = errors.New("app: no session configured")
	ErrAccountExists   = errors.New("app: account already exists")
	ErrTagExists       = errors.New("app: tag already exists")
	ErrNameRequired    = errors.New("app: name is required")
	ErrKeyRequired     = errors.New("app: key is required")
	ErrNotLoggedIn     = errors.New("app: not logged in")
	ErrAccountNotFound = errors.New("app: account not found")
	ErrTagNotFound     = errors.New("app: tag not found")
	ErrAmbiguous       = errors.New("app: query matches more than one entry")
	ErrNoProfile       = errors.New("app: no name or plan found on the page")
)

// Service provides the account switcher operations.
type Service struct {
	Persistence store.Persistence
	Session     session.Session
	Opener      session.Opener
	// Store receives every committed change. One is created on first use
	// when nil.
	Store *state.Store
	Log   *log.Logger

	// URL is the service's base URL used for navigation after switching.
	URL      string
	Debounce time.Duration
	Now      func() time.Time

	once sync.Once
	mu   sync.Mutex
	memo *view.Memo
}

func (s *Service) init() {
	s.once.Do(func() {
		if s.Store == nil {
			s.Store = state.New(state.State{})
		}
		if s.Log == nil {
			s.Log = log.New(io.Discard)
		}
		if s.Debounce <= 0 {
			s.Debounce = DefaultDebounce
		}
		if s.Now == nil {
			s.Now = time.Now
		}
		s.memo = view.NewMemo(nil)
	})
}

// State returns the current in-memory state.
func (s *Service) State() state.State {
	s.init()
	return s.Store.State()
}

// Subscribe registers l for every committed change.
func (s *Service) Subscribe(l state.Listener) func() {
	s.init()
	return s.Store.Subscribe(l)
}

// Visible returns the accounts shown for the current filters, in view order.
// Repeated calls without an intervening change return the same slice.
func (s *Service) Visible() []account.Account {
	st := s.State()
	return s.memo.Derive(st.Accounts, st.Filter, st.FilterTagID, st.TagOrders)
}

// Load reads the persisted records into the state store, repairing the
// ordering table when accounts are missing from it.
func (s *Service) Load(ctx context.Context) error {
	s.init()
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Persistence.Load(ctx)
	if err != nil {
		return fmt.Errorf("app: load: %w", err)
	}
	orders, changed := ordering.Resync(snap.Accounts, snap.TagOrders)
	if changed {
		s.Log.Debug("repaired tag orders", "accounts", len(snap.Accounts))
		if err := s.Persistence.Save(ctx, store.TagOrders(orders)); err != nil {
			return fmt.Errorf("app: save: %w", err)
		}
	}

	active := snap.LastActiveKey
	if s.Session != nil {
		key, err := s.Session.ActiveKey(ctx)
		if err != nil {
			s.Log.Warn("could not read active session", "err", err)
		} else {
			active = key
		}
	}

	s.Store.SetState(
		state.Accounts(snap.Accounts),
		state.Tags(snap.Tags),
		state.TagOrders(orders),
		state.FilterTag(snap.FilterTagID),
		state.Theme(snap.Theme),
		state.ActiveKey(active),
	)
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Follow reloads the state whenever the stored records change, including
// changes made by other processes, until ctx is done. Reload failures are
// logged and do not stop it.
func (s *Service) Follow(ctx context.Context) error {
	s.init()
	events, err := s.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.Log.Debug("records changed", "type", ev.Type, "key", ev.Key)
			if err := s.Load(ctx); err != nil {
				s.Log.Warn("reload failed", "err", err)
			}
		}
	}
}

// commit writes records and, once they are stored, applies patches.
// Callers hold s.mu.
func (s *Service) commit(ctx context.Context, records []store.Record, patches ...state.Patch) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	if err := s.Persistence.Save(ctx, records...); err != nil {
		return fmt.Errorf("app: save: %w", err)
	}
	s.Store.SetState(patches...)
	return nil
}

// SetFilter sets the free-text search. It is not persisted.
func (s *Service) SetFilter(text string) {
	s.init()
	s.Store.SetState(state.Filter(text))
}

// SetFilterTag selects the tag filter and remembers it.
func (s *Service) SetFilterTag(ctx context.Context, id string) error {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()

	switch id {
	case "", ordering.All, ordering.Untagged:
	default:
		if _, ok := s.Store.State().TagMap[id]; !ok {
			return fmt.Errorf("%w: %s", ErrTagNotFound, id)
		}
	}
	return s.commit(ctx, []store.Record{store.FilterTag(id)}, state.FilterTag(id))
}

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// SetTheme persists the display theme. Empty follows the terminal.
func (s *Service) SetTheme(ctx context.Context, theme string) error {
	s.init()
	switch theme {
	case "", ThemeDark, ThemeLight:
	default:
		return account.ValidationError{Field: "theme", Message: "must be dark or light"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, []store.Record{store.Theme(theme)}, state.Theme(theme))
}

// ToggleTheme flips between dark and light and returns the new theme.
func (s *Service) ToggleTheme(ctx context.Context) (string, error) {
	next := ThemeDark
	if s.State().Theme == ThemeDark {
		next = ThemeLight
	}
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
