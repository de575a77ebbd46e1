package app

import (
	"context"
	"fmt"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/page"
	"tableflip.dev/switcher/pkg/session"
	"tableflip.dev/switcher/pkg/state"
	"tableflip.dev/switcher/pkg/store"
)

// ActiveKey reads the live session credential and publishes it.
func (s *Service) ActiveKey(ctx context.Context) (string, error) {
	s.init()
	if s.Session == nil {
		return "", ErrNoSession
	}
	key, err := s.Session.ActiveKey(ctx)
	if err != nil {
		return "", err
	}
	s.Store.SetState(state.ActiveKey(key))
	return key, nil
}

// Switch installs key as the session credential, remembers it for the limit
// detector, and sends the browser to the chat list.
func (s *Service) Switch(ctx context.Context, key string) error {
	s.init()
	if key == "" {
		return ErrKeyRequired
	}
	if s.Session == nil {
		return ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Session.Activate(ctx, key); err != nil {
		return fmt.Errorf("app: activate: %w", err)
	}
	err := s.commit(ctx, []store.Record{store.LastActiveKey(key)}, state.ActiveKey(key))
	if err != nil {
		return err
	}
	s.Log.Info("switched account", "key", account.Account{Key: key}.MaskedKey())
	s.open(ctx, session.ChatsURL(s.URL))
	return nil
}

// Logout removes the session credential and sends the browser to the login
// page.
func (s *Service) Logout(ctx context.Context) error {
	s.init()
	if s.Session == nil {
		return ErrNoSession
	}
	if err := s.Session.Deactivate(ctx); err != nil {
		return fmt.Errorf("app: deactivate: %w", err)
	}
	s.Store.SetState(state.ActiveKey(""))
	s.open(ctx, session.LoginURL(s.URL))
	return nil
}

func (s *Service) open(ctx context.Context, url string) {
	if s.Opener == nil {
		return
	}
	if err := s.Opener.Open(ctx, url); err != nil {
		s.Log.Warn("could not open browser", "url", url, "err", err)
	}
}

// Sync copies the name and plan shown on the page onto the account behind
// the live session.
func (s *Service) Sync(ctx context.Context, p page.Profile) (account.Account, error) {
	key, err := s.ActiveKey(ctx)
	if err != nil {
		return account.Account{}, err
	}
	if key == "" {
		return account.Account{}, ErrNotLoggedIn
	}
	if p.Empty() {
		return account.Account{}, ErrNoProfile
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()
	idx := account.Find(st.Accounts, key)
	if idx < 0 {
		return account.Account{}, ErrAccountNotFound
	}
	accounts := cloneAccounts(st.Accounts)
	a := &accounts[idx]
	if p.Name != "" {
		a.Name = p.Name
	}
	if p.Plan != "" {
		a.Plan = p.Plan
	}
	if err := s.commit(ctx, []store.Record{store.Accounts(accounts)}, state.Accounts(accounts)); err != nil {
		return account.Account{}, err
	}
	return *a, nil
}

// Capture returns the live credential with the page's name and plan, ready to
// be added.
func (s *Service) Capture(ctx context.Context, p page.Profile) (NewAccount, error) {
	key, err := s.ActiveKey(ctx)
	if err != nil {
		return NewAccount{}, err
	}
	if key == "" {
		return NewAccount{}, ErrNotLoggedIn
	}
	return NewAccount{Key: key, Name: p.Name, Plan: p.Plan}, nil
}
