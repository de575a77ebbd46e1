package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/ordering"
	"tableflip.dev/switcher/pkg/state"
	"tableflip.dev/switcher/pkg/store"
	"tableflip.dev/switcher/pkg/view"
)

// NewAccount describes an account to add.
type NewAccount struct {
	Name   string
	Key    string
	Plan   string
	TagIDs []string
}

// AccountEdit lists the fields to change. Nil fields are left alone.
type AccountEdit struct {
	Name   *string
	Plan   *string
	TagIDs *[]string
}

// AddAccount registers a new account at the end of every view it belongs to.
// A key pasted with surrounding double quotes is unwrapped.
func (s *Service) AddAccount(ctx context.Context, in NewAccount) (account.Account, error) {
	s.init()
	name := strings.TrimSpace(in.Name)
	key := strings.TrimSpace(in.Key)
	if len(key) >= 2 && strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`) {
		key = key[1 : len(key)-1]
	}
	if name == "" {
		return account.Account{}, ErrNameRequired
	}
	if key == "" {
		return account.Account{}, ErrKeyRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()

	if _, ok := st.AccountMap[key]; ok {
		return account.Account{}, fmt.Errorf("%w: %s", ErrAccountExists, account.Account{Key: key}.MaskedKey())
	}
	tagIDs, err := knownTags(st, in.TagIDs)
	if err != nil {
		return account.Account{}, err
	}

	a := account.Account{Key: key, Name: name, Plan: strings.TrimSpace(in.Plan), TagIDs: tagIDs}
	accounts := append(slices.Clone(st.Accounts), a)
	orders := ordering.AddKey(st.TagOrders, key, tagIDs)

	err = s.commit(ctx,
		[]store.Record{store.Accounts(accounts), store.TagOrders(orders)},
		state.Accounts(accounts), state.TagOrders(orders),
	)
	if err != nil {
		return account.Account{}, err
	}
	s.Log.Info("account added", "name", a.Name, "key", a.MaskedKey())
	return a, nil
}

// EditAccount applies edit to the account with key. Unknown keys are a no-op.
func (s *Service) EditAccount(ctx context.Context, key string, edit AccountEdit) (account.Account, error) {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()

	idx := account.Find(st.Accounts, key)
	if idx < 0 {
		return account.Account{}, nil
	}
	accounts := cloneAccounts(st.Accounts)
	a := &accounts[idx]
	orders := st.TagOrders

	if edit.Name != nil {
		name := strings.TrimSpace(*edit.Name)
		if name == "" {
			return account.Account{}, ErrNameRequired
		}
		a.Name = name
	}
	if edit.Plan != nil {
		a.Plan = strings.TrimSpace(*edit.Plan)
	}
	if edit.TagIDs != nil {
		tagIDs, err := knownTags(st, *edit.TagIDs)
		if err != nil {
			return account.Account{}, err
		}
		orders = ordering.UpdateOnTagChange(orders, key, a.TagIDs, tagIDs)
		a.TagIDs = tagIDs
	}

	err := s.commit(ctx,
		[]store.Record{store.Accounts(accounts), store.TagOrders(orders)},
		state.Accounts(accounts), state.TagOrders(orders),
	)
	if err != nil {
		return account.Account{}, err
	}
	return *a, nil
}

// DeleteAccount removes the account and its key from every view. Unknown keys
// are a no-op.
func (s *Service) DeleteAccount(ctx context.Context, key string) error {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()

	idx := account.Find(st.Accounts, key)
	if idx < 0 {
		return nil
	}
	accounts := slices.Delete(slices.Clone(st.Accounts), idx, idx+1)
	orders := ordering.RemoveKey(st.TagOrders, key)

	err := s.commit(ctx,
		[]store.Record{store.Accounts(accounts), store.TagOrders(orders)},
		state.Accounts(accounts), state.TagOrders(orders),
	)
	if err != nil {
		return err
	}
	s.Log.Info("account deleted", "name", st.Accounts[idx].Name)
	return nil
}

// ClearAccounts removes every account. Tags are kept.
func (s *Service) ClearAccounts(ctx context.Context) error {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()

	orders := st.TagOrders
	for _, a := range st.Accounts {
		orders = ordering.RemoveKey(orders, a.Key)
	}
	accounts := []account.Account{}
	return s.commit(ctx,
		[]store.Record{store.Accounts(accounts), store.TagOrders(orders)},
		state.Accounts(accounts), state.TagOrders(orders),
	)
}

// Import merges the accounts in data and returns how many were added.
func (s *Service) Import(ctx context.Context, data []byte) (int, error) {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()

	accounts, added, err := account.Import(st.Accounts, data)
	if err != nil {
		return 0, err
	}
	if len(added) == 0 {
		return 0, nil
	}
	orders := st.TagOrders
	for _, a := range added {
		orders = ordering.AddKey(orders, a.Key, a.TagIDs)
	}
	err = s.commit(ctx,
		[]store.Record{store.Accounts(accounts), store.TagOrders(orders)},
		state.Accounts(accounts), state.TagOrders(orders),
	)
	if err != nil {
		return 0, err
	}
	s.Log.Info("accounts imported", "added", len(added))
	return len(added), nil
}

// Export renders every account as pretty-printed JSON.
func (s *Service) Export(_ context.Context) ([]byte, error) {
	return account.Export(s.State().Accounts)
}

// Move places key at position to within the current tag view. Only that
// view's order changes. Keys outside the view are a no-op.
func (s *Service) Move(ctx context.Context, key string, to int) error {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()

	inView := view.Derive(st.Accounts, "", st.FilterTagID, st.TagOrders)
	keys := account.Keys(inView)
	if !slices.Contains(keys, key) {
		return nil
	}
	orderKey := ordering.KeyFor(st.FilterTagID)
	orders := ordering.Reorder(ordering.Set(st.TagOrders, orderKey, keys), orderKey, key, to)

	return s.commit(ctx, []store.Record{store.TagOrders(orders)}, state.TagOrders(orders))
}

// knownTags rejects tag ids missing from the registry and drops repeats.
func knownTags(st state.State, ids []string) ([]string, error) {
	var out []string
	for _, id := range ids {
		if _, ok := st.TagMap[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrTagNotFound, id)
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out, nil
}

func cloneAccounts(accounts []account.Account) []account.Account {
	out := make([]account.Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.Clone()
	}
	return out
}
