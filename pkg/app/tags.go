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
)

// AddTag creates a tag. An empty color picks the default gray.
func (s *Service) AddTag(ctx context.Context, name, color string) (account.Tag, error) {
	s.init()
	name = strings.TrimSpace(name)
	if name == "" {
		return account.Tag{}, ErrNameRequired
	}
	if color == "" {
		color = account.DefaultTagColor
	}
	t := account.Tag{ID: account.NewTagID(), Name: name, Color: color}
	if err := account.ValidateTag(t); err != nil {
		return account.Tag{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()
	if tagNamed(st.Tags, name, "") {
		return account.Tag{}, fmt.Errorf("%w: %s", ErrTagExists, name)
	}

	tags := append(slices.Clone(st.Tags), t)
	if err := s.commit(ctx, []store.Record{store.Tags(tags)}, state.Tags(tags)); err != nil {
		return account.Tag{}, err
	}
	s.Log.Info("tag added", "name", t.Name, "id", t.ID)
	return t, nil
}

// EditTag renames or recolors a tag. Empty arguments keep the current value.
// Unknown ids are a no-op.
func (s *Service) EditTag(ctx context.Context, id, name, color string) (account.Tag, error) {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()

	idx := slices.IndexFunc(st.Tags, func(t account.Tag) bool { return t.ID == id })
	if idx < 0 {
		return account.Tag{}, nil
	}
	t := st.Tags[idx]
	if name = strings.TrimSpace(name); name != "" {
		if tagNamed(st.Tags, name, id) {
			return account.Tag{}, fmt.Errorf("%w: %s", ErrTagExists, name)
		}
		t.Name = name
	}
	if color != "" {
		t.Color = color
	}
	if err := account.ValidateTag(t); err != nil {
		return account.Tag{}, err
	}

	tags := slices.Clone(st.Tags)
	tags[idx] = t
	if err := s.commit(ctx, []store.Record{store.Tags(tags)}, state.Tags(tags)); err != nil {
		return account.Tag{}, err
	}
	return t, nil
}

// DeleteTag removes a tag from the registry, from every account carrying it,
// and drops its view order. A filter on the tag falls back to all accounts.
func (s *Service) DeleteTag(ctx context.Context, id string) error {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()

	idx := slices.IndexFunc(st.Tags, func(t account.Tag) bool { return t.ID == id })
	if idx < 0 {
		return nil
	}
	tags := slices.Delete(slices.Clone(st.Tags), idx, idx+1)

	accounts := cloneAccounts(st.Accounts)
	orders := st.TagOrders
	for i := range accounts {
		a := &accounts[i]
		if !a.HasTag(id) {
			continue
		}
		old := a.TagIDs
		a.TagIDs = slices.DeleteFunc(slices.Clone(old), func(t string) bool { return t == id })
		// An account losing its last tag joins the untagged view.
		orders = ordering.UpdateOnTagChange(orders, a.Key, old, a.TagIDs)
	}
	orders = ordering.RemoveTag(orders, id)

	records := []store.Record{store.Tags(tags), store.Accounts(accounts), store.TagOrders(orders)}
	patches := []state.Patch{state.Tags(tags), state.Accounts(accounts), state.TagOrders(orders)}
	if st.FilterTagID == id {
		records = append(records, store.FilterTag(ordering.All))
		patches = append(patches, state.FilterTag(ordering.All))
	}
	if err := s.commit(ctx, records, patches...); err != nil {
		return err
	}
	s.Log.Info("tag deleted", "name", st.Tags[idx].Name)
	return nil
}

func tagNamed(tags []account.Tag, name, except string) bool {
	return slices.ContainsFunc(tags, func(t account.Tag) bool {
		return t.Name == name && t.ID != except
	})
}
