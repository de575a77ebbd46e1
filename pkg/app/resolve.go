package app

import (
	"fmt"
	"strings"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/ordering"
)

// Resolve finds the account a user means by query: an exact key, an exact
// name (ignoring case), or a unique prefix of either.
func (s *Service) Resolve(query string) (account.Account, error) {
	accounts := s.State().Accounts
	q := strings.TrimSpace(query)
	if q == "" {
		return account.Account{}, ErrAccountNotFound
	}
	for _, a := range accounts {
		if a.Key == q {
			return a, nil
		}
	}
	if m, err := unique(accounts, func(a account.Account) bool { return strings.EqualFold(a.Name, q) }); m != nil || err != nil {
		return deref(m), err
	}
	lower := strings.ToLower(q)
	m, err := unique(accounts, func(a account.Account) bool {
		return strings.HasPrefix(a.Key, q) || strings.HasPrefix(strings.ToLower(a.Name), lower)
	})
	if err != nil {
		return account.Account{}, err
	}
	if m == nil {
		return account.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, q)
	}
	return *m, nil
}

func unique(accounts []account.Account, match func(account.Account) bool) (*account.Account, error) {
	var found *account.Account
	for i := range accounts {
		if !match(accounts[i]) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %q and %q", ErrAmbiguous, found.Name, accounts[i].Name)
		}
		found = &accounts[i]
	}
	return found, nil
}

func deref(a *account.Account) account.Account {
	if a == nil {
		return account.Account{}
	}
	return *a
}

// ResolveTag finds a tag by id or by name, ignoring case. The reserved view
// names "all" and "untagged" resolve to themselves with an empty tag.
func (s *Service) ResolveTag(query string) (string, account.Tag, error) {
	q := strings.TrimSpace(query)
	switch strings.ToLower(q) {
	case "", ordering.All:
		return ordering.All, account.Tag{}, nil
	case ordering.Untagged:
		return ordering.Untagged, account.Tag{}, nil
	}
	st := s.State()
	if t, ok := st.TagMap[q]; ok {
		return t.ID, t, nil
	}
	for _, t := range st.Tags {
		if strings.EqualFold(t.Name, q) {
			return t.ID, t, nil
		}
	}
	return "", account.Tag{}, fmt.Errorf("%w: %s", ErrTagNotFound, q)
}
