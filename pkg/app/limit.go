package app

import (
	"context"
	"time"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/detect"
	"tableflip.dev/switcher/pkg/state"
	"tableflip.dev/switcher/pkg/store"
)

var _ detect.Marker = (*Service)(nil)

// MarkLimited records availableAt on the account last made active. The
// accounts are re-read from storage so that edits made by other processes
// are not lost. It reports false without writing when there is no such
// account or the stored time is within the debounce tolerance.
func (s *Service) MarkLimited(ctx context.Context, availableAt time.Time) (bool, error) {
	s.init()
	if s.Persistence == nil {
		return false, ErrNoPersistence
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Persistence.Load(ctx)
	if err != nil {
		return false, err
	}
	idx := account.Find(snap.Accounts, snap.LastActiveKey)
	if snap.LastActiveKey == "" || idx < 0 {
		return false, nil
	}
	a := snap.Accounts[idx]
	if a.AvailableAt != 0 {
		if diff := a.AvailableTime().Sub(availableAt).Abs(); diff < s.Debounce {
			return false, nil
		}
	}

	accounts := cloneAccounts(snap.Accounts)
	accounts[idx].AvailableAt = availableAt.UnixMilli()
	err = s.commit(ctx, []store.Record{store.Accounts(accounts)}, state.Accounts(accounts))
	if err != nil {
		return false, err
	}
	s.Log.Info("account limited", "name", a.Name, "until", availableAt.Format(time.Kitchen))
	return true, nil
}

// SetAvailableAt records a reset time by hand. A zero time clears it.
// Unknown keys are a no-op.
func (s *Service) SetAvailableAt(ctx context.Context, key string, at time.Time) error {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Store.State()

	idx := account.Find(st.Accounts, key)
	if idx < 0 {
		return nil
	}
	accounts := cloneAccounts(st.Accounts)
	if at.IsZero() {
		accounts[idx].AvailableAt = 0
	} else {
		accounts[idx].AvailableAt = at.UnixMilli()
	}
	return s.commit(ctx, []store.Record{store.Accounts(accounts)}, state.Accounts(accounts))
}

// Limited returns the accounts still waiting for their reset.
func (s *Service) Limited() []account.Account {
	now := s.now()
	var out []account.Account
	for _, a := range s.State().Accounts {
		if a.Limited(now) {
			out = append(out, a)
		}
	}
	return out
}

func (s *Service) now() time.Time {
	s.init()
	return s.Now()
}
