// Package mcp provides the Model Context Protocol server integration for the
// account switcher.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/app"
	"tableflip.dev/switcher/pkg/detect"
	"tableflip.dev/switcher/pkg/ordering"
	"tableflip.dev/switcher/pkg/state"
	"tableflip.dev/switcher/pkg/timeutil"
	"tableflip.dev/switcher/pkg/view"
)

// Service adapts the app service for MCP clients. Credentials never leave the
// process; accounts are identified by name or key prefix.
type Service struct {
	App *app.Service
	Now func() time.Time
}

// AccountDTO is a transport-friendly projection of an account.
type AccountDTO struct {
	Name        string   `json:"name"`
	Key         string   `json:"key"`
	Plan        string   `json:"plan,omitempty"`
	Badge       string   `json:"badge,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Active      bool     `json:"active"`
	Limited     bool     `json:"limited"`
	AvailableAt string   `json:"availableAt,omitempty"`
	AvailableIn string   `json:"availableIn,omitempty"`
}

// TagDTO describes a tag and how many accounts carry it.
type TagDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Accounts int    `json:"accounts"`
}

// LimitOptions captures how a reset time is given. At most one of In and At
// is set; neither means the default window.
type LimitOptions struct {
	Account string
	In      string
	At      string
	Clear   bool
}

// NewService builds a service wrapper around svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("account service is not configured")
	}
	return nil
}

// ListAccounts returns the accounts in view order for the tag view and name
// filter. An empty tag means all accounts.
func (s *Service) ListAccounts(_ context.Context, tag, filter string) ([]AccountDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	id := ordering.All
	if strings.TrimSpace(tag) != "" {
		var err error
		if id, _, err = s.App.ResolveTag(tag); err != nil {
			return nil, err
		}
	}
	st := s.App.State()
	accounts := view.Derive(st.Accounts, filter, id, st.TagOrders)
	return s.toDTOs(st, accounts), nil
}

// ActiveAccount returns the account behind the live session.
func (s *Service) ActiveAccount(ctx context.Context) (AccountDTO, error) {
	if err := s.ready(); err != nil {
		return AccountDTO{}, err
	}
	key, err := s.App.ActiveKey(ctx)
	if err != nil {
		return AccountDTO{}, err
	}
	if key == "" {
		return AccountDTO{}, app.ErrNotLoggedIn
	}
	st := s.App.State()
	a, ok := st.AccountMap[key]
	if !ok {
		return AccountDTO{}, fmt.Errorf("%w: the live session is not a saved account", app.ErrAccountNotFound)
	}
	return s.toDTO(st, a), nil
}

// Account looks up a single account.
func (s *Service) Account(_ context.Context, query string) (AccountDTO, error) {
	if err := s.ready(); err != nil {
		return AccountDTO{}, err
	}
	a, err := s.App.Resolve(query)
	if err != nil {
		return AccountDTO{}, err
	}
	return s.toDTO(s.App.State(), a), nil
}

// SwitchAccount signs in as the matching account.
func (s *Service) SwitchAccount(ctx context.Context, query string) (AccountDTO, error) {
	if err := s.ready(); err != nil {
		return AccountDTO{}, err
	}
	a, err := s.App.Resolve(query)
	if err != nil {
		return AccountDTO{}, err
	}
	if err := s.App.Switch(ctx, a.Key); err != nil {
		return AccountDTO{}, err
	}
	return s.toDTO(s.App.State(), a), nil
}

// ListTags returns every tag with its account count.
func (s *Service) ListTags(_ context.Context) ([]TagDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	st := s.App.State()
	out := make([]TagDTO, 0, len(st.Tags))
	for _, t := range st.Tags {
		n := 0
		for _, a := range st.Accounts {
			if a.HasTag(t.ID) {
				n++
			}
		}
		out = append(out, TagDTO{ID: t.ID, Name: t.Name, Color: t.Color, Accounts: n})
	}
	return out, nil
}

// SetLimit records or clears the reset time of an account.
func (s *Service) SetLimit(ctx context.Context, opts LimitOptions) (AccountDTO, error) {
	if err := s.ready(); err != nil {
		return AccountDTO{}, err
	}
	a, err := s.App.Resolve(opts.Account)
	if err != nil {
		return AccountDTO{}, err
	}
	in, at := strings.TrimSpace(opts.In), strings.TrimSpace(opts.At)
	if in != "" && at != "" {
		return AccountDTO{}, errors.New("use one of in or at")
	}

	now := s.now()
	var until time.Time
	switch {
	case opts.Clear:
	case at != "":
		if until, err = detect.ResolveReset(at, now); err != nil {
			return AccountDTO{}, err
		}
	default:
		d, _, err := timeutil.ParseWindow(in)
		if err != nil {
			return AccountDTO{}, err
		}
		until = now.Add(d)
	}
	if err := s.App.SetAvailableAt(ctx, a.Key, until); err != nil {
		return AccountDTO{}, err
	}
	st := s.App.State()
	return s.toDTO(st, st.AccountMap[a.Key]), nil
}

func (s *Service) toDTOs(st state.State, accounts []account.Account) []AccountDTO {
	out := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, s.toDTO(st, a))
	}
	return out
}

func (s *Service) toDTO(st state.State, a account.Account) AccountDTO {
	now := s.now()
	dto := AccountDTO{
		Name:    a.Name,
		Key:     a.MaskedKey(),
		Plan:    a.Plan,
		Badge:   string(a.PlanBadge()),
		Active:  a.Key != "" && a.Key == st.ActiveKey,
		Limited: a.Limited(now),
	}
	for _, id := range a.TagIDs {
		if t, ok := st.TagMap[id]; ok {
			dto.Tags = append(dto.Tags, t.Name)
		}
	}
	if dto.Limited {
		at := a.AvailableTime()
		dto.AvailableAt = at.Format(time.RFC3339)
		dto.AvailableIn = timeutil.Until(now, at)
	}
	return dto
}
