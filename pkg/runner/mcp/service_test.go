package mcp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/app"
	"tableflip.dev/switcher/pkg/ordering"
	"tableflip.dev/switcher/pkg/store"
)

type memoryStore struct {
	mu   sync.Mutex
	snap store.Snapshot
}

func (m *memoryStore) Load(context.Context) (store.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, nil
}

func (m *memoryStore) Save(_ context.Context, records ...store.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		switch v := r.Value.(type) {
		case []account.Account:
			m.snap.Accounts = v
		case []account.Tag:
			m.snap.Tags = v
		case ordering.Orders:
			m.snap.TagOrders = v
		case string:
			switch r.Key {
			case store.KeyFilterTag:
				m.snap.FilterTagID = v
			case store.KeyTheme:
				m.snap.Theme = v
			case store.KeyLastActiveKey:
				m.snap.LastActiveKey = v
			}
		}
	}
	return nil
}

func (m *memoryStore) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

type memorySession struct {
	key string
}

func (s *memorySession) ActiveKey(context.Context) (string, error) { return s.key, nil }

func (s *memorySession) Activate(_ context.Context, key string) error {
	s.key = key
	return nil
}

func (s *memorySession) Deactivate(context.Context) error {
	s.key = ""
	return nil
}

var now = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *memorySession) {
	t.Helper()
	ctx := context.Background()
	sess := &memorySession{}
	a := &app.Service{
		Persistence: &memoryStore{},
		Session:     sess,
		Now:         func() time.Time { return now },
	}
	if err := a.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	work, err := a.AddTag(ctx, "work", "")
	if err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	for _, in := range []app.NewAccount{
		{Name: "Personal", Key: "sk-ant-personal-0001", Plan: "Free plan"},
		{Name: "Work", Key: "sk-ant-work-000000002", Plan: "Pro plan", TagIDs: []string{work.ID}},
	} {
		if _, err := a.AddAccount(ctx, in); err != nil {
			t.Fatalf("AddAccount failed: %v", err)
		}
	}
	svc := NewService(a)
	svc.Now = func() time.Time { return now }
	return svc, sess
}

func TestServiceListAccounts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	all, err := svc.ListAccounts(ctx, "", "")
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(all))
	}
	for _, a := range all {
		if !strings.Contains(a.Key, "...") {
			t.Fatalf("expected masked key, got %s", a.Key)
		}
	}

	work, err := svc.ListAccounts(ctx, "work", "")
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(work) != 1 || work[0].Name != "Work" || work[0].Badge != "Pro" {
		t.Fatalf("unexpected work view %+v", work)
	}
	if len(work[0].Tags) != 1 || work[0].Tags[0] != "work" {
		t.Fatalf("expected tag names, got %v", work[0].Tags)
	}

	untagged, err := svc.ListAccounts(ctx, "untagged", "PERS")
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(untagged) != 1 || untagged[0].Name != "Personal" {
		t.Fatalf("unexpected untagged view %+v", untagged)
	}

	if _, err := svc.ListAccounts(ctx, "nope", ""); !errors.Is(err, app.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestServiceSwitchAccount(t *testing.T) {
	ctx := context.Background()
	svc, sess := newTestService(t)

	if _, err := svc.ActiveAccount(ctx); !errors.Is(err, app.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}

	dto, err := svc.SwitchAccount(ctx, "wo")
	if err != nil {
		t.Fatalf("SwitchAccount failed: %v", err)
	}
	if dto.Name != "Work" {
		t.Fatalf("expected Work, got %s", dto.Name)
	}
	if sess.key != "sk-ant-work-000000002" {
		t.Fatalf("session not activated, key %q", sess.key)
	}

	active, err := svc.ActiveAccount(ctx)
	if err != nil {
		t.Fatalf("ActiveAccount failed: %v", err)
	}
	if !active.Active || active.Name != "Work" {
		t.Fatalf("unexpected active account %+v", active)
	}
}

func TestServiceSetLimit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	dto, err := svc.SetLimit(ctx, LimitOptions{Account: "Personal", In: "90m"})
	if err != nil {
		t.Fatalf("SetLimit failed: %v", err)
	}
	if !dto.Limited || dto.AvailableIn != "1h30m" {
		t.Fatalf("unexpected limit %+v", dto)
	}

	dto, err = svc.SetLimit(ctx, LimitOptions{Account: "Personal", At: "5 PM"})
	if err != nil {
		t.Fatalf("SetLimit failed: %v", err)
	}
	at, err := time.Parse(time.RFC3339, dto.AvailableAt)
	if err != nil {
		t.Fatalf("parse availableAt: %v", err)
	}
	if want := time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC); !at.Equal(want) {
		t.Fatalf("expected reset at %s, got %s", want, at)
	}

	dto, err = svc.SetLimit(ctx, LimitOptions{Account: "Personal", Clear: true})
	if err != nil {
		t.Fatalf("SetLimit failed: %v", err)
	}
	if dto.Limited || dto.AvailableAt != "" {
		t.Fatalf("expected cleared limit, got %+v", dto)
	}

	if _, err := svc.SetLimit(ctx, LimitOptions{Account: "Personal", In: "1h", At: "5 PM"}); err == nil {
		t.Fatalf("expected error for both in and at")
	}
}

func TestServiceListTags(t *testing.T) {
	svc, _ := newTestService(t)
	tags, err := svc.ListTags(context.Background())
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "work" || tags[0].Accounts != 1 {
		t.Fatalf("unexpected tags %+v", tags)
	}
}
