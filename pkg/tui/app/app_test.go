package app

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/switcher/pkg/account"
	appsvc "tableflip.dev/switcher/pkg/app"
	"tableflip.dev/switcher/pkg/ordering"
	"tableflip.dev/switcher/pkg/store"
	"tableflip.dev/switcher/pkg/tui/events"
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
		switch r.Key {
		case store.KeyAccounts:
			m.snap.Accounts = r.Value.([]account.Account)
		case store.KeyTags:
			m.snap.Tags = r.Value.([]account.Tag)
		case store.KeyTagOrders:
			m.snap.TagOrders = r.Value.(ordering.Orders)
		case store.KeyFilterTag:
			m.snap.FilterTagID = r.Value.(string)
		case store.KeyTheme:
			m.snap.Theme = r.Value.(string)
		case store.KeyLastActiveKey:
			m.snap.LastActiveKey = r.Value.(string)
		}
	}
	return nil
}

func (m *memoryStore) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

type memorySession struct{ key string }

func (s *memorySession) ActiveKey(context.Context) (string, error) { return s.key, nil }
func (s *memorySession) Activate(_ context.Context, key string) error {
	s.key = key
	return nil
}
func (s *memorySession) Deactivate(context.Context) error {
	s.key = ""
	return nil
}

func newModel(t *testing.T) (*Model, *appsvc.Service, *memorySession) {
	t.Helper()
	ctx := context.Background()
	sess := &memorySession{}
	svc := &appsvc.Service{Persistence: &memoryStore{}, Session: sess}
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	work, err := svc.AddTag(ctx, "work", "#2563eb")
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	for _, in := range []appsvc.NewAccount{
		{Name: "Alice", Key: "sk-ant-alice-00000001"},
		{Name: "Bob", Key: "sk-ant-bob-0000000002", TagIDs: []string{work.ID}},
		{Name: "Carol", Key: "sk-ant-carol-00000003", Plan: "Pro plan"},
	} {
		if _, err := svc.AddAccount(ctx, in); err != nil {
			t.Fatalf("AddAccount: %v", err)
		}
	}
	return New(ctx, svc), svc, sess
}

func press(t *testing.T, m *Model, keys ...tea.KeyMsg) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(k)
		if cmd == nil {
			continue
		}
		msg := cmd()
		if status, ok := msg.(events.StatusMsg); ok && status.Err != nil {
			t.Fatalf("key %q: %v", k.String(), status.Err)
		}
		m.Update(msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func names(accounts []account.Account) string {
	out := make([]string, len(accounts))
	for i, a := range accounts {
		out[i] = a.Name
	}
	return strings.Join(out, ",")
}

func TestFilterNarrowsList(t *testing.T) {
	m, _, _ := newModel(t)
	press(t, m, runes("/"), runes("a"))
	if got := names(m.visible); got != "Alice,Carol" {
		t.Fatalf("expected Alice,Carol, got %s", got)
	}
	press(t, m, runes("r"))
	if got := names(m.visible); got != "Carol" {
		t.Fatalf("expected Carol, got %s", got)
	}
	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeNormal || m.st.Filter != "" {
		t.Fatalf("esc should leave filter mode and clear the filter")
	}
	if got := names(m.visible); got != "Alice,Bob,Carol" {
		t.Fatalf("expected all accounts, got %s", got)
	}
}

func TestEnterSwitches(t *testing.T) {
	m, _, sess := newModel(t)
	press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	if sess.key != "sk-ant-bob-0000000002" {
		t.Fatalf("expected Bob's key to be active, got %q", sess.key)
	}
	if m.st.ActiveKey != sess.key {
		t.Fatalf("state not updated")
	}
	if !strings.Contains(m.View(), "[Current]") {
		t.Fatalf("expected current marker in view:\n%s", m.View())
	}
}

func TestMoveReordersView(t *testing.T) {
	m, svc, _ := newModel(t)
	press(t, m, runes("J"))
	if got := names(svc.Visible()); got != "Bob,Alice,Carol" {
		t.Fatalf("expected Bob,Alice,Carol, got %s", got)
	}
	if m.cursor != 1 {
		t.Fatalf("cursor should follow the moved account, got %d", m.cursor)
	}
	press(t, m, runes("K"), runes("K"))
	if got := names(svc.Visible()); got != "Alice,Bob,Carol" {
		t.Fatalf("expected Alice,Bob,Carol, got %s", got)
	}
}

func TestCycleView(t *testing.T) {
	m, _, _ := newModel(t)
	press(t, m, runes("t"))
	if got := names(m.visible); got != "Bob" {
		t.Fatalf("expected work view, got %s", got)
	}
	if !strings.Contains(m.View(), "#work") {
		t.Fatalf("expected tag title in view")
	}
	press(t, m, runes("t"))
	if got := names(m.visible); got != "Alice,Carol" {
		t.Fatalf("expected untagged view, got %s", got)
	}
	press(t, m, runes("t"))
	if m.st.FilterTagID != ordering.All {
		t.Fatalf("expected all view, got %q", m.st.FilterTagID)
	}
}

func TestToggleTheme(t *testing.T) {
	m, _, _ := newModel(t)
	press(t, m, runes("T"))
	if m.theme.Name != "dark" {
		t.Fatalf("expected dark theme, got %s", m.theme.Name)
	}
	press(t, m, runes("T"))
	if m.theme.Name != "light" {
		t.Fatalf("expected light theme, got %s", m.theme.Name)
	}
}
