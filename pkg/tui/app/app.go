// Package app implements the interactive account list.
package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/switcher/pkg/account"
	appsvc "tableflip.dev/switcher/pkg/app"
	"tableflip.dev/switcher/pkg/ordering"
	"tableflip.dev/switcher/pkg/state"
	"tableflip.dev/switcher/pkg/tui/events"
	"tableflip.dev/switcher/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeFilter
)

// Model is the Bubble Tea model for the account list.
type Model struct {
	ctx context.Context
	svc *appsvc.Service

	st      state.State
	visible []account.Account
	cursor  int
	mode    mode
	status  events.StatusMsg
	theme   theme.Theme

	width  int
	height int
}

// New builds a model over svc. Persisting actions run with ctx.
func New(ctx context.Context, svc *appsvc.Service) *Model {
	m := &Model{ctx: ctx, svc: svc}
	m.refresh()
	m.follow(m.st.ActiveKey)
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case events.StateMsg:
		m.refresh()
	case events.StatusMsg:
		m.status = msg
		m.refresh()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode == modeFilter {
			return m.updateFilter(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *Model) updateNormal(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.selectAt(m.cursor - 1)
	case "down", "j":
		m.selectAt(m.cursor + 1)
	case "home", "g":
		m.selectAt(0)
	case "end", "G":
		m.selectAt(len(m.visible) - 1)
	case "/":
		m.mode = modeFilter
	case "t":
		return m, m.cycleView(1)
	case "shift+tab":
		return m, m.cycleView(-1)
	case "K", "shift+up":
		return m, m.move(-1)
	case "J", "shift+down":
		return m, m.move(1)
	case "T":
		return m, m.run(func(ctx context.Context) (string, error) {
			next, err := m.svc.ToggleTheme(ctx)
			return "theme " + next, err
		})
	case "enter":
		a, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			return "switched to " + a.Name, m.svc.Switch(ctx, a.Key)
		})
	}
	return m, nil
}

func (m *Model) updateFilter(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	text := m.st.Filter
	switch k.Type {
	case tea.KeyEnter:
		m.mode = modeNormal
		return m, nil
	case tea.KeyEsc:
		m.mode = modeNormal
		text = ""
	case tea.KeyBackspace:
		if r := []rune(text); len(r) > 0 {
			text = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		text += " "
	case tea.KeyRunes:
		text += string(k.Runes)
	default:
		return m, nil
	}
	m.svc.SetFilter(text)
	m.refresh()
	m.selectAt(0)
	return m, nil
}

// cycleView steps through all accounts, each tag, then untagged.
func (m *Model) cycleView(step int) tea.Cmd {
	views := make([]string, 0, len(m.st.Tags)+2)
	views = append(views, ordering.All)
	for _, t := range m.st.Tags {
		views = append(views, t.ID)
	}
	views = append(views, ordering.Untagged)

	current := ordering.KeyFor(m.st.FilterTagID)
	i := 0
	for j, v := range views {
		if v == current {
			i = j
		}
	}
	next := views[(i+step+len(views))%len(views)]
	return m.run(func(ctx context.Context) (string, error) {
		return "", m.svc.SetFilterTag(ctx, next)
	})
}

func (m *Model) move(delta int) tea.Cmd {
	a, ok := m.selected()
	if !ok {
		return nil
	}
	// Positions index the whole view, which a text filter hides part of.
	if m.st.Filter != "" {
		m.status = events.StatusMsg{Text: "clear the filter to reorder"}
		return nil
	}
	to := m.cursor + delta
	if to < 0 || to >= len(m.visible) {
		return nil
	}
	m.cursor = to
	return m.run(func(ctx context.Context) (string, error) {
		return "", m.svc.Move(ctx, a.Key, to)
	})
}

// run performs fn off the UI loop and reports the outcome.
func (m *Model) run(fn func(ctx context.Context) (string, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		text, err := fn(ctx)
		var v account.ValidationError
		if errors.As(err, &v) {
			err = errors.New(v.Message)
		}
		return events.StatusMsg{Text: text, Err: err}
	}
}

func (m *Model) refresh() {
	m.st = m.svc.State()
	m.visible = m.svc.Visible()
	m.theme = theme.For(m.st.Theme)
	m.selectAt(m.cursor)
}

// follow puts the cursor on key when it is visible.
func (m *Model) follow(key string) {
	for i, a := range m.visible {
		if a.Key == key {
			m.cursor = i
			return
		}
	}
}

func (m *Model) selectAt(i int) {
	if i >= len(m.visible) {
		i = len(m.visible) - 1
	}
	if i < 0 {
		i = 0
	}
	m.cursor = i
}

func (m *Model) selected() (account.Account, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return account.Account{}, false
	}
	return m.visible[m.cursor], true
}

// Run shows the list until the user quits. Every committed change, including
// changes written by other processes, is reflected while it runs.
func Run(ctx context.Context, svc *appsvc.Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	unsubscribe := svc.Subscribe(func(state.State) {
		// Listeners run inside Update for local changes; Send must not block it.
		go p.Send(events.StateMsg{})
	})
	defer unsubscribe()

	go func() {
		if err := svc.Follow(ctx); err != nil {
			p.Send(events.StatusMsg{Err: err})
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
