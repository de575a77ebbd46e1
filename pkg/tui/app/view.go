package app

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/ordering"
	"tableflip.dev/switcher/pkg/timeutil"
)

const help = "↑/↓ select · enter switch · / filter · t view · J/K move · T theme · q quit"

func (m *Model) View() string {
	var b strings.Builder
	th := m.theme

	b.WriteString(th.Title.Render(m.title()))
	b.WriteString(th.Count.Render(fmt.Sprintf(" %d", len(m.visible))))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(th.Muted.Render("  no accounts"))
		b.WriteString("\n")
	}
	now := time.Now()
	for i, a := range m.visible {
		b.WriteString(m.row(a, i == m.cursor, now))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == modeFilter || m.st.Filter != "" {
		line := "filter: " + m.st.Filter
		if m.mode == modeFilter {
			line += "_"
		}
		b.WriteString(th.Input.Render(line))
		b.WriteString("\n")
	}
	if m.status.Err != nil {
		b.WriteString(th.Error.Render(m.status.Describe()))
		b.WriteString("\n")
	} else if m.status.Text != "" {
		b.WriteString(th.Status.Render(m.status.Describe()))
		b.WriteString("\n")
	}
	b.WriteString(th.Help.Render(help))
	return b.String()
}

func (m *Model) title() string {
	switch m.st.FilterTagID {
	case "", ordering.All:
		return "All accounts"
	case ordering.Untagged:
		return "Untagged"
	}
	if t, ok := m.st.TagMap[m.st.FilterTagID]; ok {
		return "#" + t.Name
	}
	return m.st.FilterTagID
}

func (m *Model) row(a account.Account, selected bool, now time.Time) string {
	th := m.theme

	marker := "  "
	if selected {
		marker = "> "
	}
	dot := th.Muted.Render("○")
	if a.Key == m.st.ActiveKey {
		dot = th.Active.Render("●")
	}
	name := th.Item.Render(a.Name)
	if selected {
		name = th.Selected.Render(a.Name)
	}

	parts := []string{marker + dot, name}
	if badge := a.PlanBadge(); badge != account.BadgeNone {
		parts = append(parts, th.Badges[string(badge)].Render("["+string(badge)+"]"))
	}
	if a.Key == m.st.ActiveKey {
		parts = append(parts, th.Active.Render("[Current]"))
	}
	for _, id := range a.TagIDs {
		if t, ok := m.st.TagMap[id]; ok {
			parts = append(parts, th.Tag(t.Color).Render("#"+t.Name))
		}
	}
	if a.Limited(now) {
		parts = append(parts, th.Limited.Render("limited · "+timeutil.Until(now, a.AvailableTime())))
	}
	return strings.Join(parts, " ")
}
