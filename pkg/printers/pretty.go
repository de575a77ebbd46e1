package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/timeutil"
)

type PrettyPrint struct {
	ShowKey bool
	Out     io.Writer
	Now     func() time.Time
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now == nil {
		return time.Now()
	}
	return pp.Now()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " account")
	default:
		_, _ = c.Fprintln(pp.out(), " accounts")
	}
}

var (
	badgeColors = map[account.Badge]*color.Color{
		account.BadgePro:  color.New(color.FgHiMagenta, color.Bold),
		account.BadgeTeam: color.New(color.FgHiBlue, color.Bold),
		account.BadgeFree: color.New(color.Faint),
	}
	current = color.New(color.FgHiGreen, color.Bold)
	limited = color.New(color.FgHiRed)
	faint   = color.New(color.Faint, color.Italic)
)

// Accounts prints one line per account in the given order. The account
// behind activeKey is marked as current.
func (pp *PrettyPrint) Accounts(accounts []account.Account, tags map[string]account.Tag, activeKey string) {
	w := pp.out()
	if len(accounts) == 0 {
		_, _ = faint.Fprint(w, " none\n\n")
		return
	}

	now := pp.now()
	for i, a := range accounts {
		marker := " "
		if a.Key == activeKey {
			marker = current.Sprint("●")
		}
		parts := []string{fmt.Sprintf("%s %2d  %s", marker, i+1, a.Name)}
		if b := a.PlanBadge(); b != account.BadgeNone {
			parts = append(parts, badgeColors[b].Sprintf("[%s]", b))
		}
		if a.Key == activeKey {
			parts = append(parts, current.Sprint("[Current]"))
		}
		for _, id := range a.TagIDs {
			if t, ok := tags[id]; ok {
				parts = append(parts, TagColor(t.Color).Sprintf("#%s", t.Name))
			}
		}
		if left := timeutil.Until(now, a.AvailableTime()); left != "" {
			parts = append(parts, limited.Sprintf("limited · %s", left))
		}
		if pp.ShowKey {
			parts = append(parts, faint.Sprint(a.MaskedKey()))
		}
		_, _ = fmt.Fprintln(w, strings.Join(parts, " "))
	}
	_, _ = fmt.Fprintln(w)
}

// Tags prints the tag registry as a table with the number of accounts
// carrying each tag.
func (pp *PrettyPrint) Tags(tags []account.Tag, accounts []account.Account) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Tag"), bold.Sprint("Color"), bold.Sprint("Accounts"), bold.Sprint("ID"))
	for _, t := range tags {
		n := 0
		for _, a := range accounts {
			if a.HasTag(t.ID) {
				n++
			}
		}
		tbl.AddRow(TagColor(t.Color).Sprint(t.Name), t.Color, n, faint.Sprint(t.ID))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// TagColor returns a truecolor foreground for a #rrggbb tag color, falling
// back to the default foreground for anything unparsable.
func TagColor(hex string) *color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.New(color.Reset)
	}
	r, g, b := c.RGB255()
	return color.New(38, 2, color.Attribute(r), color.Attribute(g), color.Attribute(b))
}
