package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/switcher/pkg/account"
)

func TestAccounts(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	pp := &PrettyPrint{ShowKey: true, Out: &buf, Now: func() time.Time { return now }}
	tags := map[string]account.Tag{"tag_w": {ID: "tag_w", Name: "work", Color: "#ff0000"}}
	accounts := []account.Account{
		{Key: "sk-ant-0123456789abcdef", Name: "Alice", Plan: "Pro plan", TagIDs: []string{"tag_w"}},
		{Key: "sk-ant-fedcba9876543210", Name: "Bob", AvailableAt: now.Add(90 * time.Minute).UnixMilli()},
	}
	pp.Accounts(accounts, tags, "sk-ant-0123456789abcdef")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	for _, want := range []string{"● ", "Alice", "[Pro]", "[Current]", "#work", "sk-ant-012...abcdef"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("line %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "limited · 1h30m") || strings.Contains(lines[1], "[Current]") {
		t.Fatalf("unexpected line %q", lines[1])
	}
}

func TestTags(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Tags(
		[]account.Tag{{ID: "tag_w", Name: "work", Color: "#ff0000"}},
		[]account.Account{{Key: "k1", TagIDs: []string{"tag_w"}}, {Key: "k2"}},
	)
	out := buf.String()
	if !strings.Contains(out, "work") || !strings.Contains(out, "#ff0000") || !strings.Contains(out, "tag_w") {
		t.Fatalf("unexpected table %q", out)
	}
}
