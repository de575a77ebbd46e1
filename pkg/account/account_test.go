package account

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestImportSkipsInvalidAndDuplicates(t *testing.T) {
	payload := `[{"key":"short"},{"key":"0123456789","name":"A"},{"key":"0123456789","name":"dup"}]`

	merged, added, err := Import(nil, []byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("expected 1 added account, got %d", len(added))
	}
	if len(merged) != 1 || merged[0].Name != "A" {
		t.Fatalf("expected the second record to be kept, got %#v", merged)
	}
}

func TestImportSkipsExistingKeys(t *testing.T) {
	existing := []Account{{Key: "existing-key-1", Name: "old"}}
	payload := `[{"key":"existing-key-1","name":"new"},{"key":"another-key-2","name":"B","tagIds":["tag_x"]}]`

	merged, added, err := Import(existing, []byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(added) != 1 || added[0].Key != "another-key-2" {
		t.Fatalf("unexpected added: %#v", added)
	}
	if merged[0].Name != "old" {
		t.Fatalf("existing account should be untouched, got %q", merged[0].Name)
	}
	if len(existing) != 1 {
		t.Fatalf("input slice must not grow")
	}
	if !merged[1].HasTag("tag_x") {
		t.Fatalf("expected tagIds to survive import")
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	for _, payload := range []string{`{"key":"0123456789"}`, `null`, `not json`} {
		if _, _, err := Import(nil, []byte(payload)); !errors.Is(err, ErrNotArray) {
			t.Fatalf("%s: expected ErrNotArray, got %v", payload, err)
		}
	}
}

func TestParseAccount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"valid", `{"key":"0123456789","name":"A"}`, true},
		{"empty name ok", `{"key":"0123456789","name":""}`, true},
		{"null tags ok", `{"key":"0123456789","name":"A","tagIds":null}`, true},
		{"short key", `{"key":"012345678","name":"A"}`, false},
		{"numeric key", `{"key":12345678901,"name":"A"}`, false},
		{"missing name", `{"key":"0123456789"}`, false},
		{"tags not list", `{"key":"0123456789","name":"A","tagIds":"tag_1"}`, false},
		{"not object", `"0123456789"`, false},
		{"null", `null`, false},
		{"null name", `{"key":"0123456789","name":null}`, false},
		{"numeric plan ok", `{"key":"0123456789","name":"A","plan":3}`, true},
		{"string availableAt ok", `{"key":"0123456789","name":"A","availableAt":"soon"}`, true},
		{"numeric tag elements ok", `{"key":"0123456789","name":"A","tagIds":[1,"tag_a"]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseAccount(json.RawMessage(tt.raw))
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
		})
	}
}

func TestParseAccountDropsMistypedFields(t *testing.T) {
	a, ok := ParseAccount(json.RawMessage(`{"key":"0123456789","name":"A","plan":3,"availableAt":"soon","tagIds":[1,"tag_a",null]}`))
	if !ok {
		t.Fatalf("expected record to be accepted")
	}
	if a.Plan != "" || a.AvailableAt != 0 {
		t.Fatalf("mistyped plan and availableAt should be dropped, got %+v", a)
	}
	if len(a.TagIDs) != 1 || a.TagIDs[0] != "tag_a" {
		t.Fatalf("expected only string tag ids, got %v", a.TagIDs)
	}

	a, ok = ParseAccount(json.RawMessage(`{"key":"0123456789","name":"A","plan":"Pro plan","availableAt":1700000000000}`))
	if !ok || a.Plan != "Pro plan" || a.AvailableAt != 1700000000000 {
		t.Fatalf("well-typed fields should be kept, got %+v %v", a, ok)
	}
}

func TestImportKeepsRecordsWithMistypedExtras(t *testing.T) {
	payload := `[
		{"key":"0123456789","name":"A","plan":3},
		{"key":"1123456789","name":"B","availableAt":"x"},
		{"key":"2123456789","name":"C","tagIds":[7]}
	]`
	_, added, err := Import(nil, []byte(payload))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(added) != 3 {
		t.Fatalf("expected 3 added, got %d", len(added))
	}
}

func TestExportIsPrettyArray(t *testing.T) {
	out, err := Export(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "[]" {
		t.Fatalf("expected empty array, got %s", out)
	}

	out, err = Export([]Account{{Key: "0123456789", Name: "A"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "\n  {") {
		t.Fatalf("expected indented output, got %s", out)
	}
	_, added, err := Import(nil, out)
	if err != nil || len(added) != 1 {
		t.Fatalf("exported file should import cleanly: %v %d", err, len(added))
	}
}

func TestValidateTag(t *testing.T) {
	good := Tag{ID: NewTagID(), Name: "work", Color: "#AABBCC"}
	if err := ValidateTag(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]Tag{
		"id":    {ID: "x_1", Name: "work", Color: "#aabbcc"},
		"name":  {ID: "tag_1", Name: strings.Repeat("n", 51), Color: "#aabbcc"},
		"color": {ID: "tag_1", Name: "work", Color: "red"},
	}
	for field, tag := range tests {
		var verr ValidationError
		if err := ValidateTag(tag); !errors.As(err, &verr) || verr.Field != field {
			t.Fatalf("expected %s validation error, got %v", field, err)
		}
	}
	if err := ValidateTag(Tag{ID: "tag_1", Color: "#aabbcc"}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
}

func TestNewTagIDUnique(t *testing.T) {
	a, b := NewTagID(), NewTagID()
	if a == b {
		t.Fatalf("expected unique ids")
	}
	if !strings.HasPrefix(a, TagIDPrefix) {
		t.Fatalf("expected prefix, got %s", a)
	}
}

func TestPlanBadgeAndMask(t *testing.T) {
	if got := (Account{Plan: "Claude Pro plan"}).PlanBadge(); got != BadgePro {
		t.Fatalf("expected Pro, got %q", got)
	}
	if got := (Account{Plan: "Team plan"}).PlanBadge(); got != BadgeTeam {
		t.Fatalf("expected Team, got %q", got)
	}
	if got := (Account{Plan: "Free plan"}).PlanBadge(); got != BadgeFree {
		t.Fatalf("expected Free, got %q", got)
	}
	a := Account{Key: "sk-ant-REDACTED"}
	if got := a.MaskedKey(); got != "sk-ant-sid...123456" {
		t.Fatalf("unexpected mask: %s", got)
	}
}

func TestLimited(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	a := Account{AvailableAt: now.Add(time.Hour).UnixMilli()}
	if !a.Limited(now) {
		t.Fatalf("expected limited")
	}
	if a.Limited(now.Add(2 * time.Hour)) {
		t.Fatalf("expected available after reset")
	}
	if (Account{}).Limited(now) {
		t.Fatalf("zero AvailableAt is never limited")
	}
}
