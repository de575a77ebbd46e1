package account

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError reports a single field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateTag checks a tag record. The first failing field is returned.
func ValidateTag(t Tag) error {
	if !strings.HasPrefix(t.ID, TagIDPrefix) {
		return ValidationError{Field: "id", Message: fmt.Sprintf("must start with %q", TagIDPrefix)}
	}
	if n := utf8.RuneCountInString(t.Name); n == 0 || n > maxTagName {
		return ValidationError{Field: "name", Message: fmt.Sprintf("must be 1-%d characters", maxTagName)}
	}
	if !ValidColor(t.Color) {
		return ValidationError{Field: "color", Message: "must be a #rrggbb color"}
	}
	return nil
}

// ParseAccount decodes one element of an import file. ok is false when the
// element is not an object, the key is not a string of at least MinKeyLength,
// the name is not a string, or tagIds is present but not a list. Other fields
// of the wrong type are dropped, not rejected.
func ParseAccount(raw json.RawMessage) (Account, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Account{}, false
	}
	var a Account
	if err := json.Unmarshal(fields["key"], &a.Key); err != nil || !isString(fields["key"]) || len(a.Key) < MinKeyLength {
		return Account{}, false
	}
	if err := json.Unmarshal(fields["name"], &a.Name); err != nil || !isString(fields["name"]) {
		return Account{}, false
	}
	if v, ok := fields["tagIds"]; ok && !isNull(v) {
		var elems []json.RawMessage
		if err := json.Unmarshal(v, &elems); err != nil {
			return Account{}, false
		}
		for _, e := range elems {
			var id string
			if json.Unmarshal(e, &id) == nil && isString(e) {
				a.TagIDs = append(a.TagIDs, id)
			}
		}
	}
	if v, ok := fields["plan"]; ok && isString(v) {
		_ = json.Unmarshal(v, &a.Plan)
	}
	var at float64
	if v, ok := fields["availableAt"]; ok && json.Unmarshal(v, &at) == nil {
		a.AvailableAt = int64(at)
	}
	return a, true
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

func isString(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == '"'
}
