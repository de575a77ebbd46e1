package account

import (
	"encoding/json"
	"errors"
)

// ErrNotArray is returned when an import payload is not a JSON array.
var ErrNotArray = errors.New("account: import payload must be a JSON array")

// Import merges the accounts found in data into existing. Invalid records and
// keys already present (including ones added earlier in the same payload) are
// skipped. It returns the merged list, always a fresh copy, and the accounts
// that were added.
func Import(existing []Account, data []byte) ([]Account, []Account, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Join(ErrNotArray, err)
	}
	if raw == nil {
		return nil, nil, ErrNotArray
	}

	merged := make([]Account, len(existing), len(existing)+len(raw))
	copy(merged, existing)
	seen := make(map[string]struct{}, len(merged)+len(raw))
	for _, a := range merged {
		seen[a.Key] = struct{}{}
	}

	var added []Account
	for _, r := range raw {
		a, ok := ParseAccount(r)
		if !ok {
			continue
		}
		if _, dup := seen[a.Key]; dup {
			continue
		}
		seen[a.Key] = struct{}{}
		merged = append(merged, a)
		added = append(added, a)
	}
	return merged, added, nil
}

// Export renders the accounts as a pretty-printed JSON array.
func Export(accounts []Account) ([]byte, error) {
	if accounts == nil {
		accounts = []Account{}
	}
	return json.MarshalIndent(accounts, "", "  ")
}
