// Package ordering maintains the user-specified order of accounts for every
// view of the registry: the global view, the untagged view, and one view per
// tag. Every function is pure and returns a new table; callers persist it.
package ordering

import (
	"slices"

	"tableflip.dev/switcher/pkg/account"
)

const (
	// All is the order key of the unfiltered view.
	All = "all"
	// Untagged is the order key of the view holding accounts without tags.
	Untagged = "untagged"
)

// Orders maps an order key to the ordered account keys of that view.
type Orders map[string][]string

// Clone returns a deep copy of o. A nil table clones to an empty one.
func (o Orders) Clone() Orders {
	out := make(Orders, len(o))
	for k, list := range o {
		out[k] = slices.Clone(list)
	}
	return out
}

// Index returns the position of key in the view's list, or -1.
func (o Orders) Index(orderKey, key string) int {
	return slices.Index(o[orderKey], key)
}

// KeyFor returns the order key used by a tag filter. Empty and "all" select
// the global view; anything else, including "untagged", names its own list.
func KeyFor(filterTagID string) string {
	if filterTagID == "" || filterTagID == All {
		return All
	}
	return filterTagID
}

// AddKey registers a new account. The key is always appended to the global
// view; it joins each listed tag view, or the untagged view when tagIDs is
// empty, unless already present there.
func AddKey(o Orders, key string, tagIDs []string) Orders {
	out := o.Clone()
	out[All] = append(out[All], key)
	if len(tagIDs) == 0 {
		appendMissing(out, Untagged, key)
		return out
	}
	for _, id := range tagIDs {
		appendMissing(out, id, key)
	}
	return out
}

// UpdateOnTagChange moves key between tag views after its tags changed from
// oldTagIDs to newTagIDs. The global view is never touched. Leaving the last
// tag puts the key in the untagged view; gaining a first tag takes it out.
func UpdateOnTagChange(o Orders, key string, oldTagIDs, newTagIDs []string) Orders {
	out := o.Clone()
	removed := difference(oldTagIDs, newTagIDs)
	added := difference(newTagIDs, oldTagIDs)
	wasUntagged := len(oldTagIDs) == 0
	isUntagged := len(newTagIDs) == 0

	for _, id := range removed {
		if list, ok := out[id]; ok {
			out[id] = without(list, key)
		}
	}
	if wasUntagged && !isUntagged {
		if list, ok := out[Untagged]; ok {
			out[Untagged] = without(list, key)
		}
	}
	for _, id := range added {
		appendMissing(out, id, key)
	}
	if !wasUntagged && isUntagged {
		appendMissing(out, Untagged, key)
	}
	return out
}

// RemoveKey drops key from every view, the global one included.
func RemoveKey(o Orders, key string) Orders {
	out := make(Orders, len(o))
	for k, list := range o {
		out[k] = without(list, key)
	}
	return out
}

// RemoveTag deletes the view of a tag that no longer exists.
func RemoveTag(o Orders, tagID string) Orders {
	out := o.Clone()
	delete(out, tagID)
	return out
}

// Resync repairs missing entries: the global view is created from the
// registry order when absent, and every account is appended to the views it
// belongs to when missing. Stale keys are left alone. changed reports whether
// the returned table differs from o and needs persisting.
func Resync(accounts []account.Account, o Orders) (Orders, bool) {
	out := o.Clone()
	changed := false

	if _, ok := out[All]; !ok {
		out[All] = account.Keys(accounts)
		changed = true
	}
	for _, a := range accounts {
		if appendMissing(out, All, a.Key) {
			changed = true
		}
		if a.Untagged() {
			if appendMissing(out, Untagged, a.Key) {
				changed = true
			}
			continue
		}
		for _, id := range a.TagIDs {
			if appendMissing(out, id, a.Key) {
				changed = true
			}
		}
	}
	return out, changed
}

// Set replaces the list of one view.
func Set(o Orders, orderKey string, keys []string) Orders {
	out := o.Clone()
	out[orderKey] = slices.Clone(keys)
	return out
}

// Reorder moves key to position to within the view named by orderKey,
// leaving every other view as it was. Out of range positions are clamped; a
// key missing from the view is inserted.
func Reorder(o Orders, orderKey, key string, to int) Orders {
	out := o.Clone()
	list := without(out[orderKey], key)
	to = max(0, min(to, len(list)))
	out[orderKey] = slices.Insert(list, to, key)
	return out
}

// appendMissing appends key to the list at orderKey, creating the list if
// needed. It reports whether the key was added.
func appendMissing(o Orders, orderKey, key string) bool {
	list := o[orderKey]
	if slices.Contains(list, key) {
		return false
	}
	o[orderKey] = append(list, key)
	return true
}

func without(list []string, key string) []string {
	out := make([]string, 0, len(list))
	for _, k := range list {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// difference returns the members of a that are not in b, in a's order.
func difference(a, b []string) []string {
	var out []string
	for _, id := range a {
		if !slices.Contains(b, id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
