// Package view derives the list of accounts shown for a given filter state.
package view

import (
	"reflect"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/ordering"
)

// Func computes the visible accounts.
type Func func(accounts []account.Account, filter, filterTagID string, orders ordering.Orders) []account.Account

// Derive selects the accounts matching the tag filter and the case-insensitive
// name filter, then orders them by the view's ordering list. Accounts missing
// from the list sort after the listed ones and keep their registry order.
func Derive(accounts []account.Account, filter, filterTagID string, orders ordering.Orders) []account.Account {
	orderKey := ordering.KeyFor(filterTagID)

	result := make([]account.Account, 0, len(accounts))
	needle := strings.ToLower(filter)
	for _, a := range accounts {
		switch {
		case filterTagID == ordering.Untagged:
			if !a.Untagged() {
				continue
			}
		case orderKey != ordering.All:
			if !a.HasTag(filterTagID) {
				continue
			}
		}
		if needle != "" && !strings.Contains(strings.ToLower(a.Name), needle) {
			continue
		}
		result = append(result, a)
	}

	position := make(map[string]int, len(orders[orderKey]))
	for i, k := range orders[orderKey] {
		if _, seen := position[k]; !seen {
			position[k] = i
		}
	}
	rank := func(key string) int {
		if i, ok := position[key]; ok {
			return i
		}
		return len(position) + len(orders[orderKey])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return rank(result[i].Key) < rank(result[j].Key)
	})
	return result
}

// Memo caches the result of the most recent call. Arguments are compared by
// identity: slices and maps by their backing storage, strings by value.
// The cache holds a single entry and keeps its arguments reachable, so a
// backing array cannot be freed and reused while it is the cache key.
type Memo struct {
	fn Func

	mu          sync.Mutex
	valid       bool
	accounts    []account.Account
	filter      string
	filterTagID string
	orders      ordering.Orders
	result      []account.Account
}

// NewMemo wraps fn, or Derive when fn is nil.
func NewMemo(fn Func) *Memo {
	if fn == nil {
		fn = Derive
	}
	return &Memo{fn: fn}
}

// Derive returns the cached result when every argument is identical to the
// previous call, and recomputes otherwise.
func (m *Memo) Derive(accounts []account.Account, filter, filterTagID string, orders ordering.Orders) []account.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid &&
		sameSlice(m.accounts, accounts) &&
		m.filter == filter &&
		m.filterTagID == filterTagID &&
		sameMap(m.orders, orders) {
		return m.result
	}
	m.accounts, m.filter, m.filterTagID, m.orders = accounts, filter, filterTagID, orders
	m.result = m.fn(accounts, filter, filterTagID, orders)
	m.valid = true
	return m.result
}

func sameSlice(a, b []account.Account) bool {
	return len(a) == len(b) && unsafe.SliceData(a) == unsafe.SliceData(b)
}

func sameMap(a, b ordering.Orders) bool {
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}
