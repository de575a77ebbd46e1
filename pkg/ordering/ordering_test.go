package ordering

import (
	"reflect"
	"slices"
	"testing"

	"tableflip.dev/switcher/pkg/account"
)

func count(list []string, key string) int {
	n := 0
	for _, k := range list {
		if k == key {
			n++
		}
	}
	return n
}

func TestAddKey(t *testing.T) {
	inserts := []struct {
		key  string
		tags []string
	}{
		{"k1", nil},
		{"k2", []string{"tag_a"}},
		{"k3", []string{"tag_a", "tag_b"}},
		{"k4", nil},
	}

	o := Orders{}
	for _, in := range inserts {
		o = AddKey(o, in.key, in.tags)
	}

	if len(o[All]) != len(inserts) {
		t.Fatalf("expected %d keys in all, got %v", len(inserts), o[All])
	}
	for _, in := range inserts {
		if count(o[All], in.key) != 1 {
			t.Fatalf("%s should appear once in all: %v", in.key, o[All])
		}
		if len(in.tags) == 0 && count(o[Untagged], in.key) != 1 {
			t.Fatalf("%s should appear once in untagged: %v", in.key, o[Untagged])
		}
		for _, tag := range in.tags {
			if count(o[tag], in.key) != 1 {
				t.Fatalf("%s should appear once in %s: %v", in.key, tag, o[tag])
			}
		}
	}
	if !reflect.DeepEqual(o["tag_a"], []string{"k2", "k3"}) {
		t.Fatalf("unexpected tag_a order: %v", o["tag_a"])
	}
}

func TestAddKeyDoesNotMutateInput(t *testing.T) {
	in := Orders{All: make([]string, 1, 8), Untagged: []string{}}
	in[All][0] = "k1"
	out := AddKey(in, "k2", nil)

	if len(in[All]) != 1 || len(in[Untagged]) != 0 {
		t.Fatalf("input mutated: %v", in)
	}
	if !reflect.DeepEqual(out[All], []string{"k1", "k2"}) {
		t.Fatalf("unexpected all: %v", out[All])
	}
	out[All][0] = "changed"
	if in[All][0] != "k1" {
		t.Fatalf("output shares backing array with input")
	}
}

func TestAddKeySkipsDuplicateTagMembership(t *testing.T) {
	o := Orders{"tag_a": {"k1"}}
	o = AddKey(o, "k1", []string{"tag_a"})
	if count(o["tag_a"], "k1") != 1 {
		t.Fatalf("duplicate inserted: %v", o["tag_a"])
	}
}

func TestUpdateOnTagChange(t *testing.T) {
	base := Orders{
		All:      {"k1", "k2"},
		Untagged: {"k1"},
		"tag_a":  {"k2"},
	}

	tests := []struct {
		name     string
		key      string
		old, new []string
		want     map[string][]string
	}{{
		name: "untagged to tagged",
		key:  "k1", old: nil, new: []string{"tag_a"},
		want: map[string][]string{Untagged: {}, "tag_a": {"k2", "k1"}},
	}, {
		name: "tagged to untagged",
		key:  "k2", old: []string{"tag_a"}, new: nil,
		want: map[string][]string{Untagged: {"k1", "k2"}, "tag_a": {}},
	}, {
		name: "swap tags",
		key:  "k2", old: []string{"tag_a"}, new: []string{"tag_b"},
		want: map[string][]string{Untagged: {"k1"}, "tag_a": {}, "tag_b": {"k2"}},
	}, {
		name: "unchanged",
		key:  "k2", old: []string{"tag_a"}, new: []string{"tag_a"},
		want: map[string][]string{Untagged: {"k1"}, "tag_a": {"k2"}},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateOnTagChange(base, tt.key, tt.old, tt.new)
			for k, want := range tt.want {
				if !reflect.DeepEqual(got[k], want) {
					t.Fatalf("%s: expected %v, got %v", k, want, got[k])
				}
			}
			if !reflect.DeepEqual(got[All], base[All]) {
				t.Fatalf("all must be untouched, got %v", got[All])
			}
		})
	}
	if !reflect.DeepEqual(base[Untagged], []string{"k1"}) {
		t.Fatalf("input mutated: %v", base)
	}
}

func TestUpdateOnTagChangeRoundTrip(t *testing.T) {
	old := []string{"tag_a", "tag_b"}
	next := []string{"tag_b", "tag_c"}
	start := AddKey(AddKey(Orders{}, "k1", old), "k2", nil)

	there := UpdateOnTagChange(start, "k1", old, next)
	if count(there["tag_a"], "k1") != 0 || count(there["tag_c"], "k1") != 1 || count(there["tag_b"], "k1") != 1 {
		t.Fatalf("unexpected membership after change: %v", there)
	}

	back := UpdateOnTagChange(there, "k1", next, old)
	for _, k := range []string{All, Untagged, "tag_a", "tag_b"} {
		a, b := slices.Clone(start[k]), slices.Clone(back[k])
		slices.Sort(a)
		slices.Sort(b)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s membership not restored: %v vs %v", k, start[k], back[k])
		}
	}
	if count(back["tag_c"], "k1") != 0 {
		t.Fatalf("k1 should have left tag_c: %v", back["tag_c"])
	}
}

func TestRemoveKeyThenResync(t *testing.T) {
	accounts := []account.Account{
		{Key: "k1", Name: "one"},
		{Key: "k2", Name: "two", TagIDs: []string{"tag_a"}},
	}
	o := AddKey(AddKey(Orders{}, "k1", nil), "k2", []string{"tag_a"})

	o = RemoveKey(o, "k2")
	remaining := accounts[:1]
	o, _ = Resync(remaining, o)

	for k, list := range o {
		if count(list, "k2") != 0 {
			t.Fatalf("k2 left in %s: %v", k, list)
		}
	}
}

func TestResync(t *testing.T) {
	accounts := []account.Account{
		{Key: "k1"},
		{Key: "k2", TagIDs: []string{"tag_a"}},
	}

	o, changed := Resync(accounts, nil)
	if !changed {
		t.Fatalf("expected change when all is missing")
	}
	if !reflect.DeepEqual(o[All], []string{"k1", "k2"}) {
		t.Fatalf("unexpected all: %v", o[All])
	}
	if !reflect.DeepEqual(o[Untagged], []string{"k1"}) || !reflect.DeepEqual(o["tag_a"], []string{"k2"}) {
		t.Fatalf("unexpected views: %v", o)
	}

	again, changed := Resync(accounts, o)
	if changed {
		t.Fatalf("second resync should be a no-op")
	}
	if !reflect.DeepEqual(again, o) {
		t.Fatalf("expected identical table")
	}

	stale := Orders{All: {"gone", "k2", "k1"}, Untagged: {"k1"}, "tag_a": {"k2", "gone"}}
	kept, changed := Resync(accounts, stale)
	if changed {
		t.Fatalf("stale keys must not trigger a save")
	}
	if !reflect.DeepEqual(kept[All], []string{"gone", "k2", "k1"}) {
		t.Fatalf("stale keys must be kept: %v", kept[All])
	}
}

func TestReorderTouchesOneView(t *testing.T) {
	o := Orders{All: {"k1", "k2", "k3"}, "tag_a": {"k1", "k3"}}

	got := Reorder(o, All, "k3", 0)
	if !reflect.DeepEqual(got[All], []string{"k3", "k1", "k2"}) {
		t.Fatalf("unexpected all: %v", got[All])
	}
	if !reflect.DeepEqual(got["tag_a"], []string{"k1", "k3"}) {
		t.Fatalf("tag view changed: %v", got["tag_a"])
	}

	got = Reorder(o, "tag_a", "k1", 99)
	if !reflect.DeepEqual(got["tag_a"], []string{"k3", "k1"}) {
		t.Fatalf("expected clamp to end: %v", got["tag_a"])
	}
	if !reflect.DeepEqual(o[All], []string{"k1", "k2", "k3"}) {
		t.Fatalf("input mutated: %v", o[All])
	}
}

func TestKeyFor(t *testing.T) {
	for in, want := range map[string]string{"": All, All: All, Untagged: Untagged, "tag_x": "tag_x"} {
		if got := KeyFor(in); got != want {
			t.Fatalf("KeyFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRemoveTag(t *testing.T) {
	o := Orders{All: {"k1"}, "tag_a": {"k1"}}
	got := RemoveTag(o, "tag_a")
	if _, ok := got["tag_a"]; ok {
		t.Fatalf("tag view should be deleted")
	}
	if _, ok := o["tag_a"]; !ok {
		t.Fatalf("input mutated")
	}
}
