package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/switcher/pkg/account"
	"tableflip.dev/switcher/pkg/ordering"
)

// Record keys. Each key is one file under the base path.
const (
	KeyAccounts      = "accounts"
	KeyTags          = "tags"
	KeyTagOrders     = "tagOrders"
	KeyFilterTag     = "filterTagId"
	KeyTheme         = "user_theme"
	KeyLastActiveKey = "lastActiveKey"
)

var knownKeys = map[string]struct{}{
	KeyAccounts:      {},
	KeyTags:          {},
	KeyTagOrders:     {},
	KeyFilterTag:     {},
	KeyTheme:         {},
	KeyLastActiveKey: {},
}

// Snapshot is everything persisted, as read in one pass. TagOrders is nil
// when the table has never been written.
type Snapshot struct {
	Accounts      []account.Account
	Tags          []account.Tag
	TagOrders     ordering.Orders
	FilterTagID   string
	Theme         string
	LastActiveKey string
}

// Record is one key to write.
type Record struct {
	Key   string
	Value any
}

func Accounts(a []account.Account) Record {
	if a == nil {
		a = []account.Account{}
	}
	return Record{Key: KeyAccounts, Value: a}
}

func Tags(t []account.Tag) Record {
	if t == nil {
		t = []account.Tag{}
	}
	return Record{Key: KeyTags, Value: t}
}

func TagOrders(o ordering.Orders) Record {
	if o == nil {
		o = ordering.Orders{}
	}
	return Record{Key: KeyTagOrders, Value: o}
}

func FilterTag(id string) Record { return Record{Key: KeyFilterTag, Value: id} }

func Theme(theme string) Record { return Record{Key: KeyTheme, Value: theme} }

func LastActiveKey(key string) Record { return Record{Key: KeyLastActiveKey, Value: key} }

// Persistence defines the persistence contract for switcher state.
type Persistence interface {
	Load(ctx context.Context) (Snapshot, error)
	// Save writes every record or, when any record fails to encode, none.
	// The ordering table is written before the records it indexes, so a
	// failed write leaves at most stale or missing ordering keys, which the
	// next load resyncs.
	Save(ctx context.Context, records ...Record) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
		TempDir:      basePath + ".tmp",
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Load(_ context.Context) (Snapshot, error) {
	var snap Snapshot
	fields := []struct {
		key    string
		target any
	}{
		{KeyAccounts, &snap.Accounts},
		{KeyTags, &snap.Tags},
		{KeyTagOrders, &snap.TagOrders},
		{KeyFilterTag, &snap.FilterTagID},
		{KeyTheme, &snap.Theme},
		{KeyLastActiveKey, &snap.LastActiveKey},
	}
	for _, f := range fields {
		if err := p.read(f.key, f.target); err != nil {
			return Snapshot{}, err
		}
	}
	return snap, nil
}

// read decodes key into target, leaving target untouched when absent.
func (p *persistence) read(key string, target any) error {
	if !p.d.Has(key) {
		return nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("store: read %s: %w", key, err)
	}
	if len(val) == 0 {
		return nil
	}
	if err := json.Unmarshal(val, target); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Save(ctx context.Context, records ...Record) error {
	records = ordersFirst(records)
	encoded := make([][]byte, len(records))
	for i, r := range records {
		if _, ok := knownKeys[r.Key]; !ok {
			return fmt.Errorf("store: unknown record %q", r.Key)
		}
		data, err := json.Marshal(r.Value)
		if err != nil {
			return fmt.Errorf("store: encode %s: %w", r.Key, err)
		}
		encoded[i] = data
	}
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.d.Write(r.Key, encoded[i]); err != nil {
			return fmt.Errorf("store: write %s: %w", r.Key, err)
		}
	}
	return nil
}

// ordersFirst moves tagOrders records to the front, keeping the rest in order.
func ordersFirst(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Key == KeyTagOrders {
			out = append(out, r)
		}
	}
	for _, r := range records {
		if r.Key != KeyTagOrders {
			out = append(out, r)
		}
	}
	return out
}
