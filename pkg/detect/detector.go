package detect

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultCooldown coalesces bursts of document changes into one scan.
	DefaultCooldown = 2 * time.Second
)

// Source returns a fresh snapshot of the observed document.
type Source func() (Node, error)

// Marker records a detected reset instant against the active account. It
// reports whether anything was written.
type Marker interface {
	MarkLimited(ctx context.Context, availableAt time.Time) (bool, error)
}

// Notifier shows a transient message.
type Notifier interface {
	Show(msg string) bool
}

// Options configures a Detector.
type Options struct {
	Source    Source
	Marker    Marker
	Notifier  Notifier
	Scanner   *Scanner
	Scheduler Scheduler
	Logger    *log.Logger
	Cooldown  time.Duration
	Now       func() time.Time
}

// Detector rescans the document after it changes and marks the active account
// when a limit banner shows up. Scans never overlap and a burst of changes
// within the cooldown window produces a single scan.
type Detector struct {
	source   Source
	marker   Marker
	notifier Notifier
	scanner  *Scanner
	sched    Scheduler
	log      *log.Logger
	cooldown time.Duration
	now      func() time.Time

	ctx context.Context

	mu         sync.Mutex
	processing bool
	throttled  bool
}

// New builds a detector. Unset options fall back to defaults.
func New(opts Options) *Detector {
	d := &Detector{
		source:   opts.Source,
		marker:   opts.Marker,
		notifier: opts.Notifier,
		scanner:  opts.Scanner,
		sched:    opts.Scheduler,
		log:      opts.Logger,
		cooldown: opts.Cooldown,
		now:      opts.Now,
		ctx:      context.Background(),
	}
	if d.scanner == nil {
		d.scanner = NewScanner()
	}
	if d.sched == nil {
		d.sched = NewScheduler(DefaultFrameInterval)
	}
	if d.log == nil {
		d.log = log.Default()
	}
	if d.cooldown <= 0 {
		d.cooldown = DefaultCooldown
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// Run scans once, then schedules scans for every change received until ctx
// is done or changes is closed.
func (d *Detector) Run(ctx context.Context, changes <-chan struct{}) error {
	d.mu.Lock()
	d.ctx = ctx
	d.mu.Unlock()

	d.RequestScan()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			d.Observe()
		}
	}
}

// Observe handles one batch of document changes. While a cooldown is pending
// the batch is dropped; otherwise a scan is requested when the cooldown ends.
func (d *Detector) Observe() {
	d.mu.Lock()
	if d.throttled {
		d.mu.Unlock()
		return
	}
	d.throttled = true
	d.mu.Unlock()

	d.sched.AfterFunc(d.cooldown, func() {
		d.mu.Lock()
		d.throttled = false
		d.mu.Unlock()
		if d.stopped() {
			return
		}
		d.RequestScan()
	})
}

// RequestScan runs a scan at the next frame unless one is already pending or
// running.
func (d *Detector) RequestScan() {
	d.mu.Lock()
	if d.processing {
		d.mu.Unlock()
		return
	}
	d.processing = true
	d.mu.Unlock()

	d.sched.NextFrame(func() {
		defer func() {
			d.mu.Lock()
			d.processing = false
			d.mu.Unlock()
		}()
		if d.stopped() {
			return
		}
		if err := d.scan(); err != nil {
			d.log.Error("limit scan failed", "err", err)
		}
	})
}

// stopped reports whether the context given to Run is done. Callbacks armed
// before that still fire and must not scan.
func (d *Detector) stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctx.Err() != nil
}

// Busy reports whether a scan is pending or running.
func (d *Detector) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.processing
}

func (d *Detector) scan() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("detect: scan panicked: %v", r)
		}
	}()

	root, err := d.source()
	if err != nil {
		return fmt.Errorf("detect: read document: %w", err)
	}
	m, ok := d.scanner.Scan(root)
	if !ok {
		return nil
	}
	at, err := ResolveReset(m.Token, d.now())
	if err != nil {
		return err
	}

	d.mu.Lock()
	ctx := d.ctx
	d.mu.Unlock()

	written, err := d.marker.MarkLimited(ctx, at)
	if err != nil {
		return fmt.Errorf("detect: mark account: %w", err)
	}
	if !written {
		d.log.Debug("limit unchanged", "token", m.Token)
		return nil
	}
	d.log.Info("limit detected", "token", m.Token, "availableAt", at)
	if d.notifier != nil {
		d.notifier.Show(fmt.Sprintf("Limit detected: %s", m.Token))
	}
	return nil
}
