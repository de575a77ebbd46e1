// Package notify shows short-lived notifications on a terminal.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 4 * time.Second

// Toaster shows at most one toast at a time. A toast requested while another
// is visible is dropped, never queued.
type Toaster struct {
	Out      io.Writer
	Duration time.Duration

	// AfterFunc schedules the toast's removal. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func())

	mu      sync.Mutex
	visible bool
}

// New returns a Toaster writing to out (stderr when nil).
func New(out io.Writer, d time.Duration) *Toaster {
	if out == nil {
		out = os.Stderr
	}
	if d <= 0 {
		d = DefaultDuration
	}
	return &Toaster{Out: out, Duration: d}
}

var toastColor = color.New(color.FgWhite, color.BgRed, color.Bold)

// Show displays msg unless a toast is already visible. It reports whether
// msg was shown.
func (t *Toaster) Show(msg string) bool {
	t.mu.Lock()
	if t.visible {
		t.mu.Unlock()
		return false
	}
	t.visible = true
	t.mu.Unlock()

	fmt.Fprintln(t.Out, toastColor.Sprintf(" %s ", msg))

	after := t.AfterFunc
	if after == nil {
		after = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	d := t.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	after(d, t.dismiss)
	return true
}

// Visible reports whether a toast is currently shown.
func (t *Toaster) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

func (t *Toaster) dismiss() {
	t.mu.Lock()
	t.visible = false
	t.mu.Unlock()
}
