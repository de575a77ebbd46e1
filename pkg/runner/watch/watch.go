// Package watch follows a saved copy of the service page and marks the active
// account when a usage-limit banner appears on it.
package watch

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/switcher/pkg/detect"
	"tableflip.dev/switcher/pkg/notify"
	"tableflip.dev/switcher/pkg/page"
)

// Watch runs the limit detector against Page until the context is done.
type Watch struct {
	// Page is the HTML snapshot kept current by a capture tool.
	Page   string
	Marker detect.Marker

	Cooldown time.Duration
	Toast    time.Duration
	Out      io.Writer
	Log      *log.Logger
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Page == "" {
		return errors.New("watch: no page to follow")
	}
	if w.Marker == nil {
		return errors.New("watch: no account service")
	}
	logger := w.Log
	if logger == nil {
		logger = log.Default()
	}

	changes, err := page.Watch(ctx, w.Page, logger)
	if err != nil {
		return err
	}
	d := detect.New(detect.Options{
		Source:   func() (detect.Node, error) { return page.ParseFile(w.Page) },
		Marker:   w.Marker,
		Notifier: notify.New(w.Out, w.Toast),
		Logger:   logger,
		Cooldown: w.Cooldown,
	})

	logger.Info("watching for usage limits", "page", w.Page)
	err = d.Run(ctx, changes)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
