package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/steipete/sweetcookie"

	"tableflip.dev/switcher/pkg/app"
	"tableflip.dev/switcher/pkg/session"
	"tableflip.dev/switcher/pkg/store"
)

// runtime is everything a command needs, built from the config.
type runtime struct {
	Config  store.Config
	Service *app.Service
	Log     *log.Logger
}

func newRuntime(ctx context.Context) (*runtime, error) {
	logger := verbose.Logger()
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	cookie := cfg.Cookie()
	browsers := make([]sweetcookie.Browser, 0, len(cookie.Browsers))
	for _, b := range cookie.Browsers {
		browsers = append(browsers, sweetcookie.Browser(b))
	}

	svc := &app.Service{
		Persistence: p,
		Session: session.NewCookieSession(session.CookieOptions{
			URL:      cookie.URL,
			Name:     cookie.Name,
			Domain:   cookie.Domain,
			Jar:      cookie.Jar,
			Browsers: browsers,
		}),
		Opener:   session.SystemOpener{},
		Log:      logger,
		URL:      cookie.URL,
		Debounce: cfg.Detector().Debounce,
	}
	if err := svc.Load(ctx); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	logger.Debug("loaded", "path", cfg.BasePath(), "accounts", len(svc.State().Accounts))
	return &runtime{Config: cfg, Service: svc, Log: logger}, nil
}

// resolveTags maps tag names or ids to ids.
func resolveTags(svc *app.Service, queries []string) ([]string, error) {
	ids := make([]string, 0, len(queries))
	for _, q := range queries {
		id, t, err := svc.ResolveTag(q)
		if err != nil {
			return nil, err
		}
		if t.ID == "" {
			return nil, fmt.Errorf("%q is a view, not a tag", q)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
