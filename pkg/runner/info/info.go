package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/switcher/pkg/state"
	"tableflip.dev/switcher/pkg/store"
)

type Info struct {
	Config store.Config
	State  state.State
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("SWITCHER_CONFIG_PATH"); override != "" {
		fmt.Fprintln(out, "SWITCHER_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Fprintln(out, "SWITCHER_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	cookie := n.Config.Cookie()
	det := n.Config.Detector()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Config.path:", n.Config.BasePath())
	tbl.AddRow("Cookie.url:", cookie.URL)
	tbl.AddRow("Cookie.name:", cookie.Name)
	tbl.AddRow("Cookie.jar:", cookie.Jar)
	if len(cookie.Browsers) > 0 {
		tbl.AddRow("Cookie.browsers:", fmt.Sprint(cookie.Browsers))
	}
	tbl.AddRow("Detector.cooldown:", det.Cooldown)
	tbl.AddRow("Detector.toast:", det.Toast)
	tbl.AddRow("Detector.debounce:", det.Debounce)
	fmt.Fprintln(out, tbl)

	st := n.State
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Accounts: %d\n", len(st.Accounts))
	fmt.Fprintf(out, "Tags:     %d\n", len(st.Tags))
	if a, ok := st.AccountMap[st.ActiveKey]; ok {
		fmt.Fprintf(out, "Active:   %s\n", a.Name)
	} else if st.ActiveKey != "" {
		fmt.Fprintln(out, "Active:   unsaved session")
	} else {
		fmt.Fprintln(out, "Active:   not logged in")
	}
	return nil
}
