package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/commands/options"
	"tableflip.dev/switcher/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	po := &options.PageOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Mark the signed-in account when a usage limit banner shows up",
		Long: `Follow an HTML snapshot of the open service page. When it shows a usage limit
banner, the reset time is recorded on the account last switched to and a notice
is printed. Runs until interrupted.`,
		Example: `
switcher watch --page ~/snapshots/claude.html
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			if po.Page == "" {
				return fmt.Errorf("--page is required")
			}
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			det := rt.Config.Detector()
			w := watch.Watch{
				Page:     po.Page,
				Marker:   rt.Service,
				Cooldown: det.Cooldown,
				Toast:    det.Toast,
				Out:      cmd.ErrOrStderr(),
				Log:      rt.Log,
			}
			return w.Do(ctx)
		},
	}
	options.AddPageArg(cmd, po)

	topLevel.AddCommand(cmd)
}
