package commands

import (
	"github.com/spf13/cobra"

	tuiapp "tableflip.dev/switcher/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive account list",
		Example: `
switcher ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return err
			}
			return tuiapp.Run(cmd.Context(), rt.Service)
		},
	}

	topLevel.AddCommand(cmd)
}
