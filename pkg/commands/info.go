package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about where accounts and the session cookie are stored.",
		Example: `
switcher info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config: rt.Config,
				State:  rt.Service.State(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
