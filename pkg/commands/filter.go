package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/commands/options"
)

func addFilter(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "filter [tag|all|untagged]",
		ValidArgsFunction: completeTags(true),
		Short:             "Show or choose the remembered tag view",
		Long: `Without an argument, print the current view. With one, remember the view used by
"switcher ls", "switcher move" and the ui.`,
		Example: `
switcher filter
switcher filter work
switcher filter untagged
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			svc := rt.Service
			if len(args) == 1 {
				id, _, err := svc.ResolveTag(args[0])
				if err != nil {
					return output.HandleError(err)
				}
				if err := svc.SetFilterTag(ctx, id); err != nil {
					return output.HandleError(err)
				}
			}
			st := svc.State()
			if output.JSON {
				return output.Print(map[string]string{"filterTagId": st.FilterTagID})
			}
			fmt.Println(viewTitle(st))
			return nil
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
