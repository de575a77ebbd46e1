package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/commands/options"
)

func addMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "move <account> <position>",
		ValidArgsFunction: completeAccounts,
		Short:             "Move an account within the current view",
		Long: `Place the account at a 1-based position of the list shown by "switcher ls".
Only the order of the current view changes; other tag views keep theirs.`,
		Example: `
switcher move work 1
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 {
				return output.HandleError(fmt.Errorf("position must be a number from 1, got %q", args[1]))
			}
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			a, err := rt.Service.Resolve(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			return output.HandleError(rt.Service.Move(ctx, a.Key, pos-1))
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
