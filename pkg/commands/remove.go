package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/commands/options"
)

func addRemove(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:               "rm <account>",
		ValidArgsFunction: completeAccounts,
		Aliases:           []string{"delete"},
		Short:             "Delete an account",
		Example: `
switcher rm work
switcher rm work -y
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			a, err := rt.Service.Resolve(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			ok, err := co.Confirm(fmt.Sprintf("Delete %s", a.Name))
			if err != nil || !ok {
				return output.HandleError(err)
			}
			if err := rt.Service.DeleteAccount(ctx, a.Key); err != nil {
				return output.HandleError(err)
			}
			fmt.Printf("Deleted %s\n", a.Name)
			return nil
		},
	}
	options.AddConfirmArg(cmd, co)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addClear(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every account; tags are kept",
		Example: `
switcher clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			n := len(rt.Service.State().Accounts)
			if n == 0 {
				fmt.Println("No accounts")
				return nil
			}
			ok, err := co.Confirm(fmt.Sprintf("Delete all %d accounts", n))
			if err != nil || !ok {
				return output.HandleError(err)
			}
			if err := rt.Service.ClearAccounts(ctx); err != nil {
				return output.HandleError(err)
			}
			fmt.Printf("Deleted %d accounts\n", n)
			return nil
		},
	}
	options.AddConfirmArg(cmd, co)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
