package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/commands/options"
)

func addSwitch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "switch <account>",
		ValidArgsFunction: completeAccounts,
		Aliases:           []string{"use"},
		Short:             "Sign in as an account and open the chat page",
		Example: `
switcher switch work
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
			if err := rt.Service.Switch(ctx, a.Key); err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.Print(a)
			}
			fmt.Printf("Switched to %s\n", a.Name)
			return nil
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Drop the session cookie and open the login page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			if err := rt.Service.Logout(ctx); err != nil {
				return output.HandleError(err)
			}
			fmt.Println("Logged out")
			return nil
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addSync(topLevel *cobra.Command) {
	po := &options.PageOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy the name and plan from the page onto the signed-in account",
		Example: `
switcher sync --page ~/snapshots/claude.html
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			if po.Page == "" {
				return output.HandleError(fmt.Errorf("--page is required"))
			}
			profile, err := readProfile(po.Page)
			if err != nil {
				return output.HandleError(err)
			}
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			a, err := rt.Service.Sync(ctx, profile)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.Print(a)
			}
			fmt.Printf("Synced %s", a.Name)
			if a.Plan != "" {
				fmt.Printf(" (%s)", a.Plan)
			}
			fmt.Println()
			return nil
		},
	}
	options.AddPageArg(cmd, po)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
