package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/app"
	"tableflip.dev/switcher/pkg/commands/options"
)

func addEdit(topLevel *cobra.Command) {
	ao := &options.AccountOptions{}

	cmd := &cobra.Command{
		Use:               "edit <account>",
		ValidArgsFunction: completeAccounts,
		Short:             "Rename an account or change its plan or tags",
		Example: `
switcher edit work --name "Work (old)"
switcher edit work --tag work --tag shared
switcher edit work --no-tags
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			svc := rt.Service
			a, err := svc.Resolve(args[0])
			if err != nil {
				return output.HandleError(err)
			}

			var edit app.AccountEdit
			if cmd.Flags().Changed("name") {
				edit.Name = &ao.Name
			}
			if cmd.Flags().Changed("plan") {
				edit.Plan = &ao.Plan
			}
			switch {
			case ao.NoTags:
				none := []string{}
				edit.TagIDs = &none
			case cmd.Flags().Changed("tag"):
				ids, err := resolveTags(svc, ao.Tags)
				if err != nil {
					return output.HandleError(err)
				}
				edit.TagIDs = &ids
			}

			updated, err := svc.EditAccount(ctx, a.Key, edit)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.Print(updated)
			}
			fmt.Printf("Updated %s\n", updated.Name)
			return nil
		},
	}
	options.AddAccountArgs(cmd, ao)
	options.AddNoTagsArg(cmd, ao)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
