package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/app"
	"tableflip.dev/switcher/pkg/commands/options"
	"tableflip.dev/switcher/pkg/page"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AccountOptions{}
	po := &options.PageOptions{}
	current := false

	cmd := &cobra.Command{
		Use:   "add [name] [key]",
		Short: "Add an account",
		Example: `
switcher add Work sk-ant-sid01-...
switcher add Work sk-ant-sid01-... --plan "Pro plan" --tag work
switcher add --current --page ~/snapshots/claude.html
`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			svc := rt.Service

			in := app.NewAccount{Name: ao.Name, Plan: ao.Plan}
			if len(args) > 0 {
				in.Name = args[0]
			}
			if len(args) > 1 {
				in.Key = args[1]
			}
			if current {
				var profile page.Profile
				if po.Page != "" {
					if profile, err = readProfile(po.Page); err != nil {
						return output.HandleError(err)
					}
				}
				captured, err := svc.Capture(ctx, profile)
				if err != nil {
					return output.HandleError(err)
				}
				in.Key = captured.Key
				if in.Name == "" {
					in.Name = captured.Name
				}
				if in.Plan == "" {
					in.Plan = captured.Plan
				}
			}
			if in.TagIDs, err = resolveTags(svc, ao.Tags); err != nil {
				return output.HandleError(err)
			}

			a, err := svc.AddAccount(ctx, in)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.Print(a)
			}
			fmt.Printf("Added %s (%s)\n", a.Name, a.MaskedKey())
			return nil
		},
	}
	options.AddAccountArgs(cmd, ao)
	options.AddPageArg(cmd, po)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&current, "current", false,
		"Use the key of the signed-in session; name and plan come from --page when given.")

	topLevel.AddCommand(cmd)
}

func readProfile(path string) (page.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return page.Profile{}, err
	}
	defer f.Close()
	return page.ReadProfile(f)
}
