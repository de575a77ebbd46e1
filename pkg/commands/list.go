package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/commands/options"
	"tableflip.dev/switcher/pkg/printers"
	"tableflip.dev/switcher/pkg/state"
)

func addList(topLevel *cobra.Command) {
	var (
		showKey bool
		filter  string
		tag     string
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List accounts in view order",
		Example: `
switcher ls
switcher ls --tag work --filter ali
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			svc := rt.Service
			if cmd.Flags().Changed("tag") {
				id, _, err := svc.ResolveTag(tag)
				if err != nil {
					return output.HandleError(err)
				}
				// Only for this listing; the remembered filter stays.
				svc.Store.SetState(state.FilterTag(id))
			}
			svc.SetFilter(filter)

			visible := svc.Visible()
			if output.JSON {
				return output.Print(visible)
			}
			st := svc.State()
			pp := printers.PrettyPrint{ShowKey: showKey}
			pp.TitleWithCount(viewTitle(st), len(visible))
			pp.Accounts(visible, st.TagMap, st.ActiveKey)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showKey, "show-key", "k", false, "Show masked keys.")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only accounts whose name contains this text.")
	cmd.Flags().StringVar(&tag, "tag", "", "View to list: a tag, all or untagged. Defaults to the remembered filter.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func viewTitle(st state.State) string {
	switch st.FilterTagID {
	case "", "all":
		return "All accounts"
	case "untagged":
		return "Untagged"
	}
	if t, ok := st.TagMap[st.FilterTagID]; ok {
		return "#" + t.Name
	}
	return st.FilterTagID
}
