package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/commands/options"
	"tableflip.dev/switcher/pkg/printers"
)

func addTag(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
		Example: `
switcher tag add work --color "#2563eb"
switcher tag ls
`,
	}
	addTagAdd(cmd)
	addTagEdit(cmd)
	addTagRemove(cmd)
	addTagList(cmd)

	topLevel.AddCommand(cmd)
}

func addTagAdd(parent *cobra.Command) {
	to := &options.TagOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			t, err := rt.Service.AddTag(ctx, args[0], to.Color)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.Print(t)
			}
			fmt.Printf("Added tag %s\n", printers.TagColor(t.Color).Sprint("#"+t.Name))
			return nil
		},
	}
	options.AddTagArgs(cmd, to)
	options.AddOutputArg(cmd, output)

	parent.AddCommand(cmd)
}

func addTagEdit(parent *cobra.Command) {
	to := &options.TagOptions{}

	cmd := &cobra.Command{
		Use:               "edit <tag>",
		ValidArgsFunction: completeTags(false),
		Short:             "Rename or recolor a tag",
		Example: `
switcher tag edit work --name office --color "#16a34a"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			ids, err := resolveTags(rt.Service, args)
			if err != nil {
				return output.HandleError(err)
			}
			t, err := rt.Service.EditTag(ctx, ids[0], to.Name, to.Color)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.Print(t)
			}
			fmt.Printf("Updated tag %s\n", printers.TagColor(t.Color).Sprint("#"+t.Name))
			return nil
		},
	}
	options.AddTagArgs(cmd, to)
	options.AddTagRenameArg(cmd, to)
	options.AddOutputArg(cmd, output)

	parent.AddCommand(cmd)
}

func addTagRemove(parent *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:               "rm <tag>",
		ValidArgsFunction: completeTags(false),
		Aliases:           []string{"delete"},
		Short:             "Delete a tag; its accounts are kept",
		Args:              cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			ids, err := resolveTags(rt.Service, args)
			if err != nil {
				return output.HandleError(err)
			}
			t := rt.Service.State().TagMap[ids[0]]
			ok, err := co.Confirm(fmt.Sprintf("Delete tag %s", t.Name))
			if err != nil || !ok {
				return output.HandleError(err)
			}
			if err := rt.Service.DeleteTag(ctx, t.ID); err != nil {
				return output.HandleError(err)
			}
			fmt.Printf("Deleted tag %s\n", t.Name)
			return nil
		},
	}
	options.AddConfirmArg(cmd, co)
	options.AddOutputArg(cmd, output)

	parent.AddCommand(cmd)
}

func addTagList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tags with their account counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			st := rt.Service.State()
			if output.JSON {
				return output.Print(st.Tags)
			}
			pp := printers.PrettyPrint{}
			pp.Tags(st.Tags, st.Accounts)
			return nil
		},
	}
	options.AddOutputArg(cmd, output)

	parent.AddCommand(cmd)
}
