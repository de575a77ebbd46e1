package options

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
)

// AccountOptions
type AccountOptions struct {
	Name   string
	Plan   string
	Tags   []string
	NoTags bool
}

func AddAccountArgs(cmd *cobra.Command, o *AccountOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "",
		"Display name of the account.")
	cmd.Flags().StringVar(&o.Plan, "plan", "",
		base.Wrap80(`Plan label, for example "Pro plan". Pro, Team and Free plans get a badge.`))
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil,
		"Tag name or id, repeatable.")
}

func AddNoTagsArg(cmd *cobra.Command, o *AccountOptions) {
	cmd.Flags().BoolVar(&o.NoTags, "no-tags", false,
		"Remove every tag from the account.")
}

// TagOptions
type TagOptions struct {
	Name  string
	Color string
}

func AddTagArgs(cmd *cobra.Command, o *TagOptions) {
	cmd.Flags().StringVar(&o.Color, "color", "",
		`Tag color as #rrggbb. Defaults to gray.`)
}

func AddTagRenameArg(cmd *cobra.Command, o *TagOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "",
		"New tag name.")
}
