package options

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
)

// PageOptions
type PageOptions struct {
	Page string
}

func AddPageArg(cmd *cobra.Command, o *PageOptions) {
	cmd.Flags().StringVarP(&o.Page, "page", "p", "",
		base.Wrap80("HTML snapshot of the open service page, kept up to date by a capture tool."))
}
