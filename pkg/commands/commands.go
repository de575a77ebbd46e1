package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/switcher/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	verbose = &options.VerboseOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "switcher",
		Short: base.Wrap80("Keep several accounts for one web service and switch the browser session between them."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddVerboseArg(cmd, verbose)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addClear(topLevel)
	addImport(topLevel)
	addExport(topLevel)
	addTag(topLevel)
	addFilter(topLevel)
	addMove(topLevel)
	addSwitch(topLevel)
	addLogout(topLevel)
	addSync(topLevel)
	addLimit(topLevel)
	addWatch(topLevel)
	addTheme(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addMCP(topLevel)
	addUI(topLevel)
	addCompletions(topLevel)
}
