package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/ordering"
	"tableflip.dev/switcher/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(switcher completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(switcher completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// storedState reads the records without touching the browser session.
func storedState() (store.Snapshot, bool) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return store.Snapshot{}, false
	}
	p, err := store.Load(cfg)
	if err != nil {
		return store.Snapshot{}, false
	}
	snap, err := p.Load(context.Background())
	if err != nil {
		return store.Snapshot{}, false
	}
	return snap, true
}

func completeAccounts(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	snap, ok := storedState()
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, a := range snap.Accounts {
		if strings.HasPrefix(strings.ToLower(a.Name), strings.ToLower(toComplete)) {
			names = append(names, a.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func completeTags(views bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		snap, ok := storedState()
		if !ok {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var names []string
		if views {
			names = append(names, ordering.All, ordering.Untagged)
		}
		for _, t := range snap.Tags {
			names = append(names, t.Name)
		}
		out := names[:0]
		for _, n := range names {
			if strings.HasPrefix(strings.ToLower(n), strings.ToLower(toComplete)) {
				out = append(out, n)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
