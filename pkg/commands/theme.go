package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/app"
	"tableflip.dev/switcher/pkg/commands/options"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or set the ui color theme",
		ValidArgs: []string{app.ThemeDark, app.ThemeLight, "toggle"},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			svc := rt.Service
			switch {
			case len(args) == 0:
			case args[0] == "toggle":
				if _, err := svc.ToggleTheme(ctx); err != nil {
					return output.HandleError(err)
				}
			default:
				if err := svc.SetTheme(ctx, args[0]); err != nil {
					return output.HandleError(err)
				}
			}
			theme := svc.State().Theme
			if output.JSON {
				return output.Print(map[string]string{"theme": theme})
			}
			if theme == "" {
				theme = app.ThemeDark + " (default)"
			}
			fmt.Println(theme)
			return nil
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
