package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/commands/options"
)

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Merge accounts from a JSON export",
		Long: `Read a JSON array of accounts and add the ones whose key is not registered yet.
Records without a string name or with a key shorter than 10 characters are skipped.`,
		Example: `
switcher import accounts.json
switcher export | ssh laptop switcher import -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return output.HandleError(err)
			}
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			n, err := rt.Service.Import(ctx, data)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.Print(map[string]int{"added": n})
			}
			if n == 0 {
				fmt.Println("No new accounts")
				return nil
			}
			fmt.Printf("Imported %d accounts\n", n)
			return nil
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write every account as pretty JSON",
		Example: `
switcher export > accounts.json
switcher export backup.json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			data, err := rt.Service.Export(ctx)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return os.WriteFile(args[0], append(data, '\n'), 0o600)
		},
	}

	topLevel.AddCommand(cmd)
}
