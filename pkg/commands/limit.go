package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/switcher/pkg/commands/options"
	"tableflip.dev/switcher/pkg/detect"
	"tableflip.dev/switcher/pkg/printers"
	"tableflip.dev/switcher/pkg/timeutil"
)

func addLimit(topLevel *cobra.Command) {
	var (
		in      string
		at      string
		clearAt bool
	)

	cmd := &cobra.Command{
		Use:               "limit [account]",
		ValidArgsFunction: completeAccounts,
		Short:             "Show or record when usage limits reset",
		Long: `Without an account, list the accounts that are waiting on a reset.
With one, record its reset time: --in takes a window such as 5h or 90m,
--at a wall-clock time such as "5 PM". Without either flag the default
window of ` + timeutil.DefaultWindow + ` is used.`,
		Example: `
switcher limit
switcher limit work --in 3h
switcher limit work --at "11:30 PM"
switcher limit work --clear
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			svc := rt.Service

			if len(args) == 0 {
				limited := svc.Limited()
				if output.JSON {
					return output.Print(limited)
				}
				st := svc.State()
				pp := printers.PrettyPrint{}
				pp.TitleWithCount("Limited", len(limited))
				pp.Accounts(limited, st.TagMap, st.ActiveKey)
				return nil
			}

			a, err := svc.Resolve(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			var until time.Time
			now := time.Now()
			switch {
			case clearAt && (in != "" || at != ""):
				return output.HandleError(errors.New("--clear cannot be combined with --in or --at"))
			case in != "" && at != "":
				return output.HandleError(errors.New("use one of --in or --at"))
			case clearAt:
			case at != "":
				if until, err = detect.ResolveReset(at, now); err != nil {
					return output.HandleError(err)
				}
			default:
				d, _, err := timeutil.ParseWindow(in)
				if err != nil {
					return output.HandleError(err)
				}
				until = now.Add(d)
			}

			if err := svc.SetAvailableAt(ctx, a.Key, until); err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				a, _ = svc.Resolve(a.Key)
				return output.Print(a)
			}
			if until.IsZero() {
				fmt.Printf("Cleared limit on %s\n", a.Name)
				return nil
			}
			fmt.Printf("%s available again in %s (%s)\n", a.Name, timeutil.Until(now, until), until.Format(time.Kitchen))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Time until the reset, such as 5h, 90m or 1d.")
	cmd.Flags().StringVar(&at, "at", "", `Wall-clock reset time such as "5 PM"; the next occurrence is used.`)
	cmd.Flags().BoolVar(&clearAt, "clear", false, "Forget the reset time.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
