package options

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// VerboseOptions
type VerboseOptions struct {
	Verbose bool
}

func AddVerboseArg(cmd *cobra.Command, o *VerboseOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug details to stderr.")
}

// Logger returns the process logger, at debug level when verbose.
func (o *VerboseOptions) Logger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "switcher",
		Level:  log.WarnLevel,
	})
	if o.Verbose {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
	}
	return logger
}
