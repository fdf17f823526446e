package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taoyao-code/ubx-gateway/internal/logging"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
)

// options 全局参数
type options struct {
	format     string
	logLevel   string
	maxPayload int
	nav        bool

	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "ubxdump",
		Short: "Decode and build u-blox UBX frames",
		Long: `ubxdump decodes UBX frames from a file, a hex string or a live serial
receiver, and builds frames for sending to a receiver.

Text output summarises ACK-ACK/NAK, MON-VER and MGA-ACK messages and
prints other frames in debug form; NAV frames are skipped unless --nav
is given. json and yaml output carry the full frame view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown format %q (text|json|yaml)", opts.format)
			}
			opts.logger = logging.NewCLILogger(opts.logLevel)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.format, "format", "f", formatText, "output format: text|json|yaml")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level for decode diagnostics (stderr)")
	pf.IntVar(&opts.maxPayload, "max-payload", ubx.DefaultMaxPayload, "largest payload accepted while scanning")
	pf.BoolVar(&opts.nav, "nav", false, "print NAV frames in text output")

	rootCmd.AddCommand(
		fileCmd(opts),
		hexCmd(opts),
		serialCmd(opts),
		encodeCmd(opts),
		catalogCmd(opts),
	)
	return rootCmd
}
