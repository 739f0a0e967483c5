// Command cusip-tool reads potential CUSIPs from stdin, one per line,
// validates them, and reports how many were good and bad. With --fix,
// identifiers whose only defect is an incorrect check digit are repaired
// and every good or fixed identifier is printed to stdout.
//
// The tool exits with zero status when no irrecoverable bad inputs
// remain, non-zero otherwise. This makes it usable as a bulk filter over
// a file of purported CUSIPs:
//
//	gzcat cusips-us.txt.gz | cusip-tool
//	cat suspect.txt | cusip-tool --fix > clean.txt
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/finwire/cusip/internal/stream"
)

var (
	fix     bool
	jobs    int
	verbose bool

	logger   *zap.Logger
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "cusip-tool",
	Short: "Validate and repair CUSIP identifiers read from stdin",
	Long: `cusip-tool reads candidate CUSIP identifiers from stdin, one per line,
and validates each against the CUSIP grammar and check-digit algorithm.

Without flags it counts good and bad inputs and prints a summary to
stderr. With --fix, inputs whose only defect is an incorrect check digit
are repaired, and every good or fixed identifier is printed to stdout;
inputs with a wrong length or an invalid character are omitted, since no
unambiguous repair exists for them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	p := &stream.Processor{
		Fix:  fix,
		Jobs: jobs,
		Out:  os.Stdout,
		Log:  logger,
	}

	tally, err := p.Run(cmd.Context(), os.Stdin)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, tally.Summary(fix))
	exitCode = tally.ExitCode(fix)
	return nil
}

func init() {
	rootCmd.Flags().BoolVar(&fix, "fix", false, "repair inputs whose only defect is an incorrect check digit")
	rootCmd.Flags().IntVar(&jobs, "jobs", 1, "number of concurrent validation workers (output order is unspecified above 1)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}
