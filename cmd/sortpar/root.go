package main

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lanrat/sortpar"
	"github.com/lanrat/sortpar/internal/config"
	"github.com/lanrat/sortpar/internal/errors"
	"github.com/lanrat/sortpar/internal/lineio"
	"github.com/lanrat/sortpar/internal/log"
)

// errDisorder is returned when --check finds a line out of order
var errDisorder = errors.New("disorder")

// newRootCmd returns the sortpar command. Input, output and error streams
// default to the process streams and can be replaced with SetIn, SetOut and SetErr.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sortpar [flags] [FILE...]",
		Short: "Sort lines of text files in parallel",
		Long: `Write the sorted concatenation of all FILEs to standard output.

With no FILE, or when FILE is -, read standard input. Options can also be
set with SORTPAR_* environment variables or a config file (--config).`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.Load(cmd.Flags(), args)
			if err != nil {
				var cfgErr *config.ConfigError
				if errors.As(err, &cfgErr) {
					return errors.WithStackTraceAndPrefix(err, "invalid options (see sortpar --help)")
				}
				return err
			}
			logger, err := log.New(cmd.ErrOrStderr(), opts.LogLevel)
			if err != nil {
				return err
			}
			if err := run(cmd.InOrStdin(), cmd.OutOrStdout(), opts, logger); err != nil {
				if !errors.Is(err, errDisorder) {
					logger.Debug(errors.PrintErrorWithStackTrace(err))
				}
				return err
			}
			return nil
		},
	}

	// -h selects human numeric sort, so help only has a long form
	cmd.Flags().Bool("help", false, "help for sortpar")
	config.DefineFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive(config.StrategyFlags()...)
	return cmd
}

// run reads every input, then either checks or sorts the lines
func run(stdin io.Reader, stdout io.Writer, opts *config.Options, logger *logrus.Logger) error {
	reader := &lineio.Reader{
		Stdin:      stdin,
		Decompress: opts.Decompress,
		Logger:     logger,
	}

	start := time.Now()
	lines, err := reader.ReadLines(opts.Files)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"inputs":   len(opts.Files),
		"lines":    len(lines),
		"duration": time.Since(start),
	}).Debug("read inputs")

	if opts.Check {
		if i := sortpar.FirstDisorder(lines, opts.Sort); i >= 0 {
			return errors.Errorf("%w at line %d: %s", errDisorder, i+1, lines[i])
		}
		return nil
	}

	execConfig := opts.ExecConfig()
	start = time.Now()
	sorted := sortpar.SortWithConfig(lines, opts.Sort, execConfig)
	logger.WithFields(logrus.Fields{
		"lines":    len(sorted),
		"workers":  execConfig.NumWorkers,
		"strategy": opts.Sort.Strategy,
		"duration": time.Since(start),
	}).Debug("sorted lines")

	if opts.Output == "" {
		return lineio.WriteLines(stdout, sorted)
	}
	return lineio.WriteFile(opts.Output, sorted)
}
