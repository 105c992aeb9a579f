package main

import (
	"log"

	"github.com/spf13/cobra"

	"codescribe/internal/config"
)

type rootFlags struct {
	config  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	var rf rootFlags
	cmd := &cobra.Command{
		Use:   "codescribe",
		Short: "Generate per-function suggestions for source files",
		Long: `codescribe segments Python files into functions (TypeScript files are
sent whole) and sends each unit to a text-generation model together with an
instruction, writing the replies to one output file per input.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&rf.config, "config", "c", "", "config file (default "+config.DefaultFile+" when present)")
	cmd.PersistentFlags().BoolVarP(&rf.verbose, "verbose", "v", false, "log extracted code and source locations")

	cmd.AddCommand(
		newRunCmd(&rf),
		newSegmentCmd(&rf),
		newWatchCmd(&rf),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig reads the config file and environment; command flags are
// applied by the caller.
func (rf *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rf.config)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rf.verbose
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	flags := log.LstdFlags
	if cfg.Verbose {
		flags |= log.Lshortfile
	}
	return log.New(log.Writer(), "", flags)
}
