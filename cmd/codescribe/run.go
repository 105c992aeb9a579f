package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd(rf *rootFlags) *cobra.Command {
	var jf jobFlags
	cmd := &cobra.Command{
		Use:   "run [inputs...]",
		Short: "Process files and directories once",
		Long: `Each input is a file or a directory. Directories contribute their
immediate files (no recursion), filtered by --include and --exclude.
Explicit file inputs are always processed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.loadConfig(cmd)
			if err != nil {
				return err
			}
			jf.apply(cmd, cfg)

			a, err := newApp(cmd.Context(), cfg, jf.dryRun)
			if err != nil {
				return err
			}
			defer a.Close()

			inputs, err := a.inputs(args)
			if err != nil {
				return err
			}
			files, err := a.files(inputs)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), files)
		},
	}
	jf.register(cmd)
	return cmd
}
