package main

import (
	"github.com/spf13/cobra"

	"codescribe/internal/segment"
	"codescribe/internal/watcher"
)

func newWatchCmd(rf *rootFlags) *cobra.Command {
	var jf jobFlags
	cmd := &cobra.Command{
		Use:   "watch [inputs...]",
		Short: "Process inputs, then re-process files as they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := rf.loadConfig(cmd)
			if err != nil {
				return err
			}
			jf.apply(cmd, cfg)

			a, err := newApp(ctx, cfg, jf.dryRun)
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
			if err := a.run(ctx, files); err != nil {
				return err
			}

			opts := cfg.ListOptions()
			filter := func(p string) bool { return segment.Supported(p) && opts.Match(p) }
			w, err := watcher.New(inputs, filter, watcher.DefaultDebounce, a.logger)
			if err != nil {
				return err
			}
			defer w.Close()
			go w.Start(ctx)

			a.logger.Printf("watching %d inputs", len(inputs))
			for {
				select {
				case <-ctx.Done():
					return nil
				case batch := <-w.Events():
					if err := a.run(ctx, batch); err != nil {
						if ctx.Err() != nil {
							return nil
						}
						a.logger.Printf("run failed: %v", err)
					}
				}
			}
		},
	}
	jf.register(cmd)
	return cmd
}
