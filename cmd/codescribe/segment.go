package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"codescribe/internal/segment"
)

func newSegmentCmd(rf *rootFlags) *cobra.Command {
	var boundary string
	cmd := &cobra.Command{
		Use:   "segment <file>",
		Short: "Print the segmentation of a file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("boundary") {
				cfg.Boundary = boundary
			}
			b, err := segment.ParseBoundary(cfg.Boundary)
			if err != nil {
				return err
			}
			seg, err := segment.SegmentFile(cmd.Context(), args[0], segment.WithBoundary(b))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(seg)
		},
	}
	cmd.Flags().StringVar(&boundary, "boundary", "", "function end detection: node or descendants")
	return cmd
}
