package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/icongen/generator"
)

// RunGenerate processes explicit change events, or detected ones when none are given
func RunGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := LoadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	events, err := ParseEvents(cmd)
	if err != nil {
		return err
	}
	srv, err := generator.New(cfg, NewLogger(cmd))
	if err != nil {
		return err
	}

	var summary *generator.Summary
	if len(events) > 0 {
		summary, err = srv.Apply(ctx, events)
	} else {
		summary, err = srv.Generate(ctx)
	}
	if summary != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "generate: sources=%d written=%d deleted=%d warnings=%d failed=%d\n",
			len(summary.Reports), summary.Written, summary.Deleted, summary.Warnings, summary.Failed)
	}
	return err
}

// RunClean removes the output and state directories
func RunClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := LoadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	srv, err := generator.New(cfg, NewLogger(cmd))
	if err != nil {
		return err
	}
	if err = srv.Clean(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "clean: removed %s and %s\n", cfg.OutputDir, cfg.StateDir)
	return nil
}
