package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a style config document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, settings, err := loadStyleConfig(args)
			if settings == nil {
				return err
			}
			if err != nil {
				color.New(color.FgRed).Fprintf(cmd.OutOrStdout(), "✗ %s: %s\n", path, describeError(err))
				return fmt.Errorf("validation failed: %w", err)
			}

			displaySummary(cmd.OutOrStdout(), path, cfg)
			return nil
		},
	}
}
