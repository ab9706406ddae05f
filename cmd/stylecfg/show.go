package main

import (
	"fmt"

	"github.com/at-ishikawa/stylecfg/internal/style"
	"github.com/spf13/cobra"
)

func newShowCommand() *cobra.Command {
	var format string

	command := &cobra.Command{
		Use:   "show [path]",
		Short: "Print a style config with every default filled in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, settings, err := loadStyleConfig(args)
			if err != nil {
				return err
			}
			outputName := format
			if outputName == "" {
				outputName = settings.Output.Format
			}

			if outputName == "text" {
				displaySummary(cmd.OutOrStdout(), path, cfg)
				return nil
			}
			outputFormat, err := style.ParseFormat(outputName)
			if err != nil {
				return err
			}
			data, err := style.Encode(cfg, outputFormat)
			if err != nil {
				return fmt.Errorf("style.Encode() > %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	command.Flags().StringVar(&format, "format", "", "Output format (text, json, yaml or toml); defaults to output.format")

	return command
}
