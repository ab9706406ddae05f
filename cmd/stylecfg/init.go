package main

import (
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/stylecfg/internal/style"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var force bool

	command := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default style config document",
		Long:  "Write a default style config document. The format follows the file extension (.json, .yaml, .yml or .toml).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			path := stylePath(args, settings)

			if err := writeDefaultStyleConfig(afero.NewOsFs(), path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	command.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return command
}

func writeDefaultStyleConfig(fsys afero.Fs, path string, force bool) error {
	format, err := style.FormatFromPath(path)
	if err != nil {
		return err
	}

	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return fmt.Errorf("afero.Exists() > %w", err)
	}
	if exists && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", path)
	}

	data, err := style.Encode(style.Default(), format)
	if err != nil {
		return fmt.Errorf("style.Encode() > %w", err)
	}
	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("afero.WriteFile() > %w", err)
	}

	loader, err := style.NewLoader(style.WithFs(fsys))
	if err != nil {
		return fmt.Errorf("style.NewLoader() > %w", err)
	}
	if _, err := loader.Load(path); err != nil {
		return fmt.Errorf("written document does not load: %w", err)
	}
	slog.Default().Debug("wrote default style config",
		slog.String("path", path),
		slog.String("format", format.String()),
	)
	return nil
}
