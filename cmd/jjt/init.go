package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/jjt/internal/config"
	"github.com/satococoa/jjt/internal/errors"
)

// NewInitCommand creates the init command definition
func NewInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize configuration file",
		Description: "Creates a .jjt.yml configuration file in the repository root " +
			"holding the default settings.",
		Action: initCommand,
	}
}

func initCommand(_ context.Context, cmd *cli.Command) error {
	root, err := repoRootFromFlags(cmd)
	if err != nil {
		return err
	}

	configPath := filepath.Join(root, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return errors.ConfigAlreadyExists(configPath)
	}

	if err := config.SaveConfig(root, config.Default()); err != nil {
		return errors.ConfigWriteFailed(configPath, err)
	}

	w := outWriter(cmd)
	fmt.Fprintf(w, "Configuration file created: %s\n", configPath)
	fmt.Fprintln(w, "Edit this file to customize jjt.")
	return nil
}
