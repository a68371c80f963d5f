package main

import (
	"github.com/aretw0/casefile/internal/cli"
	"github.com/spf13/cobra"
)

// buildApp loads config, creates the logger and wires the engine.
func buildApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := cli.NewLogger(cfg, debug)
	if err != nil {
		return nil, err
	}
	return cli.Build(cfg, logger)
}
