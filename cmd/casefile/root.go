package main

import (
	"fmt"
	"os"

	"github.com/aretw0/casefile/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "casefile",
	Short: "Casefile runs interactive audio investigations",
	Long: `Casefile drives listener sessions through an audio investigation:
intro, branch selection, sub-branches, accusation and verdict.

Settings come from CASEFILE_* environment variables; flags override them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("content", "", "Catalog file or directory (default: built-in test investigation)")
	rootCmd.PersistentFlags().String("store", "", "Session store: memory, file, redis or sqlite")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// loadConfig reads the environment and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("content") {
		cfg.ContentPath, _ = flags.GetString("content")
	}
	if flags.Changed("store") {
		cfg.StoreDriver, _ = flags.GetString("store")
	}
	return cfg, cfg.Validate()
}

func exitOnError(prefix string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
		os.Exit(1)
	}
}
