package main

import (
	"fmt"

	"github.com/aretw0/casefile/internal/validator"
	"github.com/aretw0/casefile/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <catalog>",
	Short: "Check investigation content for authoring mistakes",
	Long: `Loads a catalog file or directory and reports broken ownership references,
major branches with fewer than two minor branches, podcasts without exactly one
correct accusation, and warns about odd major branch counts.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError("validation failed", runValidate(cmd, args[0]))
		fmt.Fprintln(cmd.OutOrStdout(), "Catalog is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, path string) error {
	catalog, err := file.LoadCatalog(path)
	if err != nil {
		return err
	}
	report := validator.ValidateCatalog(catalog)
	for _, w := range report.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	return report.Err()
}
