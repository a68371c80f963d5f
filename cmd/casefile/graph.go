package main

import (
	"fmt"

	"github.com/aretw0/casefile/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [session-id]",
	Short: "Export the session state machine as a Mermaid diagram",
	Long: `Prints the state machine as a Mermaid flowchart (graph TD).
With a session id, the session's current state and the states it passed through are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError("graph", runGraph(cmd, args))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	var overlay *graph.GraphOverlay
	if len(args) == 1 {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		s, err := app.Engine.Session(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		overlay = graph.OverlayFor(s)
	}
	fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(overlay))
	return nil
}
