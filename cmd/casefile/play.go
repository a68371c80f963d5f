package main

import (
	"context"
	"errors"
	"os"

	"github.com/aretw0/casefile"
	"github.com/aretw0/casefile/internal/cli"
	"github.com/aretw0/casefile/internal/presentation/tui"
	"github.com/aretw0/casefile/pkg/runner"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [podcast-id]",
	Short: "Play an investigation in the terminal",
	Long: `Creates a session for the podcast (or resumes one with --session) and drives it
to the verdict. Clips are printed by default; use --player to run an external
audio player, e.g. --player "mpv --no-video {audio}".`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError("play", runPlay(cmd, args))
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("session", "", "Resume an existing session instead of creating one")
	playCmd.Flags().String("player", "", "External player command; {audio} is replaced by the clip")
	playCmd.Flags().Duration("delay", 0, "Simulated clip length when no player is set")
	playCmd.Flags().Bool("json", false, "Emit JSON-Lines views and read JSON choices")
}

func runPlay(cmd *cobra.Command, args []string) error {
	app, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	sessionID, _ := cmd.Flags().GetString("session")
	jsonMode, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if sessionID == "" {
		podcastID := defaultPodcast(app)
		if len(args) > 0 {
			podcastID = args[0]
		}
		s, err := app.Engine.CreateSession(ctx, podcastID)
		if err != nil {
			return err
		}
		sessionID = s.ID
	}

	opts := []runner.Option{}
	if jsonMode {
		opts = append(opts, runner.WithInputHandler(runner.NewJSONHandler(cmd.InOrStdin(), out)))
	} else {
		var hopts []runner.TextHandlerOption
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(out, casefile.Version)
			hopts = append(hopts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
		}
		opts = append(opts, runner.WithInputHandler(runner.NewTextHandler(cmd.InOrStdin(), out, hopts...)))
		cli.PrintSystemMessage(out, "Session '%s' active.", sessionID)
	}

	player, err := buildPlayer(cmd)
	if err != nil {
		return err
	}
	opts = append(opts, runner.WithPlayer(player))

	err = runner.New(app.Engine, opts...).Run(ctx, sessionID)
	if errors.Is(err, context.Canceled) && ctx.Signal() != nil {
		if !jsonMode {
			cli.PrintSystemMessage(out, "Interrupted. Resume with --session %s", sessionID)
		}
		return nil
	}
	return err
}

func buildPlayer(cmd *cobra.Command) (runner.Player, error) {
	if line, _ := cmd.Flags().GetString("player"); line != "" {
		return runner.NewCommandPlayer(line)
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	return runner.NewLogPlayer(cmd.ErrOrStderr(), delay), nil
}

// defaultPodcast picks the only podcast of the catalog, or the first one.
func defaultPodcast(app *cli.App) string {
	podcasts := app.Content.Catalog().Podcasts
	if len(podcasts) == 0 {
		return ""
	}
	return podcasts[0].ID
}
