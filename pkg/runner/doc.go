/*
Package runner drives a single investigation session from a terminal or a pipe.

It is a driving collaborator: it reads the session View, plays audio through a
Player, asks the listener for selections through an IOHandler and calls the
engine operations. It never touches session state directly.

Audio that fails to play is treated as finished, and InvalidState rejections
caused by duplicate or late signals are ignored.

# Key Components

  - Runner: the play loop.
  - Player: LogPlayer simulates playback, CommandPlayer shells out to an external player.
  - TextHandler: interactive prompts, optionally rendered with glamour.
  - JSONHandler: JSON-Lines views on output, choices on input.

# Usage

	r := runner.New(engine,
		runner.WithPlayer(runner.NewLogPlayer(os.Stderr, 0)),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx, sessionID); err != nil {
		log.Fatal(err)
	}
*/
package runner
