package runner

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// Player plays one audio clip and returns when it finished or failed.
type Player interface {
	Play(ctx context.Context, audio string) error
}

// LogPlayer simulates playback by printing the clip and waiting Delay.
type LogPlayer struct {
	Writer io.Writer
	Delay  time.Duration
}

// NewLogPlayer creates a LogPlayer.
func NewLogPlayer(w io.Writer, delay time.Duration) *LogPlayer {
	if w == nil {
		w = io.Discard
	}
	return &LogPlayer{Writer: w, Delay: delay}
}

func (p *LogPlayer) Play(ctx context.Context, audio string) error {
	fmt.Fprintf(p.Writer, "♪ %s\n", audio)
	if p.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.Delay):
		return nil
	}
}

// AudioPlaceholder is replaced by the clip reference in CommandPlayer args.
const AudioPlaceholder = "{audio}"

// CommandPlayer runs an external program (e.g. mpv, ffplay) per clip.
// If no argument contains AudioPlaceholder, the clip is appended.
type CommandPlayer struct {
	Name string
	Args []string
}

// NewCommandPlayer parses a command line such as "mpv --no-video {audio}".
func NewCommandPlayer(cmdline string) (*CommandPlayer, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty player command")
	}
	return &CommandPlayer{Name: fields[0], Args: fields[1:]}, nil
}

func (p *CommandPlayer) Play(ctx context.Context, audio string) error {
	args := make([]string, 0, len(p.Args)+1)
	substituted := false
	for _, a := range p.Args {
		if strings.Contains(a, AudioPlaceholder) {
			a = strings.ReplaceAll(a, AudioPlaceholder, audio)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, audio)
	}

	out, err := exec.CommandContext(ctx, p.Name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", p.Name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
