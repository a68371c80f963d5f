package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`   ___               __ _ _`, "#f59e0b"},
	{`  / __|__ _ ___ ___ / _(_) |___`, "#f97316"},
	{` | (__/ _' (_-</ -_)  _| | / -_)`, "#ef4444"},
	{`  \___\__,_/__/\___|_| |_|_\___|`, "#dc2626"},
}

// PrintBanner writes the Casefile banner, colored when the terminal supports it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  audio investigations v"+version).Faint())
	fmt.Fprintln(w)
}
