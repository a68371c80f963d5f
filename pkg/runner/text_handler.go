package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/casefile/pkg/domain"
)

// ContentRenderer transforms markdown before it is printed (e.g. glamour to ANSI).
type ContentRenderer func(string) (string, error)

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Choose can honour ctx cancellation.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

func (h *TextHandler) Present(ctx context.Context, view *domain.View) error {
	return h.print(RenderMarkdown(view))
}

func (h *TextHandler) Choose(ctx context.Context, choices []domain.Choice) (string, error) {
	h.initPump()

	for {
		fmt.Fprint(h.Writer, "> ")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			text := strings.TrimSpace(res.text)
			if text == "exit" || text == "quit" {
				return "", io.EOF
			}
			if id, ok := matchChoice(text, choices); ok {
				return id, nil
			}
			fmt.Fprintf(h.Writer, "Unknown choice %q. Enter a number between 1 and %d.\n", text, len(choices))
		}
	}
}

func (h *TextHandler) Verdict(ctx context.Context, v domain.Verdict) error {
	if v.IsCorrect {
		return h.print("## Case closed\n\nYou named the culprit.")
	}
	return h.print("## Case closed\n\nThe culprit walks free.")
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "\n[System] %s\n", msg)
	return err
}

func (h *TextHandler) print(markdown string) error {
	output := markdown
	if h.Renderer != nil {
		if rendered, err := h.Renderer(markdown); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimSpace(output))
	return err
}

// matchChoice accepts a 1-based position or a literal choice id.
func matchChoice(text string, choices []domain.Choice) (string, bool) {
	if n, err := strconv.Atoi(text); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1].ID, true
		}
		return "", false
	}
	for _, c := range choices {
		if c.ID == text {
			return c.ID, true
		}
	}
	return "", false
}

// RenderMarkdown describes a view as markdown.
func RenderMarkdown(v *domain.View) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", v.Session.State)
	if v.Audio != "" {
		fmt.Fprintf(&sb, "Now playing: `%s`\n\n", v.Audio)
	}
	for i, c := range v.Choices {
		fmt.Fprintf(&sb, "%d. %s (`%s`)\n", i+1, c.Label, c.ID)
	}
	if v.Terminal {
		sb.WriteString("The investigation is over.\n")
	}
	return sb.String()
}
