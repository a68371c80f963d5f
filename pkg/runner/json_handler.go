package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/casefile/pkg/domain"
)

// Event is one JSON line written by JSONHandler.
type Event struct {
	Type    string          `json:"type"`
	View    *domain.View    `json:"view,omitempty"`
	Verdict *domain.Verdict `json:"verdict,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ChoiceInput is one JSON line read by JSONHandler.
type ChoiceInput struct {
	ID string `json:"id"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Encoder *json.Encoder
	Decoder *json.Decoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Encoder: json.NewEncoder(w),
		Decoder: json.NewDecoder(r),
	}
}

func (h *JSONHandler) Present(ctx context.Context, view *domain.View) error {
	return h.Encoder.Encode(Event{Type: "view", View: view})
}

func (h *JSONHandler) Choose(ctx context.Context, choices []domain.Choice) (string, error) {
	var in ChoiceInput
	if err := h.Decoder.Decode(&in); err != nil {
		if err == io.EOF {
			return "", io.EOF
		}
		return "", fmt.Errorf("decode choice: %w", err)
	}
	return in.ID, nil
}

func (h *JSONHandler) Verdict(ctx context.Context, v domain.Verdict) error {
	return h.Encoder.Encode(Event{Type: "verdict", Verdict: &v})
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Event{Type: "system", Message: msg})
}
