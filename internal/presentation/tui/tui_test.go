package tui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "audio investigations v1.2.3")
	assert.Equal(t, len(bannerLines)+3, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("## MAIN_SELECTION\n\n1. Body")
	require.NoError(t, err)
	assert.Contains(t, out, "MAIN_SELECTION")
	assert.Contains(t, out, "Body")
}

func TestIsTerminal_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	assert.False(t, IsTerminal(r))
}
