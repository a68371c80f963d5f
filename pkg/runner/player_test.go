package runner

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aretw0/casefile/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPlayer(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPlayer(&buf, 0)
	require.NoError(t, p.Play(context.Background(), "intro.mp3"))
	assert.Equal(t, "♪ intro.mp3\n", buf.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	slow := NewLogPlayer(nil, time.Hour)
	assert.ErrorIs(t, slow.Play(ctx, "long.mp3"), context.Canceled)
}

func TestNewCommandPlayer(t *testing.T) {
	p, err := NewCommandPlayer("mpv --no-video {audio}")
	require.NoError(t, err)
	assert.Equal(t, "mpv", p.Name)
	assert.Equal(t, []string{"--no-video", "{audio}"}, p.Args)

	_, err = NewCommandPlayer("   ")
	assert.Error(t, err)
}

func TestCommandPlayer_MissingBinary(t *testing.T) {
	p := &CommandPlayer{Name: "casefile-no-such-player"}
	assert.Error(t, p.Play(context.Background(), "intro.mp3"))
}

func TestMatchChoice(t *testing.T) {
	choices := []domain.Choice{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}

	id, ok := matchChoice("2", choices)
	assert.True(t, ok)
	assert.Equal(t, "b", id)

	id, ok = matchChoice("a", choices)
	assert.True(t, ok)
	assert.Equal(t, "a", id)

	_, ok = matchChoice("0", choices)
	assert.False(t, ok)
	_, ok = matchChoice("c", choices)
	assert.False(t, ok)
}

func TestRenderMarkdown(t *testing.T) {
	v := &domain.View{
		Session: &domain.Session{State: domain.StateSubSelection},
		Choices: []domain.Choice{{ID: "m1", Label: "Footprints"}},
	}
	assert.Equal(t, "## SUB_SELECTION\n\n1. Footprints (`m1`)\n", RenderMarkdown(v))
}
