package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/casefile/pkg/adapters/file"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/aretw0/casefile/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const podcastYAML = `
podcasts:
  - id: lighthouse
    title: The Lighthouse
    intro_audio: intro.mp3
    accusation_intro_audio: accuse.mp3
    major_branches:
      - id: lamp
        title: The Lamp Room
        intro_audio: lamp.mp3
        minor_branches:
          - {id: lamp-1, title: Lens, audio: lens.mp3}
          - {id: lamp-2, title: Log, audio: log.mp3}
      - id: cellar
        title: The Cellar
        intro_audio: cellar.mp3
        minor_branches:
          - {id: cellar-1, title: Barrels, audio: barrels.mp3}
          - {id: cellar-2, title: Rope, audio: rope.mp3}
    accusations:
      - {id: keeper, suspect_name: The Keeper, audio: keeper.mp3, is_correct: true}
      - {id: sailor, suspect_name: The Sailor, audio: sailor.mp3}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadCatalog_SingleFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "lighthouse.yaml", podcastYAML)

	cat, err := file.LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, cat.MajorBranches, 2)
	assert.Len(t, cat.MinorBranches, 4)

	store, err := file.NewContentStore(path)
	require.NoError(t, err)
	ports.RunContentStoreContract(t, store, cat)
}

func TestLoadCatalog_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", podcastYAML)
	writeFile(t, dir, "b.json", `{"podcasts":[{"id":"second","title":"Second"}]}`)
	writeFile(t, dir, "README.md", "ignored")

	store, err := file.NewContentStore(dir)
	require.NoError(t, err)

	p, err := store.GetPodcast(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, "Second", p.Title)

	_, err = store.GetPodcast(context.Background(), "lighthouse")
	assert.NoError(t, err)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := file.LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = file.LoadCatalog(t.TempDir())
	assert.ErrorContains(t, err, "no catalog documents")

	dangling := writeFile(t, t.TempDir(), "bad.yaml", `
podcasts:
  - id: p
    major_branches:
      - id: m
        minor_branches:
          - {id: dup}
          - {id: dup}
`)
	_, err = file.NewContentStore(dangling)
	assert.Error(t, err)
	assert.False(t, domain.IsBenign(err))
}
