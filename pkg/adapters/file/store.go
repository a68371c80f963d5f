// Package file provides filesystem adapters: a JSON session store and the catalog loader.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/casefile/pkg/domain"
)

// Store implements ports.SessionStore using the local filesystem.
// It stores sessions as JSON files in a configured directory.
// The compare-and-swap is guarded by an in-process mutex, so a directory
// must not be shared by several processes.
type Store struct {
	BasePath string

	mu sync.Mutex
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".casefile/sessions".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".casefile", "sessions")
	}
	return &Store{BasePath: basePath}
}

func (f *Store) path(sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("sessionID cannot be empty")
	}
	if strings.ContainsAny(sessionID, `/\`) || sessionID == "." || sessionID == ".." {
		return "", fmt.Errorf("invalid sessionID %q", sessionID)
	}
	return filepath.Join(f.BasePath, sessionID+".json"), nil
}

// Save persists the session if the stored version equals expectedVersion.
// Writes go to a temp file that is renamed into place.
func (f *Store) Save(ctx context.Context, session *domain.Session, expectedVersion int64) error {
	filePath, err := f.path(session.ID)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read(filePath)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		if expectedVersion != 0 {
			return err
		}
	case err != nil:
		return err
	case expectedVersion == 0 || current.Version != expectedVersion:
		return domain.ErrVersionConflict
	}

	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(f.BasePath, session.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (f *Store) read(filePath string) (*domain.Session, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.SelectedSubBranches == nil {
		session.SelectedSubBranches = domain.SubSelections{}
	}
	return &session, nil
}

// Load retrieves the session from its JSON file.
func (f *Store) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	filePath, err := f.path(sessionID)
	if err != nil {
		return nil, err
	}
	return f.read(filePath)
}

// Delete removes the session file.
func (f *Store) Delete(ctx context.Context, sessionID string) error {
	filePath, err := f.path(sessionID)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	err = os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// List returns all stored session IDs in lexical order.
func (f *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && filepath.Ext(name) == ".json" {
			sessions = append(sessions, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(sessions)
	return sessions, nil
}
