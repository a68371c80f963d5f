package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/aretw0/casefile/internal/compiler"
	"github.com/aretw0/casefile/pkg/adapters/memory"
	"github.com/aretw0/casefile/pkg/domain"
)

// LoadCatalog reads investigation content from path. path is either a single
// .yaml/.yml/.json document or a directory whose documents are merged in name order.
func LoadCatalog(path string) (domain.Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to open content: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("failed to list content directory: %w", err)
		}
		files = files[:0]
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, ok := compiler.FormatFromExt(filepath.Ext(entry.Name())); ok {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(files)
		if len(files) == 0 {
			return domain.Catalog{}, fmt.Errorf("no catalog documents in %s", path)
		}
	}

	parser := compiler.NewParser()
	parts := make([]domain.Catalog, 0, len(files))
	for _, file := range files {
		format, ok := compiler.FormatFromExt(filepath.Ext(file))
		if !ok {
			return domain.Catalog{}, fmt.Errorf("unsupported catalog file %s", file)
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("failed to read %s: %w", file, err)
		}
		cat, err := parser.Parse(data, format)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("%s: %w", file, err)
		}
		parts = append(parts, cat)
	}
	return compiler.Merge(parts...), nil
}

// NewContentStore loads the catalog at path into an in-memory ContentStore.
func NewContentStore(path string) (*memory.ContentStore, error) {
	cat, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	return memory.NewContentStore(cat)
}
