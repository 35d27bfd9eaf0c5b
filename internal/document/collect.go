package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Source describes where resume files come from. Exactly one of the fields is
// typically set; when several are set, all matches are combined.
type Source struct {
	Paths []string `mapstructure:"paths"`
	Dir   string   `mapstructure:"dir"`
	Glob  string   `mapstructure:"glob"`
}

// ErrNoFiles is returned when a source resolves to zero supported files.
var ErrNoFiles = errors.New("no supported resume files found")

// Resolve expands the source into a sorted, de-duplicated list of supported
// file paths. Sorting keeps the input order deterministic, which matters
// because ranking breaks score ties by first-seen order.
func Resolve(src Source) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	add := func(path string) {
		if !Supported(path) {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	for _, path := range src.Paths {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("resume file %s: %w", path, err)
		}
		if !Supported(path) {
			return nil, fmt.Errorf("resume file %s: %w", path, ErrUnsupportedFormat)
		}
		add(path)
	}

	if src.Dir != "" {
		entries, err := os.ReadDir(src.Dir)
		if err != nil {
			return nil, fmt.Errorf("read resume directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			add(filepath.Join(src.Dir, entry.Name()))
		}
	}

	if src.Glob != "" {
		matches, err := filepath.Glob(src.Glob)
		if err != nil {
			return nil, fmt.Errorf("resume glob %q: %w", src.Glob, err)
		}
		for _, match := range matches {
			add(match)
		}
	}

	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	sort.Strings(paths)
	return paths, nil
}
