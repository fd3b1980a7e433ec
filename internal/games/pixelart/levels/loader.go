// Package levels loads extra Pixel Art levels from YAML files on disk.
// This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aprende-arcade/internal/games/pixelart/core"
	"github.com/vovakirdan/aprende-arcade/internal/games/pixelart/levels/formats"
)

// Level is a catalog entry together with the file it came from.
type Level struct {
	core.LevelDef
	FilePath string
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root   string
	Logger *log.Logger
}

// NewLoader creates a new level loader. A nil logger discards output.
func NewLoader(root string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{Root: root, Logger: logger}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID; when two files
// share an ID only the first in walk order is kept.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	seen := make(map[string]string)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(formats.FormatExtensions(), ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			l.Logger.Debug("skipping level file", "path", path, "error", err)
			return nil
		}
		if first, dup := seen[level.ID]; dup {
			l.Logger.Debug("skipping duplicate level id", "id", level.ID, "path", path, "first", first)
			return nil
		}
		seen[level.ID] = path

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	def, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	return Level{LevelDef: def, FilePath: path}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// Defs strips file information so the levels can be appended to a catalog.
func Defs(levels []Level) []core.LevelDef {
	defs := make([]core.LevelDef, len(levels))
	for i, lvl := range levels {
		defs[i] = lvl.LevelDef
	}
	return defs
}

// Catalog returns the built-in catalog extended with the levels under dir.
// An empty dir yields the built-in catalog.
func Catalog(dir string, logger *log.Logger) (*core.Catalog, error) {
	if dir == "" {
		return core.NewCatalog(), nil
	}
	lvls, err := NewLoader(dir, logger).LoadAll()
	if err != nil {
		return core.NewCatalog(), err
	}
	return core.NewCatalog(Defs(lvls)...), nil
}
