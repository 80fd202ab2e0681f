// Package levels provides level loading functionality for HexPop.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
	"github.com/vovakirdan/hexpop/internal/games/hexpop/levels/formats"
)

// ErrNotFound is returned by LoadByID when no level carries the id.
var ErrNotFound = errors.New("level not found")

// MaxRows and MaxCols bound level grids.
const (
	MaxRows = 64
	MaxCols = 64
)

//go:embed builtin
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Rows     int
	Cols     int
	Colors   int // Palette size for generated shots once the grid runs low
	Cells    map[core.Hex]core.Color
	Metadata map[string]string
	FilePath string
}

// GridConfig returns a grid config sized for the level.
func (l *Level) GridConfig(radius float64) core.GridConfig {
	return core.GridConfig{Rows: l.Rows, Cols: l.Cols, Radius: radius}
}

// Validate checks the level is playable: a sane size, pieces inside the
// grid and every piece hanging from the top row.
func (l *Level) Validate() error {
	if l.ID == "" {
		return errors.New("missing id")
	}
	if l.Rows < 2 || l.Rows > MaxRows || l.Cols < 1 || l.Cols > MaxCols {
		return fmt.Errorf("size %dx%d out of range", l.Rows, l.Cols)
	}
	if len(l.Cells) == 0 {
		return errors.New("no pieces")
	}
	if l.Colors < 1 || l.Colors > int(core.ColorCount) {
		return fmt.Errorf("colors %d out of range", l.Colors)
	}

	g := core.NewHexGrid(l.GridConfig(1))
	for h, c := range l.Cells {
		if !g.IsValid(h) {
			return fmt.Errorf("piece at %v outside %dx%d grid", h, l.Rows, l.Cols)
		}
		g.Place(h, g.NewPiece(c))
	}
	if danger := g.LowestOccupiedRow(); danger >= l.Rows-1 {
		return fmt.Errorf("piece on danger row %d", danger)
	}
	if floating := core.NewSupportDetector(g).FindFloating(); len(floating) > 0 {
		return fmt.Errorf("%d unsupported pieces, first at %v", len(floating), floating[0])
	}
	return nil
}

// FileError reports a level file that failed to load.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a new level loader rooted at a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over an arbitrary file system.
func NewFSLoader(fsys fs.FS, root string) *Loader {
	return &Loader{Root: root, fsys: fsys}
}

// Builtin returns a loader over the levels compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return NewFSLoader(sub, "builtin")
}

// Scan loads every level file it finds and reports the files that failed.
// Levels are sorted by ID for deterministic ordering.
func (l *Loader) Scan() ([]Level, []*FileError, error) {
	var (
		levels []Level
		bad    []*FileError
	)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			bad = append(bad, &FileError{Path: p, Err: err})
			return nil
		}
		level, err := parse(data, p)
		if err != nil {
			bad = append(bad, &FileError{Path: p, Err: err})
			return nil
		}
		level.FilePath = filepath.Join(l.Root, filepath.FromSlash(p))
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, bad, nil
}

// LoadAll loads all valid level files, skipping the rest.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.Scan()
	return levels, err
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

	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// LoadFile loads and validates a single level file from disk.
func LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	level, err := parse(data, p)
	if err != nil {
		return Level{}, &FileError{Path: p, Err: err}
	}
	level.FilePath = p
	return level, nil
}

// parse decodes and validates one file; p picks the format.
func parse(data []byte, p string) (Level, error) {
	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, err
	}
	level := Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Rows:     parsed.Rows,
		Cols:     parsed.Cols,
		Colors:   parsed.Colors,
		Cells:    parsed.Cells,
		Metadata: parsed.Metadata,
	}
	if level.Name == "" {
		level.Name = level.ID
	}
	if err := level.Validate(); err != nil {
		return Level{}, err
	}
	return level, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".toml":
		return formats.ParseTOML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
