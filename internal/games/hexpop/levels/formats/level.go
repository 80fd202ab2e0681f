// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

// DefaultColors is the projectile palette size used when a level names none.
const DefaultColors = 4

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Rows     int
	Cols     int
	Colors   int
	Cells    map[core.Hex]core.Color
	Metadata map[string]string
}

// Size is the grid size block shared by every format.
type Size struct {
	Rows int `yaml:"rows" toml:"rows"`
	Cols int `yaml:"cols" toml:"cols"`
}

// Cell is a single explicitly placed piece.
type Cell struct {
	Row   int    `yaml:"row" toml:"row"`
	Col   int    `yaml:"col" toml:"col"`
	Color string `yaml:"color" toml:"color"`
}

// document is the decoded form common to all formats.
type document struct {
	ID       string
	Name     string
	Size     Size
	Colors   int
	Grid     string
	Cells    []Cell
	Metadata map[string]string
}

// build turns a decoded document into a Level. The grid text is read first;
// explicit cells are layered on top. A missing size is taken from the grid
// text.
func (d document) build() (Level, error) {
	lvl := Level{
		ID:       d.ID,
		Name:     d.Name,
		Rows:     d.Size.Rows,
		Cols:     d.Size.Cols,
		Colors:   d.Colors,
		Cells:    make(map[core.Hex]core.Color),
		Metadata: d.Metadata,
	}
	if lvl.Colors <= 0 {
		lvl.Colors = DefaultColors
	}

	if d.Grid != "" {
		cells, rows, cols, ok := core.ParseASCII(d.Grid)
		if !ok {
			return Level{}, errors.New("grid: unknown color character")
		}
		for h, c := range cells {
			lvl.Cells[h] = c
		}
		if lvl.Rows == 0 {
			lvl.Rows = rows
		}
		if lvl.Cols == 0 {
			lvl.Cols = cols
		}
	}

	for _, c := range d.Cells {
		color, ok := core.ParseColor(c.Color)
		if !ok {
			return Level{}, fmt.Errorf("cell (%d,%d): unknown color %q", c.Row, c.Col, c.Color)
		}
		lvl.Cells[core.H(c.Row, c.Col)] = color
	}
	return lvl, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}
