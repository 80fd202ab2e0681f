package core

import (
	"hash/fnv"
	"math"
)

// HeightFactor compresses the vertical spacing of rows so hex rows interlock.
const HeightFactor = 1.75

// GridConfig describes the grid dimensions and its placement in world space.
type GridConfig struct {
	Rows    int
	Cols    int
	Radius  float64 // Cell radius in world units
	OriginX float64 // World x of the grid's left edge
	OriginY float64 // World y of the grid's top edge

	// DebugOverlay asks renderers to draw empty cells. Ignored by the simulation.
	DebugOverlay bool
}

// DefaultGridConfig returns a 12x10 grid of radius-10 cells at the origin.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Rows:   12,
		Cols:   10,
		Radius: 10,
	}
}

// CellWidth is the horizontal distance between adjacent cell centers.
func (c GridConfig) CellWidth() float64 {
	return 2 * c.Radius
}

// CellHeight is the vertical distance between adjacent row centers.
func (c GridConfig) CellHeight() float64 {
	return HeightFactor * c.Radius
}

// HexGrid is a rows x cols array of cells, each empty or owning one Piece.
// Cells are stored in row-major order: index = row*Cols + col.
type HexGrid struct {
	cfg    GridConfig
	cells  []*Piece
	count  int
	nextID PieceID
}

// NewHexGrid creates an empty grid.
func NewHexGrid(cfg GridConfig) *HexGrid {
	if cfg.Rows < 0 {
		cfg.Rows = 0
	}
	if cfg.Cols < 0 {
		cfg.Cols = 0
	}
	return &HexGrid{
		cfg:   cfg,
		cells: make([]*Piece, cfg.Rows*cfg.Cols),
	}
}

// NewPiece allocates a detached piece with a fresh ID.
func (g *HexGrid) NewPiece(c Color) *Piece {
	g.nextID++
	return &Piece{ID: g.nextID, Color: c, Row: -1, Col: -1}
}

// Config returns the grid configuration.
func (g *HexGrid) Config() GridConfig {
	return g.cfg
}

// Rows returns the number of rows.
func (g *HexGrid) Rows() int { return g.cfg.Rows }

// Cols returns the number of columns.
func (g *HexGrid) Cols() int { return g.cfg.Cols }

// Radius returns the cell radius.
func (g *HexGrid) Radius() float64 { return g.cfg.Radius }

// TopY is the world y of the grid's top boundary.
func (g *HexGrid) TopY() float64 { return g.cfg.OriginY }

// Width is the world width spanned by the grid, including the odd-row shift.
func (g *HexGrid) Width() float64 {
	if g.cfg.Cols == 0 {
		return 0
	}
	w := float64(g.cfg.Cols) * g.cfg.CellWidth()
	if g.cfg.Rows > 1 {
		w += g.cfg.CellWidth() / 2
	}
	return w
}

// Height is the world height spanned by the grid.
func (g *HexGrid) Height() float64 {
	if g.cfg.Rows == 0 {
		return 0
	}
	return float64(g.cfg.Rows-1)*g.cfg.CellHeight() + 2*g.cfg.Radius
}

func (g *HexGrid) index(h Hex) int {
	return h.Row*g.cfg.Cols + h.Col
}

// IsValid reports whether h lies inside the grid.
func (g *HexGrid) IsValid(h Hex) bool {
	return h.Row >= 0 && h.Row < g.cfg.Rows && h.Col >= 0 && h.Col < g.cfg.Cols
}

// IsEmpty reports whether h is a valid, unoccupied cell.
// Out-of-bounds cells are never empty.
func (g *HexGrid) IsEmpty(h Hex) bool {
	if !g.IsValid(h) {
		return false
	}
	return g.cells[g.index(h)] == nil
}

// At returns the piece at h, or nil.
func (g *HexGrid) At(h Hex) *Piece {
	if !g.IsValid(h) {
		return nil
	}
	return g.cells[g.index(h)]
}

// Place stores p at h and records the coordinates on the piece.
// It returns false without side effects if h is invalid or occupied,
// or if p is already attached elsewhere.
func (g *HexGrid) Place(h Hex, p *Piece) bool {
	if p == nil || !g.IsEmpty(h) || p.Attached() {
		return false
	}
	g.cells[g.index(h)] = p
	p.Row, p.Col = h.Row, h.Col
	p.owned = true
	g.count++
	return true
}

// Remove clears h and detaches the piece that occupied it.
// Removing an empty or invalid cell is a no-op returning nil.
func (g *HexGrid) Remove(h Hex) *Piece {
	if !g.IsValid(h) {
		return nil
	}
	i := g.index(h)
	p := g.cells[i]
	if p == nil {
		return nil
	}
	g.cells[i] = nil
	p.detach()
	g.count--
	return p
}

// Clear empties every cell.
func (g *HexGrid) Clear() {
	for i, p := range g.cells {
		if p != nil {
			p.detach()
			g.cells[i] = nil
		}
	}
	g.count = 0
}

// Count returns the number of occupied cells.
func (g *HexGrid) Count() int {
	return g.count
}

// Occupied returns every occupied cell in row-major order.
func (g *HexGrid) Occupied() []Hex {
	out := make([]Hex, 0, g.count)
	for i, p := range g.cells {
		if p != nil {
			out = append(out, H(i/g.cfg.Cols, i%g.cfg.Cols))
		}
	}
	return out
}

// ColorsPresent returns the distinct colors on the grid in palette order.
func (g *HexGrid) ColorsPresent() []Color {
	var seen [ColorCount]bool
	for _, p := range g.cells {
		if p != nil && p.Color.Valid() {
			seen[p.Color] = true
		}
	}
	var out []Color
	for c, ok := range seen {
		if ok {
			out = append(out, Color(c))
		}
	}
	return out
}

// LowestOccupiedRow returns the largest occupied row index, or -1 when empty.
func (g *HexGrid) LowestOccupiedRow() int {
	for i := len(g.cells) - 1; i >= 0; i-- {
		if g.cells[i] != nil {
			return i / g.cfg.Cols
		}
	}
	return -1
}

// Clone returns a deep copy. Pieces are copied, keeping IDs and colors.
func (g *HexGrid) Clone() *HexGrid {
	c := NewHexGrid(g.cfg)
	for i, p := range g.cells {
		if p != nil {
			cp := *p
			c.cells[i] = &cp
		}
	}
	c.count = g.count
	c.nextID = g.nextID
	return c
}

// Hash returns an FNV-1a digest of the cell contents.
func (g *HexGrid) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 1)
	for _, p := range g.cells {
		if p == nil {
			buf[0] = 0xFF
		} else {
			buf[0] = byte(p.Color)
		}
		h.Write(buf) //nolint:errcheck // hash.Hash never errors
	}
	return h.Sum64()
}

// GridToWorld returns the world position of a cell center.
func (g *HexGrid) GridToWorld(h Hex) (x, y float64) {
	cw := g.cfg.CellWidth()
	x = g.cfg.OriginX + float64(h.Col)*cw + float64(h.Row&1)*cw/2 + g.cfg.Radius
	y = g.cfg.OriginY + float64(h.Row)*g.cfg.CellHeight() + g.cfg.Radius
	return x, y
}

// WorldToGrid returns the cell whose center is closest to (x, y).
// The direct inverse is only an estimate near row boundaries, so the 3x3
// block around it is searched; ties keep the first candidate in row-major
// order. Near the edges the result is clamped to the grid: a valid cell in
// the block wins even when an out-of-bounds cell is closer, so for points
// outside the grid it is not the true nearest cell. Points far outside the
// grid, with no valid cell in the block, return an invalid cell.
func (g *HexGrid) WorldToGrid(x, y float64) Hex {
	est := g.estimate(x, y)

	best, bestValid := est, Hex{}
	bestD, bestValidD := math.Inf(1), math.Inf(1)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			h := H(est.Row+dr, est.Col+dc)
			cx, cy := g.GridToWorld(h)
			d := (cx-x)*(cx-x) + (cy-y)*(cy-y)
			if d < bestD {
				best, bestD = h, d
			}
			if g.IsValid(h) && d < bestValidD {
				bestValid, bestValidD = h, d
			}
		}
	}
	if !math.IsInf(bestValidD, 1) {
		return bestValid
	}
	return best
}

func (g *HexGrid) estimate(x, y float64) Hex {
	if g.cfg.Radius <= 0 {
		return H(0, 0)
	}
	row := int(math.Round((y - g.cfg.OriginY - g.cfg.Radius) / g.cfg.CellHeight()))
	cw := g.cfg.CellWidth()
	col := int(math.Round((x - g.cfg.OriginX - g.cfg.Radius - float64(row&1)*cw/2) / cw))
	return H(row, col)
}

// ColumnAt returns the column of row whose center is nearest to world x,
// clamped to the grid.
func (g *HexGrid) ColumnAt(row int, x float64) int {
	if g.cfg.Cols == 0 {
		return 0
	}
	cw := g.cfg.CellWidth()
	col := int(math.Round((x - g.cfg.OriginX - g.cfg.Radius - float64(row&1)*cw/2) / cw))
	if col < 0 {
		return 0
	}
	if col >= g.cfg.Cols {
		return g.cfg.Cols - 1
	}
	return col
}

// Neighbor offsets (dRow, dCol) by row parity.
var (
	evenNeighbors = [6]Hex{{-1, -1}, {-1, 0}, {0, -1}, {0, 1}, {1, -1}, {1, 0}}
	oddNeighbors  = [6]Hex{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, 0}, {1, 1}}
)

// Neighbors returns the six adjacent cells of h. Results may lie outside the
// grid; callers filter with IsValid.
func (g *HexGrid) Neighbors(h Hex) [6]Hex {
	offsets := &evenNeighbors
	if h.Odd() {
		offsets = &oddNeighbors
	}
	var out [6]Hex
	for i, d := range offsets {
		out[i] = H(h.Row+d.Row, h.Col+d.Col)
	}
	return out
}

// ShiftDown moves every piece down by rows, dropping pieces pushed past the
// last row. rows must be even so that row parity, and with it adjacency, is
// preserved. It returns the pieces that fell off the bottom.
func (g *HexGrid) ShiftDown(rows int) []*Piece {
	if rows <= 0 || rows%2 != 0 {
		return nil
	}
	var dropped []*Piece
	for r := g.cfg.Rows - 1; r >= 0; r-- {
		for c := 0; c < g.cfg.Cols; c++ {
			p := g.Remove(H(r, c))
			if p == nil {
				continue
			}
			dst := H(r+rows, c)
			if !g.Place(dst, p) {
				dropped = append(dropped, p)
			}
		}
	}
	return dropped
}
