package core

// CascadeResult lists what one cascade removed.
type CascadeResult struct {
	Group      []Hex          // Match group found at the seed, removed or not
	Eliminated []RemovedPiece // Match group pieces, if it was big enough
	Fallen     []RemovedPiece // Pieces cut off from the top row
}

// Removed returns the total number of pieces removed.
func (r CascadeResult) Removed() int {
	return len(r.Eliminated) + len(r.Fallen)
}

// CascadeController runs match elimination followed by floating removal.
type CascadeController struct {
	grid    *HexGrid
	match   *MatchEngine
	support *SupportDetector
	events  *Dispatcher
}

// NewCascadeController wires a controller to its collaborators.
func NewCascadeController(grid *HexGrid, match *MatchEngine, support *SupportDetector, events *Dispatcher) *CascadeController {
	return &CascadeController{
		grid:    grid,
		match:   match,
		support: support,
		events:  events,
	}
}

// Run settles the grid after a piece landed at seed. Groups smaller than
// the match threshold leave the grid untouched. The whole run completes
// before it returns, so no caller ever sees a half-settled grid.
func (c *CascadeController) Run(seed Hex) CascadeResult {
	var res CascadeResult
	res.Group = c.match.FindMatchGroup(seed)
	if !c.match.Eligible(res.Group) {
		return res
	}

	res.Eliminated = c.removeAll(res.Group)
	c.events.eliminate(res.Eliminated)

	res.Fallen = c.DropFloating()
	return res
}

// DropFloating removes unsupported pieces until none remain and reports
// them in one batch. It is also used after level loads and row pushes.
func (c *CascadeController) DropFloating() []RemovedPiece {
	var fallen []RemovedPiece
	for {
		floating := c.support.FindFloating()
		if len(floating) == 0 {
			break
		}
		fallen = append(fallen, c.removeAll(floating)...)
	}
	if len(fallen) > 0 {
		c.events.floatingRemoved(fallen)
	}
	return fallen
}

func (c *CascadeController) removeAll(cells []Hex) []RemovedPiece {
	out := make([]RemovedPiece, 0, len(cells))
	for _, h := range cells {
		if p := c.grid.Remove(h); p != nil {
			out = append(out, RemovedPiece{Piece: p, At: h})
		}
	}
	return out
}
