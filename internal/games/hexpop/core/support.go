package core

// SupportDetector finds pieces with no path to the top row.
// It keeps no state between calls.
type SupportDetector struct {
	grid *HexGrid
}

// NewSupportDetector creates a detector over grid.
func NewSupportDetector(grid *HexGrid) *SupportDetector {
	return &SupportDetector{grid: grid}
}

// Supported marks every occupied cell reachable from an occupied row-0 cell.
// The result is indexed row-major.
func (s *SupportDetector) Supported() []bool {
	g := s.grid
	marked := make([]bool, g.Rows()*g.Cols())
	if g.Rows() == 0 {
		return marked
	}

	queue := make([]Hex, 0, g.Cols())
	for c := 0; c < g.Cols(); c++ {
		h := H(0, c)
		if g.At(h) != nil {
			marked[g.index(h)] = true
			queue = append(queue, h)
		}
	}

	for len(queue) > 0 {
		cur := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, n := range g.Neighbors(cur) {
			if !g.IsValid(n) {
				continue
			}
			i := g.index(n)
			if marked[i] || g.cells[i] == nil {
				continue
			}
			marked[i] = true
			queue = append(queue, n)
		}
	}
	return marked
}

// FindFloating returns every occupied cell not connected to row 0, in
// row-major order.
func (s *SupportDetector) FindFloating() []Hex {
	marked := s.Supported()
	var floating []Hex
	for i, p := range s.grid.cells {
		if p != nil && !marked[i] {
			floating = append(floating, H(i/s.grid.Cols(), i%s.grid.Cols()))
		}
	}
	return floating
}
