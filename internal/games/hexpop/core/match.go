package core

// MinMatchCount is the default smallest group that gets eliminated.
const MinMatchCount = 3

// MatchEngine finds same-color connected groups.
type MatchEngine struct {
	grid     *HexGrid
	minMatch int
}

// NewMatchEngine creates a match engine over grid. minMatch values below 1
// fall back to MinMatchCount.
func NewMatchEngine(grid *HexGrid, minMatch int) *MatchEngine {
	if minMatch < 1 {
		minMatch = MinMatchCount
	}
	return &MatchEngine{grid: grid, minMatch: minMatch}
}

// MinMatch returns the elimination threshold.
func (m *MatchEngine) MinMatch() int {
	return m.minMatch
}

// FindMatchGroup returns the cells connected to seed through pieces of the
// seed's exact color, seed first, in breadth-first order.
// An empty or invalid seed yields nil.
func (m *MatchEngine) FindMatchGroup(seed Hex) []Hex {
	start := m.grid.At(seed)
	if start == nil {
		return nil
	}
	color := start.Color

	visited := make([]bool, m.grid.Rows()*m.grid.Cols())
	visited[m.grid.index(seed)] = true
	queue := []Hex{seed}
	group := make([]Hex, 0, 8)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		group = append(group, cur)

		for _, n := range m.grid.Neighbors(cur) {
			if !m.grid.IsValid(n) {
				continue
			}
			i := m.grid.index(n)
			if visited[i] {
				continue
			}
			p := m.grid.cells[i]
			if p == nil || p.Color != color {
				continue
			}
			visited[i] = true
			queue = append(queue, n)
		}
	}
	return group
}

// Eligible reports whether a group is large enough to be eliminated.
func (m *MatchEngine) Eligible(group []Hex) bool {
	return len(group) >= m.minMatch
}
