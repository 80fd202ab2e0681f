package core

// ColorSource yields palette indices. *math/rand.Rand satisfies it, as does
// SimpleRNG.
type ColorSource interface {
	Intn(n int) int
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *SimpleRNG) Float() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Populate fills the top rows of g with random colors drawn from the first
// colors palette entries. Occupied cells are left alone. It returns the
// number of pieces placed.
func Populate(g *HexGrid, rows, colors int, src ColorSource) int {
	palette := Palette(colors)
	if rows > g.Rows() {
		rows = g.Rows()
	}
	placed := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < g.Cols(); col++ {
			h := H(row, col)
			if !g.IsEmpty(h) {
				continue
			}
			if g.Place(h, g.NewPiece(palette[src.Intn(len(palette))])) {
				placed++
			}
		}
	}
	return placed
}

// NextColor picks a projectile color among those still on the grid so every
// shot can make progress. An empty grid draws from the first fallback
// palette entries.
func NextColor(g *HexGrid, src ColorSource, fallback int) Color {
	present := g.ColorsPresent()
	if len(present) == 0 {
		present = Palette(fallback)
	}
	return present[src.Intn(len(present))]
}
