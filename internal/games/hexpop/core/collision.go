package core

import "math"

// DefaultContactFactor scales the sum of radii to get the contact distance.
// Values below 1 keep near misses from counting as hits.
const DefaultContactFactor = 0.9

// ContactKind says what a projectile touched.
type ContactKind uint8

const (
	ContactNone ContactKind = iota
	ContactTop              // Crossed the grid's top edge
	ContactPiece            // Touched an attached piece
)

// Contact is the outcome of a collision test.
type Contact struct {
	Kind   ContactKind
	Struck Hex // Row-0 cell under the projectile for ContactTop
}

// Attachment describes a projectile that became a grid piece.
type Attachment struct {
	ProjectileID ProjectileID
	Piece        *Piece
	At           Hex
	X, Y         float64 // Snapped world position
}

// CollisionResolver turns touching projectiles into grid pieces.
type CollisionResolver struct {
	grid    *HexGrid
	sim     *ProjectileSimulator
	events  *Dispatcher
	contact float64
}

// NewCollisionResolver wires a resolver to its grid and simulator.
// contactFactor outside (0, 1) falls back to DefaultContactFactor.
func NewCollisionResolver(grid *HexGrid, sim *ProjectileSimulator, events *Dispatcher, contactFactor float64) *CollisionResolver {
	if contactFactor <= 0 || contactFactor >= 1 {
		contactFactor = DefaultContactFactor
	}
	return &CollisionResolver{
		grid:    grid,
		sim:     sim,
		events:  events,
		contact: contactFactor,
	}
}

// Detect tests p against the top edge and then against nearby pieces.
func (r *CollisionResolver) Detect(p *Projectile) Contact {
	g := r.grid
	if g.Rows() == 0 || g.Cols() == 0 {
		return Contact{}
	}
	if p.Y-p.Radius <= g.TopY() {
		return Contact{Kind: ContactTop, Struck: H(0, g.ColumnAt(0, p.X))}
	}

	reach := r.contact * (p.Radius + g.Radius())
	reach2 := reach * reach
	cfg := g.Config()
	rowSpan := int(math.Ceil(reach/cfg.CellHeight())) + 1
	colSpan := int(math.Ceil(reach/cfg.CellWidth())) + 1
	center := g.WorldToGrid(p.X, p.Y)

	found := false
	var best Hex
	bestD := math.Inf(1)
	for row := center.Row - rowSpan; row <= center.Row+rowSpan; row++ {
		for col := center.Col - colSpan; col <= center.Col+colSpan; col++ {
			h := H(row, col)
			if g.At(h) == nil {
				continue
			}
			x, y := g.GridToWorld(h)
			d := (x-p.X)*(x-p.X) + (y-p.Y)*(y-p.Y)
			if d <= reach2 && d < bestD {
				best, bestD, found = h, d, true
			}
		}
	}
	if !found {
		return Contact{}
	}
	return Contact{Kind: ContactPiece, Struck: best}
}

// ResolveOne handles a single active projectile. It reports contacted=false
// when p touched nothing. On contact p leaves the simulator; att is non-nil
// when it was placed on the grid and nil when no free cell was left.
func (r *CollisionResolver) ResolveOne(p *Projectile) (att *Attachment, contacted bool) {
	if p == nil || !p.Active() {
		return nil, false
	}
	c := r.Detect(p)
	if c.Kind == ContactNone {
		return nil, false
	}

	stopped := r.sim.Stop(p.ID)
	if stopped == nil {
		return nil, false
	}

	cell, ok := r.attachCell(c, stopped.X, stopped.Y)
	if !ok {
		r.sim.Discard(stopped, ReasonNoAttachSlot)
		return nil, true
	}

	piece := r.grid.NewPiece(stopped.Color)
	if !r.grid.Place(cell, piece) {
		r.sim.Discard(stopped, ReasonNoAttachSlot)
		return nil, true
	}
	x, y := r.grid.GridToWorld(cell)
	stopped.X, stopped.Y = x, y

	r.events.attach(piece, cell)
	return &Attachment{
		ProjectileID: stopped.ID,
		Piece:        piece,
		At:           cell,
		X:            x,
		Y:            y,
	}, true
}

// Resolve runs ResolveOne for every active projectile in launch order and
// returns the attachments made.
func (r *CollisionResolver) Resolve() []Attachment {
	var out []Attachment
	for _, p := range r.sim.Active() {
		if att, _ := r.ResolveOne(p); att != nil {
			out = append(out, *att)
		}
	}
	return out
}

// attachCell picks the free cell a projectile at (x, y) snaps into.
func (r *CollisionResolver) attachCell(c Contact, x, y float64) (Hex, bool) {
	g := r.grid
	if c.Kind == ContactTop && g.IsEmpty(c.Struck) {
		return c.Struck, true
	}
	if h, ok := r.nearestFreeNeighbor(c.Struck, x, y); ok {
		return h, true
	}
	return r.nearestFree(x, y)
}

// nearestFreeNeighbor returns the empty neighbor of struck closest to (x, y).
// Ties keep neighbor-table order.
func (r *CollisionResolver) nearestFreeNeighbor(struck Hex, x, y float64) (Hex, bool) {
	var best Hex
	bestD := math.Inf(1)
	for _, n := range r.grid.Neighbors(struck) {
		if !r.grid.IsEmpty(n) {
			continue
		}
		nx, ny := r.grid.GridToWorld(n)
		if d := (nx-x)*(nx-x) + (ny-y)*(ny-y); d < bestD {
			best, bestD = n, d
		}
	}
	return best, !math.IsInf(bestD, 1)
}

// nearestFree scans the whole grid. Equidistant cells resolve to the first
// in row-major order.
func (r *CollisionResolver) nearestFree(x, y float64) (Hex, bool) {
	g := r.grid
	var best Hex
	bestD := math.Inf(1)
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			h := H(row, col)
			if !g.IsEmpty(h) {
				continue
			}
			cx, cy := g.GridToWorld(h)
			if d := (cx-x)*(cx-x) + (cy-y)*(cy-y); d < bestD {
				best, bestD = h, d
			}
		}
	}
	return best, !math.IsInf(bestD, 1)
}
