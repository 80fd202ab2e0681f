package core_test

import (
	"testing"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

type resolverFixture struct {
	grid     *core.HexGrid
	sim      *core.ProjectileSimulator
	rec      *core.Recorder
	resolver *core.CollisionResolver
}

func newResolverFixture(g *core.HexGrid) *resolverFixture {
	events := core.NewDispatcher()
	rec := &core.Recorder{}
	events.Subscribe(rec)
	sim := core.NewProjectileSimulator(events)
	return &resolverFixture{
		grid:     g,
		sim:      sim,
		rec:      rec,
		resolver: core.NewCollisionResolver(g, sim, events, core.DefaultContactFactor),
	}
}

// park places a motionless projectile at (x, y) with the grid's radius.
func (f *resolverFixture) park(x, y float64, c core.Color) *core.Projectile {
	return f.sim.Launch(core.Launch{
		X: x, Y: y, Radius: f.grid.Radius(), Color: c,
		Physics: core.NewPhysicsConfig(core.WithBounds(core.Bounds{MaxX: 1000, MaxY: 1000})),
	})
}

func TestDetect(t *testing.T) {
	g := testGrid(4, 5)
	g.Place(core.H(0, 2), g.NewPiece(core.ColorRed))
	f := newResolverFixture(g)

	tests := []struct {
		name   string
		x, y   float64
		kind   core.ContactKind
		struck core.Hex
	}{
		{"far below", 50, 70, core.ContactNone, core.Hex{}},
		{"touching piece", 48, 26, core.ContactPiece, core.H(0, 2)},
		{"near miss", 50, 29, core.ContactNone, core.Hex{}},
		{"top edge", 12, 9, core.ContactTop, core.H(0, 0)},
		{"top edge right side", 88, 4, core.ContactTop, core.H(0, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := f.park(tc.x, tc.y, core.ColorBlue)
			defer f.sim.Remove(p.ID)

			c := f.resolver.Detect(p)
			if c.Kind != tc.kind {
				t.Fatalf("Detect() kind = %v, expected %v", c.Kind, tc.kind)
			}
			if c.Kind != core.ContactNone && c.Struck != tc.struck {
				t.Errorf("Detect() struck = %v, expected %v", c.Struck, tc.struck)
			}
		})
	}
}

func TestAttachToNearestNeighbor(t *testing.T) {
	g := testGrid(4, 5)
	g.Place(core.H(0, 2), g.NewPiece(core.ColorRed))
	f := newResolverFixture(g)
	p := f.park(48, 26, core.ColorBlue)

	att, contacted := f.resolver.ResolveOne(p)

	if !contacted || att == nil {
		t.Fatalf("ResolveOne() = (%v, %v), expected an attachment", att, contacted)
	}
	if att.At != core.H(1, 1) {
		t.Errorf("attached at %v, expected (1,1)", att.At)
	}
	if x, y := g.GridToWorld(att.At); att.X != x || att.Y != y {
		t.Errorf("snapped to (%v, %v), expected cell center (%v, %v)", att.X, att.Y, x, y)
	}
	if piece := g.At(core.H(1, 1)); piece == nil || piece.Color != core.ColorBlue || piece != att.Piece {
		t.Error("grid does not hold the attached blue piece")
	}
	if f.sim.Len() != 0 {
		t.Errorf("simulator still holds %d projectiles", f.sim.Len())
	}
	if p.State != core.StateStopped {
		t.Errorf("projectile State = %v, expected stopped", p.State)
	}
	if len(f.rec.Attached) != 1 || f.rec.Attached[0].At != core.H(1, 1) {
		t.Errorf("attach events = %+v", f.rec.Attached)
	}
}

func TestAttachAtTopRow(t *testing.T) {
	g := testGrid(4, 5)
	f := newResolverFixture(g)
	p := f.park(71, 8, core.ColorGreen)

	att, _ := f.resolver.ResolveOne(p)

	if att == nil || att.At != core.H(0, 3) {
		t.Fatalf("ResolveOne() = %+v, expected attach at (0,3)", att)
	}
}

func TestAttachFallsBackToNearestFreeCell(t *testing.T) {
	g := gridFrom(t, `
. R R
 R R R
R R R`)
	f := newResolverFixture(g)
	// (2,2) is hit; none of its neighbors are free.
	p := f.park(50, 58, core.ColorYellow)

	att, _ := f.resolver.ResolveOne(p)

	if att == nil || att.At != core.H(0, 0) {
		t.Fatalf("ResolveOne() = %+v, expected attach at (0,0)", att)
	}
}

func TestFallbackTiesResolveRowMajor(t *testing.T) {
	g := gridFrom(t, `
. .
 R R
R R`)
	f := newResolverFixture(g)
	// Equidistant from (2,0) and (2,1), and from (0,0) and (0,1).
	p := f.park(20, 55, core.ColorYellow)

	att, _ := f.resolver.ResolveOne(p)

	if att == nil || att.At != core.H(0, 0) {
		t.Fatalf("ResolveOne() = %+v, expected attach at (0,0)", att)
	}
}

func TestNoAttachSlot(t *testing.T) {
	g := gridFrom(t, `
R G
 B Y`)
	f := newResolverFixture(g)
	before := g.Hash()
	p := f.park(20, 40, core.ColorPurple)

	att, contacted := f.resolver.ResolveOne(p)

	if att != nil || !contacted {
		t.Fatalf("ResolveOne() = (%v, %v), expected (nil, true)", att, contacted)
	}
	if p.State != core.StateDestroyed {
		t.Errorf("State = %v, expected destroyed", p.State)
	}
	if len(f.rec.Destroyed) != 1 || f.rec.Destroyed[0].Reason != core.ReasonNoAttachSlot {
		t.Errorf("destroy events = %+v, expected one no_attach_slot", f.rec.Destroyed)
	}
	if g.Hash() != before || g.Count() != 4 {
		t.Error("grid changed although the projectile was discarded")
	}
	if f.sim.Len() != 0 {
		t.Errorf("simulator still holds %d projectiles", f.sim.Len())
	}
}

func TestResolveSkipsFreeProjectiles(t *testing.T) {
	g := testGrid(4, 5)
	g.Place(core.H(0, 0), g.NewPiece(core.ColorRed))
	f := newResolverFixture(g)
	free := f.park(80, 70, core.ColorBlue)
	touching := f.park(14, 26, core.ColorBlue)

	atts := f.resolver.Resolve()

	if len(atts) != 1 || atts[0].ProjectileID != touching.ID {
		t.Fatalf("Resolve() = %+v, expected one attachment for the touching projectile", atts)
	}
	if !free.Active() || f.sim.Len() != 1 {
		t.Error("untouched projectile should stay in flight")
	}
	if att, contacted := f.resolver.ResolveOne(touching); att != nil || contacted {
		t.Error("resolving a stopped projectile again should do nothing")
	}
}
