package core_test

import (
	"math"
	"testing"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

const dt = 1.0 / 60

var box = core.Bounds{MinX: 0, MinY: 0, MaxX: 200, MaxY: 300}

func launch(sim *core.ProjectileSimulator, x, y, angle, speed float64, phys core.PhysicsConfig) *core.Projectile {
	return sim.Launch(core.Launch{X: x, Y: y, Angle: angle, Speed: speed, Radius: 5, Color: core.ColorRed, Physics: phys})
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestLaunchVelocity(t *testing.T) {
	sim := core.NewProjectileSimulator(nil)
	phys := core.NewPhysicsConfig(core.WithBounds(box))

	up := launch(sim, 100, 100, math.Pi/2, 300, phys)
	if !approx(up.VX, 0) || !approx(up.VY, -300) {
		t.Errorf("straight up velocity = (%v, %v), expected (0, -300)", up.VX, up.VY)
	}
	right := launch(sim, 100, 100, 0, 300, phys)
	if !approx(right.VX, 300) || !approx(right.VY, 0) {
		t.Errorf("rightward velocity = (%v, %v), expected (300, 0)", right.VX, right.VY)
	}
	if sim.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", sim.Len())
	}
	active := sim.Active()
	if active[0] != up || active[1] != right {
		t.Error("Active() should follow launch order")
	}
}

func TestStepIntegratesPosition(t *testing.T) {
	sim := core.NewProjectileSimulator(nil)
	phys := core.NewPhysicsConfig(core.WithBounds(box), core.WithoutFriction())
	p := launch(sim, 100, 100, 0, 60, phys)

	sim.Step(dt)

	if !approx(p.X, 101) || !approx(p.Y, 100) {
		t.Errorf("position = (%v, %v), expected (101, 100)", p.X, p.Y)
	}
	if p.Frames != 1 || !approx(p.Age, dt) || !approx(p.Distance, 1) {
		t.Errorf("frames=%d age=%v distance=%v after one step", p.Frames, p.Age, p.Distance)
	}
}

func TestGravityThenFriction(t *testing.T) {
	sim := core.NewProjectileSimulator(nil)
	phys := core.NewPhysicsConfig(core.WithBounds(box), core.WithGravity(600), core.WithFriction(0.5))
	p := launch(sim, 100, 100, 0, 0, phys)

	sim.Step(dt)

	want := 600 * dt * math.Pow(0.5, dt)
	if !approx(p.VY, want) {
		t.Errorf("VY = %v, expected %v", p.VY, want)
	}
	if !p.Active() {
		t.Error("a falling projectile should stay active")
	}
}

func TestMaxSpeedClamp(t *testing.T) {
	sim := core.NewProjectileSimulator(nil)
	phys := core.NewPhysicsConfig(
		core.WithBounds(core.Bounds{MaxX: 10000, MaxY: 10000}),
		core.WithoutFriction(),
		core.WithSpeedLimits(20, 1200),
	)
	p := launch(sim, 5000, 5000, 0, 5000, phys)

	sim.Step(dt)

	if !approx(p.Speed(), 1200) {
		t.Errorf("Speed() = %v, expected 1200", p.Speed())
	}
	if !approx(p.X, 5020) {
		t.Errorf("X = %v, expected 5020", p.X)
	}
}

func TestWallBounces(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		angle    float64
		speed    float64
		edge     core.Edge
		check    func(p *core.Projectile) bool
		expected string
	}{
		{
			name: "left", x: 5.1, y: 150, angle: math.Pi, speed: 120, edge: core.EdgeLeft,
			check:    func(p *core.Projectile) bool { return approx(p.X, 5) && approx(p.VX, 114) },
			expected: "X=5 VX=114",
		},
		{
			name: "right", x: 194.9, y: 150, angle: 0, speed: 120, edge: core.EdgeRight,
			check:    func(p *core.Projectile) bool { return approx(p.X, 195) && approx(p.VX, -114) },
			expected: "X=195 VX=-114",
		},
		{
			name: "top keeps a minimum rebound", x: 100, y: 5.1, angle: math.Pi / 2, speed: 10, edge: core.EdgeTop,
			check:    func(p *core.Projectile) bool { return approx(p.Y, 5) && approx(p.VY, 30) },
			expected: "Y=5 VY=30",
		},
		{
			name: "top", x: 100, y: 6, angle: math.Pi / 2, speed: 300, edge: core.EdgeTop,
			check:    func(p *core.Projectile) bool { return approx(p.Y, 5) && approx(p.VY, 240) },
			expected: "Y=5 VY=240",
		},
		{
			name: "bottom applies escalating loss", x: 100, y: 291, angle: -math.Pi / 2, speed: 300, edge: core.EdgeBottom,
			check:    func(p *core.Projectile) bool { return approx(p.Y, 295) && approx(p.VY, -216) },
			expected: "Y=295 VY=-216",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			events := core.NewDispatcher()
			var edges []core.Edge
			events.Subscribe(core.ListenerFuncs{
				BoundaryBounce: func(_ *core.Projectile, e core.Edge) { edges = append(edges, e) },
			})
			sim := core.NewProjectileSimulator(events)
			phys := core.NewPhysicsConfig(core.WithBounds(box), core.WithoutFriction())
			p := launch(sim, tc.x, tc.y, tc.angle, tc.speed, phys)

			sim.Step(dt)

			if len(edges) != 1 || edges[0] != tc.edge {
				t.Fatalf("bounces = %v, expected [%v]", edges, tc.edge)
			}
			if p.BounceCount != 1 {
				t.Errorf("BounceCount = %d, expected 1", p.BounceCount)
			}
			if !tc.check(p) {
				t.Errorf("after bounce X=%v Y=%v VX=%v VY=%v, expected %s", p.X, p.Y, p.VX, p.VY, tc.expected)
			}
			if !p.Active() {
				t.Error("projectile should stay active during the bounce grace window")
			}
		})
	}
}

func TestBounceGraceWindow(t *testing.T) {
	sim := core.NewProjectileSimulator(nil)
	phys := core.NewPhysicsConfig(
		core.WithBounds(core.Bounds{MaxX: 1000, MaxY: 1000}),
		core.WithoutFriction(),
		core.WithBounceGrace(30),
	)
	// Slow enough to stop, but it bounces off the left wall first.
	p := launch(sim, 5.1, 500, math.Pi, 10, phys)

	for i := 0; i < 30; i++ {
		sim.Step(dt)
	}
	if !p.Active() {
		t.Fatalf("projectile stopped during the grace window at frame %d", p.Frames)
	}
	sim.Step(dt)
	if p.State != core.StateStopped {
		t.Errorf("State = %v after the grace window, expected stopped", p.State)
	}
}

func TestMinimumSpeedRelaxedWhileFalling(t *testing.T) {
	events := core.NewDispatcher()
	var reasons []core.DestroyReason
	events.Subscribe(core.ListenerFuncs{
		ProjectileDestroyed: func(_ *core.Projectile, r core.DestroyReason) { reasons = append(reasons, r) },
	})
	sim := core.NewProjectileSimulator(events)
	phys := core.NewPhysicsConfig(core.WithBounds(core.Bounds{MaxX: 1000, MaxY: 1000}), core.WithoutFriction())

	falling := launch(sim, 500, 500, -math.Pi/2, 10, phys)
	sideways := launch(sim, 300, 500, 0, 10, phys)

	sim.Step(dt)

	if !falling.Active() {
		t.Error("a mostly-downward projectile above the floor should keep going at 10 units/s")
	}
	if sideways.State != core.StateStopped {
		t.Errorf("sideways State = %v, expected stopped", sideways.State)
	}
	if len(reasons) != 1 || reasons[0] != core.ReasonSettled {
		t.Errorf("destroy reasons = %v, expected [settled]", reasons)
	}
	if sim.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", sim.Len())
	}
}

func TestSettleAtBottom(t *testing.T) {
	tests := []struct {
		name    string
		y       float64
		opts    []core.PhysicsOption
		settles bool
	}{
		{"default thresholds", 294, nil, true},
		{"too high for the default distance", 286, nil, false},
		{"wider settle distance", 286, []core.PhysicsOption{core.WithSettle(10, 30)}, true},
		{"stricter settle speed", 294, []core.PhysicsOption{core.WithSettle(2, 10)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := core.NewProjectileSimulator(nil)
			opts := append([]core.PhysicsOption{core.WithBounds(box), core.WithoutFriction()}, tt.opts...)
			p := launch(sim, 100, tt.y, 0, 25, core.NewPhysicsConfig(opts...))

			sim.Step(dt)

			if !tt.settles {
				if !p.Active() {
					t.Errorf("State = %v, expected active", p.State)
				}
				return
			}
			if p.State != core.StateStopped {
				t.Fatalf("State = %v, expected stopped", p.State)
			}
			if p.Y != 295 || p.VX != 0 || p.VY != 0 {
				t.Errorf("settled at Y=%v with velocity (%v, %v), expected Y=295 at rest", p.Y, p.VX, p.VY)
			}
		})
	}
}

func TestOutOfBounds(t *testing.T) {
	events := core.NewDispatcher()
	rec := &core.Recorder{}
	events.Subscribe(rec)
	sim := core.NewProjectileSimulator(events)
	phys := core.NewPhysicsConfig(core.WithBounds(box), core.WithoutBounce(), core.WithoutFriction())
	p := launch(sim, 190, 100, 0, 600, phys)

	for i := 0; i < 10 && p.Active(); i++ {
		sim.Step(dt)
	}

	if p.State != core.StateDestroyed {
		t.Fatalf("State = %v, expected destroyed", p.State)
	}
	if len(rec.Destroyed) != 1 || rec.Destroyed[0].Reason != core.ReasonOutOfBounds {
		t.Errorf("destroy events = %+v, expected one out_of_bounds", rec.Destroyed)
	}
	if len(rec.Bounces) != 0 {
		t.Errorf("got %d bounces with bouncing disabled", len(rec.Bounces))
	}
}

func TestNonFiniteDT(t *testing.T) {
	sim := core.NewProjectileSimulator(nil)
	phys := core.NewPhysicsConfig(core.WithBounds(core.Bounds{MaxX: 1000, MaxY: 1000}), core.WithoutFriction())
	p := launch(sim, 500, 500, 0, 600, phys)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -1} {
		x := p.X
		sim.Step(bad)
		if !approx(p.X-x, 600*phys.MinDT) {
			t.Errorf("Step(%v) moved %v, expected %v", bad, p.X-x, 600*phys.MinDT)
		}
		if !p.Active() {
			t.Fatalf("Step(%v) ended the projectile", bad)
		}
	}
}

func TestClampDT(t *testing.T) {
	c := core.DefaultPhysicsConfig()

	tests := []struct {
		in   float64
		want float64
	}{
		{math.NaN(), c.MinDT},
		{math.Inf(1), c.MinDT},
		{0, c.MinDT},
		{-0.5, c.MinDT},
		{1.0 / 60, 1.0 / 60},
		{1, c.MaxDT},
	}
	for _, tc := range tests {
		if got := c.ClampDT(tc.in); got != tc.want {
			t.Errorf("ClampDT(%v) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestRemoveIsIdempotentAndSilent(t *testing.T) {
	events := core.NewDispatcher()
	rec := &core.Recorder{}
	events.Subscribe(rec)
	sim := core.NewProjectileSimulator(events)
	p := launch(sim, 100, 100, 0, 100, core.NewPhysicsConfig(core.WithBounds(box)))

	if !sim.Remove(p.ID) {
		t.Error("first Remove() should report a change")
	}
	if sim.Remove(p.ID) {
		t.Error("second Remove() should be a no-op")
	}
	if sim.Remove(9999) {
		t.Error("Remove() of an unknown id should be a no-op")
	}
	if sim.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", sim.Len())
	}
	if len(rec.Destroyed) != 0 {
		t.Errorf("Remove() emitted %d events", len(rec.Destroyed))
	}
	if _, ok := sim.Get(p.ID); ok {
		t.Error("Get() found a removed projectile")
	}
}

func TestEnergyDecreasesAcrossBottomBounces(t *testing.T) {
	events := core.NewDispatcher()
	var rebounds []float64
	events.Subscribe(core.ListenerFuncs{
		BoundaryBounce: func(p *core.Projectile, e core.Edge) {
			if e == core.EdgeBottom {
				rebounds = append(rebounds, math.Abs(p.VY))
			}
		},
	})
	sim := core.NewProjectileSimulator(events)
	phys := core.NewPhysicsConfig(
		core.WithBounds(box),
		core.WithGravity(400),
		core.WithoutFriction(),
		core.WithBounce(1, 0.8),
	)
	p := launch(sim, 100, 100, 0, 0, phys)

	for i := 0; i < 10000 && p.Active(); i++ {
		sim.Step(dt)
	}

	if p.Active() {
		t.Fatal("bouncing projectile never came to rest")
	}
	if len(rebounds) == 0 {
		t.Fatal("projectile never hit the bottom")
	}
	for i := 1; i < len(rebounds); i++ {
		if rebounds[i] >= rebounds[i-1] {
			t.Errorf("rebound %d speed %v did not drop below %v", i, rebounds[i], rebounds[i-1])
		}
	}
}

func TestEveryProjectileTerminates(t *testing.T) {
	speeds := []float64{0, 1, 50, 600, 1200, 1e6}
	angles := []float64{math.Pi / 2, math.Pi / 3, 0.1, math.Pi - 0.1, -math.Pi / 2, 0}
	physics := map[string]core.PhysicsConfig{
		"default":              core.NewPhysicsConfig(core.WithBounds(box)),
		"gravity":              core.NewPhysicsConfig(core.WithBounds(box), core.WithGravity(400)),
		"frictionless":         core.NewPhysicsConfig(core.WithBounds(box), core.WithoutFriction(), core.WithBounce(0.95, 0.8)),
		"frictionless gravity": core.NewPhysicsConfig(core.WithBounds(box), core.WithoutFriction(), core.WithGravity(400), core.WithBounce(0.95, 0.8)),
		"open":                 core.NewPhysicsConfig(core.WithBounds(box), core.WithoutBounce()),
	}

	const maxFrames = 20000
	for name, phys := range physics {
		for _, speed := range speeds {
			for _, angle := range angles {
				sim := core.NewProjectileSimulator(nil)
				p := launch(sim, 100, 150, angle, speed, phys)
				for i := 0; i < maxFrames && p.Active(); i++ {
					sim.Step(dt)
				}
				if p.Active() {
					t.Errorf("%s: speed %v angle %.2f still active after %d frames", name, speed, angle, maxFrames)
				}
			}
		}
	}
}
