package core_test

import (
	"math"
	"testing"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

func TestDispatcherFansOut(t *testing.T) {
	e := testEngine(0)
	var first, second []core.Hex
	unsub := e.Events().Subscribe(core.ListenerFuncs{
		Attach: func(_ *core.Piece, at core.Hex) { first = append(first, at) },
	})
	e.Events().Subscribe(core.ListenerFuncs{
		Attach: func(_ *core.Piece, at core.Hex) { second = append(second, at) },
	})
	// The engine's own recorder is subscribed too.
	if e.Events().Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", e.Events().Len())
	}

	fire := func(x float64) {
		_, y := e.Launcher()
		e.FireFrom(x, y, math.Pi/2, 600, core.ColorBlue)
		runUntil(e, 200, attached)
	}

	fire(10)
	unsub()
	unsub()
	fire(90)

	if len(first) != 1 {
		t.Errorf("unsubscribed listener saw %d attaches, expected 1", len(first))
	}
	if len(second) != 2 {
		t.Errorf("listener saw %d attaches, expected 2", len(second))
	}
	if e.Events().Len() != 2 {
		t.Errorf("Len() after unsubscribe = %d, expected 2", e.Events().Len())
	}
}

func TestUnsubscribeDuringDelivery(t *testing.T) {
	d := core.NewDispatcher()
	sim := core.NewProjectileSimulator(d)
	calls := 0
	var unsub func()
	unsub = d.Subscribe(core.ListenerFuncs{
		ProjectileDestroyed: func(*core.Projectile, core.DestroyReason) {
			calls++
			unsub()
		},
	})
	later := 0
	d.Subscribe(core.ListenerFuncs{
		ProjectileDestroyed: func(*core.Projectile, core.DestroyReason) { later++ },
	})

	phys := core.NewPhysicsConfig(core.WithBounds(box))
	sim.Launch(core.Launch{X: 100, Y: 100, Radius: 5, Physics: phys})
	sim.Launch(core.Launch{X: 50, Y: 100, Radius: 5, Physics: phys})
	sim.Step(dt)

	if calls != 1 {
		t.Errorf("self-removing listener called %d times, expected 1", calls)
	}
	if later != 2 {
		t.Errorf("second listener called %d times, expected 2", later)
	}
}

func TestNilDispatcherIsSafe(t *testing.T) {
	var d *core.Dispatcher
	if d.Len() != 0 {
		t.Error("nil dispatcher should report no listeners")
	}
	sim := core.NewProjectileSimulator(d)
	p := sim.Launch(core.Launch{X: 100, Y: 100, Radius: 5, Physics: core.NewPhysicsConfig(core.WithBounds(box))})
	sim.Step(dt)
	if p.Active() {
		t.Error("motionless projectile should have stopped")
	}
}
