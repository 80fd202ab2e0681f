package core

import (
	"math"
	"sort"
)

// EngineConfig configures a complete simulation.
type EngineConfig struct {
	Grid    GridConfig
	Physics PhysicsConfig // Empty Bounds are derived from the grid

	MinMatch         int
	ContactFactor    float64
	ProjectileRadius float64 // 0 uses the grid radius
	CascadeDelay     int     // Frames between attach and cascade; 0 = same frame
	LauncherDepth    float64 // Field height below the grid's last row; 0 = 5 rows
}

// DefaultEngineConfig returns the stock grid and shot physics.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Grid:          DefaultGridConfig(),
		Physics:       DefaultPhysicsConfig(),
		MinMatch:      MinMatchCount,
		ContactFactor: DefaultContactFactor,
	}
}

// StepResult reports what happened during one Engine.Step.
type StepResult struct {
	Frame      uint64
	Attached   []AttachEvent
	Eliminated []RemovedPiece
	Fallen     []RemovedPiece
	Bounces    []BounceEvent
	Destroyed  []DestroyEvent
	Cascades   []CascadeResult
	GridEmpty  bool
}

// Engine owns one grid and drives the per-frame pipeline:
// simulate, resolve contacts, cascade. It is the only code path that
// mutates the grid during play.
type Engine struct {
	cfg      EngineConfig
	grid     *HexGrid
	events   *Dispatcher
	sim      *ProjectileSimulator
	resolver *CollisionResolver
	match    *MatchEngine
	support  *SupportDetector
	cascade  *CascadeController
	sched    *Scheduler

	rec      Recorder
	cascades []CascadeResult
	frame    uint64
	pending  bool
}

// NewEngine builds every component and wires them together.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.ProjectileRadius <= 0 {
		cfg.ProjectileRadius = cfg.Grid.Radius
	}
	if cfg.LauncherDepth <= 0 {
		cfg.LauncherDepth = 5 * cfg.Grid.CellHeight()
	}

	e := &Engine{
		events: NewDispatcher(),
		sched:  NewScheduler(),
	}
	e.grid = NewHexGrid(cfg.Grid)
	if cfg.Physics.Bounds.Empty() {
		cfg.Physics.Bounds = e.deriveField(cfg)
	}
	e.cfg = cfg

	e.sim = NewProjectileSimulator(e.events)
	e.resolver = NewCollisionResolver(e.grid, e.sim, e.events, cfg.ContactFactor)
	e.match = NewMatchEngine(e.grid, cfg.MinMatch)
	e.support = NewSupportDetector(e.grid)
	e.cascade = NewCascadeController(e.grid, e.match, e.support, e.events)
	e.events.Subscribe(&e.rec)
	return e
}

func (e *Engine) deriveField(cfg EngineConfig) Bounds {
	return Bounds{
		MinX: cfg.Grid.OriginX,
		MinY: cfg.Grid.OriginY - cfg.ProjectileRadius,
		MaxX: cfg.Grid.OriginX + e.grid.Width(),
		MaxY: cfg.Grid.OriginY + e.grid.Height() + cfg.LauncherDepth,
	}
}

// Config returns the effective configuration, with derived values filled in.
func (e *Engine) Config() EngineConfig { return e.cfg }

// Grid returns the grid.
func (e *Engine) Grid() *HexGrid { return e.grid }

// Simulator returns the projectile simulator.
func (e *Engine) Simulator() *ProjectileSimulator { return e.sim }

// Events returns the dispatcher listeners subscribe to.
func (e *Engine) Events() *Dispatcher { return e.events }

// Match returns the match engine.
func (e *Engine) Match() *MatchEngine { return e.match }

// Support returns the support detector.
func (e *Engine) Support() *SupportDetector { return e.support }

// Field returns the play-field box projectiles bounce inside.
func (e *Engine) Field() Bounds { return e.cfg.Physics.Bounds }

// Frame returns the number of steps taken since the last reset.
func (e *Engine) Frame() uint64 { return e.frame }

// Busy reports whether a cascade is waiting to run.
func (e *Engine) Busy() bool { return e.pending }

// InFlight returns the number of active projectiles.
func (e *Engine) InFlight() int { return e.sim.Len() }

// Launcher returns the default launch point: bottom centre of the field.
func (e *Engine) Launcher() (x, y float64) {
	f := e.Field()
	return (f.MinX + f.MaxX) / 2, f.MaxY - e.cfg.ProjectileRadius - e.cfg.Physics.SettleDistance - 1
}

// Fire launches a projectile from the launcher. It returns nil while a
// cascade is pending.
func (e *Engine) Fire(angle, speed float64, c Color) *Projectile {
	x, y := e.Launcher()
	return e.FireFrom(x, y, angle, speed, c)
}

// FireFrom launches a projectile from an arbitrary point.
func (e *Engine) FireFrom(x, y, angle, speed float64, c Color) *Projectile {
	if e.pending {
		return nil
	}
	return e.sim.Launch(Launch{
		X:       x,
		Y:       y,
		Angle:   angle,
		Speed:   speed,
		Radius:  e.cfg.ProjectileRadius,
		Color:   c,
		Physics: e.cfg.Physics,
	})
}

// Step advances the simulation by one frame of dt seconds.
//
// Order: due deferred work, projectile integration, then contacts one
// projectile at a time with each attach's cascade settled before the next
// contact is examined. While a delayed cascade is pending nothing moves.
// A frame is split into sub-steps so no projectile moves further than its
// radius between contact checks.
func (e *Engine) Step(dt float64) StepResult {
	e.rec.Reset()
	e.cascades = nil
	e.frame++

	e.sched.Advance()

	if !e.pending {
		n, sub := e.substeps(dt)
		for i := 0; i < n && !e.pending && e.sim.Len() > 0; i++ {
			e.sim.Step(sub)
			e.resolve()
		}
	}

	return StepResult{
		Frame:      e.frame,
		Attached:   e.rec.Attached,
		Eliminated: e.rec.Eliminated,
		Fallen:     e.rec.Fallen,
		Bounces:    e.rec.Bounces,
		Destroyed:  e.rec.Destroyed,
		Cascades:   e.cascades,
		GridEmpty:  e.grid.Count() == 0,
	}
}

// MaxSubsteps bounds how finely one frame is split.
const MaxSubsteps = 16

// substeps splits a clamped dt so the fastest projectile travels at most
// one projectile radius per sub-step. Sub-steps never drop below MinDT.
func (e *Engine) substeps(dt float64) (int, float64) {
	phys := e.cfg.Physics
	dt = phys.ClampDT(dt)
	fastest := 0.0
	for _, p := range e.sim.Active() {
		fastest = math.Max(fastest, p.Speed())
	}
	if phys.GravityEnabled {
		fastest += math.Abs(phys.Gravity) * dt
	}
	if phys.MaxSpeed > 0 {
		fastest = math.Min(fastest, phys.MaxSpeed)
	}
	n := 1
	if r := e.cfg.ProjectileRadius; r > 0 {
		n = int(math.Ceil(fastest * dt / r))
	}
	if lo := phys.MinDT; lo > 0 {
		n = min(n, int(dt/lo))
	}
	n = max(1, min(n, MaxSubsteps))
	return n, dt / float64(n)
}

// resolve handles contacts for every active projectile, settling each
// attach's cascade before the next one is examined.
func (e *Engine) resolve() {
	for _, p := range e.sim.Active() {
		att, _ := e.resolver.ResolveOne(p)
		if att == nil {
			continue
		}
		if e.cfg.CascadeDelay > 0 {
			e.pending = true
			at := att.At
			e.sched.After(e.cfg.CascadeDelay, func() {
				e.settle(at)
				e.pending = false
			})
			return
		}
		e.settle(att.At)
	}
}

func (e *Engine) settle(at Hex) {
	e.cascades = append(e.cascades, e.cascade.Run(at))
}

// RunCascade settles the grid around at immediately. Running it on a
// quiescent grid changes nothing.
func (e *Engine) RunCascade(at Hex) CascadeResult {
	return e.cascade.Run(at)
}

// Reset clears the grid, every projectile and all pending work.
func (e *Engine) Reset() {
	e.grid.Clear()
	e.sim.Clear()
	e.sched.Cancel()
	e.rec.Reset()
	e.cascades = nil
	e.pending = false
	e.frame = 0
}

// Load resets the engine and places the given pieces. Cells outside the grid
// are skipped and pieces with no path to the top row are dropped. It
// returns the number of pieces left on the grid.
func (e *Engine) Load(cells map[Hex]Color) int {
	e.Reset()
	keys := make([]Hex, 0, len(cells))
	for h := range cells {
		keys = append(keys, h)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Row != keys[j].Row {
			return keys[i].Row < keys[j].Row
		}
		return keys[i].Col < keys[j].Col
	})
	for _, h := range keys {
		e.grid.Place(h, e.grid.NewPiece(cells[h]))
	}
	e.cascade.DropFloating()
	return e.grid.Count()
}

// Populate resets the engine and fills the top rows with random colors.
func (e *Engine) Populate(rows, colors int, src ColorSource) int {
	e.Reset()
	Populate(e.grid, rows, colors, src)
	e.cascade.DropFloating()
	return e.grid.Count()
}

// PushRows shifts the grid down by two rows and fills the freed top rows
// with random colors. It returns the pieces pushed off the bottom. Nothing
// happens while a cascade is pending.
func (e *Engine) PushRows(colors int, src ColorSource) []*Piece {
	if e.pending {
		return nil
	}
	dropped := e.grid.ShiftDown(2)
	Populate(e.grid, 2, colors, src)
	return dropped
}
