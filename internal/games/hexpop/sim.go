package hexpop

import (
	"math"

	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
	"github.com/vovakirdan/hexpop/internal/games/hexpop/levels"
)

// SimOptions configures a headless autoplay run.
type SimOptions struct {
	Config    config.HexPopConfig
	Level     *levels.Level // nil plays a random endless board
	Seed      uint64
	Shots     int
	MaxFrames int // Frame budget per shot; 0 means 600
	Listener  core.Listener
}

// SimReport summarises an autoplay run.
type SimReport struct {
	Shots     int
	Attached  int
	Popped    int
	Dropped   int
	Destroyed int
	Bounces   int
	Score     int
	Frames    uint64
	Cleared   bool
	Overflow  bool
	Board     string
}

// Simulate fires random shots at a board without a terminal attached. The
// same options always give the same report.
func Simulate(opts SimOptions) SimReport {
	cfg := opts.Config
	maxFrames := opts.MaxFrames
	if maxFrames <= 0 {
		maxFrames = 600
	}

	rows, cols, colors := cfg.Grid.Rows, cfg.Grid.Cols, cfg.Gameplay.Colors
	if opts.Level != nil {
		rows, cols, colors = opts.Level.Rows, opts.Level.Cols, opts.Level.Colors
	}

	e := core.NewEngine(engineConfig(cfg, rows, cols))
	if opts.Listener != nil {
		e.Events().Subscribe(opts.Listener)
	}
	rng := core.NewRNG(opts.Seed)
	if opts.Level != nil {
		e.Load(opts.Level.Cells)
	} else {
		e.Populate(cfg.Gameplay.StartRows, colors, rng)
	}

	grid := e.Grid()
	dt := 1.0 / 60
	var rep SimReport

	for range opts.Shots {
		if grid.Count() == 0 || grid.LowestOccupiedRow() >= DangerRow(grid) {
			break
		}
		angle := MinAimDeg + rng.Float()*(MaxAimDeg-MinAimDeg)
		color := core.NextColor(grid, rng, colors)
		if e.Fire(angle*math.Pi/180, cfg.Gameplay.LaunchSpeed, color) == nil {
			break
		}
		rep.Shots++

		for range maxFrames {
			res := e.Step(dt)
			rep.Attached += len(res.Attached)
			rep.Destroyed += len(res.Destroyed)
			rep.Bounces += len(res.Bounces)
			for _, c := range res.Cascades {
				rep.Popped += len(c.Eliminated)
				rep.Dropped += len(c.Fallen)
				rep.Score += cascadePoints(cfg.Gameplay, c)
			}
			if e.InFlight() == 0 && !e.Busy() {
				break
			}
		}
	}

	rep.Frames = e.Frame()
	rep.Cleared = grid.Count() == 0
	rep.Overflow = grid.LowestOccupiedRow() >= DangerRow(grid)
	rep.Board = core.RenderASCII(grid)
	return rep
}

// cascadePoints scores one cascade. Drops beyond the second earn the combo
// bonus on top of the drop points.
func cascadePoints(gp config.GameplayConfig, c core.CascadeResult) int {
	popped, dropped := len(c.Eliminated), len(c.Fallen)
	if popped == 0 {
		return 0
	}
	points := popped*gp.PopPoints + dropped*gp.DropPoints
	if dropped > 2 {
		points += (dropped - 2) * gp.ComboBonus
	}
	return points
}
