// Package hexpop provides the HexPop bubble shooter for the platform.
// Two modes are registered: "hexpop" plays the level campaign and
// "hexpop_endless" keeps pushing random rows until the board overflows.
package hexpop

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexpop/internal/config"
	platformcore "github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
	"github.com/vovakirdan/hexpop/internal/games/hexpop/levels"
	"github.com/vovakirdan/hexpop/internal/registry"
)

// Aim limits in degrees. 90 is straight up.
const (
	MinAimDeg = 10.0
	MaxAimDeg = 170.0
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Clear every level in order
	ModeEndless                  // Random board, new rows pushed in
)

// Package-level settings applied on the next Reset, set from the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelsDir        string
	startLevel       int
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLevelsDir makes the campaign load levels from dir instead of the
// builtin set. An empty dir restores the builtin levels.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetStartLevel sets the starting campaign level (1-indexed) for the next
// game that is Reset. 0 starts from the beginning.
func SetStartLevel(level int) {
	startLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return startLevel
}

// SetLogger sets the logger the engine event listener writes to.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register("hexpop", func() registry.Game { return New() })
	registry.Register("hexpop_endless", func() registry.Game { return NewEndless() })
}

// LoadLevels returns the campaign levels: the builtin set, or the levels in
// the directory given to SetLevelsDir.
func LoadLevels() ([]levels.Level, error) {
	loader := levels.Builtin()
	if levelsDir != "" {
		loader = levels.NewLoader(levelsDir)
	}
	lvls, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("hexpop: no levels in %s", loader.Root)
	}
	return lvls, nil
}

// LevelNames returns the names of the campaign levels.
func LevelNames() []string {
	lvls, err := LoadLevels()
	if err != nil {
		return nil
	}
	names := make([]string, len(lvls))
	for i, l := range lvls {
		names[i] = l.Name
	}
	return names
}

// Game implements HexPop on top of the simulation engine.
type Game struct {
	mode       GameMode
	cfg        config.HexPopConfig
	runtime    platformcore.RuntimeConfig
	difficulty *config.DifficultyManager

	engine *core.Engine
	rng    *core.SimpleRNG
	unsub  func()

	// Campaign
	allLevels  []levels.Level
	levelIndex int
	start      int // 1-indexed level restarts begin at; 0 = first
	loadErr    error

	// Shooter
	aim     float64 // Degrees, 90 = straight up
	current core.Color
	next    core.Color

	// Status
	tick       uint64
	score      int
	shots      int
	missStreak int // Resolved shots without an elimination
	gameOver   bool
	won        bool
	paused     bool

	// Last scoring event, shown in the HUD for a while
	flash      string
	flashTicks int

	layout layout
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// StartAt makes this game begin (and restart) at the given 1-indexed
// campaign level. Out of range values start from the first level.
func (g *Game) StartAt(level int) {
	g.start = level
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "hexpop_endless"
	}
	return "hexpop"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "HexPop (Endless)"
	}
	return "HexPop"
}

// Reset loads configuration and starts a new game.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadHexPop(configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultHexPopConfig()
	}
	if difficultyPreset != "" {
		config.ApplyHexPopPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.rng = core.NewRNG(uint64(runtime.Seed)) //#nosec G115 -- seed bits only
	g.tick = 0
	g.score = 0
	g.shots = 0
	g.missStreak = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.flash = ""
	g.flashTicks = 0
	g.loadErr = nil

	if g.mode == ModeEndless {
		g.startEndless()
		return
	}

	g.allLevels, g.loadErr = LoadLevels()
	if g.loadErr != nil {
		logger.Error("cannot load levels", "dir", levelsDir, "err", g.loadErr)
		g.gameOver = true
		return
	}
	if startLevel > 0 {
		g.start = startLevel
		startLevel = 0
	}
	g.levelIndex = 0
	if g.start > 0 && g.start <= len(g.allLevels) {
		g.levelIndex = g.start - 1
	}
	g.loadLevel()
}

// newEngine replaces the engine with one sized rows x cols.
func (g *Game) newEngine(rows, cols int) {
	if g.unsub != nil {
		g.unsub()
	}
	g.engine = core.NewEngine(engineConfig(g.cfg, rows, cols))
	g.unsub = g.engine.Events().Subscribe(newLogListener(logger, g.ID()))
	g.layout = computeLayout(g.engine, g.runtime.ScreenW, g.runtime.ScreenH)
	g.aim = 90
}

// engineConfig maps the file configuration onto the simulation.
func engineConfig(cfg config.HexPopConfig, rows, cols int) core.EngineConfig {
	p := cfg.Physics
	phys := core.NewPhysicsConfig(
		core.WithSpeedLimits(p.MinSpeed, p.MaxSpeed),
	)
	phys.Gravity, phys.GravityEnabled = p.Gravity, p.GravityEnabled
	phys.Friction, phys.FrictionEnabled = p.Friction, p.FrictionEnabled
	phys.BounceX, phys.BounceY, phys.BounceEnabled = p.BounceX, p.BounceY, p.BounceEnabled

	return core.EngineConfig{
		Grid: core.GridConfig{
			Rows:   rows,
			Cols:   cols,
			Radius: cfg.Grid.Radius,
		},
		Physics:       phys,
		MinMatch:      cfg.Grid.MinMatch,
		ContactFactor: p.ContactFactor,
		CascadeDelay:  cfg.Grid.CascadeDelay,
	}
}

func (g *Game) loadLevel() {
	lvl := g.allLevels[g.levelIndex]
	g.newEngine(lvl.Rows, lvl.Cols)
	if n := g.engine.Load(lvl.Cells); n != len(lvl.Cells) {
		logger.Warn("level pieces dropped on load", "level", lvl.ID, "kept", n, "defined", len(lvl.Cells))
	}
	g.missStreak = 0
	g.dealColors()
	logger.Info("level start", "level", lvl.ID, "pieces", g.engine.Grid().Count())
}

func (g *Game) startEndless() {
	g.newEngine(g.cfg.Grid.Rows, g.cfg.Grid.Cols)
	g.engine.Populate(g.cfg.Gameplay.StartRows, g.paletteSize(), g.rng)
	g.dealColors()
}

// paletteSize returns how many colors new shots and rows draw from.
func (g *Game) paletteSize() int {
	if g.mode == ModeCampaign && g.levelIndex < len(g.allLevels) {
		return g.allLevels[g.levelIndex].Colors
	}
	return g.difficulty.Colors(g.cfg.Gameplay.Colors, g.score, int(g.tick)) //#nosec G115 -- tick fits in int
}

func (g *Game) dealColors() {
	grid := g.engine.Grid()
	g.current = core.NextColor(grid, g.rng, g.paletteSize())
	g.next = core.NextColor(grid, g.rng, g.paletteSize())
}

// refreshColors replaces loaded colors that are no longer on the board.
func (g *Game) refreshColors() {
	grid := g.engine.Grid()
	present := grid.ColorsPresent()
	if len(present) == 0 {
		return
	}
	has := func(c core.Color) bool {
		for _, p := range present {
			if p == c {
				return true
			}
		}
		return false
	}
	if !has(g.current) {
		g.current = core.NextColor(grid, g.rng, g.paletteSize())
	}
	if !has(g.next) {
		g.next = core.NextColor(grid, g.rng, g.paletteSize())
	}
}

// Ready reports whether a shot can be fired.
func (g *Game) Ready() bool {
	return g.engine != nil && !g.gameOver && !g.paused &&
		g.engine.InFlight() == 0 && !g.engine.Busy()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionRestart) && g.gameOver {
		g.Reset(g.runtime)
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused || g.engine == nil || g.layout.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	g.tick++
	if g.flashTicks > 0 {
		g.flashTicks--
	}

	g.handleAim(in)
	if in.Has(platformcore.ActionSwap) {
		g.current, g.next = g.next, g.current
	}
	if in.Any(platformcore.ActionFire, platformcore.ActionConfirm) {
		g.fire()
	}

	res := g.engine.Step(g.runtime.DT())
	g.applyResult(res)

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) handleAim(in platformcore.InputFrame) {
	step := g.cfg.Gameplay.AimStepDeg
	if in.Has(platformcore.ActionLeft) {
		g.aim += step
	}
	if in.Has(platformcore.ActionRight) {
		g.aim -= step
	}
	g.aim = platformcore.ClampF(g.aim, MinAimDeg, MaxAimDeg)
}

func (g *Game) launchSpeed() float64 {
	return g.difficulty.Speed(g.cfg.Gameplay.LaunchSpeed, g.score, int(g.tick)) //#nosec G115 -- tick fits in int
}

func (g *Game) fire() {
	if !g.Ready() {
		return
	}
	if g.engine.Fire(g.aim*math.Pi/180, g.launchSpeed(), g.current) == nil {
		return
	}
	g.shots++
	g.current = g.next
	g.next = core.NextColor(g.engine.Grid(), g.rng, g.paletteSize())
}

// applyResult scores a frame and moves the game on: row pushes, level
// changes and game over.
func (g *Game) applyResult(res core.StepResult) {
	for _, c := range res.Cascades {
		g.scoreCascade(c)
	}
	// Shots that never attached count as misses.
	g.missStreak += len(res.Destroyed)

	if len(res.Cascades) > 0 {
		g.refreshColors()
	}

	if g.engine.Busy() || g.engine.InFlight() > 0 {
		return
	}

	if res.GridEmpty || g.engine.Grid().Count() == 0 {
		g.boardCleared()
		return
	}

	if g.mode == ModeEndless {
		limit := g.difficulty.ShotsPerRow(g.cfg.Gameplay.ShotsPerRow, g.score, int(g.tick)) //#nosec G115 -- tick fits in int
		if g.missStreak >= limit {
			g.pushRow()
		}
	}

	g.checkOverflow()
}

func (g *Game) scoreCascade(c core.CascadeResult) {
	if len(c.Eliminated) == 0 {
		g.missStreak++
		return
	}
	g.missStreak = 0
	g.addPoints(cascadePoints(g.cfg.Gameplay, c))
}

func (g *Game) addPoints(points int) {
	if points <= 0 {
		return
	}
	g.score += points
	g.flash = fmt.Sprintf("+%d", points)
	g.flashTicks = 45
}

func (g *Game) boardCleared() {
	g.addPoints(g.cfg.Gameplay.ClearBonus)

	if g.mode == ModeEndless {
		logger.Info("board cleared", "score", g.score)
		g.engine.Populate(g.cfg.Gameplay.StartRows, g.paletteSize(), g.rng)
		g.missStreak = 0
		g.dealColors()
		return
	}

	logger.Info("level cleared", "level", g.allLevels[g.levelIndex].ID, "score", g.score)
	g.levelIndex++
	if g.levelIndex >= len(g.allLevels) {
		g.levelIndex = len(g.allLevels) - 1
		g.won = true
		g.gameOver = true
		return
	}
	g.loadLevel()
}

func (g *Game) pushRow() {
	dropped := g.engine.PushRows(g.paletteSize(), g.rng)
	g.missStreak = 0
	logger.Debug("row pushed", "dropped", len(dropped), "lowest", g.engine.Grid().LowestOccupiedRow())
	if len(dropped) > 0 {
		g.gameOver = true
	}
}

// checkOverflow ends the game once a piece reaches the danger row.
func (g *Game) checkOverflow() {
	grid := g.engine.Grid()
	if grid.LowestOccupiedRow() >= DangerRow(grid) {
		g.gameOver = true
		logger.Info("game over", "mode", g.ID(), "score", g.score, "shots", g.shots)
	}
}

// DangerRow returns the row a piece must not reach.
func DangerRow(grid *core.HexGrid) int {
	return grid.Rows() - 1
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
	if g.mode == ModeCampaign {
		st.Level = g.levelIndex + 1
	}
	return st
}

// Resize fits the board to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	if g.engine != nil {
		g.layout = computeLayout(g.engine, w, h)
	}
}

// Engine exposes the running simulation, mainly for tests and tooling.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// Aim returns the current aim angle in degrees.
func (g *Game) Aim() float64 {
	return g.aim
}

// Loaded returns the current and next shot colors.
func (g *Game) Loaded() (current, next core.Color) {
	return g.current, g.next
}
