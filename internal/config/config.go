// Package config provides YAML/TOML game configuration loading and
// difficulty management for HexPop.
package config

// HexPopConfig contains all configuration for the HexPop game.
type HexPopConfig struct {
	Grid       GridConfig       `yaml:"grid" toml:"grid"`
	Physics    PhysicsConfig    `yaml:"physics" toml:"physics"`
	Gameplay   GameplayConfig   `yaml:"gameplay" toml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// GridConfig defines the board.
type GridConfig struct {
	Rows         int     `yaml:"rows" toml:"rows"`
	Cols         int     `yaml:"cols" toml:"cols"`
	Radius       float64 `yaml:"radius" toml:"radius"`
	MinMatch     int     `yaml:"min_match" toml:"min_match"`
	CascadeDelay int     `yaml:"cascade_delay" toml:"cascade_delay"` // Frames between attach and pop
}

// PhysicsConfig defines projectile physics. Speeds are world units per
// second; one cell is two radii wide.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity" toml:"gravity"`
	GravityEnabled  bool    `yaml:"gravity_enabled" toml:"gravity_enabled"`
	Friction        float64 `yaml:"friction" toml:"friction"` // Fraction of speed kept per second
	FrictionEnabled bool    `yaml:"friction_enabled" toml:"friction_enabled"`
	BounceX         float64 `yaml:"bounce_x" toml:"bounce_x"`
	BounceY         float64 `yaml:"bounce_y" toml:"bounce_y"`
	BounceEnabled   bool    `yaml:"bounce_enabled" toml:"bounce_enabled"`
	MinSpeed        float64 `yaml:"min_speed" toml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed" toml:"max_speed"`
	ContactFactor   float64 `yaml:"contact_factor" toml:"contact_factor"`
}

// GameplayConfig defines aiming, scoring and the endless mode pace.
type GameplayConfig struct {
	LaunchSpeed float64 `yaml:"launch_speed" toml:"launch_speed"`
	AimStepDeg  float64 `yaml:"aim_step_deg" toml:"aim_step_deg"`
	StartRows   int     `yaml:"start_rows" toml:"start_rows"` // Endless mode initial fill
	Colors      int     `yaml:"colors" toml:"colors"`         // Endless mode palette size
	ShotsPerRow int     `yaml:"shots_per_row" toml:"shots_per_row"`
	PopPoints   int     `yaml:"pop_points" toml:"pop_points"`
	DropPoints  int     `yaml:"drop_points" toml:"drop_points"`
	ComboBonus  int     `yaml:"combo_bonus" toml:"combo_bonus"` // Per piece dropped beyond the second
	ClearBonus  int     `yaml:"clear_bonus" toml:"clear_bonus"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // Multiplier added to launch speed at max difficulty
	ExtraColors     int     `yaml:"extra_colors" toml:"extra_colors"`         // Palette growth at max difficulty
	ShotsReduction  int     `yaml:"shots_reduction" toml:"shots_reduction"`   // Fewer shots between row pushes at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown names yield normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
