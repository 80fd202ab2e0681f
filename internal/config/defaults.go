package config

import (
	_ "embed"
)

//go:embed defaults/hexpop.yaml
var defaultHexPopYAML []byte

// DefaultHexPopConfig returns the default HexPop configuration.
func DefaultHexPopConfig() HexPopConfig {
	return HexPopConfig{
		Grid: GridConfig{
			Rows:         12,
			Cols:         10,
			Radius:       10,
			MinMatch:     3,
			CascadeDelay: 6, // 0.1s at 60fps
		},
		Physics: PhysicsConfig{
			Gravity:         400,
			GravityEnabled:  false,
			Friction:        0.9,
			FrictionEnabled: true,
			BounceX:         0.95,
			BounceY:         0.8,
			BounceEnabled:   true,
			MinSpeed:        20,
			MaxSpeed:        1200,
			ContactFactor:   0.9,
		},
		Gameplay: GameplayConfig{
			LaunchSpeed: 420,
			AimStepDeg:  3,
			StartRows:   5,
			Colors:      4,
			ShotsPerRow: 6,
			PopPoints:   10,
			DropPoints:  20,
			ComboBonus:  10,
			ClearBonus:  500,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				ExtraColors:     2,
				ShotsReduction:  3,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "hexpop", "hexpop_endless":
		return defaultHexPopYAML
	default:
		return nil
	}
}

// sanitize replaces unusable values with defaults so a partial or
// hand-edited file still yields a playable game.
func (c *HexPopConfig) sanitize() {
	def := DefaultHexPopConfig()

	if c.Grid.Rows < 4 || c.Grid.Rows > 64 {
		c.Grid.Rows = def.Grid.Rows
	}
	if c.Grid.Cols < 2 || c.Grid.Cols > 64 {
		c.Grid.Cols = def.Grid.Cols
	}
	if c.Grid.Radius <= 0 {
		c.Grid.Radius = def.Grid.Radius
	}
	if c.Grid.MinMatch < 2 {
		c.Grid.MinMatch = def.Grid.MinMatch
	}
	if c.Grid.CascadeDelay < 0 {
		c.Grid.CascadeDelay = 0
	}
	if c.Physics.MaxSpeed <= 0 {
		c.Physics.MaxSpeed = def.Physics.MaxSpeed
	}
	if c.Physics.ContactFactor <= 0 || c.Physics.ContactFactor >= 1 {
		c.Physics.ContactFactor = def.Physics.ContactFactor
	}
	if c.Gameplay.LaunchSpeed <= 0 {
		c.Gameplay.LaunchSpeed = def.Gameplay.LaunchSpeed
	}
	if c.Gameplay.AimStepDeg <= 0 {
		c.Gameplay.AimStepDeg = def.Gameplay.AimStepDeg
	}
	if c.Gameplay.StartRows < 1 || c.Gameplay.StartRows >= c.Grid.Rows-1 {
		c.Gameplay.StartRows = min(def.Gameplay.StartRows, c.Grid.Rows-2)
	}
	if c.Gameplay.Colors < 1 || c.Gameplay.Colors > MaxColors {
		c.Gameplay.Colors = def.Gameplay.Colors
	}
	if c.Gameplay.ShotsPerRow < 1 {
		c.Gameplay.ShotsPerRow = def.Gameplay.ShotsPerRow
	}
}
