package core

import "math"

// Bounds is an axis-aligned box in world units. Y grows downward.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Empty reports whether the box has no area.
func (b Bounds) Empty() bool {
	return b.MaxX <= b.MinX || b.MaxY <= b.MinY
}

// Contains reports whether (x, y) lies within the box grown by margin.
func (b Bounds) Contains(x, y, margin float64) bool {
	return x >= b.MinX-margin && x <= b.MaxX+margin && y >= b.MinY-margin && y <= b.MaxY+margin
}

// PhysicsConfig holds the tunables a projectile is simulated with.
// Velocities are world units per second; Friction is the fraction of speed
// kept after one second.
type PhysicsConfig struct {
	Gravity  float64
	Friction float64
	BounceX  float64
	BounceY  float64

	GravityEnabled  bool
	FrictionEnabled bool
	BounceEnabled   bool

	MinSpeed float64
	MaxSpeed float64

	Bounds            Bounds
	OutOfBoundsMargin float64

	SettleDistance    float64 // How close to the bottom counts as resting
	SettleSpeed       float64 // Below this speed a resting projectile settles
	MinTopRebound     float64 // Smallest downward speed after a top bounce
	BounceGraceFrames int     // Frames after a bounce during which stop checks are skipped

	MinDT float64
	MaxDT float64
}

// DefaultPhysicsConfig returns the stock shot physics: straight flight with
// mild friction and lossy walls. Bounds are left empty for the caller.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:           400,
		Friction:          0.9,
		BounceX:           0.95,
		BounceY:           0.8,
		GravityEnabled:    false,
		FrictionEnabled:   true,
		BounceEnabled:     true,
		MinSpeed:          20,
		MaxSpeed:          1200,
		OutOfBoundsMargin: 20,
		SettleDistance:    2,
		SettleSpeed:       30,
		MinTopRebound:     30,
		BounceGraceFrames: 30,
		MinDT:             1.0 / 1000,
		MaxDT:             1.0 / 15,
	}
}

// PhysicsOption overrides part of a PhysicsConfig.
type PhysicsOption func(*PhysicsConfig)

// NewPhysicsConfig returns the defaults with opts applied in order.
func NewPhysicsConfig(opts ...PhysicsOption) PhysicsConfig {
	cfg := DefaultPhysicsConfig()
	return cfg.With(opts...)
}

// With returns a copy of c with opts applied.
func (c PhysicsConfig) With(opts ...PhysicsOption) PhysicsConfig {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// WithGravity enables gravity with the given acceleration.
func WithGravity(g float64) PhysicsOption {
	return func(c *PhysicsConfig) {
		c.Gravity = g
		c.GravityEnabled = true
	}
}

// WithoutGravity disables gravity.
func WithoutGravity() PhysicsOption {
	return func(c *PhysicsConfig) { c.GravityEnabled = false }
}

// WithFriction enables friction with the given per-second retention.
func WithFriction(f float64) PhysicsOption {
	return func(c *PhysicsConfig) {
		c.Friction = f
		c.FrictionEnabled = true
	}
}

// WithoutFriction disables friction.
func WithoutFriction() PhysicsOption {
	return func(c *PhysicsConfig) { c.FrictionEnabled = false }
}

// WithBounce sets the wall restitution coefficients and enables reflection.
func WithBounce(x, y float64) PhysicsOption {
	return func(c *PhysicsConfig) {
		c.BounceX = x
		c.BounceY = y
		c.BounceEnabled = true
	}
}

// WithoutBounce lets projectiles leave through the walls.
func WithoutBounce() PhysicsOption {
	return func(c *PhysicsConfig) { c.BounceEnabled = false }
}

// WithSpeedLimits sets the speed floor and ceiling.
func WithSpeedLimits(lo, hi float64) PhysicsOption {
	return func(c *PhysicsConfig) {
		c.MinSpeed = lo
		c.MaxSpeed = hi
	}
}

// WithBounds sets the play-field box.
func WithBounds(b Bounds) PhysicsOption {
	return func(c *PhysicsConfig) { c.Bounds = b }
}

// WithSettle sets the resting thresholds near the bottom edge.
func WithSettle(distance, speed float64) PhysicsOption {
	return func(c *PhysicsConfig) {
		c.SettleDistance = distance
		c.SettleSpeed = speed
	}
}

// WithBounceGrace sets how many frames after a bounce skip the stop checks.
func WithBounceGrace(frames int) PhysicsOption {
	return func(c *PhysicsConfig) { c.BounceGraceFrames = frames }
}

// ClampDT maps dt into [MinDT, MaxDT]. NaN, infinite and non-positive
// values become MinDT.
func (c PhysicsConfig) ClampDT(dt float64) float64 {
	lo, hi := c.MinDT, c.MaxDT
	if lo <= 0 {
		lo = 1.0 / 1000
	}
	if hi < lo {
		hi = lo
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < lo {
		return lo
	}
	if dt > hi {
		return hi
	}
	return dt
}

// bottomLoss is the extra restitution applied to the n-th bounce off the
// bottom edge.
func bottomLoss(bounces int) float64 {
	loss := math.Min(0.9, 1-float64(bounces)*0.1)
	if loss < 0 {
		return 0
	}
	return loss
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
