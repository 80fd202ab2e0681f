package core

import "math"

// ProjectileID identifies a projectile within one simulator.
type ProjectileID uint64

// Projectile is an in-flight piece. It belongs to the simulator until it
// attaches to the grid or is discarded.
type Projectile struct {
	ID     ProjectileID
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  Color

	Physics PhysicsConfig
	State   ProjectileState

	LaunchAngle float64 // Radians, 0 = right, Pi/2 = straight up
	LaunchSpeed float64

	Age         float64 // Simulated seconds since launch
	Frames      int
	Distance    float64
	BounceCount int

	sinceBounce int
}

// Speed returns the current velocity magnitude.
func (p *Projectile) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// Active reports whether the projectile is still flying.
func (p *Projectile) Active() bool {
	return p.State == StateActive
}

// Launch describes a projectile to spawn.
type Launch struct {
	X, Y    float64
	Angle   float64 // Radians, 0 = right, Pi/2 = straight up
	Speed   float64
	Radius  float64
	Color   Color
	Physics PhysicsConfig
}

// ProjectileSimulator integrates every active projectile once per frame.
// Iteration follows launch order so runs are reproducible.
type ProjectileSimulator struct {
	events *Dispatcher
	byID   map[ProjectileID]*Projectile
	order  []ProjectileID
	nextID ProjectileID
}

// NewProjectileSimulator creates an empty simulator that reports bounces
// and terminal outcomes to events. events may be nil.
func NewProjectileSimulator(events *Dispatcher) *ProjectileSimulator {
	return &ProjectileSimulator{
		events: events,
		byID:   make(map[ProjectileID]*Projectile),
	}
}

// Launch registers a new active projectile and returns it.
func (s *ProjectileSimulator) Launch(l Launch) *Projectile {
	s.nextID++
	speed := l.Speed
	if !finite(speed) || speed < 0 {
		speed = 0
	}
	angle := l.Angle
	if !finite(angle) {
		angle = math.Pi / 2
	}
	p := &Projectile{
		ID:          s.nextID,
		X:           l.X,
		Y:           l.Y,
		VX:          speed * math.Cos(angle),
		VY:          -speed * math.Sin(angle),
		Radius:      l.Radius,
		Color:       l.Color,
		Physics:     l.Physics,
		State:       StateActive,
		LaunchAngle: angle,
		LaunchSpeed: speed,
	}
	s.byID[p.ID] = p
	s.order = append(s.order, p.ID)
	return p
}

// Get returns an active projectile by id.
func (s *ProjectileSimulator) Get(id ProjectileID) (*Projectile, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Len returns the number of active projectiles.
func (s *ProjectileSimulator) Len() int {
	return len(s.order)
}

// Active returns the active projectiles in launch order.
func (s *ProjectileSimulator) Active() []*Projectile {
	out := make([]*Projectile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Remove drops a projectile without emitting events. Unknown or already
// removed ids are ignored; the return value reports whether anything changed.
func (s *ProjectileSimulator) Remove(id ProjectileID) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Stop freezes a projectile and releases it from the simulator so its
// caller can take ownership. It returns nil for unknown ids.
func (s *ProjectileSimulator) Stop(id ProjectileID) *Projectile {
	p, ok := s.byID[id]
	if !ok {
		return nil
	}
	s.Remove(id)
	p.VX, p.VY = 0, 0
	p.State = StateStopped
	return p
}

// Discard marks p destroyed and reports it. p must already be released
// from the simulator (see Stop); active projectiles are removed first.
func (s *ProjectileSimulator) Discard(p *Projectile, reason DestroyReason) {
	if p == nil || p.State == StateDestroyed {
		return
	}
	s.Remove(p.ID)
	p.State = StateDestroyed
	s.events.destroyed(p, reason)
}

// Clear drops every projectile without emitting events.
func (s *ProjectileSimulator) Clear() {
	for id, p := range s.byID {
		p.State = StateDestroyed
		delete(s.byID, id)
	}
	s.order = s.order[:0]
}

// Step advances all active projectiles by dt seconds.
func (s *ProjectileSimulator) Step(dt float64) {
	ids := append([]ProjectileID(nil), s.order...)
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			s.advance(p, dt)
		}
	}
}

func (s *ProjectileSimulator) advance(p *Projectile, dt float64) {
	cfg := &p.Physics
	dt = cfg.ClampDT(dt)

	if cfg.GravityEnabled {
		p.VY += cfg.Gravity * dt
	}
	if cfg.FrictionEnabled {
		f := math.Pow(cfg.Friction, dt)
		p.VX *= f
		p.VY *= f
	}
	if speed := p.Speed(); cfg.MaxSpeed > 0 && speed > cfg.MaxSpeed {
		k := cfg.MaxSpeed / speed
		p.VX *= k
		p.VY *= k
	}

	dx, dy := p.VX*dt, p.VY*dt
	p.X += dx
	p.Y += dy
	p.Distance += math.Hypot(dx, dy)
	p.Age += dt
	p.Frames++
	p.sinceBounce++

	if !finite(p.X, p.Y, p.VX, p.VY) {
		s.finish(p, StateDestroyed, ReasonOutOfBounds)
		return
	}

	if cfg.BounceEnabled && !cfg.Bounds.Empty() {
		s.reflect(p)
	}
	s.checkStop(p)
}

// reflect clamps p inside its bounds, mirroring the velocity component that
// crossed an edge.
func (s *ProjectileSimulator) reflect(p *Projectile) {
	cfg := &p.Physics
	b := cfg.Bounds
	r := p.Radius

	switch {
	case p.X-r < b.MinX:
		p.X = b.MinX + r
		p.VX = math.Abs(p.VX) * cfg.BounceX
		s.bounced(p, EdgeLeft)
	case p.X+r > b.MaxX:
		p.X = b.MaxX - r
		p.VX = -math.Abs(p.VX) * cfg.BounceX
		s.bounced(p, EdgeRight)
	}

	switch {
	case p.Y-r < b.MinY:
		p.Y = b.MinY + r
		p.VY = math.Abs(p.VY) * cfg.BounceY
		if p.VY < cfg.MinTopRebound {
			p.VY = cfg.MinTopRebound
		}
		s.bounced(p, EdgeTop)
	case p.Y+r > b.MaxY:
		p.Y = b.MaxY - r
		// Loss escalates with the cumulative count, this bounce included.
		p.VY = -math.Abs(p.VY) * cfg.BounceY * bottomLoss(p.BounceCount+1)
		s.bounced(p, EdgeBottom)
	}
}

func (s *ProjectileSimulator) bounced(p *Projectile, edge Edge) {
	p.BounceCount++
	p.sinceBounce = 0
	s.events.bounce(p, edge)
}

func (s *ProjectileSimulator) checkStop(p *Projectile) {
	cfg := &p.Physics
	b := cfg.Bounds
	speed := p.Speed()
	hasBounds := !b.Empty()
	nearBottom := hasBounds && b.MaxY-(p.Y+p.Radius) <= cfg.SettleDistance

	if nearBottom && speed < cfg.SettleSpeed {
		p.Y = b.MaxY - p.Radius
		p.VX, p.VY = 0, 0
		s.finish(p, StateStopped, ReasonSettled)
		return
	}

	if p.BounceCount > 0 && p.sinceBounce < cfg.BounceGraceFrames {
		return
	}

	minSpeed := cfg.MinSpeed
	if p.VY > 0 && math.Abs(p.VY) > math.Abs(p.VX) && !nearBottom {
		minSpeed *= 0.2
	}
	if speed < minSpeed {
		s.finish(p, StateStopped, ReasonSettled)
		return
	}

	if hasBounds && !b.Contains(p.X, p.Y, cfg.OutOfBoundsMargin) {
		s.finish(p, StateDestroyed, ReasonOutOfBounds)
	}
}

func (s *ProjectileSimulator) finish(p *Projectile, state ProjectileState, reason DestroyReason) {
	s.Remove(p.ID)
	p.State = state
	s.events.destroyed(p, reason)
}
