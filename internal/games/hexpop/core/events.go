package core

// RemovedPiece records a piece together with the cell it was removed from.
type RemovedPiece struct {
	Piece *Piece
	At    Hex
}

// Listener observes simulation events. All hooks run synchronously on the
// simulation's thread, in the order the events happen.
type Listener interface {
	OnAttach(p *Piece, at Hex)
	OnEliminate(pieces []RemovedPiece)
	OnFloatingRemoved(pieces []RemovedPiece)
	OnBoundaryBounce(p *Projectile, edge Edge)
	OnProjectileDestroyed(p *Projectile, reason DestroyReason)
}

// ListenerFuncs adapts optional callbacks to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Attach              func(p *Piece, at Hex)
	Eliminate           func(pieces []RemovedPiece)
	FloatingRemoved     func(pieces []RemovedPiece)
	BoundaryBounce      func(p *Projectile, edge Edge)
	ProjectileDestroyed func(p *Projectile, reason DestroyReason)
}

func (f ListenerFuncs) OnAttach(p *Piece, at Hex) {
	if f.Attach != nil {
		f.Attach(p, at)
	}
}

func (f ListenerFuncs) OnEliminate(pieces []RemovedPiece) {
	if f.Eliminate != nil {
		f.Eliminate(pieces)
	}
}

func (f ListenerFuncs) OnFloatingRemoved(pieces []RemovedPiece) {
	if f.FloatingRemoved != nil {
		f.FloatingRemoved(pieces)
	}
}

func (f ListenerFuncs) OnBoundaryBounce(p *Projectile, edge Edge) {
	if f.BoundaryBounce != nil {
		f.BoundaryBounce(p, edge)
	}
}

func (f ListenerFuncs) OnProjectileDestroyed(p *Projectile, reason DestroyReason) {
	if f.ProjectileDestroyed != nil {
		f.ProjectileDestroyed(p, reason)
	}
}

type subscription struct {
	id int
	l  Listener
}

// Dispatcher fans events out to every subscribed listener in subscription
// order. The zero value is ready to use; a nil *Dispatcher drops events.
type Dispatcher struct {
	nextID int
	subs   []subscription
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe adds l and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (d *Dispatcher) Subscribe(l Listener) (unsubscribe func()) {
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, l: l})
	return func() {
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of subscribed listeners.
func (d *Dispatcher) Len() int {
	if d == nil {
		return 0
	}
	return len(d.subs)
}

// snapshot lets listeners unsubscribe while an event is being delivered.
func (d *Dispatcher) snapshot() []subscription {
	if d == nil || len(d.subs) == 0 {
		return nil
	}
	out := make([]subscription, len(d.subs))
	copy(out, d.subs)
	return out
}

func (d *Dispatcher) attach(p *Piece, at Hex) {
	for _, s := range d.snapshot() {
		s.l.OnAttach(p, at)
	}
}

func (d *Dispatcher) eliminate(pieces []RemovedPiece) {
	for _, s := range d.snapshot() {
		s.l.OnEliminate(pieces)
	}
}

func (d *Dispatcher) floatingRemoved(pieces []RemovedPiece) {
	for _, s := range d.snapshot() {
		s.l.OnFloatingRemoved(pieces)
	}
}

func (d *Dispatcher) bounce(p *Projectile, edge Edge) {
	for _, s := range d.snapshot() {
		s.l.OnBoundaryBounce(p, edge)
	}
}

func (d *Dispatcher) destroyed(p *Projectile, reason DestroyReason) {
	for _, s := range d.snapshot() {
		s.l.OnProjectileDestroyed(p, reason)
	}
}

// AttachEvent records a projectile turning into a grid piece.
type AttachEvent struct {
	PieceID PieceID
	Color   Color
	At      Hex
}

// BounceEvent records a boundary reflection.
type BounceEvent struct {
	ProjectileID ProjectileID
	Edge         Edge
	X, Y         float64
}

// DestroyEvent records a projectile leaving play without attaching.
type DestroyEvent struct {
	ProjectileID ProjectileID
	Reason       DestroyReason
	X, Y         float64
}

// Recorder is a Listener that accumulates events until Reset.
type Recorder struct {
	Attached   []AttachEvent
	Eliminated []RemovedPiece
	Fallen     []RemovedPiece
	Bounces    []BounceEvent
	Destroyed  []DestroyEvent
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Attached = nil
	r.Eliminated = nil
	r.Fallen = nil
	r.Bounces = nil
	r.Destroyed = nil
}

func (r *Recorder) OnAttach(p *Piece, at Hex) {
	r.Attached = append(r.Attached, AttachEvent{PieceID: p.ID, Color: p.Color, At: at})
}

func (r *Recorder) OnEliminate(pieces []RemovedPiece) {
	r.Eliminated = append(r.Eliminated, pieces...)
}

func (r *Recorder) OnFloatingRemoved(pieces []RemovedPiece) {
	r.Fallen = append(r.Fallen, pieces...)
}

func (r *Recorder) OnBoundaryBounce(p *Projectile, edge Edge) {
	r.Bounces = append(r.Bounces, BounceEvent{ProjectileID: p.ID, Edge: edge, X: p.X, Y: p.Y})
}

func (r *Recorder) OnProjectileDestroyed(p *Projectile, reason DestroyReason) {
	r.Destroyed = append(r.Destroyed, DestroyEvent{ProjectileID: p.ID, Reason: reason, X: p.X, Y: p.Y})
}
