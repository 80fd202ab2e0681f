package hexpop

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

// newLogListener reports engine events at debug level.
func newLogListener(l *log.Logger, mode string) core.Listener {
	l = l.With("mode", mode)
	return core.ListenerFuncs{
		Attach: func(p *core.Piece, at core.Hex) {
			l.Debug("attach", "piece", p.ID, "color", p.Color, "at", at)
		},
		Eliminate: func(pieces []core.RemovedPiece) {
			if len(pieces) == 0 {
				return
			}
			l.Debug("eliminate", "count", len(pieces), "color", pieces[0].Piece.Color)
		},
		FloatingRemoved: func(pieces []core.RemovedPiece) {
			l.Debug("floating removed", "count", len(pieces))
		},
		BoundaryBounce: func(p *core.Projectile, edge core.Edge) {
			l.Debug("bounce", "projectile", p.ID, "edge", edge, "bounces", p.BounceCount)
		},
		ProjectileDestroyed: func(p *core.Projectile, reason core.DestroyReason) {
			l.Debug("projectile destroyed", "projectile", p.ID, "reason", reason,
				"x", p.X, "y", p.Y)
		},
	}
}
