// Package core implements the HexPop simulation: a hex-packed grid of colored
// pieces, projectile physics, grid snapping, match elimination and the
// floating-piece cascade. This package is UI-agnostic and deterministic.
package core

import "fmt"

// Hex addresses a grid cell. Odd rows are shifted right by half a cell.
type Hex struct {
	Row int
	Col int
}

// H is shorthand for Hex{Row: row, Col: col}.
func H(row, col int) Hex {
	return Hex{Row: row, Col: col}
}

// String returns "(row,col)".
func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d)", h.Row, h.Col)
}

// Odd reports whether the cell lies on a shifted row.
func (h Hex) Odd() bool {
	return h.Row&1 == 1
}

// PieceID identifies a piece for its whole lifetime.
type PieceID uint64

// Piece is a colored unit attached to the grid.
// Row and Col mirror the owning cell; both are -1 once detached.
type Piece struct {
	ID    PieceID
	Color Color
	Row   int
	Col   int

	owned bool
}

// Hex returns the cell the piece occupies.
func (p *Piece) Hex() Hex {
	return H(p.Row, p.Col)
}

// Attached reports whether the piece is owned by a grid cell.
func (p *Piece) Attached() bool {
	return p.owned
}

func (p *Piece) detach() {
	p.owned = false
	p.Row, p.Col = -1, -1
}

// Edge names one side of the play field.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// DestroyReason explains why a projectile left play without attaching.
type DestroyReason uint8

const (
	ReasonOutOfBounds DestroyReason = iota
	ReasonNoAttachSlot
	ReasonSettled
)

// String returns the reason in snake_case.
func (r DestroyReason) String() string {
	switch r {
	case ReasonOutOfBounds:
		return "out_of_bounds"
	case ReasonNoAttachSlot:
		return "no_attach_slot"
	case ReasonSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// ProjectileState is the lifecycle stage of a projectile.
type ProjectileState uint8

const (
	StateActive ProjectileState = iota
	StateStopped
	StateDestroyed
)

// String returns the state name.
func (s ProjectileState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateStopped:
		return "stopped"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
