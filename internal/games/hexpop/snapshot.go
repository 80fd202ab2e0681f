package hexpop

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot is a flat view of the game state for determinism checks.
type Snapshot struct {
	Tick       uint64
	Mode       int
	LevelIndex int
	Score      int
	Shots      int
	MissStreak int
	Aim        float64
	Current    int
	Next       int
	GameOver   bool
	Won        bool

	Pieces   int
	GridHash uint64

	// Each in-flight projectile is 4 floats: X, Y, VX, VY
	Projectiles []float64
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.tick,
		Mode:       int(g.mode),
		LevelIndex: g.levelIndex,
		Score:      g.score,
		Shots:      g.shots,
		MissStreak: g.missStreak,
		Aim:        g.aim,
		Current:    int(g.current),
		Next:       int(g.next),
		GameOver:   g.gameOver,
		Won:        g.won,
	}
	if g.engine == nil {
		return snap
	}

	grid := g.engine.Grid()
	snap.Pieces = grid.Count()
	snap.GridHash = grid.Hash()
	for _, p := range g.engine.Simulator().Active() {
		snap.Projectiles = append(snap.Projectiles, p.X, p.Y, p.VX, p.VY)
	}
	return snap
}

// Hash returns an FNV-1a digest of the snapshot.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck // hash.Hash never errors
	}
	flag := func(b bool) uint64 {
		if b {
			return 1
		}
		return 0
	}

	put(snap.Tick)
	for _, v := range []int{snap.Mode, snap.LevelIndex, snap.Score, snap.Shots, snap.MissStreak, snap.Current, snap.Next, snap.Pieces} {
		put(uint64(v)) //#nosec G115 -- hash computation
	}
	put(math.Float64bits(snap.Aim))
	put(flag(snap.GameOver))
	put(flag(snap.Won))
	put(snap.GridHash)
	for _, v := range snap.Projectiles {
		put(math.Float64bits(v))
	}
	return h.Sum64()
}
