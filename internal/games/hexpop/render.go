package hexpop

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

// Visual characters for rendering
const (
	PieceChar    = '●'
	ShotChar     = '◉'
	LauncherChar = '▲'
	GuideChar    = '·'
	DangerChar   = '╌'
)

// hudHeight is the title line plus separator; one hint line sits below the
// board.
const hudHeight = 2

// layout maps world coordinates onto terminal cells. One character spans one
// cell radius horizontally and one line spans one row vertically, so a
// piece is two characters wide and odd rows shift by one character.
type layout struct {
	frame    platformcore.Rect // Board border; the play field is inside
	radius   float64
	rowH     float64
	minX     float64
	topY     float64
	minW     int
	minH     int
	tooSmall bool
}

func computeLayout(e *core.Engine, screenW, screenH int) layout {
	grid := e.Grid()
	field := e.Field()
	l := layout{
		radius: grid.Radius(),
		rowH:   grid.Config().CellHeight(),
		minX:   field.MinX,
		topY:   grid.TopY(),
	}

	innerW := platformcore.Round((field.MaxX - field.MinX) / l.radius)
	innerH := platformcore.Round((field.MaxY-l.topY-l.radius)/l.rowH) + 1
	l.minW = innerW + 2
	l.minH = innerH + 2 + hudHeight + 1
	l.tooSmall = screenW < l.minW || screenH < l.minH

	x := (screenW - l.minW) / 2
	y := hudHeight + platformcore.Max(0, (screenH-l.minH)/2)
	l.frame = platformcore.NewRect(x, y, innerW+2, innerH+2)
	return l
}

// inner returns the play-field rectangle inside the border.
func (l layout) inner() platformcore.Rect {
	return l.frame.Inset(1)
}

// toScreen converts a world position to a terminal cell, clamped to the
// play field.
func (l layout) toScreen(x, y float64) (int, int) {
	in := l.inner()
	cx := platformcore.Round((x-l.minX)/l.radius) - 1
	cy := platformcore.Round((y - l.topY - l.radius) / l.rowH)
	cx = platformcore.Clamp(cx, 0, platformcore.Max(in.W-1, 0))
	cy = platformcore.Clamp(cy, 0, platformcore.Max(in.H-1, 0))
	return in.X + cx, in.Y + cy
}

// cellToScreen returns the terminal cell of a grid cell.
func (l layout) cellToScreen(h core.Hex) (int, int) {
	in := l.inner()
	x := 2 * h.Col
	if h.Odd() {
		x++
	}
	return in.X + x, in.Y + h.Row
}

// pieceColor maps the piece palette onto terminal colors.
func pieceColor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorRed:
		return platformcore.ColorBrightRed
	case core.ColorGreen:
		return platformcore.ColorBrightGreen
	case core.ColorBlue:
		return platformcore.ColorBrightBlue
	case core.ColorYellow:
		return platformcore.ColorBrightYellow
	case core.ColorPurple:
		return platformcore.ColorMagenta
	case core.ColorCyan:
		return platformcore.ColorCyan
	default:
		return platformcore.ColorWhite
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.loadErr != nil {
		g.renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	}
	if g.engine == nil {
		return
	}
	if g.layout.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", g.layout.minW, g.layout.minH))
		return
	}

	g.renderBoard(dst)
	if g.Ready() {
		g.renderGuide(dst)
	}
	g.renderShots(dst)
	g.renderLauncher(dst)
	g.renderHint(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Score %d - R to play again", g.score))
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d - R to restart", g.score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" %s | Score: %d", g.Title(), g.score)
	switch {
	case g.mode == ModeCampaign && len(g.allLevels) > 0:
		lvl := g.allLevels[g.levelIndex]
		hud += fmt.Sprintf(" | Level %d/%d: %s", g.levelIndex+1, len(g.allLevels), lvl.Name)
	case g.mode == ModeEndless && g.difficulty != nil:
		limit := g.difficulty.ShotsPerRow(g.cfg.Gameplay.ShotsPerRow, g.score, int(g.tick)) //#nosec G115 -- tick fits in int
		hud += fmt.Sprintf(" | New row in: %d", platformcore.Max(limit-g.missStreak, 0))
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	if g.flashTicks > 0 {
		dst.DrawTextWithColor(len([]rune(hud))+2, 0, g.flash, platformcore.ColorBrightYellow)
	}

	for x := range dst.Width() {
		dst.SetWithColor(x, 1, '─', platformcore.ColorGray)
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen) {
	grid := g.engine.Grid()
	l := g.layout
	dst.DrawBoxWithColor(l.frame, platformcore.ColorGray)

	in := l.inner()
	danger := DangerRow(grid)
	for x := in.X; x < in.Right(); x++ {
		dst.SetWithColor(x, in.Y+danger, DangerChar, platformcore.ColorRed)
	}

	for _, h := range grid.Occupied() {
		p := grid.At(h)
		x, y := l.cellToScreen(h)
		dst.SetWithColor(x, y, PieceChar, pieceColor(p.Color))
	}
}

// renderGuide draws the aim line from the launcher, reflecting off the side
// walls, until it reaches the top or an occupied cell.
func (g *Game) renderGuide(dst *platformcore.Screen) {
	grid := g.engine.Grid()
	field := g.engine.Field()
	r := g.engine.Config().ProjectileRadius

	x, y := g.engine.Launcher()
	rad := g.aim * math.Pi / 180
	dx, dy := math.Cos(rad), -math.Sin(rad)
	step := grid.Radius() / 2

	lastX, lastY := -1, -1
	for range 120 {
		x += dx * step
		y += dy * step
		if x < field.MinX+r {
			x, dx = 2*(field.MinX+r)-x, -dx
		} else if x > field.MaxX-r {
			x, dx = 2*(field.MaxX-r)-x, -dx
		}
		if y < grid.TopY()+r {
			return
		}
		if h := grid.WorldToGrid(x, y); grid.At(h) != nil {
			return
		}

		sx, sy := g.layout.toScreen(x, y)
		if sx == lastX && sy == lastY {
			continue
		}
		lastX, lastY = sx, sy
		if dst.Get(sx, sy) == ' ' {
			dst.SetWithColor(sx, sy, GuideChar, platformcore.ColorGray)
		}
	}
}

func (g *Game) renderShots(dst *platformcore.Screen) {
	for _, p := range g.engine.Simulator().Active() {
		x, y := g.layout.toScreen(p.X, p.Y)
		dst.SetWithColor(x, y, ShotChar, pieceColor(p.Color))
	}
}

func (g *Game) renderLauncher(dst *platformcore.Screen) {
	lx, ly := g.engine.Launcher()
	x, y := g.layout.toScreen(lx, ly)
	in := g.layout.inner()

	if g.engine.InFlight() == 0 {
		dst.SetWithColor(x, y, PieceChar, pieceColor(g.current))
	}
	if y+1 < in.Bottom() {
		dst.SetWithColor(x, y+1, LauncherChar, platformcore.ColorWhite)
	}

	label := "next:"
	nx := x + 3
	if nx+len(label)+1 > in.Right() {
		nx = in.X
	}
	dst.DrawTextWithColor(nx, y, label, platformcore.ColorGray)
	dst.SetWithColor(nx+len(label), y, PieceChar, pieceColor(g.next))
}

func (g *Game) renderHint(dst *platformcore.Screen) {
	y := g.layout.frame.Bottom()
	if y >= dst.Height() {
		return
	}
	hint := fmt.Sprintf("←/→ aim %3.0f° | Space fire | Tab swap | P pause", g.aim)
	dst.DrawTextCenteredWithColor(y, hint, platformcore.ColorGray)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := platformcore.Max(len([]rune(line1)), len([]rune(line2))) + 4
	box := platformcore.NewRect((dst.Width()-w)/2, (dst.Height()-5)/2, w, 5)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBoxWithColor(box, platformcore.ColorWhite)
	dst.DrawTextCenteredWithColor(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCenteredWithColor(box.Y+3, line2, platformcore.ColorGray)
}
