package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Visual characters for rendering
const (
	GroundTopChar = '▀'
	GroundChar    = '▓'
	FloatingChar  = '▬'
	ObstacleChar  = '▲'
	ActorChar     = '█'
	FlagPoleChar  = '│'
	FlagChar      = '▶'
)

const (
	hudRows          = 1
	bannerDuration   = 60 // Ticks a banner stays visible
	milestoneEvery   = 100
	overlayBoxHeight = 5
)

// view is the adapter behind Game: it keeps the latest snapshot and short
// banners triggered by engine events, and draws them onto a core.Screen.
type view struct {
	snap        Snapshot
	banner      string
	bannerTicks int
	frame       int
}

func newView() *view {
	return &view{}
}

func (v *view) OnScoreChanged(score int) {
	if score > 0 && score%milestoneEvery == 0 {
		v.flash(fmt.Sprintf("%d!", score))
	}
}

func (v *view) OnGameOver(_ int, newBest bool) {
	if newBest {
		v.flash("NEW BEST!")
	}
}

func (v *view) OnCleared(_ int, newBest bool) {
	if newBest {
		v.flash("NEW BEST!")
	} else {
		v.flash("COURSE CLEAR!")
	}
}

func (v *view) Render(snap Snapshot) {
	v.snap = snap
	v.frame++
	if v.bannerTicks > 0 {
		v.bannerTicks--
	}
}

func (v *view) flash(msg string) {
	v.banner = msg
	v.bannerTicks = bannerDuration
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.view == nil {
		return
	}
	g.view.draw(dst, g.paused, g.title)
}

// draw renders the last snapshot scaled from world units to cells.
func (v *view) draw(dst *core.Screen, paused bool, title string) {
	snap := v.snap
	if snap.ViewportWidth <= 0 || snap.ViewportHeight <= 0 {
		return
	}

	sx := float64(dst.Width()) / snap.ViewportWidth
	sy := float64(dst.Height()-hudRows) / snap.ViewportHeight
	cells := func(r core.RectF) core.Rect {
		c := r.Cells(sx, sy)
		c.Y += hudRows
		return c
	}

	for _, p := range snap.Platforms {
		v.drawPlatform(dst, cells(p.Rect()), p.Terrain)
	}

	for _, o := range snap.Obstacles {
		dst.DrawRectColored(cells(o.Rect()), ObstacleChar, core.ColorGray)
	}

	if snap.HasGoal && snap.GoalX > 0 && snap.GoalX < snap.ViewportWidth {
		groundY := snap.ViewportHeight
		for _, p := range snap.Platforms {
			if p.Terrain == TerrainGoal {
				groundY = p.Y
			}
		}
		pole := cells(core.NewRectF(snap.GoalX, groundY-100, 10, 100))
		dst.DrawVLine(pole.X, pole.Y, pole.H, FlagPoleChar, core.ColorYellow)
		dst.SetColored(pole.X+1, pole.Y, FlagChar, core.ColorRed)
	}

	actorColor := core.ColorRed
	if snap.State == StateGameOver && v.frame%10 < 5 {
		actorColor = core.ColorBrightRed
	}
	dst.DrawRectColored(cells(snap.Actor.Rect()), ActorChar, actorColor)

	v.drawHUD(dst, snap)

	switch {
	case snap.State == StateNotStarted:
		drawCenteredMessage(dst, title, "Press SPACE to start")
	case paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.State == StateGameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	case snap.State == StateCleared:
		drawCenteredMessage(dst, "COURSE CLEARED", fmt.Sprintf("Score: %d  |  Press R to play again", snap.Score))
	}
}

func (v *view) drawPlatform(dst *core.Screen, r core.Rect, terrain Terrain) {
	switch terrain {
	case TerrainFloating, TerrainBridge:
		dst.DrawRectColored(r, FloatingChar, core.ColorBrown)
	case TerrainGoal:
		dst.DrawRectColored(r, GroundChar, core.ColorBrown)
		dst.DrawRectColored(core.NewRect(r.X, r.Y, r.W, 1), GroundTopChar, core.ColorBrightYellow)
	default:
		dst.DrawRectColored(r, GroundChar, core.ColorBrown)
		dst.DrawRectColored(core.NewRect(r.X, r.Y, r.W, 1), GroundTopChar, core.ColorGreen)
	}
}

func (v *view) drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d  Best: %d ", snap.Score, snap.BestScore), core.ColorWhite)

	right := fmt.Sprintf(" Spd: %.1f ", snap.Speed)
	if snap.HasGoal && snap.State == StateRunning {
		right = fmt.Sprintf(" Goal: %.0f ", math.Max(0, snap.GoalX)) + right
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right))-2, 0, right, core.ColorCyan)

	if v.bannerTicks > 0 && v.banner != "" {
		dst.DrawTextColored((dst.Width()-len(v.banner))/2, 0, v.banner, core.ColorBrightYellow)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxX := (w - boxW) / 2
	boxY := (h - overlayBoxHeight) / 2
	box := core.NewRect(boxX, boxY, boxW, overlayBoxHeight)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
