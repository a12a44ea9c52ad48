package platformer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Rand is the random source used by the generator.
// *math/rand.Rand satisfies it; tests can supply scripted sequences.
type Rand interface {
	Float64() float64
}

// Generator owns the level geometry. It appends segments ahead of the
// viewport and prunes everything that scrolled behind it.
type Generator struct {
	cfg config.PlatformerConfig
	rng Rand

	ground    []Platform
	floating  []Platform
	obstacles []Obstacle

	// edge is the right end of the last generated ground platform. It
	// survives pruning so generation resumes after the buffer empties.
	edge       float64
	goalPlaced bool
}

// NewGenerator creates a generator. Call Setup before use.
func NewGenerator(cfg config.PlatformerConfig, rng Rand) *Generator {
	return &Generator{
		cfg:       cfg,
		rng:       rng,
		ground:    make([]Platform, 0, 16),
		floating:  make([]Platform, 0, 16),
		obstacles: make([]Obstacle, 0, 32),
	}
}

// Setup clears all geometry, places the start platform and the course's
// fixed floating platforms, and generates the first screen of level.
func (g *Generator) Setup() {
	g.ground = g.ground[:0]
	g.floating = g.floating[:0]
	g.obstacles = g.obstacles[:0]
	g.goalPlaced = false

	w := g.cfg.World
	g.ground = append(g.ground, Platform{
		X:       0,
		Y:       w.GroundY(),
		Width:   g.cfg.Generator.StartLength,
		Height:  w.GroundHeight,
		Terrain: TerrainStart,
	})
	g.edge = g.cfg.Generator.StartLength

	if g.cfg.Course.Enabled {
		g.placeFixed(g.cfg.Course.Floating)
	}
	g.Ensure(0)
}

// placeFixed adds hand-placed floating platforms. Ones breaking the spacing
// rule against earlier entries are skipped.
func (g *Generator) placeFixed(fixed []config.FixedPlatform) {
	for _, fp := range fixed {
		p := Platform{
			X:       fp.X,
			Y:       g.cfg.World.GroundY() - fp.Elevation,
			Width:   fp.Width,
			Height:  g.cfg.Generator.FloatingHeight,
			Terrain: TerrainFloating,
		}
		if g.fits(p) {
			g.floating = append(g.floating, p)
		}
	}
}

// Ensure appends segments until the generated ground ends at least one
// max-length segment past the viewport, then prunes geometry behind scroll.
// It is a no-op when the buffer is already sufficient.
func (g *Generator) Ensure(scroll float64) {
	horizon := g.cfg.World.ViewportWidth + g.cfg.Generator.MaxPlatformLength
	for g.edge-scroll < horizon {
		g.extend()
	}
	g.prune(scroll)
}

// prune drops every entity whose right edge is behind scroll, keeping order.
func (g *Generator) prune(scroll float64) {
	ground := g.ground[:0]
	for _, p := range g.ground {
		if p.Right() >= scroll {
			ground = append(ground, p)
		}
	}
	g.ground = ground

	floating := g.floating[:0]
	for _, p := range g.floating {
		if p.Right() >= scroll {
			floating = append(floating, p)
		}
	}
	g.floating = floating

	obstacles := g.obstacles[:0]
	for _, o := range g.obstacles {
		if o.Right() >= scroll {
			obstacles = append(obstacles, o)
		}
	}
	g.obstacles = obstacles
}

// extend appends one gap and one ground segment after the last platform.
func (g *Generator) extend() {
	gc := g.cfg.Generator
	gapStart := g.edge

	gap := g.uniform(gc.MinGap, gc.MaxGap)
	length := g.uniform(gc.MinPlatformLength, gc.MaxPlatformLength)
	x := gapStart + gap

	if g.cfg.Course.Enabled && !g.goalPlaced {
		goalX := g.cfg.Course.GoalPlatformX()
		if x >= goalX {
			// The gap already reaches the goal platform.
			g.placeGoal()
			return
		}
		if x+length >= goalX {
			g.addSegment(gapStart, x, goalX-x)
			g.placeGoal()
			return
		}
	}

	g.addSegment(gapStart, x, length)
}

// placeGoal appends the fixed-course goal platform. It never carries obstacles.
func (g *Generator) placeGoal() {
	w := g.cfg.World
	g.ground = append(g.ground, Platform{
		X:       g.cfg.Course.GoalPlatformX(),
		Y:       w.GroundY(),
		Width:   g.cfg.Course.GoalLength,
		Height:  w.GroundHeight,
		Terrain: TerrainGoal,
	})
	g.edge = g.cfg.Course.GoalPlatformX() + g.cfg.Course.GoalLength
	g.goalPlaced = true
}

// addSegment appends a ground segment starting at x, preceded by a gap that
// starts at gapStart, and populates it with obstacles and floating platforms.
func (g *Generator) addSegment(gapStart, x, length float64) {
	w := g.cfg.World
	seg := Platform{
		X:       x,
		Y:       w.GroundY(),
		Width:   length,
		Height:  w.GroundHeight,
		Terrain: TerrainGround,
	}
	g.ground = append(g.ground, seg)
	g.edge = seg.Right()

	first := len(g.obstacles)
	g.placeObstacles(seg)
	g.placeBridges(g.obstacles[first:])
	g.placeFloating(seg, gapStart)
}

// placeObstacles puts a candidate obstacle at every interval inside the
// segment and keeps each with obstacle_probability.
func (g *Generator) placeObstacles(seg Platform) {
	gc := g.cfg.Generator
	groundY := g.cfg.World.GroundY()

	for ox := seg.X + gc.ObstacleInterval; ox+gc.ObstacleMaxWidth <= seg.Right(); ox += gc.ObstacleInterval {
		if g.rng.Float64() >= gc.ObstacleProbability {
			continue
		}
		width := g.uniform(gc.ObstacleMinWidth, gc.ObstacleMaxWidth)
		height := g.uniform(gc.ObstacleMinHeight, gc.ObstacleMaxHeight)
		g.obstacles = append(g.obstacles, Obstacle{
			X:      ox,
			Y:      groundY - height,
			Width:  width,
			Height: height,
		})
	}
}

// placeBridges adds a floating platform over every run of two or more
// obstacles spaced no further than max_obstacle_gap apart. Bridges are
// always placed; the rejection rule applies only to random platforms.
func (g *Generator) placeBridges(obstacles []Obstacle) {
	gc := g.cfg.Generator
	if len(obstacles) < 2 {
		return
	}

	start := 0
	for i := 1; i <= len(obstacles); i++ {
		if i < len(obstacles) && obstacles[i].X-obstacles[i-1].Right() <= gc.MaxObstacleGap {
			continue
		}
		if i-start >= 2 {
			g.addBridge(obstacles[start], obstacles[i-1])
		}
		start = i
	}
}

// addBridge spans a platform from the first to the last obstacle of a cluster.
func (g *Generator) addBridge(first, last Obstacle) {
	gc := g.cfg.Generator
	width := last.Right() - first.X
	x := first.X
	if width < gc.FloatingWidth {
		x -= (gc.FloatingWidth - width) / 2
		width = gc.FloatingWidth
	}
	g.floating = append(g.floating, Platform{
		X:       x,
		Y:       g.cfg.World.GroundY() - gc.FloatingMinElevation,
		Width:   width,
		Height:  gc.FloatingHeight,
		Terrain: TerrainBridge,
	})
}

// placeFloating rolls for a platform above the segment and one above the
// gap before it. Candidates breaking the spacing rule are discarded.
func (g *Generator) placeFloating(seg Platform, gapStart float64) {
	gc := g.cfg.Generator

	if g.rng.Float64() < gc.FloatingProbability {
		span := seg.Width - gc.FloatingWidth
		x := seg.X
		if span > 0 {
			x += g.rng.Float64() * span
		}
		g.tryFloating(x)
	}

	if gap := seg.X - gapStart; gap > 0 && g.rng.Float64() < gc.FloatingProbability {
		g.tryFloating(gapStart + gap/2 - gc.FloatingWidth/2)
	}
}

// tryFloating draws an elevation and appends the platform if it passes the
// rejection rule. Returns whether the platform was placed.
func (g *Generator) tryFloating(x float64) bool {
	gc := g.cfg.Generator
	elevation := g.uniform(gc.FloatingMinElevation, gc.FloatingMaxElevation)
	p := Platform{
		X:       x,
		Y:       g.cfg.World.GroundY() - elevation,
		Width:   gc.FloatingWidth,
		Height:  gc.FloatingHeight,
		Terrain: TerrainFloating,
	}
	if !g.fits(p) {
		return false
	}
	g.floating = append(g.floating, p)
	return true
}

// fits reports whether p neither overlaps nor crowds an existing floating platform.
func (g *Generator) fits(p Platform) bool {
	r := p.Rect()
	for _, other := range g.floating {
		o := other.Rect()
		if r.Intersects(o) {
			return false
		}
		if centerOf(r).Sub(centerOf(o)).Len() < g.cfg.Generator.MinFloatingDistance {
			return false
		}
	}
	return true
}

func centerOf(r core.RectF) mgl64.Vec2 {
	x, y := r.Center()
	return mgl64.Vec2{x, y}
}

// uniform draws from [lo, hi].
func (g *Generator) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float64()*(hi-lo)
}

// Ground returns the ground platforms, left to right.
func (g *Generator) Ground() []Platform {
	return g.ground
}

// Floating returns the floating platforms in placement order.
func (g *Generator) Floating() []Platform {
	return g.floating
}

// Obstacles returns the obstacles, left to right.
func (g *Generator) Obstacles() []Obstacle {
	return g.obstacles
}

// Platforms returns ground then floating platforms, the order used for landing.
func (g *Generator) Platforms() []Platform {
	all := make([]Platform, 0, len(g.ground)+len(g.floating))
	all = append(all, g.ground...)
	return append(all, g.floating...)
}

// GoalPlaced reports whether the course goal platform has been generated.
func (g *Generator) GoalPlaced() bool {
	return g.goalPlaced
}
