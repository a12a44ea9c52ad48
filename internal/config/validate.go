package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports configuration values that would make level generation or
// collision math undefined. All problems are returned joined together.
func (c PlatformerConfig) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	positive := func(name string, v float64) {
		if v <= 0 {
			bad("%s must be > 0, got %v", name, v)
		}
	}
	ordered := func(minName string, lo float64, maxName string, hi float64) {
		if lo > hi {
			bad("%s (%v) > %s (%v)", minName, lo, maxName, hi)
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			bad("%s must be within [0, 1], got %v", name, v)
		}
	}

	p := c.Physics
	positive("physics.gravity", p.Gravity)
	if p.JumpPower >= 0 {
		bad("physics.jump_power must be < 0 (upward), got %v", p.JumpPower)
	}
	if p.MaxFallSpeed < 0 {
		bad("physics.max_fall_speed must be >= 0, got %v", p.MaxFallSpeed)
	}
	positive("physics.base_speed", p.BaseSpeed)
	if p.MaxSpeedMultiplier < 1 {
		bad("physics.max_speed_multiplier must be >= 1, got %v", p.MaxSpeedMultiplier)
	}

	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	if c.Player.X < 0 {
		bad("player.x must be >= 0, got %v", c.Player.X)
	}

	w := c.World
	positive("world.viewport_width", w.ViewportWidth)
	positive("world.viewport_height", w.ViewportHeight)
	positive("world.ground_height", w.GroundHeight)
	positive("world.score_divisor", w.ScoreDivisor)
	if w.GroundHeight >= w.ViewportHeight {
		bad("world.ground_height (%v) must be below viewport_height (%v)", w.GroundHeight, w.ViewportHeight)
	}
	if c.Player.X+c.Player.Width > w.ViewportWidth {
		bad("player does not fit in the viewport")
	}

	g := c.Generator
	positive("generator.start_length", g.StartLength)
	if g.MinGap < 0 {
		bad("generator.min_gap must be >= 0, got %v", g.MinGap)
	}
	ordered("generator.min_gap", g.MinGap, "generator.max_gap", g.MaxGap)
	positive("generator.min_platform_length", g.MinPlatformLength)
	ordered("generator.min_platform_length", g.MinPlatformLength, "generator.max_platform_length", g.MaxPlatformLength)
	positive("generator.obstacle_interval", g.ObstacleInterval)
	probability("generator.obstacle_probability", g.ObstacleProbability)
	positive("generator.obstacle_min_width", g.ObstacleMinWidth)
	positive("generator.obstacle_min_height", g.ObstacleMinHeight)
	ordered("generator.obstacle_min_width", g.ObstacleMinWidth, "generator.obstacle_max_width", g.ObstacleMaxWidth)
	ordered("generator.obstacle_min_height", g.ObstacleMinHeight, "generator.obstacle_max_height", g.ObstacleMaxHeight)
	if g.MaxObstacleGap < 0 {
		bad("generator.max_obstacle_gap must be >= 0, got %v", g.MaxObstacleGap)
	}
	probability("generator.floating_probability", g.FloatingProbability)
	positive("generator.floating_width", g.FloatingWidth)
	positive("generator.floating_height", g.FloatingHeight)
	if g.FloatingMinElevation < 0 {
		bad("generator.floating_min_elevation must be >= 0, got %v", g.FloatingMinElevation)
	}
	ordered("generator.floating_min_elevation", g.FloatingMinElevation, "generator.floating_max_elevation", g.FloatingMaxElevation)
	if g.MinFloatingDistance < 0 {
		bad("generator.min_floating_distance must be >= 0, got %v", g.MinFloatingDistance)
	}

	if c.Course.Enabled {
		positive("course.goal_length", c.Course.GoalLength)
		if c.Course.GoalLead < 0 {
			bad("course.goal_lead must be >= 0, got %v", c.Course.GoalLead)
		}
		if c.Course.GoalPlatformX() <= g.StartLength {
			bad("course goal platform (x=%v) must start after the start platform (%v)",
				c.Course.GoalPlatformX(), g.StartLength)
		}
		for i, fp := range c.Course.Floating {
			positive(fmt.Sprintf("course.floating[%d].width", i), fp.Width)
			positive(fmt.Sprintf("course.floating[%d].elevation", i), fp.Elevation)
		}
	}

	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		bad("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type)
	}

	return errors.Join(errs...)
}

// JumpAirtime returns how many ticks a double jump keeps the actor above its
// take-off height, with the second jump fired at the apex of the first.
func (c PlatformerConfig) JumpAirtime(jumps int) int {
	p := c.Physics
	if p.Gravity <= 0 || p.JumpPower >= 0 || jumps < 1 {
		return 0
	}

	y, vel := 0.0, p.JumpPower
	used := 1
	for ticks := 1; ticks < 100000; ticks++ {
		vel += p.Gravity
		if p.MaxFallSpeed > 0 && vel > p.MaxFallSpeed {
			vel = p.MaxFallSpeed
		}
		y += vel
		if vel >= 0 && used < jumps {
			vel = p.JumpPower
			used++
		}
		if y >= 0 {
			return ticks
		}
	}
	return 0
}

// JumpReach returns the horizontal distance covered during a full double
// jump at base speed.
func (c PlatformerConfig) JumpReach(jumps int) float64 {
	return float64(c.JumpAirtime(jumps)) * c.Physics.BaseSpeed
}

// Warnings reports settings that are legal but can produce levels the actor
// cannot finish. Generation does not check reachability itself.
func (c PlatformerConfig) Warnings(jumps int) []string {
	var warnings []string

	reach := c.JumpReach(jumps) + c.Player.Width
	if c.Generator.MaxGap > reach {
		warnings = append(warnings, fmt.Sprintf(
			"generator.max_gap %.0f exceeds the double-jump reach %.0f at base speed; some gaps may be impossible",
			c.Generator.MaxGap, reach))
	}

	apex := c.jumpApex(jumps)
	if c.Generator.FloatingMaxElevation > apex {
		warnings = append(warnings, fmt.Sprintf(
			"generator.floating_max_elevation %.0f is above the double-jump apex %.0f",
			c.Generator.FloatingMaxElevation, apex))
	}

	return warnings
}

// jumpApex returns the maximum height gained by chaining jumps at each apex.
func (c PlatformerConfig) jumpApex(jumps int) float64 {
	p := c.Physics
	if p.Gravity <= 0 || p.JumpPower >= 0 {
		return 0
	}
	// Rise of one jump: sum of |v| while v < 0 after gravity is applied.
	var rise float64
	for v := p.JumpPower + p.Gravity; v < 0; v += p.Gravity {
		rise += -v
	}
	return rise * float64(jumps)
}
