package platformer

// Outcome is the result of resolving one tick of collisions.
type Outcome uint8

const (
	OutcomeNone    Outcome = iota // Run continues
	OutcomeCleared                // Goal reached
	OutcomeHit                    // Touched an obstacle
	OutcomeFell                   // Dropped below the viewport
)

// Resolver applies landing, goal, obstacle and fall-through rules.
type Resolver struct {
	ViewportHeight float64
	Goal           float64 // Scroll offset that clears the run; 0 = endless
}

// Resolve runs after integration and before the scroll advances.
// Geometry is projected into viewport space by subtracting scroll.
//
// The goal test runs before the lethal tests, so a tick that reaches the
// goal is Cleared even if the actor also touches an obstacle.
func (r Resolver) Resolve(a *Actor, scroll float64, g *Generator) Outcome {
	a.Grounded = false
	land(a, scroll, g.Ground())
	land(a, scroll, g.Floating())

	if r.Goal > 0 && scroll >= r.Goal {
		return OutcomeCleared
	}

	if hitsObstacle(*a, scroll, g.Obstacles()) {
		return OutcomeHit
	}

	if a.Y > r.ViewportHeight {
		return OutcomeFell
	}

	return OutcomeNone
}

// land snaps the actor onto every platform whose top band contains its feet.
// When several match, the last one in iteration order wins.
func land(a *Actor, scroll float64, platforms []Platform) {
	for _, p := range platforms {
		px := p.X - scroll
		if a.X >= px+p.Width || a.X+a.Width <= px {
			continue
		}
		bottom := a.Bottom()
		if bottom <= p.Y || bottom >= p.Y+p.Height {
			continue
		}
		a.Y = p.Y - a.Height
		a.VelY = 0
		a.Grounded = true
		a.JumpCount = 0
	}
}

// hitsObstacle reports whether the actor overlaps any projected obstacle.
func hitsObstacle(a Actor, scroll float64, obstacles []Obstacle) bool {
	actor := a.Rect()
	for _, o := range obstacles {
		if actor.Intersects(o.Rect().Shift(-scroll)) {
			return true
		}
	}
	return false
}
