package platformer

// Snapshot is a read-only view of one tick, projected into viewport space.
// Slices are freshly allocated and safe to keep after the tick.
type Snapshot struct {
	Tick      int      `json:"tick"`
	State     RunState `json:"state"`
	Score     int      `json:"score"`
	BestScore int      `json:"best"`
	NewBest   bool     `json:"new_best,omitempty"`
	Scroll    float64  `json:"scroll"`
	Speed     float64  `json:"speed"`

	ViewportWidth  float64 `json:"viewport_w"`
	ViewportHeight float64 `json:"viewport_h"`

	Actor     Actor      `json:"actor"`
	Platforms []Platform `json:"platforms"`
	Obstacles []Obstacle `json:"obstacles"`

	// GoalX is the projected x of the goal flag; HasGoal is false in endless mode.
	GoalX   float64 `json:"goal_x,omitempty"`
	HasGoal bool    `json:"has_goal,omitempty"`
}

// Snapshot captures the visible world at the current scroll offset.
func (e *Engine) Snapshot() Snapshot {
	vw := e.cfg.World.ViewportWidth
	snap := Snapshot{
		Tick:           e.ticks,
		State:          e.state,
		Score:          e.score,
		BestScore:      e.best,
		NewBest:        e.newBest,
		Scroll:         e.scroll,
		Speed:          e.speed,
		ViewportWidth:  vw,
		ViewportHeight: e.cfg.World.ViewportHeight,
		Actor:          e.actor,
		Platforms:      make([]Platform, 0, len(e.gen.Ground())+len(e.gen.Floating())),
		Obstacles:      make([]Obstacle, 0, len(e.gen.Obstacles())),
	}

	visible := func(x, w float64) bool {
		return x < vw && x+w > 0
	}

	for _, p := range e.gen.Ground() {
		p.X -= e.scroll
		if visible(p.X, p.Width) {
			snap.Platforms = append(snap.Platforms, p)
		}
	}
	for _, p := range e.gen.Floating() {
		p.X -= e.scroll
		if visible(p.X, p.Width) {
			snap.Platforms = append(snap.Platforms, p)
		}
	}
	for _, o := range e.gen.Obstacles() {
		o.X -= e.scroll
		if visible(o.X, o.Width) {
			snap.Obstacles = append(snap.Obstacles, o)
		}
	}

	if e.cfg.Course.Enabled {
		snap.GoalX = e.cfg.Course.GoalPosition - e.scroll
		snap.HasGoal = true
	}

	return snap
}
