package platformer

// Adapter receives engine events. The engine calls it synchronously from
// Tick, so implementations must not block.
type Adapter interface {
	// OnScoreChanged is called when the displayed score changes.
	OnScoreChanged(score int)
	// OnGameOver is called once when the run fails.
	OnGameOver(score int, newBest bool)
	// OnCleared is called once when the course goal is reached.
	OnCleared(score int, newBest bool)
	// Render is called at the end of every Tick with the current snapshot.
	Render(snap Snapshot)
}

// NopAdapter ignores every event. Embed it to implement only some methods.
type NopAdapter struct{}

func (NopAdapter) OnScoreChanged(int)   {}
func (NopAdapter) OnGameOver(int, bool) {}
func (NopAdapter) OnCleared(int, bool)  {}
func (NopAdapter) Render(Snapshot)      {}

// MultiAdapter forwards every event to each adapter in order.
type MultiAdapter []Adapter

func (m MultiAdapter) OnScoreChanged(score int) {
	for _, a := range m {
		a.OnScoreChanged(score)
	}
}

func (m MultiAdapter) OnGameOver(score int, newBest bool) {
	for _, a := range m {
		a.OnGameOver(score, newBest)
	}
}

func (m MultiAdapter) OnCleared(score int, newBest bool) {
	for _, a := range m {
		a.OnCleared(score, newBest)
	}
}

func (m MultiAdapter) Render(snap Snapshot) {
	for _, a := range m {
		a.Render(snap)
	}
}
