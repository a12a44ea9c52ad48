package config

import "testing"

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.5},
		{50, 0.75},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tt := range tests {
		if got := dm.Level(tt.score, 0); got != tt.want {
			t.Errorf("Level(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 200},
	})
	if got := dm.Level(1000, 100); got != 0.5 {
		t.Errorf("time-based level should ignore score, got %v", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.3,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})
	if dm.IsEnabled() {
		t.Fatal("manager should be disabled")
	}
	if got := dm.Level(9999, 9999); got != 0.3 {
		t.Errorf("disabled level = %v, want initial 0.3", got)
	}
}

func TestDifficultySpeed(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 3.0},
	})

	tests := []struct {
		name   string
		score  int
		maxMul float64
		want   float64
	}{
		{"base at start", 0, 2, 5},
		{"uncapped midway", 50, 4, 12.5},
		{"capped", 100, 2, 10},
		{"no cap below one", 100, 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dm.Speed(5, tt.maxMul, tt.score, 0); got != tt.want {
				t.Errorf("Speed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDifficultySpeedMonotonic(t *testing.T) {
	dm := NewDifficultyManager(DefaultPlatformerConfig().Difficulty)
	prev := 0.0
	for score := 0; score <= 3000; score += 50 {
		s := dm.Speed(5, 2, score, 0)
		if s < prev {
			t.Fatalf("speed decreased at score %d: %v < %v", score, s, prev)
		}
		prev = s
	}
	if prev != 10 {
		t.Errorf("speed at max difficulty = %v, want 10", prev)
	}
}
