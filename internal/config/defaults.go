package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

//go:embed defaults/course.yaml
var defaultCourseYAML []byte

// Config names used for file lookup and embedded defaults.
const (
	NamePlatformer = "platformer"
	NameCourse     = "course"
)

// DefaultPlatformerConfig returns the default endless-runner configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:            1,
			JumpPower:          -18,
			MaxFallSpeed:       0,
			BaseSpeed:          5,
			MaxSpeedMultiplier: 2.0,
		},
		Player: PlayerConfig{
			X:      100,
			Width:  50,
			Height: 50,
		},
		World: WorldConfig{
			ViewportWidth:  1200,
			ViewportHeight: 600,
			GroundHeight:   100,
			ScoreDivisor:   10,
		},
		Generator: GeneratorConfig{
			StartLength:       300,
			MinGap:            50,
			MaxGap:            200,
			MinPlatformLength: 250,
			MaxPlatformLength: 600,

			ObstacleInterval:    150,
			ObstacleProbability: 0.2,
			ObstacleMinWidth:    20,
			ObstacleMaxWidth:    30,
			ObstacleMinHeight:   30,
			ObstacleMaxHeight:   40,
			MaxObstacleGap:      130,

			FloatingProbability:  0.3,
			FloatingWidth:        100,
			FloatingHeight:       20,
			FloatingMinElevation: 120,
			FloatingMaxElevation: 220,
			MinFloatingDistance:  180,
		},
		Course: CourseConfig{
			Enabled: false,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultCourseConfig returns the default fixed-course configuration:
// constant speed, fixed-length segments and a goal at 6250 units.
func DefaultCourseConfig() PlatformerConfig {
	cfg := DefaultPlatformerConfig()
	cfg.Generator.MinPlatformLength = 250
	cfg.Generator.MaxPlatformLength = 250
	cfg.Course = CourseConfig{
		Enabled:      true,
		GoalPosition: 6250,
		GoalLead:     300,
		GoalLength:   600,
		Floating: []FixedPlatform{
			{X: 900, Elevation: 150, Width: 100},
			{X: 1300, Elevation: 250, Width: 100},
			{X: 1700, Elevation: 200, Width: 100},
		},
	}
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.Progression.Type = "none"
	return cfg
}
