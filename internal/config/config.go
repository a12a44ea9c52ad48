// Package config provides YAML/TOML-based game configuration loading,
// validation and difficulty management for the platformer.
package config

// PlatformerConfig contains all configuration for one platformer variant.
// Distances are world units, velocities are world units per tick.
type PlatformerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics" toml:"physics"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	World      WorldConfig      `yaml:"world" toml:"world"`
	Generator  GeneratorConfig  `yaml:"generator" toml:"generator"`
	Course     CourseConfig     `yaml:"course" toml:"course"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// PhysicsConfig defines actor physics and scrolling.
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity" toml:"gravity"`                           // Downward acceleration per tick (> 0)
	JumpPower          float64 `yaml:"jump_power" toml:"jump_power"`                     // Velocity set by a jump (< 0 = up)
	MaxFallSpeed       float64 `yaml:"max_fall_speed" toml:"max_fall_speed"`             // 0 = unlimited
	BaseSpeed          float64 `yaml:"base_speed" toml:"base_speed"`                     // Scroll per tick at difficulty 0
	MaxSpeedMultiplier float64 `yaml:"max_speed_multiplier" toml:"max_speed_multiplier"` // Hard cap on speed / base_speed
}

// PlayerConfig defines the actor hitbox. X is fixed in viewport space.
type PlayerConfig struct {
	X      float64 `yaml:"x" toml:"x"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// WorldConfig defines the viewport and scoring scale.
type WorldConfig struct {
	ViewportWidth  float64 `yaml:"viewport_width" toml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height" toml:"viewport_height"`
	GroundHeight   float64 `yaml:"ground_height" toml:"ground_height"`
	ScoreDivisor   float64 `yaml:"score_divisor" toml:"score_divisor"` // score = floor(scroll / divisor)
}

// GroundY returns the world y of the ground surface.
func (w WorldConfig) GroundY() float64 {
	return w.ViewportHeight - w.GroundHeight
}

// GeneratorConfig defines procedural level generation.
type GeneratorConfig struct {
	StartLength       float64 `yaml:"start_length" toml:"start_length"`
	MinGap            float64 `yaml:"min_gap" toml:"min_gap"`
	MaxGap            float64 `yaml:"max_gap" toml:"max_gap"`
	MinPlatformLength float64 `yaml:"min_platform_length" toml:"min_platform_length"`
	MaxPlatformLength float64 `yaml:"max_platform_length" toml:"max_platform_length"`

	ObstacleInterval    float64 `yaml:"obstacle_interval" toml:"obstacle_interval"`
	ObstacleProbability float64 `yaml:"obstacle_probability" toml:"obstacle_probability"`
	ObstacleMinWidth    float64 `yaml:"obstacle_min_width" toml:"obstacle_min_width"`
	ObstacleMaxWidth    float64 `yaml:"obstacle_max_width" toml:"obstacle_max_width"`
	ObstacleMinHeight   float64 `yaml:"obstacle_min_height" toml:"obstacle_min_height"`
	ObstacleMaxHeight   float64 `yaml:"obstacle_max_height" toml:"obstacle_max_height"`
	MaxObstacleGap      float64 `yaml:"max_obstacle_gap" toml:"max_obstacle_gap"` // Cluster threshold for guaranteed platforms

	FloatingProbability  float64 `yaml:"floating_probability" toml:"floating_probability"`
	FloatingWidth        float64 `yaml:"floating_width" toml:"floating_width"`
	FloatingHeight       float64 `yaml:"floating_height" toml:"floating_height"`
	FloatingMinElevation float64 `yaml:"floating_min_elevation" toml:"floating_min_elevation"` // Above ground surface
	FloatingMaxElevation float64 `yaml:"floating_max_elevation" toml:"floating_max_elevation"`
	MinFloatingDistance  float64 `yaml:"min_floating_distance" toml:"min_floating_distance"`
}

// CourseConfig defines the fixed-length course variant.
type CourseConfig struct {
	Enabled      bool    `yaml:"enabled" toml:"enabled"`
	GoalPosition float64 `yaml:"goal_position" toml:"goal_position"` // Scroll offset that clears the course
	GoalLead     float64 `yaml:"goal_lead" toml:"goal_lead"`         // Goal platform starts this far before the goal
	GoalLength   float64 `yaml:"goal_length" toml:"goal_length"`

	Floating []FixedPlatform `yaml:"floating,omitempty" toml:"floating,omitempty"` // Placed before random generation
}

// FixedPlatform is a hand-placed floating platform of the course.
type FixedPlatform struct {
	X         float64 `yaml:"x" toml:"x"`
	Elevation float64 `yaml:"elevation" toml:"elevation"` // Above ground surface
	Width     float64 `yaml:"width" toml:"width"`
}

// GoalPlatformX returns the world x where the goal platform starts.
func (c CourseConfig) GoalPlatformX() float64 {
	return c.GoalPosition - c.GoalLead
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
