package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultConfigsAreValid(t *testing.T) {
	for name, cfg := range map[string]PlatformerConfig{
		NamePlatformer: DefaultPlatformerConfig(),
		NameCourse:     DefaultCourseConfig(),
	} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: default config invalid: %v", name, err)
		}
		if w := cfg.Warnings(2); len(w) != 0 {
			t.Errorf("%s: unexpected warnings: %v", name, w)
		}
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		want PlatformerConfig
	}{
		{NamePlatformer, DefaultPlatformerConfig()},
		{NameCourse, DefaultCourseConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.name, "")
			if err != nil {
				t.Fatalf("Load(%q) failed: %v", tt.name, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("embedded %s.yaml differs from hardcoded defaults:\n got %+v\nwant %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLoadUnknownName(t *testing.T) {
	if _, err := Load("pong", ""); err == nil {
		t.Error("expected error for unknown config name")
	}
}

func TestLoadCustomYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "physics:\n  gravity: 2\ngenerator:\n  max_gap: 150\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer() failed: %v", err)
	}
	if cfg.Physics.Gravity != 2 {
		t.Errorf("gravity = %v, want 2", cfg.Physics.Gravity)
	}
	if cfg.Generator.MaxGap != 150 {
		t.Errorf("max_gap = %v, want 150", cfg.Generator.MaxGap)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.JumpPower != -18 {
		t.Errorf("jump_power = %v, want default -18", cfg.Physics.JumpPower)
	}
	if cfg.Player.X != 100 {
		t.Errorf("player.x = %v, want default 100", cfg.Player.X)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := "[course]\ngoal_position = 3000.0\n\n[physics]\nbase_speed = 4.0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCourse(path)
	if err != nil {
		t.Fatalf("LoadCourse() failed: %v", err)
	}
	if cfg.Course.GoalPosition != 3000 {
		t.Errorf("goal_position = %v, want 3000", cfg.Course.GoalPosition)
	}
	if cfg.Physics.BaseSpeed != 4 {
		t.Errorf("base_speed = %v, want 4", cfg.Physics.BaseSpeed)
	}
	if !cfg.Course.Enabled {
		t.Error("course should stay enabled from defaults")
	}
	if len(cfg.Course.Floating) != 3 || cfg.Course.Floating[1].Elevation != 250 {
		t.Errorf("course floating platforms = %+v, want the three defaults", cfg.Course.Floating)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPlatformer(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadPlatformer(broken)
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
	if !reflect.DeepEqual(cfg, DefaultPlatformerConfig()) {
		t.Error("malformed config should fall back to defaults")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			want := DefaultCourseConfig()

			var buf bytes.Buffer
			if err := Encode(&buf, want, format); err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}

			got, err := decode("out."+format, buf.Bytes(), PlatformerConfig{})
			if err != nil {
				t.Fatalf("decode() failed: %v\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, DefaultPlatformerConfig(), "json"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlatformerConfig)
		field  string
	}{
		{"zero gravity", func(c *PlatformerConfig) { c.Physics.Gravity = 0 }, "physics.gravity"},
		{"downward jump", func(c *PlatformerConfig) { c.Physics.JumpPower = 5 }, "physics.jump_power"},
		{"no speed", func(c *PlatformerConfig) { c.Physics.BaseSpeed = 0 }, "physics.base_speed"},
		{"speed cap below one", func(c *PlatformerConfig) { c.Physics.MaxSpeedMultiplier = 0.5 }, "physics.max_speed_multiplier"},
		{"gap range inverted", func(c *PlatformerConfig) { c.Generator.MinGap = 300 }, "generator.min_gap"},
		{"negative gap", func(c *PlatformerConfig) { c.Generator.MinGap = -1 }, "generator.min_gap"},
		{"length range inverted", func(c *PlatformerConfig) { c.Generator.MaxPlatformLength = 10 }, "generator.min_platform_length"},
		{"probability above one", func(c *PlatformerConfig) { c.Generator.ObstacleProbability = 1.5 }, "generator.obstacle_probability"},
		{"negative probability", func(c *PlatformerConfig) { c.Generator.FloatingProbability = -0.1 }, "generator.floating_probability"},
		{"zero divisor", func(c *PlatformerConfig) { c.World.ScoreDivisor = 0 }, "world.score_divisor"},
		{"ground above viewport", func(c *PlatformerConfig) { c.World.GroundHeight = 700 }, "world.ground_height"},
		{"unknown progression", func(c *PlatformerConfig) { c.Difficulty.Progression.Type = "random" }, "difficulty.progression.type"},
		{"goal before start", func(c *PlatformerConfig) {
			c.Course = CourseConfig{Enabled: true, GoalPosition: 400, GoalLead: 300, GoalLength: 600}
		}, "course goal platform"},
		{"fixed platform without width", func(c *PlatformerConfig) {
			*c = DefaultCourseConfig()
			c.Course.Floating[1].Width = 0
		}, "course.floating[1].width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig: %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should mention %q", err, tt.field)
			}
		})
	}
}

func TestValidateJoinsAllProblems(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	cfg.Physics.Gravity = -1
	cfg.Player.Width = 0
	cfg.Generator.ObstacleProbability = 2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"physics.gravity", "player.width", "generator.obstacle_probability"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("joined error should mention %s: %v", field, err)
		}
	}
}

func TestJumpReach(t *testing.T) {
	cfg := DefaultPlatformerConfig()

	single := cfg.JumpAirtime(1)
	// v0 = -18, g = 1: the actor is back at take-off height after 35 ticks.
	if single != 35 {
		t.Errorf("JumpAirtime(1) = %d, want 35", single)
	}

	double := cfg.JumpAirtime(2)
	if double <= single {
		t.Errorf("double jump airtime %d should exceed single %d", double, single)
	}
	if got := cfg.JumpReach(2); got != float64(double)*cfg.Physics.BaseSpeed {
		t.Errorf("JumpReach(2) = %v, want airtime * speed", got)
	}

	cfg.Physics.Gravity = 0
	if cfg.JumpAirtime(2) != 0 {
		t.Error("airtime should be 0 for invalid physics")
	}
}

func TestWarningsReportUnreachableGaps(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	cfg.Generator.MaxGap = 5000
	cfg.Generator.FloatingMaxElevation = 1000

	w := cfg.Warnings(2)
	if len(w) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(w), w)
	}
	if !strings.Contains(w[0], "max_gap") {
		t.Errorf("first warning should be about max_gap: %s", w[0])
	}
	if !strings.Contains(w[1], "floating_max_elevation") {
		t.Errorf("second warning should be about elevation: %s", w[1])
	}
	// Warnings never make a config invalid
	if err := cfg.Validate(); err != nil {
		t.Errorf("warnings should not fail validation: %v", err)
	}
}

func TestApplyPlatformerPreset(t *testing.T) {
	t.Run("fixed disables progression", func(t *testing.T) {
		cfg := DefaultPlatformerConfig()
		ApplyPlatformerPreset(&cfg, DifficultyFixed)
		if cfg.Difficulty.Enabled {
			t.Error("fixed preset should disable progression")
		}
	})

	t.Run("hard raises level and density", func(t *testing.T) {
		cfg := DefaultPlatformerConfig()
		base := cfg.Generator.ObstacleProbability
		ApplyPlatformerPreset(&cfg, DifficultyHard)
		if cfg.Difficulty.InitialLevel != 0.7 {
			t.Errorf("initial level = %v, want 0.7", cfg.Difficulty.InitialLevel)
		}
		if cfg.Generator.ObstacleProbability <= base {
			t.Error("hard preset should raise obstacle probability")
		}
	})

	t.Run("easy narrows gaps", func(t *testing.T) {
		cfg := DefaultPlatformerConfig()
		ApplyPlatformerPreset(&cfg, DifficultyEasy)
		if cfg.Generator.MaxGap >= 200 || cfg.Generator.MaxGap < cfg.Generator.MinGap {
			t.Errorf("easy max_gap = %v, want within [min_gap, 200)", cfg.Generator.MaxGap)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("easy preset produced invalid config: %v", err)
		}
	})

	t.Run("course keeps constant speed", func(t *testing.T) {
		cfg := DefaultCourseConfig()
		ApplyPlatformerPreset(&cfg, DifficultyHard)
		if cfg.Difficulty.Enabled {
			t.Error("course should not gain speed progression from a preset")
		}
	})

	t.Run("empty preset is a no-op", func(t *testing.T) {
		cfg := DefaultPlatformerConfig()
		ApplyPlatformerPreset(&cfg, "")
		if !reflect.DeepEqual(cfg, DefaultPlatformerConfig()) {
			t.Error("empty preset should not change config")
		}
	})
}

func TestParsePreset(t *testing.T) {
	tests := map[string]DifficultyPreset{
		"easy":   DifficultyEasy,
		"normal": DifficultyNormal,
		"hard":   DifficultyHard,
		"fixed":  DifficultyFixed,
		"insane": "",
		"":       "",
	}
	for in, want := range tests {
		if got := ParsePreset(in); got != want {
			t.Errorf("ParsePreset(%q) = %q, want %q", in, got, want)
		}
	}
}
