package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadPlatformer loads the endless-runner configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.{yaml,toml}
// -> ./configs/platformer.yaml -> embedded default
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	return load(NamePlatformer, customPath, defaultPlatformerYAML, DefaultPlatformerConfig)
}

// LoadCourse loads the fixed-course configuration.
// Search order: customPath -> ~/.platformer/configs/course.{yaml,toml}
// -> ./configs/course.yaml -> embedded default
func LoadCourse(customPath string) (PlatformerConfig, error) {
	return load(NameCourse, customPath, defaultCourseYAML, DefaultCourseConfig)
}

// Load loads a configuration by name ("platformer" or "course").
func Load(name, customPath string) (PlatformerConfig, error) {
	switch name {
	case NameCourse:
		return LoadCourse(customPath)
	case NamePlatformer:
		return LoadPlatformer(customPath)
	default:
		return PlatformerConfig{}, fmt.Errorf("config: unknown config %q", name)
	}
}

func load(name, customPath string, embedded []byte, fallback func() PlatformerConfig) (PlatformerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data, fallback())
		if err != nil {
			return fallback(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	for _, ext := range []string{".yaml", ".toml"} {
		userCfgPath := userConfigPath(name + ext)
		if userCfgPath == "" {
			break
		}
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(userCfgPath, data, fallback()); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", name+".yaml")
	if data, err := os.ReadFile(localPath); err == nil {
		if cfg, err := decode(localPath, data, fallback()); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(name+".yaml", embedded, fallback())
	if err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode parses data over base, so keys missing from the file keep their
// default values. Files ending in .toml are parsed as TOML, everything else as YAML.
func decode(path string, data []byte, base PlatformerConfig) (PlatformerConfig, error) {
	cfg := base
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return base, err
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// Encode writes cfg to w as YAML or TOML ("yaml", "toml").
func Encode(w io.Writer, cfg PlatformerConfig, format string) error {
	switch strings.ToLower(format) {
	case "toml":
		return toml.NewEncoder(w).Encode(cfg)
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("config: unsupported format %q", format)
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	switch {
	case cfg.Course.Enabled:
		// The course keeps a constant speed; presets only change density.
	case preset == DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == "none" {
			cfg.Difficulty.Progression.Type = "score"
		}
		if cfg.Difficulty.Progression.MaxAt <= 0 {
			cfg.Difficulty.Progression.MaxAt = 2000
		}
	}

	// Adjust level density based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Generator.ObstacleProbability *= 0.5
		cfg.Generator.FloatingProbability = clampF(cfg.Generator.FloatingProbability*1.5, 0, 1)
		cfg.Generator.MaxGap = cfg.Generator.MinGap + (cfg.Generator.MaxGap-cfg.Generator.MinGap)*0.75
	case DifficultyHard:
		cfg.Generator.ObstacleProbability = clampF(cfg.Generator.ObstacleProbability*1.75, 0, 1)
		cfg.Generator.FloatingProbability *= 0.75
	}
}
