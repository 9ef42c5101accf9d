package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the graphics configuration.
// Search order: customPath -> ~/.sly2/graphics.yaml -> ./configs/graphics.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return migrate(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("graphics.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return migrate(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/graphics.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return migrate(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGraphicsYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return migrate(cfg), nil
}

// migrate discards settings written by an incompatible schema version and
// fills gaps a sparse file left at zero.
func migrate(cfg Config) Config {
	if cfg.Version != CurrentVersion {
		return DefaultConfig()
	}
	def := DefaultGlobalSettings()
	g := &cfg.Graphics
	if g.LetterboxWidth <= 0 || g.LetterboxHeight <= 0 {
		g.LetterboxWidth = def.LetterboxWidth
		g.LetterboxHeight = def.LetterboxHeight
	}
	if g.GameResolutionWidth <= 0 || g.GameResolutionHeight <= 0 {
		g.GameResolutionWidth = def.GameResolutionWidth
		g.GameResolutionHeight = def.GameResolutionHeight
	}
	if g.MSAASamples <= 0 {
		g.MSAASamples = def.MSAASamples
	}
	if g.TargetFPS <= 0 {
		g.TargetFPS = def.TargetFPS
	}
	if cfg.Renderer == "" {
		cfg.Renderer = "x11"
	}
	if cfg.Display.Mode == "" {
		cfg.Display.Mode = "windowed"
	}
	if cfg.Display.WindowWidth <= 0 || cfg.Display.WindowHeight <= 0 {
		cfg.Display.WindowWidth = 640
		cfg.Display.WindowHeight = 480
	}
	return cfg
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sly2", filename)
}
