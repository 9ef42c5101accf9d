// Package config provides YAML-based graphics and display configuration
// loading for the engine.
package config

// CurrentVersion tags the settings schema. Files carrying another version
// are discarded in favor of defaults rather than half-migrated.
const CurrentVersion = 0x40001

// Config is the top-level on-disk settings document.
type Config struct {
	Version  uint64         `yaml:"version"`
	Renderer string         `yaml:"renderer"` // backend name, e.g. "x11" or "headless"
	Debug    bool           `yaml:"debug"`
	Display  DisplayConfig  `yaml:"display"`
	Graphics GlobalSettings `yaml:"graphics"`
}

// DisplayConfig selects the initial window placement.
type DisplayConfig struct {
	Mode         string `yaml:"mode"` // "windowed", "fullscreen", or "borderless"
	Screen       int    `yaml:"screen"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

// GlobalSettings are the renderer-facing knobs shared between the
// simulation and presentation threads. The session holds one instance for
// its whole lifetime.
type GlobalSettings struct {
	// LetterboxWidth and LetterboxHeight set the presented aspect ratio.
	LetterboxWidth  int `yaml:"letterbox_width"`
	LetterboxHeight int `yaml:"letterbox_height"`

	// GameResolutionWidth and GameResolutionHeight set the internal render
	// resolution.
	GameResolutionWidth  int `yaml:"game_resolution_width"`
	GameResolutionHeight int `yaml:"game_resolution_height"`

	MSAASamples int `yaml:"msaa_samples"`

	VSyncEnabled        bool `yaml:"vsync_enabled"`
	FrameLimiterEnabled bool `yaml:"frame_limiter_enabled"`
	TargetFPS           int  `yaml:"target_fps"`
}
