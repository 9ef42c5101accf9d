package config

import (
	_ "embed"
)

//go:embed defaults/graphics.yaml
var defaultGraphicsYAML []byte

// DefaultGlobalSettings returns the built-in graphics settings.
func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{
		LetterboxWidth:       640,
		LetterboxHeight:      480,
		GameResolutionWidth:  640,
		GameResolutionHeight: 480,
		MSAASamples:          4,
		VSyncEnabled:         true,
		FrameLimiterEnabled:  true,
		TargetFPS:            60,
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Version:  CurrentVersion,
		Renderer: "x11",
		Display: DisplayConfig{
			Mode:         "windowed",
			WindowWidth:  640,
			WindowHeight: 480,
		},
		Graphics: DefaultGlobalSettings(),
	}
}
