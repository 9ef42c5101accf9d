package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("version = %#x, want %#x", cfg.Version, CurrentVersion)
	}
	if cfg.Graphics.LetterboxWidth != 640 || cfg.Graphics.LetterboxHeight != 480 {
		t.Errorf("letterbox = %dx%d, want 640x480",
			cfg.Graphics.LetterboxWidth, cfg.Graphics.LetterboxHeight)
	}
	if cfg.Graphics.MSAASamples != 4 {
		t.Errorf("msaa = %d, want 4", cfg.Graphics.MSAASamples)
	}
	if !cfg.Graphics.VSyncEnabled {
		t.Error("vsync should default on")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphics.yaml")
	data := []byte("version: 0x40001\nrenderer: headless\ngraphics:\n  msaa_samples: 8\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Renderer != "headless" {
		t.Errorf("renderer = %q, want headless", cfg.Renderer)
	}
	if cfg.Graphics.MSAASamples != 8 {
		t.Errorf("msaa = %d, want 8", cfg.Graphics.MSAASamples)
	}
	// sparse files get the gaps filled with defaults
	if cfg.Graphics.TargetFPS != 60 {
		t.Errorf("target fps = %d, want default 60", cfg.Graphics.TargetFPS)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing explicit path should fail")
	}
}

func TestOutdatedVersionResetsToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphics.yaml")
	data := []byte("version: 0x30000\nrenderer: headless\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("version = %#x, want reset to %#x", cfg.Version, CurrentVersion)
	}
	if cfg.Renderer != "x11" {
		t.Errorf("renderer = %q, outdated file should be discarded wholesale", cfg.Renderer)
	}
}
