package main

import (
	"testing"

	"github.com/animalstyletaco/Sly2Decomp/internal/config"
	"github.com/animalstyletaco/Sly2Decomp/internal/display"
)

func TestResolveDisplayTarget(t *testing.T) {
	cases := []struct {
		name       string
		cfgMode    string
		cfgScreen  int
		modeFlag   string
		screenSet  bool
		screenFlag int
		wantMode   display.Mode
		wantScreen int
	}{
		{
			name:       "config only",
			cfgMode:    "fullscreen",
			cfgScreen:  1,
			wantMode:   display.Fullscreen,
			wantScreen: 1,
		},
		{
			name:       "flags win",
			cfgMode:    "windowed",
			cfgScreen:  0,
			modeFlag:   "borderless",
			screenSet:  true,
			screenFlag: 2,
			wantMode:   display.Borderless,
			wantScreen: 2,
		},
		{
			name:       "explicit screen zero overrides config",
			cfgMode:    "windowed",
			cfgScreen:  1,
			screenSet:  true,
			screenFlag: 0,
			wantMode:   display.Windowed,
			wantScreen: 0,
		},
		{
			name:       "unset screen flag keeps config",
			cfgMode:    "windowed",
			cfgScreen:  1,
			wantMode:   display.Windowed,
			wantScreen: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Display.Mode = tc.cfgMode
			cfg.Display.Screen = tc.cfgScreen

			mode, screen, err := resolveDisplayTarget(&cfg, tc.modeFlag, tc.screenSet, tc.screenFlag)
			if err != nil {
				t.Fatalf("resolveDisplayTarget() failed: %v", err)
			}
			if mode != tc.wantMode {
				t.Errorf("mode = %v, want %v", mode, tc.wantMode)
			}
			if screen != tc.wantScreen {
				t.Errorf("screen = %d, want %d", screen, tc.wantScreen)
			}
		})
	}
}

func TestResolveDisplayTargetBadMode(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, _, err := resolveDisplayTarget(&cfg, "cinematic", false, 0); err == nil {
		t.Error("resolveDisplayTarget() should reject an unknown mode name")
	}
}
