package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/animalstyletaco/Sly2Decomp/internal/display"
)

// Screens retrieves all active monitors using XRandR. Disabled CRTCs are
// skipped; the remaining ones are indexed in CRTC order, so index 0 is the
// primary in the common single-GPU setup.
func (c *Conn) Screens() ([]display.Screen, error) {
	resources, err := randr.GetScreenResources(c.XU.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: failed to get screen resources: %w", err)
	}

	// Mode table, keyed by mode ID.
	modes := make(map[randr.Mode]display.VideoMode, len(resources.Modes))
	for _, mi := range resources.Modes {
		modes[randr.Mode(mi.Id)] = display.VideoMode{
			Width:       int(mi.Width),
			Height:      int(mi.Height),
			RefreshRate: refreshRate(mi),
		}
	}

	var screens []display.Screen
	for _, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XU.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		scr := display.Screen{
			Index: len(screens),
			Name:  fmt.Sprintf("Monitor%d", len(screens)),
			Geometry: display.Geometry{
				X:      int(crtcInfo.X),
				Y:      int(crtcInfo.Y),
				Width:  int(crtcInfo.Width),
				Height: int(crtcInfo.Height),
			},
			Mode: modes[crtcInfo.Mode],
		}

		outputInfo, err := randr.GetOutputInfo(c.XU.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			scr.Name = string(outputInfo.Name)
			for _, id := range outputInfo.Modes {
				if m, ok := modes[id]; ok {
					scr.Modes = append(scr.Modes, m)
				}
			}
		}
		if len(scr.Modes) == 0 {
			scr.Modes = []display.VideoMode{scr.Mode}
		}

		screens = append(screens, scr)
	}

	if len(screens) == 0 {
		return nil, display.ErrNoScreens
	}
	return screens, nil
}

// refreshRate derives the vertical refresh in Hz from the mode timings.
func refreshRate(mi randr.ModeInfo) int {
	total := uint64(mi.Htotal) * uint64(mi.Vtotal)
	if total == 0 {
		return 0
	}
	return int((uint64(mi.DotClock) + total/2) / total)
}
