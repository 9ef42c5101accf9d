package graphics

import "github.com/animalstyletaco/Sly2Decomp/internal/display"

// RenderOptions carries everything the renderer needs for one frame. The
// presentation loop rebuilds it every iteration from the session settings,
// the overlay state, and the current window geometry.
type RenderOptions struct {
	// GameWidth and GameHeight are the internal render resolution.
	GameWidth  int
	GameHeight int

	// FramebufferWidth and FramebufferHeight are the window's drawable size.
	FramebufferWidth  int
	FramebufferHeight int

	// DrawRegion is the letterboxed rectangle the frame is presented into.
	DrawRegion display.Geometry

	// MSAASamples is already clamped to what the renderer supports.
	MSAASamples int

	DrawRenderDebug bool
	ForceSync       bool

	// SaveScreenshot requests a one-shot capture of this frame into
	// ScreenshotPath.
	SaveScreenshot bool
	ScreenshotPath string

	// BorderlessHeightHack marks that the window is one pixel taller than
	// the screen, so the bottom scanline must be cropped.
	BorderlessHeightHack bool

	// BlendAlpha mirrors the PMODE_ALP blend register, in [0, 1].
	BlendAlpha float32
}

// LetterboxRegion fits a regionW x regionH aspect ratio inside a
// framebuffer, centered, preserving aspect. Pillarboxes when the window is
// wider than the content, letterboxes when taller. Degenerate inputs yield
// the full framebuffer.
func LetterboxRegion(fbWidth, fbHeight, regionWidth, regionHeight int) display.Geometry {
	if fbWidth <= 0 || fbHeight <= 0 || regionWidth <= 0 || regionHeight <= 0 {
		return display.Geometry{Width: fbWidth, Height: fbHeight}
	}

	w := fbWidth
	h := fbWidth * regionHeight / regionWidth
	if h > fbHeight {
		h = fbHeight
		w = fbHeight * regionWidth / regionHeight
	}
	return display.Geometry{
		X:      (fbWidth - w) / 2,
		Y:      (fbHeight - h) / 2,
		Width:  w,
		Height: h,
	}
}
