package overlay

import (
	"strings"
	"testing"
	"time"

	"github.com/animalstyletaco/Sly2Decomp/internal/graphics"
)

func TestPauseAndSingleStep(t *testing.T) {
	o := New()

	if !o.ShouldAdvance() {
		t.Fatal("unpaused overlay should advance")
	}

	o.SetPaused(true)
	if o.ShouldAdvance() {
		t.Fatal("paused overlay should not advance")
	}

	o.StepOnce()
	if !o.ShouldAdvance() {
		t.Fatal("queued step should let one frame through")
	}
	if o.ShouldAdvance() {
		t.Fatal("single step must be consumed after one frame")
	}

	o.SetPaused(false)
	if !o.ShouldAdvance() {
		t.Fatal("resumed overlay should advance")
	}
}

func TestScreenshotIsOneShot(t *testing.T) {
	o := New()

	if _, ok := o.TakeScreenshot(); ok {
		t.Fatal("no screenshot should be pending initially")
	}

	o.RequestScreenshot("frame.png")
	req, ok := o.TakeScreenshot()
	if !ok || req.Path != "frame.png" {
		t.Fatalf("TakeScreenshot() = %+v/%v, want frame.png", req, ok)
	}
	if _, ok := o.TakeScreenshot(); ok {
		t.Fatal("request must fire exactly once")
	}

	// a newer request replaces an unfired one
	o.RequestScreenshot("a.png")
	o.RequestScreenshot("b.png")
	req, ok = o.TakeScreenshot()
	if !ok || req.Path != "b.png" {
		t.Errorf("TakeScreenshot() = %+v/%v, want the latest request", req, ok)
	}
}

func TestVisibilityToggle(t *testing.T) {
	o := New()
	if o.Visible() {
		t.Fatal("overlay should start hidden")
	}
	if !o.ToggleVisible() || !o.Visible() {
		t.Fatal("first toggle should show the overlay")
	}
	if o.ToggleVisible() || o.Visible() {
		t.Fatal("second toggle should hide it again")
	}
}

func TestFrameTiming(t *testing.T) {
	o := New()
	o.StartFrame()
	time.Sleep(5 * time.Millisecond)
	o.FinishFrame()

	if got := o.LastFrameTime(); got < 5*time.Millisecond {
		t.Errorf("frame time %v, want at least 5ms", got)
	}
}

func TestStatusViewShowsLastFrame(t *testing.T) {
	o := New()
	o.Draw(graphics.FrameStats{FrameIndex: 42, ChainBytes: 1024})

	view := o.StatusView()
	if !strings.Contains(view, "42") {
		t.Errorf("status view missing frame index: %q", view)
	}
	if !strings.Contains(view, "1024") {
		t.Errorf("status view missing chain size: %q", view)
	}

	o.SetPaused(true)
	if !strings.Contains(o.StatusView(), "paused") {
		t.Error("status view should reflect the paused state")
	}
}
