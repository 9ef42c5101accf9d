package headless

import (
	"testing"
	"time"

	"github.com/animalstyletaco/Sly2Decomp/internal/config"
	"github.com/animalstyletaco/Sly2Decomp/internal/display"
	"github.com/animalstyletaco/Sly2Decomp/internal/graphics"
	"github.com/animalstyletaco/Sly2Decomp/internal/render"
)

func TestBackendIsRegistered(t *testing.T) {
	if !render.Exists("headless") {
		t.Fatal("headless backend should self-register")
	}
	m, err := render.Create("headless")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if m.Pipeline() != render.PipelineHeadless {
		t.Errorf("pipeline = %v, want headless", m.Pipeline())
	}
}

func TestWindowTracksModeChanges(t *testing.T) {
	b := New()
	cfg := config.DefaultConfig()
	if err := b.Init(&cfg); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer b.Exit()

	win, err := b.MakeDisplay(640, 480, "test", true)
	if err != nil {
		t.Fatalf("MakeDisplay() failed: %v", err)
	}
	if !win.Active() {
		t.Fatal("fresh window should be active")
	}

	m := display.NewStateMachine(win)
	if err := m.Step(); err != nil {
		t.Fatalf("initial Step() failed: %v", err)
	}

	m.SetTarget(display.Fullscreen, 0)
	if err := m.Step(); err != nil {
		t.Fatalf("fullscreen Step() failed: %v", err)
	}
	geom, err := win.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if geom.Width != 1920 || geom.Height != 1080 {
		t.Errorf("fullscreen geometry = %dx%d, want native 1920x1080", geom.Width, geom.Height)
	}

	if err := win.Destroy(); err != nil {
		t.Fatalf("Destroy() failed: %v", err)
	}
	if win.Active() {
		t.Error("destroyed window should be inactive")
	}
}

// TestFullPipelineHeadless runs the presentation loop end to end against
// the headless backend with a producer goroutine on the other side.
func TestFullPipelineHeadless(t *testing.T) {
	b := New()
	cfg := config.DefaultConfig()
	if err := b.Init(&cfg); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer b.Exit()

	settings := cfg.Graphics
	sess := graphics.NewSession(b, noopOverlay{}, &settings, nil)
	gw := graphics.NewGateway()
	gw.Attach(sess)
	defer gw.Detach()

	reg := display.NewRegistry(b.MakeDisplay)
	if _, err := reg.CreateMain(640, 480, "pipeline test"); err != nil {
		t.Fatalf("CreateMain() failed: %v", err)
	}
	defer reg.DestroyMain()

	const frames = 10
	go func() {
		sent := 0
		for sent < frames && !gw.ShuttingDown() {
			if err := gw.SendChain([]byte{0xDE, 0xAD}); err == nil {
				sent++
			}
			gw.SyncPath()
			gw.VSync()
		}
	}()

	loop := graphics.NewLoop(sess, reg, graphics.LoopOptions{
		TakeTimeout: 10 * time.Millisecond,
		MaxFrames:   frames,
	})

	done := make(chan struct{})
	go func() { loop.Run(); close(done) }()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("pipeline never reached the frame limit")
	}

	if got := loop.Stats().Presented; got != frames {
		t.Errorf("presented %d frames, want %d", got, frames)
	}
	if s := sess.Exchange.Stats(); s.Accepted < frames {
		t.Errorf("accepted %d chains, want at least %d", s.Accepted, frames)
	}
}

type noopOverlay struct{}

func (noopOverlay) StartFrame()         {}
func (noopOverlay) FinishFrame()        {}
func (noopOverlay) Visible() bool       { return false }
func (noopOverlay) ShouldAdvance() bool { return true }
func (noopOverlay) ForceSync() bool     { return false }
func (noopOverlay) TakeScreenshot() (graphics.ScreenshotRequest, bool) {
	return graphics.ScreenshotRequest{}, false
}
func (noopOverlay) Draw(graphics.FrameStats) {}
