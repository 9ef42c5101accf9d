package graphics

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/animalstyletaco/Sly2Decomp/internal/config"
	"github.com/animalstyletaco/Sly2Decomp/internal/dma"
)

// Renderer turns a consumed chain into a presented frame. Implementations
// live in the backend packages and are called only from the presentation
// thread.
type Renderer interface {
	Render(chain []byte, opts RenderOptions) error
	// MaxMSAA reports the largest sample count the device supports.
	MaxMSAA() int
}

// ScreenshotRequest is a one-shot capture order raised through the overlay.
type ScreenshotRequest struct {
	Path string
}

// FrameStats is the per-frame timing the overlay displays.
type FrameStats struct {
	FrameIndex uint64
	ChainBytes int
	TakeWait   time.Duration
}

// Overlay is the debug UI hook the presentation loop calls around each
// frame. Implementations must be safe for concurrent visibility toggles;
// the frame hooks themselves run on the presentation thread only.
type Overlay interface {
	StartFrame()
	FinishFrame()
	Visible() bool
	// ShouldAdvance gates frame consumption for pause and single-step.
	ShouldAdvance() bool
	// ForceSync asks for a full pipeline flush after present.
	ForceSync() bool
	// TakeScreenshot pops a pending capture request, if any.
	TakeScreenshot() (ScreenshotRequest, bool)
	Draw(stats FrameStats)
}

// Session binds the exchange, the active renderer, the overlay, and the
// graphics settings for one run. The gateway publishes it to the simulation
// thread; the presentation loop owns it.
type Session struct {
	Exchange *Exchange
	Renderer Renderer
	Overlay  Overlay
	Settings *config.GlobalSettings

	// PMODE_ALP blend register, stored as float bits so the simulation
	// thread can write it without taking a lock.
	blendAlpha atomic.Uint32
}

// NewSession wires a session around renderer and overlay. settings must not
// be nil; copier may be.
func NewSession(renderer Renderer, overlay Overlay, settings *config.GlobalSettings, copier dma.Copier) *Session {
	s := &Session{
		Exchange: NewExchange(copier),
		Renderer: renderer,
		Overlay:  overlay,
		Settings: settings,
	}
	s.blendAlpha.Store(math.Float32bits(1))
	return s
}

// SetBlendAlpha updates the blend register, clamped to [0, 1].
func (s *Session) SetBlendAlpha(alpha float32) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	s.blendAlpha.Store(math.Float32bits(alpha))
}

// BlendAlpha returns the current blend register value.
func (s *Session) BlendAlpha() float32 {
	return math.Float32frombits(s.blendAlpha.Load())
}

// Shutdown tears the session down, releasing every blocked thread.
func (s *Session) Shutdown() {
	s.Exchange.Shutdown()
}
