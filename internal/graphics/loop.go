package graphics

import (
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/animalstyletaco/Sly2Decomp/internal/display"
)

// LoopOptions tunes the presentation loop.
type LoopOptions struct {
	// TakeTimeout bounds the per-iteration wait for a chain. Zero means
	// DefaultTakeTimeout.
	TakeTimeout time.Duration
	// MaxFrames stops the loop after that many presented frames. Zero
	// means run until close or shutdown.
	MaxFrames uint64
}

// LoopStats accumulates over the lifetime of one Run call.
type LoopStats struct {
	Iterations uint64
	Presented  uint64
	Timeouts   uint64
	TakeWait   time.Duration
}

// Loop is the presentation side: it pumps window events, consumes chains
// from the exchange, renders, presents, and steps the display state
// machine. Run must be called from the thread that owns the window,
// normally the locked main thread.
type Loop struct {
	sess   *Session
	reg    *display.Registry
	opts   LoopOptions
	logger *log.Logger
	stats  LoopStats
}

// NewLoop creates a loop over sess presenting into the registry's main
// window.
func NewLoop(sess *Session, reg *display.Registry, opts LoopOptions) *Loop {
	if opts.TakeTimeout <= 0 {
		opts.TakeTimeout = DefaultTakeTimeout
	}
	return &Loop{
		sess:   sess,
		reg:    reg,
		opts:   opts,
		logger: log.Default().WithPrefix("present"),
	}
}

// Stats returns the totals accumulated so far.
func (l *Loop) Stats() LoopStats { return l.stats }

// Run drives iterations until the session shuts down or the main window
// goes away. The loop keeps turning even when no chains arrive: window
// events must stay responsive through simulation stalls.
func (l *Loop) Run() {
	for !l.sess.Exchange.ShuttingDown() {
		h := l.reg.Main()
		if h == nil {
			l.logger.Info("main window gone, leaving presentation loop")
			return
		}
		l.iterate(h)
		if l.opts.MaxFrames > 0 && l.stats.Presented >= l.opts.MaxFrames {
			l.logger.Info("frame limit reached", "frames", l.stats.Presented)
			l.sess.Shutdown()
		}
	}
}

func (l *Loop) iterate(h *display.Handle) {
	l.stats.Iterations++
	win := h.Window()
	win.PollEvents()

	if geom, err := win.Geometry(); err == nil {
		h.State().NoteWindowedGeometry(geom)
	}

	ov := l.sess.Overlay
	ov.StartFrame()

	var frame FrameStats
	if ov.ShouldAdvance() {
		start := time.Now()
		chain, ok := l.sess.Exchange.TryTake(l.opts.TakeTimeout)
		wait := time.Since(start)
		l.stats.TakeWait += wait

		if ok {
			frame.ChainBytes = len(chain)
			frame.TakeWait = wait
			opts := l.buildOptions(h, win)
			if err := l.sess.Renderer.Render(chain, opts); err != nil {
				// a bad chain must not take the loop down with it
				l.logger.Error("render failed", "bytes", len(chain), "err", err)
			} else {
				l.stats.Presented++
			}
			l.sess.Exchange.MarkConsumed()
		} else {
			l.stats.Timeouts++
		}
	}

	if ov.Visible() {
		frame.FrameIndex = l.sess.Exchange.FrameIndex()
		ov.Draw(frame)
	}

	if err := win.Present(); err != nil {
		l.logger.Error("present failed", "err", err)
	}
	if ov.ForceSync() {
		if err := win.Finish(); err != nil {
			l.logger.Error("pipeline flush failed", "err", err)
		}
	}
	ov.FinishFrame()

	l.sess.Exchange.AdvanceFrame()

	if err := h.State().Step(); err != nil {
		l.logger.Warn("display transition failed", "err", err)
	}

	if win.CloseRequested() {
		l.logger.Info("close requested")
		l.sess.Shutdown()
	}
}

func (l *Loop) buildOptions(h *display.Handle, win display.Window) RenderOptions {
	s := l.sess.Settings
	opts := RenderOptions{
		GameWidth:       s.GameResolutionWidth,
		GameHeight:      s.GameResolutionHeight,
		DrawRenderDebug: l.sess.Overlay.Visible(),
		ForceSync:       l.sess.Overlay.ForceSync(),
		BlendAlpha:      l.sess.BlendAlpha(),
	}
	if opts.GameWidth <= 0 || opts.GameHeight <= 0 {
		opts.GameWidth, opts.GameHeight = 640, 480
	}

	if geom, err := win.Geometry(); err == nil {
		opts.FramebufferWidth = geom.Width
		opts.FramebufferHeight = geom.Height
	} else {
		opts.FramebufferWidth = opts.GameWidth
		opts.FramebufferHeight = opts.GameHeight
	}
	opts.DrawRegion = LetterboxRegion(
		opts.FramebufferWidth, opts.FramebufferHeight,
		s.LetterboxWidth, s.LetterboxHeight,
	)

	opts.MSAASamples = s.MSAASamples
	if max := l.sess.Renderer.MaxMSAA(); opts.MSAASamples > max {
		opts.MSAASamples = max
	}
	if opts.MSAASamples < 1 {
		opts.MSAASamples = 1
	}

	if req, ok := l.sess.Overlay.TakeScreenshot(); ok {
		path := req.Path
		if path == "" {
			path = "screenshot.png"
		}
		if !strings.HasSuffix(strings.ToLower(path), ".png") {
			path += ".png"
		}
		opts.SaveScreenshot = true
		opts.ScreenshotPath = path
	}

	opts.BorderlessHeightHack = h.State().Current() == display.Borderless &&
		runtime.GOOS == "windows"
	return opts
}
