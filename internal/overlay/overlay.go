// Package overlay implements the debug control surface around the
// presentation loop: pause and single-step gating, forced pipeline sync,
// one-shot screenshot requests, and per-frame timing.
package overlay

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/animalstyletaco/Sly2Decomp/internal/graphics"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Overlay implements graphics.Overlay. Toggles may be flipped from any
// goroutine; the frame hooks run on the presentation thread.
type Overlay struct {
	mu         sync.Mutex
	visible    bool
	paused     bool
	stepOnce   bool
	forceSync  bool
	screenshot *graphics.ScreenshotRequest

	frameStart    time.Time
	lastFrameTime time.Duration
	lastStats     graphics.FrameStats

	logger *log.Logger
}

// New creates a hidden, unpaused overlay.
func New() *Overlay {
	return &Overlay{logger: log.Default().WithPrefix("overlay")}
}

// ToggleVisible flips overlay visibility and returns the new state.
func (o *Overlay) ToggleVisible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = !o.visible
	return o.visible
}

// Visible reports whether the overlay is drawn.
func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// SetPaused halts or resumes frame consumption.
func (o *Overlay) SetPaused(paused bool) {
	o.mu.Lock()
	o.paused = paused
	o.mu.Unlock()
}

// Paused reports whether consumption is halted.
func (o *Overlay) Paused() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.paused
}

// StepOnce lets exactly one frame through while paused.
func (o *Overlay) StepOnce() {
	o.mu.Lock()
	o.stepOnce = true
	o.mu.Unlock()
}

// ShouldAdvance gates frame consumption for pause and single-step. A
// queued single step is consumed by this call.
func (o *Overlay) ShouldAdvance() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.paused {
		return true
	}
	if o.stepOnce {
		o.stepOnce = false
		return true
	}
	return false
}

// SetForceSync makes the loop flush the pipeline after every present.
func (o *Overlay) SetForceSync(force bool) {
	o.mu.Lock()
	o.forceSync = force
	o.mu.Unlock()
}

// ForceSync reports whether a post-present flush is requested.
func (o *Overlay) ForceSync() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.forceSync
}

// RequestScreenshot queues a one-shot capture of the next rendered frame.
// A second request before the first fires replaces it.
func (o *Overlay) RequestScreenshot(path string) {
	o.mu.Lock()
	o.screenshot = &graphics.ScreenshotRequest{Path: path}
	o.mu.Unlock()
}

// TakeScreenshot pops the pending capture request, if any.
func (o *Overlay) TakeScreenshot() (graphics.ScreenshotRequest, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.screenshot == nil {
		return graphics.ScreenshotRequest{}, false
	}
	req := *o.screenshot
	o.screenshot = nil
	return req, true
}

// StartFrame marks the beginning of a presentation iteration.
func (o *Overlay) StartFrame() {
	o.mu.Lock()
	o.frameStart = time.Now()
	o.mu.Unlock()
}

// FinishFrame closes the frame timing window.
func (o *Overlay) FinishFrame() {
	o.mu.Lock()
	if !o.frameStart.IsZero() {
		o.lastFrameTime = time.Since(o.frameStart)
	}
	o.mu.Unlock()
}

// LastFrameTime returns the duration of the last completed iteration.
func (o *Overlay) LastFrameTime() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastFrameTime
}

// Draw records the frame stats and emits them at debug level.
func (o *Overlay) Draw(stats graphics.FrameStats) {
	o.mu.Lock()
	o.lastStats = stats
	o.mu.Unlock()

	o.logger.Debug("frame",
		"index", stats.FrameIndex,
		"bytes", stats.ChainBytes,
		"wait", stats.TakeWait,
	)
}

// StatusView renders the last recorded stats as a styled block for
// terminal display.
func (o *Overlay) StatusView() string {
	o.mu.Lock()
	stats := o.lastStats
	frameTime := o.lastFrameTime
	paused := o.paused
	o.mu.Unlock()

	state := "running"
	if paused {
		state = "paused"
	}
	row := func(label, value string) string {
		return labelStyle.Render(label) + " " + valueStyle.Render(value)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("frame debug"),
		row("state:", state),
		row("frame:", fmt.Sprintf("%d", stats.FrameIndex)),
		row("chain:", fmt.Sprintf("%d bytes", stats.ChainBytes)),
		row("wait:", stats.TakeWait.String()),
		row("iter:", frameTime.String()),
	)
}
