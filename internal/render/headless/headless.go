// Package headless provides a renderer backend with no native output.
// Chains are consumed and accounted but never drawn, which makes the full
// pipeline runnable on CI machines and servers without a display.
package headless

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/animalstyletaco/Sly2Decomp/internal/config"
	"github.com/animalstyletaco/Sly2Decomp/internal/display"
	"github.com/animalstyletaco/Sly2Decomp/internal/graphics"
	"github.com/animalstyletaco/Sly2Decomp/internal/render"
)

func init() {
	render.Register("headless", func() render.Module { return New() })
}

var _ render.Module = (*Backend)(nil)

// virtualScreen is what Screens reports when there is no monitor at all.
var virtualScreen = display.Screen{
	Index:    0,
	Name:     "VIRTUAL-0",
	Geometry: display.Geometry{Width: 1920, Height: 1080},
	Mode:     display.VideoMode{Width: 1920, Height: 1080, RefreshRate: 60},
	Modes: []display.VideoMode{
		{Width: 1280, Height: 720, RefreshRate: 60},
		{Width: 1920, Height: 1080, RefreshRate: 60},
	},
}

// Backend is the headless renderer module.
type Backend struct {
	logger *log.Logger
	frames uint64
}

// New creates a headless backend.
func New() *Backend {
	return &Backend{logger: log.Default().WithPrefix("headless")}
}

func (b *Backend) Name() string              { return "headless" }
func (b *Backend) Pipeline() render.Pipeline { return render.PipelineHeadless }

func (b *Backend) Init(cfg *config.Config) error {
	b.logger.Debug("headless backend initialized")
	return nil
}

func (b *Backend) Exit() {}

// Render consumes the chain without drawing anything.
func (b *Backend) Render(chain []byte, opts graphics.RenderOptions) error {
	b.frames++
	b.logger.Debug("frame consumed",
		"frame", b.frames,
		"bytes", len(chain),
		"region", opts.DrawRegion,
	)
	return nil
}

// MaxMSAA reports 1: there is no device to multisample on.
func (b *Backend) MaxMSAA() int { return 1 }

func (b *Backend) Screens() ([]display.Screen, error) {
	return []display.Screen{virtualScreen}, nil
}

// MakeDisplay creates an in-memory window.
func (b *Backend) MakeDisplay(width, height int, title string, isMain bool) (display.Window, error) {
	return &window{
		active: true,
		title:  title,
		geom: display.Geometry{
			X:      virtualScreen.Geometry.Width/2 - width/2,
			Y:      virtualScreen.Geometry.Height/2 - height/2,
			Width:  width,
			Height: height,
		},
	}, nil
}

// window is an in-memory display.Window. Mode changes update the recorded
// geometry so the state machine behaves exactly as it would on a real
// platform.
type window struct {
	mu     sync.Mutex
	active bool
	title  string
	geom   display.Geometry
}

func (w *window) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *window) SetTitle(title string) error {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	return nil
}

func (w *window) Geometry() (display.Geometry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.geom, nil
}

func (w *window) Screens() ([]display.Screen, error) {
	return []display.Screen{virtualScreen}, nil
}

func (w *window) SetWindowed(geom display.Geometry) error {
	w.mu.Lock()
	w.geom = geom
	w.mu.Unlock()
	return nil
}

func (w *window) SetFullscreen(screen int, mode display.VideoMode) error {
	w.mu.Lock()
	w.geom = display.Geometry{
		X:      virtualScreen.Geometry.X,
		Y:      virtualScreen.Geometry.Y,
		Width:  mode.Width,
		Height: mode.Height,
	}
	w.mu.Unlock()
	return nil
}

func (w *window) SetBorderless(screen int, geom display.Geometry) error {
	w.mu.Lock()
	w.geom = geom
	w.mu.Unlock()
	return nil
}

func (w *window) Minimized() bool      { return false }
func (w *window) CloseRequested() bool { return false }
func (w *window) PollEvents()          {}
func (w *window) Present() error       { return nil }
func (w *window) Finish() error        { return nil }

func (w *window) Destroy() error {
	w.mu.Lock()
	w.active = false
	w.mu.Unlock()
	return nil
}
