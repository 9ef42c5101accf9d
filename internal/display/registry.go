package display

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrMainExists is returned by CreateMain when a main display is already
// registered and active.
var ErrMainExists = errors.New("display: main display already exists")

// WindowMaker constructs a native window. Renderer modules provide one.
type WindowMaker func(width, height int, title string, isMain bool) (Window, error)

// Handle couples a native window with its mode state machine.
type Handle struct {
	win   Window
	state *StateMachine
	main  bool
}

// Window returns the native window.
func (h *Handle) Window() Window { return h.win }

// State returns the window's mode state machine.
func (h *Handle) State() *StateMachine { return h.state }

// Active reports whether the native window still exists.
func (h *Handle) Active() bool { return h.win.Active() }

// Main reports whether this is the main display.
func (h *Handle) Main() bool { return h.main }

// Registry is the ordered collection of open windows. Index 0 is the main
// display; all others are secondary, spectator-like views. Owned by the
// window thread.
type Registry struct {
	make    WindowMaker
	handles []*Handle
	logger  *log.Logger
}

// NewRegistry creates a registry whose windows are built by maker.
func NewRegistry(maker WindowMaker) *Registry {
	return &Registry{
		make:   maker,
		logger: log.Default().WithPrefix("display"),
	}
}

// CreateMain constructs the main display. Fails if one already exists or if
// the windowing layer cannot create the window; in the latter case the
// caller should abandon graphics startup but may keep running headless.
func (r *Registry) CreateMain(width, height int, title string) (*Handle, error) {
	if r.Main() != nil {
		r.logger.Warn("create main display requested while one exists")
		return nil, ErrMainExists
	}
	win, err := r.make(width, height, title, true)
	if err != nil {
		return nil, fmt.Errorf("display: create main: %w", err)
	}
	h := &Handle{win: win, state: NewStateMachine(win), main: true}
	if len(r.handles) > 0 {
		r.handles[0] = h
	} else {
		r.handles = append(r.handles, h)
	}
	return h, nil
}

// Attach registers a secondary window that was created elsewhere.
func (r *Registry) Attach(win Window) *Handle {
	h := &Handle{win: win, state: NewStateMachine(win)}
	r.handles = append(r.handles, h)
	return h
}

// Main returns the main display, or nil when none exists or its native
// window is gone. A nil result is the legitimate headless state, not an
// error.
func (r *Registry) Main() *Handle {
	if len(r.handles) == 0 {
		return nil
	}
	if h := r.handles[0]; h.Active() {
		return h
	}
	return nil
}

// Len returns the number of registered windows.
func (r *Registry) Len() int { return len(r.handles) }

// Destroy tears down a window. Destroying the main display first destroys
// every secondary window, draining the registry down to main, then destroys
// main itself. A handle whose native window is already gone is still removed
// from the registry, and for main the secondaries are still drained, so an
// out-of-band window death cannot strand secondary windows.
func (r *Registry) Destroy(h *Handle) error {
	if h == nil {
		return nil
	}
	if len(r.handles) > 0 && r.handles[0] == h {
		for len(r.handles) > 1 {
			if err := r.Destroy(r.handles[1]); err != nil {
				return err
			}
		}
	}
	for i, other := range r.handles {
		if other == h {
			r.handles = append(r.handles[:i], r.handles[i+1:]...)
			break
		}
	}
	if !h.Active() {
		r.logger.Warn("destroy requested for inactive display")
		return nil
	}
	return h.win.Destroy()
}

// DestroyMain destroys the main display and, with it, every secondary one.
// Runs even when the main window is already inactive so the registry always
// drains. No-op when nothing is registered.
func (r *Registry) DestroyMain() error {
	if len(r.handles) == 0 {
		return nil
	}
	return r.Destroy(r.handles[0])
}
