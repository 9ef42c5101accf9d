package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/animalstyletaco/Sly2Decomp/internal/display"
)

// Motif hints payload: flags, functions, decorations, input mode, status.
// Flag bit 1 selects the decorations field.
const motifHintDecorations = 2

// Window is a native X11 window implementing display.Window. All state
// flags are updated from the event drain on the presentation thread and
// may be read from anywhere.
type Window struct {
	conn *Conn
	xwin *xwindow.Window
	id   xproto.Window

	deleteAtom xproto.Atom

	mu             sync.Mutex
	title          string
	geom           display.Geometry
	minimized      bool
	closeRequested bool
	destroyed      bool
}

// CreateWindow creates and maps a top-level window.
func (c *Conn) CreateWindow(width, height int, title string) (*Window, error) {
	xwin, err := xwindow.Generate(c.XU)
	if err != nil {
		return nil, fmt.Errorf("x11: window id allocation failed: %w", err)
	}
	if err := xwin.CreateChecked(c.Root, 0, 0, width, height,
		xproto.CwBackPixel, 0x000000); err != nil {
		return nil, fmt.Errorf("x11: window creation failed: %w", err)
	}
	if err := xwin.Listen(xproto.EventMaskStructureNotify); err != nil {
		xwin.Destroy()
		return nil, fmt.Errorf("x11: event subscription failed: %w", err)
	}

	if err := ewmh.WmNameSet(c.XU, xwin.Id, title); err != nil {
		xwin.Destroy()
		return nil, fmt.Errorf("x11: title set failed: %w", err)
	}
	if err := icccm.WmProtocolsSet(c.XU, xwin.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		xwin.Destroy()
		return nil, fmt.Errorf("x11: WM_DELETE_WINDOW registration failed: %w", err)
	}
	deleteAtom, err := xprop.Atm(c.XU, "WM_DELETE_WINDOW")
	if err != nil {
		xwin.Destroy()
		return nil, fmt.Errorf("x11: atom lookup failed: %w", err)
	}

	w := &Window{
		conn:       c,
		xwin:       xwin,
		id:         xwin.Id,
		deleteAtom: deleteAtom,
		title:      title,
		geom:       display.Geometry{Width: width, Height: height},
	}
	c.windows.add(w)
	xwin.Map()
	return w, nil
}

func (w *Window) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.destroyed
}

func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *Window) SetTitle(title string) error {
	if err := ewmh.WmNameSet(w.conn.XU, w.id, title); err != nil {
		return fmt.Errorf("x11: title set failed: %w", err)
	}
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	return nil
}

// Geometry returns the last geometry reported by the server.
func (w *Window) Geometry() (display.Geometry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return display.Geometry{}, fmt.Errorf("x11: window destroyed")
	}
	return w.geom, nil
}

func (w *Window) Screens() ([]display.Screen, error) {
	return w.conn.Screens()
}

// SetWindowed leaves fullscreen, restores decorations, and places the
// window at geom.
func (w *Window) SetWindowed(geom display.Geometry) error {
	ewmh.WmStateReq(w.conn.XU, w.id, ewmh.StateRemove, "_NET_WM_STATE_FULLSCREEN")
	if err := w.setDecorated(true); err != nil {
		return err
	}
	return w.moveResize(geom)
}

// SetFullscreen moves the window onto the target screen and asks the
// window manager for fullscreen there. Video mode switching is left to the
// compositor; the WM scales to the screen's current mode.
func (w *Window) SetFullscreen(screen int, mode display.VideoMode) error {
	screens, err := w.conn.Screens()
	if err != nil {
		return err
	}
	if screen < 0 || screen >= len(screens) {
		screen = 0
	}
	// the WM fullscreens on the monitor holding the window, so move first
	origin := screens[screen].Geometry
	if err := w.moveResize(display.Geometry{
		X: origin.X, Y: origin.Y, Width: mode.Width, Height: mode.Height,
	}); err != nil {
		return err
	}
	if err := ewmh.WmStateReq(w.conn.XU, w.id, ewmh.StateAdd, "_NET_WM_STATE_FULLSCREEN"); err != nil {
		return fmt.Errorf("x11: fullscreen request failed: %w", err)
	}
	return nil
}

// SetBorderless drops decorations and covers geom without taking WM
// fullscreen.
func (w *Window) SetBorderless(screen int, geom display.Geometry) error {
	ewmh.WmStateReq(w.conn.XU, w.id, ewmh.StateRemove, "_NET_WM_STATE_FULLSCREEN")
	if err := w.setDecorated(false); err != nil {
		return err
	}
	return w.moveResize(geom)
}

func (w *Window) moveResize(geom display.Geometry) error {
	// EWMH first for frame-aware placement, raw configure as fallback
	err := ewmh.MoveresizeWindow(w.conn.XU, w.id, geom.X, geom.Y, geom.Width, geom.Height)
	if err != nil {
		w.xwin.MoveResize(geom.X, geom.Y, geom.Width, geom.Height)
	}
	return nil
}

func (w *Window) setDecorated(decorated bool) error {
	var dec uint
	if decorated {
		dec = 1
	}
	err := xprop.ChangeProp32(w.conn.XU, w.id, "_MOTIF_WM_HINTS", "_MOTIF_WM_HINTS",
		motifHintDecorations, 0, dec, 0, 0)
	if err != nil {
		return fmt.Errorf("x11: decoration hint failed: %w", err)
	}
	return nil
}

func (w *Window) Minimized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.minimized
}

func (w *Window) CloseRequested() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeRequested
}

// PollEvents drains the shared connection queue. Events for sibling
// windows are dispatched too; the queue is per-connection, not per-window.
func (w *Window) PollEvents() {
	w.conn.drainEvents()
}

// Present pushes buffered requests to the server without waiting.
func (w *Window) Present() error {
	xproto.NoOperation(w.conn.XU.Conn())
	return nil
}

// Finish performs a full round trip, guaranteeing the server has processed
// everything issued so far.
func (w *Window) Finish() error {
	w.conn.XU.Sync()
	return nil
}

func (w *Window) Destroy() error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return nil
	}
	w.destroyed = true
	w.mu.Unlock()

	w.conn.windows.remove(w.id)
	w.xwin.Destroy()
	return nil
}

func (w *Window) handleConfigure(e xproto.ConfigureNotifyEvent) {
	w.mu.Lock()
	w.geom = display.Geometry{
		X:      int(e.X),
		Y:      int(e.Y),
		Width:  int(e.Width),
		Height: int(e.Height),
	}
	w.mu.Unlock()
}

func (w *Window) handleClientMessage(e xproto.ClientMessageEvent) {
	if e.Format != 32 || len(e.Data.Data32) == 0 {
		return
	}
	if xproto.Atom(e.Data.Data32[0]) == w.deleteAtom {
		w.mu.Lock()
		w.closeRequested = true
		w.mu.Unlock()
	}
}

func (w *Window) handleUnmap() {
	w.mu.Lock()
	w.minimized = true
	w.mu.Unlock()
}

func (w *Window) handleMap() {
	w.mu.Lock()
	w.minimized = false
	w.mu.Unlock()
}

func (w *Window) handleDestroy() {
	w.mu.Lock()
	w.destroyed = true
	w.mu.Unlock()
}
