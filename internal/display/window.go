package display

// Window is a native OS window created by a renderer module. The registry
// and the state machine drive it; nothing here may be called from the
// simulation thread.
type Window interface {
	// Active reports whether the underlying native window still exists.
	Active() bool

	Title() string
	SetTitle(title string) error

	// Geometry returns the current position and framebuffer size.
	Geometry() (Geometry, error)

	// Screens enumerates the monitors visible to this window's connection.
	Screens() ([]Screen, error)

	// SetWindowed places the window, decorated, at geom.
	SetWindowed(geom Geometry) error

	// SetFullscreen puts the window into fullscreen on the given screen.
	// The mode is the one the state machine selected; the windowing layer
	// may let the OS negotiate the exact refresh rate.
	SetFullscreen(screen int, mode VideoMode) error

	// SetBorderless sizes the undecorated window to geom.
	SetBorderless(screen int, geom Geometry) error

	Minimized() bool
	CloseRequested() bool

	// PollEvents drains pending window-system events. Must be called once
	// per presentation iteration to keep the OS event loop alive.
	PollEvents()

	// Present makes the finished frame visible.
	Present() error

	// Finish blocks until the backend has executed all queued work.
	Finish() error

	Destroy() error
}
