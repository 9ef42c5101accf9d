// Package display manages game windows: the ordered window registry and the
// windowed/fullscreen/borderless state machine stepped by the presentation
// loop. All of it is single-threaded and owned by the window thread.
package display

// Geometry is a window placement in virtual-desktop coordinates.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// Centered returns a w×h geometry centered inside g.
func (g Geometry) Centered(w, h int) Geometry {
	return Geometry{
		X:      g.X + (g.Width / 2) - (w / 2),
		Y:      g.Y + (g.Height / 2) - (h / 2),
		Width:  w,
		Height: h,
	}
}

// VideoMode is a display hardware mode.
type VideoMode struct {
	Width       int
	Height      int
	RefreshRate int
}

// Screen describes one attached monitor.
type Screen struct {
	Index    int
	Name     string
	Geometry Geometry // position and size in the virtual desktop
	Mode     VideoMode
	Modes    []VideoMode
}

// NativeMode returns the highest-resolution mode the screen reports, falling
// back to the current mode when the list is empty.
func (s Screen) NativeMode() VideoMode {
	best := s.Mode
	for _, m := range s.Modes {
		if m.Height > best.Height || (m.Height == best.Height && m.Width > best.Width) {
			best = m
		}
	}
	return best
}
