package display

import (
	"errors"
	"fmt"
	"runtime"
)

// Mode is the presentation mode of a window.
type Mode int

const (
	Windowed Mode = iota
	Fullscreen
	Borderless
)

// modeUnset marks a window whose initial mode has not been applied yet, so
// the first state-machine step always performs an apply.
const modeUnset Mode = -1

func (m Mode) String() string {
	switch m {
	case Windowed:
		return "windowed"
	case Fullscreen:
		return "fullscreen"
	case Borderless:
		return "borderless"
	default:
		return "unset"
	}
}

// ParseMode converts a mode name from config or CLI flags.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "windowed":
		return Windowed, nil
	case "fullscreen":
		return Fullscreen, nil
	case "borderless":
		return Borderless, nil
	default:
		return Windowed, fmt.Errorf("display: unknown mode %q", s)
	}
}

// ErrNoScreens is returned when the windowing layer reports no monitors.
var ErrNoScreens = errors.New("display: no screens reported")

// StateMachine tracks desired versus applied presentation mode for one
// window. Targets are set asynchronously by callers; Step applies them
// lazily on the next eligible presentation iteration. The state machine is
// single-threaded, driven only by the presentation loop.
type StateMachine struct {
	win Window

	current Mode
	target  Mode
	// mode as of the previous iteration, before any apply this iteration
	last Mode

	currentScreen int
	targetScreen  int

	lastWindowed Geometry
	lastApplied  VideoMode
}

// NewStateMachine creates a state machine for win, remembering its current
// placement as the windowed geometry to restore later.
func NewStateMachine(win Window) *StateMachine {
	m := &StateMachine{
		win:           win,
		current:       modeUnset,
		target:        Windowed,
		last:          Windowed,
		currentScreen: -1,
		targetScreen:  -1,
		lastWindowed:  Geometry{Width: 640, Height: 480},
	}
	if g, err := win.Geometry(); err == nil && g.Width > 0 && g.Height > 0 {
		m.lastWindowed = g
	}
	return m
}

// SetTarget requests a mode and screen. The change is applied on the next
// eligible Step, not immediately.
func (m *StateMachine) SetTarget(mode Mode, screen int) {
	m.target = mode
	m.targetScreen = screen
}

// Current returns the applied mode.
func (m *StateMachine) Current() Mode { return m.current }

// CurrentScreen returns the screen of the applied mode.
func (m *StateMachine) CurrentScreen() int { return m.currentScreen }

// LastMode returns the mode as of the previous presentation iteration.
func (m *StateMachine) LastMode() Mode { return m.last }

// LastWindowed returns the placement to restore when returning to windowed
// mode.
func (m *StateMachine) LastWindowed() Geometry { return m.lastWindowed }

// NoteWindowedGeometry records a move or resize reported by the windowing
// layer. Ignored unless the window is meant to be windowed, so fullscreen
// sizes never pollute the remembered placement.
func (m *StateMachine) NoteWindowedGeometry(g Geometry) {
	if m.target == Windowed && m.current == Windowed && g.Width > 0 && g.Height > 0 {
		m.lastWindowed = g
	}
}

// Pending reports whether an apply is due: the target differs from the
// applied state, or the OS-reported video mode of the target screen changed
// behind our back (user switched display settings).
func (m *StateMachine) Pending() bool {
	if m.current != m.target || m.currentScreen != m.targetScreen {
		return true
	}
	live, err := m.liveMode(m.targetScreen)
	if err != nil {
		return false
	}
	return live != m.lastApplied
}

// Step runs one state-machine iteration. Applies a pending transition
// unless the window is minimized; applying while minimized is deferred
// because platform behavior there is undefined.
func (m *StateMachine) Step() error {
	if m.current != modeUnset {
		m.last = m.current
	}
	if !m.Pending() || m.win.Minimized() {
		return nil
	}
	return m.Apply()
}

// Apply performs the pending transition and records the applied state.
func (m *StateMachine) Apply() error {
	screens, err := m.win.Screens()
	if err != nil {
		return err
	}
	if len(screens) == 0 {
		return ErrNoScreens
	}
	idx := clampScreen(m.targetScreen, len(screens))
	scr := screens[idx]

	switch m.target {
	case Windowed:
		g := m.lastWindowed
		if m.last != Windowed {
			// leaving fullscreen: center the remembered windowed size on
			// the screen that was fullscreened, not the fullscreen size
			prev := screens[clampScreen(m.currentScreen, len(screens))]
			g = prev.Geometry.Centered(m.lastWindowed.Width, m.lastWindowed.Height)
		}
		if err := m.win.SetWindowed(g); err != nil {
			return err
		}
		m.lastWindowed = g
	case Fullscreen:
		if err := m.win.SetFullscreen(idx, scr.NativeMode()); err != nil {
			return err
		}
	case Borderless:
		g := Geometry{
			X:      scr.Geometry.X,
			Y:      scr.Geometry.Y,
			Width:  scr.Mode.Width,
			Height: scr.Mode.Height,
		}
		if runtime.GOOS == "windows" {
			// undecorated client height is reported one pixel short there
			g.Height++
		}
		if err := m.win.SetBorderless(idx, g); err != nil {
			return err
		}
	}

	m.current = m.target
	m.currentScreen = m.targetScreen
	if live, err := m.liveMode(idx); err == nil {
		m.lastApplied = live
	} else {
		m.lastApplied = scr.Mode
	}
	return nil
}

func (m *StateMachine) liveMode(screen int) (VideoMode, error) {
	screens, err := m.win.Screens()
	if err != nil {
		return VideoMode{}, err
	}
	if len(screens) == 0 {
		return VideoMode{}, ErrNoScreens
	}
	return screens[clampScreen(screen, len(screens))].Mode, nil
}

// clampScreen maps an out-of-range screen index to the primary screen.
func clampScreen(idx, count int) int {
	if idx < 0 || idx >= count {
		return 0
	}
	return idx
}
