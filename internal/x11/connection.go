// Package x11 implements the native display backend on top of the X
// protocol. It owns the server connection, monitor enumeration through
// RandR, and the window event plumbing the presentation loop polls.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Conn manages the X11 connection and core X resources.
type Conn struct {
	XU   *xgbutil.XUtil
	Root xproto.Window

	windows *dispatchTable
}

// Connect establishes a connection to the X server and initializes the
// RandR extension.
func Connect() (*Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect failed: %w", err)
	}

	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("x11: randr init failed: %w", err)
	}

	return &Conn{
		XU:      xu,
		Root:    xu.RootWin(),
		windows: newDispatchTable(),
	}, nil
}

// Close cleanly disconnects from the X server.
func (c *Conn) Close() {
	c.XU.Conn().Close()
}
