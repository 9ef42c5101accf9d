package x11

import (
	"sync"

	"github.com/BurntSushi/xgb/xproto"
)

// dispatchTable routes X events to the window that owns them. The event
// drain runs on the presentation thread while windows are registered from
// wherever they are created, hence the lock.
type dispatchTable struct {
	mu      sync.RWMutex
	windows map[xproto.Window]*Window
}

func newDispatchTable() *dispatchTable {
	return &dispatchTable{windows: make(map[xproto.Window]*Window)}
}

func (t *dispatchTable) add(w *Window) {
	t.mu.Lock()
	t.windows[w.id] = w
	t.mu.Unlock()
}

func (t *dispatchTable) remove(id xproto.Window) {
	t.mu.Lock()
	delete(t.windows, id)
	t.mu.Unlock()
}

func (t *dispatchTable) lookup(id xproto.Window) *Window {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.windows[id]
}

// drainEvents pulls every queued event off the connection and dispatches
// it. Non-blocking; returns once the queue is empty. Events for unknown
// windows (already destroyed, or foreign) are dropped.
func (c *Conn) drainEvents() {
	for {
		ev, err := c.XU.Conn().PollForEvent()
		if ev == nil && err == nil {
			return
		}
		if err != nil {
			continue
		}

		switch e := ev.(type) {
		case xproto.ConfigureNotifyEvent:
			if w := c.windows.lookup(e.Window); w != nil {
				w.handleConfigure(e)
			}
		case xproto.ClientMessageEvent:
			if w := c.windows.lookup(e.Window); w != nil {
				w.handleClientMessage(e)
			}
		case xproto.UnmapNotifyEvent:
			if w := c.windows.lookup(e.Window); w != nil {
				w.handleUnmap()
			}
		case xproto.MapNotifyEvent:
			if w := c.windows.lookup(e.Window); w != nil {
				w.handleMap()
			}
		case xproto.DestroyNotifyEvent:
			if w := c.windows.lookup(e.Window); w != nil {
				w.handleDestroy()
				c.windows.remove(e.Window)
			}
		}
	}
}
