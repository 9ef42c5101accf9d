package graphics

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Gateway is the simulation thread's only view of graphics. It forwards
// chain submission and sync calls to the attached session, and degrades
// every operation to a no-op when no session is attached, so headless runs
// and early startup need no special casing in simulation code.
type Gateway struct {
	mu      sync.RWMutex
	session *Session
	logger  *log.Logger

	warnedPending bool
}

// NewGateway creates a detached gateway.
func NewGateway() *Gateway {
	return &Gateway{logger: log.Default().WithPrefix("graphics")}
}

// Attach publishes session to the simulation thread.
func (g *Gateway) Attach(session *Session) {
	g.mu.Lock()
	g.session = session
	g.warnedPending = false
	g.mu.Unlock()
}

// Detach unpublishes the session. Subsequent calls no-op.
func (g *Gateway) Detach() {
	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()
}

// Active reports whether a session is attached.
func (g *Gateway) Active() bool {
	return g.current() != nil
}

// ShuttingDown reports whether the attached session is shutting down.
// Detached gateways report false.
func (g *Gateway) ShuttingDown() bool {
	s := g.current()
	return s != nil && s.Exchange.ShuttingDown()
}

func (g *Gateway) current() *Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

// SendChain hands one tick's command buffer to the presentation side.
// Returns ErrChainPending when the previous chain has not been presented
// yet; the caller should retry next tick with fresh state, not spin.
func (g *Gateway) SendChain(chain []byte) error {
	s := g.current()
	if s == nil {
		return nil
	}
	err := s.Exchange.Submit(chain)
	if err != nil {
		g.mu.Lock()
		warned := g.warnedPending
		g.warnedPending = true
		g.mu.Unlock()
		if !warned {
			// once per session; steady-state rejects under a frame limiter
			// are expected and show up in stats instead
			g.logger.Error("chain rejected, previous frame still pending", "err", err)
		}
	}
	return err
}

// SyncPath blocks until the pending chain has been consumed.
func (g *Gateway) SyncPath() {
	if s := g.current(); s != nil {
		s.Exchange.WaitForConsumption()
	}
}

// VSync blocks until a frame newer than the last consumed chain has been
// presented, and returns the field parity bit. Detached gateways return 0
// immediately.
func (g *Gateway) VSync() uint32 {
	s := g.current()
	if s == nil {
		return 0
	}
	return s.Exchange.WaitForNextFrame(s.Exchange.ConsumedFrame())
}

// SetBlendAlpha forwards a blend register write to the session.
func (g *Gateway) SetBlendAlpha(alpha float32) {
	if s := g.current(); s != nil {
		s.SetBlendAlpha(alpha)
	}
}
