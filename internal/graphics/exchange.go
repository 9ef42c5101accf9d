// Package graphics coordinates the simulation thread and the window thread:
// the single-slot frame exchange, the producer-side gateway, and the
// presentation loop that consumes chains and drives the display state
// machine.
package graphics

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/animalstyletaco/Sly2Decomp/internal/dma"
)

// DefaultTakeTimeout bounds how long the presentation loop waits for a
// chain before running an event-pump-only iteration. A stalled simulation
// must never freeze window-event processing.
const DefaultTakeTimeout = 50 * time.Millisecond

// ErrChainPending is returned by Submit when the previous chain has not
// been consumed yet: the simulation submitted twice in one presentation
// interval. A tick-pacing bug to fix, not a fatal condition.
var ErrChainPending = errors.New("graphics: chain already pending")

// ExchangeStats is a snapshot of exchange activity.
type ExchangeStats struct {
	Accepted        uint64
	Rejected        uint64
	TakeTimeouts    uint64
	FramesPresented uint64
}

// Exchange is the single-slot mailbox shared between exactly two threads.
// The simulation thread submits at most one chain per tick; the
// presentation thread takes at most one chain per refresh. A submission
// while one is pending is rejected, never queued or overwritten, which
// back-pressures the simulation to at most one frame of lead.
//
// Two independent (mutex, cond) pairs keep the directions apart: the chain
// pair guards the pending slot, the sync pair guards the frame counter.
// The producer's vsync wait therefore never contends with the submission
// path.
type Exchange struct {
	copier dma.Copier

	chainMu   sync.Mutex
	chainCond *sync.Cond
	hasChain  bool
	pending   []byte

	syncMu           sync.Mutex
	syncCond         *sync.Cond
	frameIdx         uint64
	consumedFrameIdx uint64

	down atomic.Bool

	accepted     atomic.Uint64
	rejected     atomic.Uint64
	takeTimeouts atomic.Uint64
}

// NewExchange creates an exchange backed by copier. A nil copier gets a
// fixed-chunk one with default sizing.
func NewExchange(copier dma.Copier) *Exchange {
	if copier == nil {
		copier = dma.NewFixedChunkCopier(dma.DefaultChunkSize)
	}
	e := &Exchange{copier: copier}
	e.chainCond = sync.NewCond(&e.chainMu)
	e.syncCond = sync.NewCond(&e.syncMu)
	return e
}

// Submit copies chain into the pending slot and wakes the presentation
// thread. It never blocks. While a chain is pending it returns
// ErrChainPending and mutates nothing.
func (e *Exchange) Submit(chain []byte) error {
	e.chainMu.Lock()
	defer e.chainMu.Unlock()

	if e.hasChain {
		e.rejected.Add(1)
		return ErrChainPending
	}

	// The copy guards the renderer against the simulation corrupting its
	// own buffer mid-frame, and keeps the chain small enough to dump for
	// diagnostics separately from full process memory.
	e.pending = e.copier.Copy(chain)
	e.hasChain = true
	e.accepted.Add(1)
	e.chainCond.Broadcast()
	return nil
}

// TryTake waits up to timeout for a pending chain. The returned slice is a
// read-only view owned by the exchange; it stays valid until MarkConsumed.
// ok is false on timeout or shutdown; both are normal steady-state events,
// and the caller must still run its iteration.
func (e *Exchange) TryTake(timeout time.Duration) (chain []byte, ok bool) {
	deadline := time.Now().Add(timeout)
	wake := time.AfterFunc(timeout, func() {
		e.chainMu.Lock()
		e.chainCond.Broadcast()
		e.chainMu.Unlock()
	})
	defer wake.Stop()

	e.chainMu.Lock()
	for !e.hasChain && !e.down.Load() && time.Now().Before(deadline) {
		e.chainCond.Wait()
	}
	if !e.hasChain {
		timedOut := !e.down.Load()
		e.chainMu.Unlock()
		if timedOut {
			e.takeTimeouts.Add(1)
		}
		return nil, false
	}
	chain = e.pending
	e.chainMu.Unlock()

	// remember which frame this chain was accepted on; the producer's
	// vsync uses it as the baseline for "a newer frame was presented"
	e.syncMu.Lock()
	e.consumedFrameIdx = e.frameIdx
	e.syncMu.Unlock()
	return chain, true
}

// MarkConsumed clears the pending slot after render and present, waking a
// producer blocked in WaitForConsumption.
func (e *Exchange) MarkConsumed() {
	e.chainMu.Lock()
	e.hasChain = false
	e.chainCond.Broadcast()
	e.chainMu.Unlock()
}

// WaitForConsumption blocks the simulation thread until its pending chain
// has been consumed, so it can never race more than one frame ahead of
// rendering. Returns immediately when nothing is pending or on shutdown.
func (e *Exchange) WaitForConsumption() {
	e.chainMu.Lock()
	for e.hasChain && !e.down.Load() {
		e.chainCond.Wait()
	}
	e.chainMu.Unlock()
}

// AdvanceFrame increments the frame counter, once per presented frame
// (including frames that carried no new chain), and returns the new parity
// bit. Presentation thread only.
func (e *Exchange) AdvanceFrame() uint32 {
	e.syncMu.Lock()
	e.frameIdx++
	p := uint32(e.frameIdx & 1)
	e.syncCond.Broadcast()
	e.syncMu.Unlock()
	return p
}

// WaitForNextFrame blocks until the frame counter passes baseline or the
// session shuts down, then returns the current parity bit. This is vsync as
// seen from the simulation thread.
func (e *Exchange) WaitForNextFrame(baseline uint64) uint32 {
	e.syncMu.Lock()
	for e.frameIdx <= baseline && !e.down.Load() {
		e.syncCond.Wait()
	}
	p := uint32(e.frameIdx & 1)
	e.syncMu.Unlock()
	return p
}

// ConsumedFrame returns the frame counter value captured when the pending
// chain was taken.
func (e *Exchange) ConsumedFrame() uint64 {
	e.syncMu.Lock()
	defer e.syncMu.Unlock()
	return e.consumedFrameIdx
}

// FrameIndex returns the number of presented frames so far.
func (e *Exchange) FrameIndex() uint64 {
	e.syncMu.Lock()
	defer e.syncMu.Unlock()
	return e.frameIdx
}

// HasPending reports whether a submitted chain awaits consumption.
func (e *Exchange) HasPending() bool {
	e.chainMu.Lock()
	defer e.chainMu.Unlock()
	return e.hasChain
}

// Shutdown wakes every waiter on both condition variables; all subsequent
// waits return immediately. Idempotent.
func (e *Exchange) Shutdown() {
	e.down.Store(true)
	e.chainMu.Lock()
	e.chainCond.Broadcast()
	e.chainMu.Unlock()
	e.syncMu.Lock()
	e.syncCond.Broadcast()
	e.syncMu.Unlock()
}

// ShuttingDown reports whether Shutdown was called.
func (e *Exchange) ShuttingDown() bool { return e.down.Load() }

// Stats returns a snapshot of exchange activity.
func (e *Exchange) Stats() ExchangeStats {
	return ExchangeStats{
		Accepted:        e.accepted.Load(),
		Rejected:        e.rejected.Load(),
		TakeTimeouts:    e.takeTimeouts.Load(),
		FramesPresented: e.FrameIndex(),
	}
}
