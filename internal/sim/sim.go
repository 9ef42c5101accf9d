// Package sim hosts the placeholder game tick: it produces command chains
// at a fixed rate and paces itself against the presentation side through
// the graphics gateway, exactly the way the real game loop will.
package sim

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/animalstyletaco/Sly2Decomp/internal/graphics"
)

// Config tunes the simulated game loop.
type Config struct {
	// TickRate is ticks per second. Non-positive means 60.
	TickRate int
	// Seed drives the chain payload generator.
	Seed int64
	// ChainBytes is the payload size per tick. Non-positive means 4096.
	ChainBytes int
	// MaxTicks stops the loop after that many ticks. Zero means run until
	// the gateway shuts down.
	MaxTicks uint64
}

// Stats accumulates over one Run.
type Stats struct {
	Ticks     uint64
	Submitted uint64
	Rejected  uint64
}

// Simulator is the producer side of the frame exchange.
type Simulator struct {
	gw     *graphics.Gateway
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger
	stats  Stats
}

// New creates a simulator ticking against gw.
func New(gw *graphics.Gateway, cfg Config) *Simulator {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.ChainBytes <= 0 {
		cfg.ChainBytes = 4096
	}
	return &Simulator{
		gw:     gw,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: log.Default().WithPrefix("sim"),
	}
}

// Stats returns the totals accumulated so far.
func (s *Simulator) Stats() Stats { return s.stats }

// Run ticks until MaxTicks or gateway shutdown. With a session attached it
// paces on the presented-frame counter; detached it falls back to wall
// clock, so headless and pre-window startup keep ticking at game speed.
func (s *Simulator) Run() {
	interval := time.Second / time.Duration(s.cfg.TickRate)
	chain := make([]byte, s.cfg.ChainBytes)

	for {
		if s.gw.ShuttingDown() {
			s.logger.Debug("gateway shut down", "ticks", s.stats.Ticks)
			return
		}
		if s.cfg.MaxTicks > 0 && s.stats.Ticks >= s.cfg.MaxTicks {
			s.logger.Debug("tick limit reached", "ticks", s.stats.Ticks)
			return
		}

		s.buildChain(chain, s.stats.Ticks)
		err := s.gw.SendChain(chain)
		switch {
		case err == nil:
			s.stats.Submitted++
		case errors.Is(err, graphics.ErrChainPending):
			s.stats.Rejected++
		}
		s.stats.Ticks++

		s.gw.SyncPath()
		if s.gw.Active() {
			s.gw.VSync()
		} else {
			time.Sleep(interval)
		}
	}
}

// buildChain fills buf with one tick's worth of command data: the tick
// number in the first eight bytes, seeded noise after.
func (s *Simulator) buildChain(buf []byte, tick uint64) {
	if len(buf) >= 8 {
		binary.LittleEndian.PutUint64(buf, tick)
		s.rng.Read(buf[8:])
	} else {
		s.rng.Read(buf)
	}
}
