// Package dma copies simulation command buffers ("DMA chains") into memory
// owned by the graphics session, so the renderer never reads memory the
// simulation thread may still be mutating.
package dma

// DefaultChunkSize is the granularity the scratch buffer grows in.
const DefaultChunkSize = 64 * 1024

// Stats is a snapshot of copier activity.
type Stats struct {
	Copies     uint64
	LastSize   int
	BufferSize int
}

// Copier produces an owned, safe-to-read copy of a chain handed over by the
// simulation thread. Implementations are not safe for concurrent use; the
// frame exchange serializes calls under its submission lock.
type Copier interface {
	Copy(chain []byte) []byte
	Stats() Stats
}

// FixedChunkCopier reuses a single scratch buffer grown in fixed-size
// chunks. The returned slice aliases that buffer and stays valid until the
// next Copy call; the single-slot exchange guarantees the previous copy has
// been consumed by then.
type FixedChunkCopier struct {
	chunk int
	buf   []byte
	stats Stats
}

// NewFixedChunkCopier creates a copier growing its buffer in chunkSize
// steps. Non-positive sizes fall back to DefaultChunkSize.
func NewFixedChunkCopier(chunkSize int) *FixedChunkCopier {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &FixedChunkCopier{chunk: chunkSize}
}

// Copy copies chain into the scratch buffer and returns a view of the copy.
func (c *FixedChunkCopier) Copy(chain []byte) []byte {
	need := len(chain)
	if rem := need % c.chunk; rem != 0 {
		need += c.chunk - rem
	}
	if cap(c.buf) < need {
		c.buf = make([]byte, need)
	}
	c.buf = c.buf[:len(chain)]
	copy(c.buf, chain)

	c.stats.Copies++
	c.stats.LastSize = len(chain)
	c.stats.BufferSize = cap(c.buf)
	return c.buf
}

// Stats returns a snapshot of copier activity.
func (c *FixedChunkCopier) Stats() Stats { return c.stats }
