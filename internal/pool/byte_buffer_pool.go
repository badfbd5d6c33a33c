package pool

import (
	"sync"
)

const (
	// ChunkSize is the growth increment of a lookahead buffer and the size of a single read.
	ChunkSize = 4096
	// LookaheadBufferDefaultSize is the initial capacity of pooled lookahead buffers.
	LookaheadBufferDefaultSize = 2 * ChunkSize
	// LookaheadBufferMaxThreshold is the largest buffer returned to the pool.
	LookaheadBufferMaxThreshold = 256 * 1024
)

// ByteBuffer is a growable byte slice that never exposes uninitialized memory.
//
// Bytes are added through the reserve/commit pair: Reserve hands out spare capacity
// to fill, and Commit confirms how many of those bytes were actually written. Only
// committed bytes are part of the buffer.
type ByteBuffer struct {
	// B is the underlying byte slice. Its length is the committed length.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Reset empties the buffer but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the committed length.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reserve makes room for at least n more bytes and returns the spare capacity
// following the committed bytes. The returned slice is only a staging area:
// nothing in it belongs to the buffer until Commit is called.
func (bb *ByteBuffer) Reserve(n int) []byte {
	bb.Grow(n)

	return bb.B[len(bb.B):cap(bb.B)]
}

// Commit confirms that the first n bytes of the slice returned by the last Reserve
// were written. Panics if n is negative or exceeds the spare capacity.
func (bb *ByteBuffer) Commit(n int) {
	curLen := len(bb.B)
	if n < 0 || curLen+n > cap(bb.B) {
		panic("Commit: invalid length")
	}

	bb.B = bb.B[:curLen+n]
}

// Discard removes the first n committed bytes by shifting the remainder to the front.
func (bb *ByteBuffer) Discard(n int) {
	if n <= 0 {
		return
	}
	if n >= len(bb.B) {
		bb.B = bb.B[:0]
		return
	}

	remaining := copy(bb.B, bb.B[n:])
	bb.B = bb.B[:remaining]
}

// Prepend inserts data in front of the committed bytes.
func (bb *ByteBuffer) Prepend(data []byte) {
	if len(data) == 0 {
		return
	}

	curLen := len(bb.B)
	bb.Grow(len(data))
	bb.B = bb.B[:curLen+len(data)]
	copy(bb.B[len(data):], bb.B[:curLen])
	copy(bb.B, data)
}

// Grow ensures the buffer can take requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (up to 16 chunks), grow by ChunkSize increments.
//   - For larger buffers, grow by 25% of current capacity to bound reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ChunkSize
	if cap(bb.B) > 16*ChunkSize {
		growBy = cap(bb.B) / 4
	}

	missing := requiredBytes - available
	if growBy < missing {
		// round up to whole chunks
		growBy = (missing + ChunkSize - 1) / ChunkSize * ChunkSize
	}

	newBuf := make([]byte, len(bb.B), cap(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers larger than maxThreshold are dropped on Put so that one huge record
// does not pin its memory for the rest of the process.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
// A maxThreshold of zero disables the size limit.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var lookaheadPool = NewByteBufferPool(LookaheadBufferDefaultSize, LookaheadBufferMaxThreshold)

// GetLookaheadBuffer retrieves a ByteBuffer from the lookahead pool.
func GetLookaheadBuffer() *ByteBuffer {
	return lookaheadPool.Get()
}

// PutLookaheadBuffer returns a ByteBuffer to the lookahead pool.
func PutLookaheadBuffer(bb *ByteBuffer) {
	lookaheadPool.Put(bb)
}
