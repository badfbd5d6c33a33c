package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, bb.Cap(), "new buffer should have specified capacity")
}

// appendCommitted adds data through the reserve/commit pair.
func appendCommitted(bb *ByteBuffer, data string) {
	spare := bb.Reserve(len(data))
	bb.Commit(copy(spare, data))
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(ChunkSize)
	appendCommitted(bb, "some data")
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

// =============================================================================
// Reserve / Commit Tests
// =============================================================================

func TestByteBuffer_ReserveCommit(t *testing.T) {
	bb := NewByteBuffer(0)
	appendCommitted(bb, "ab")

	spare := bb.Reserve(3)
	require.GreaterOrEqual(t, len(spare), 3)
	assert.Equal(t, 2, bb.Len(), "reserve must not change the committed length")

	n := copy(spare, "cde")
	bb.Commit(n)

	assert.Equal(t, []byte("abcde"), bb.B)
}

func TestByteBuffer_CommitPartial(t *testing.T) {
	bb := NewByteBuffer(0)

	spare := bb.Reserve(ChunkSize)
	copy(spare, "xyz")
	bb.Commit(3)

	assert.Equal(t, []byte("xyz"), bb.B, "only committed bytes are visible")
}

func TestByteBuffer_CommitInvalid(t *testing.T) {
	bb := NewByteBuffer(8)

	assert.Panics(t, func() { bb.Commit(-1) })
	assert.Panics(t, func() { bb.Commit(9) })
}

// =============================================================================
// Discard / Prepend Tests
// =============================================================================

func TestByteBuffer_Discard(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"nothing", 0, "abcdef"},
		{"negative", -2, "abcdef"},
		{"prefix", 2, "cdef"},
		{"all", 6, ""},
		{"beyond", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := NewByteBuffer(16)
			appendCommitted(bb, "abcdef")

			bb.Discard(tt.n)

			assert.Equal(t, tt.want, string(bb.B))
			assert.Equal(t, 16, bb.Cap(), "discard should not reallocate")
		})
	}
}

func TestByteBuffer_Prepend(t *testing.T) {
	bb := NewByteBuffer(4)
	appendCommitted(bb, "world")

	bb.Prepend([]byte("hello "))
	assert.Equal(t, "hello world", string(bb.B))

	bb.Prepend(nil)
	assert.Equal(t, "hello world", string(bb.B))
}

func TestByteBuffer_PrependEmptyBuffer(t *testing.T) {
	bb := NewByteBuffer(0)

	bb.Prepend([]byte(",{}"))

	assert.Equal(t, ",{}", string(bb.B))
}

// =============================================================================
// ByteBuffer Grow Tests
// =============================================================================

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(ChunkSize)

	bb.Grow(100)

	assert.Equal(t, ChunkSize, bb.Cap(), "should not reallocate when capacity is sufficient")
}

func TestByteBuffer_Grow_ChunkIncrements(t *testing.T) {
	bb := NewByteBuffer(ChunkSize)
	bb.Commit(ChunkSize)

	bb.Grow(1)

	assert.Equal(t, 2*ChunkSize, bb.Cap(), "small buffers grow by one chunk")
	assert.Equal(t, ChunkSize, bb.Len(), "length should not change")
}

func TestByteBuffer_Grow_RoundsToChunks(t *testing.T) {
	bb := NewByteBuffer(0)

	bb.Grow(3*ChunkSize + 1)

	assert.Equal(t, 4*ChunkSize, bb.Cap())
}

func TestByteBuffer_Grow_LargeBuffer(t *testing.T) {
	large := 20 * ChunkSize
	bb := NewByteBuffer(large)
	bb.Commit(large)

	bb.Grow(1)

	assert.Equal(t, large+large/4, bb.Cap(), "large buffers grow by a quarter")
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(8)
	testData := "important data that must be preserved"
	appendCommitted(bb, testData)

	bb.Grow(ChunkSize * 2)

	assert.Equal(t, testData, string(bb.B))
}

// =============================================================================
// Pool Tests
// =============================================================================

func TestGetLookaheadBuffer(t *testing.T) {
	bb := GetLookaheadBuffer()

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "pooled buffer should be empty")
	assert.GreaterOrEqual(t, bb.Cap(), LookaheadBufferDefaultSize)

	PutLookaheadBuffer(bb)
}

func TestPutLookaheadBuffer_Nil(t *testing.T) {
	assert.NotPanics(t, func() {
		PutLookaheadBuffer(nil)
	})
}

func TestPool_ResetsOnPut(t *testing.T) {
	bb := GetLookaheadBuffer()
	appendCommitted(bb, "sensitive data")

	PutLookaheadBuffer(bb)

	assert.Equal(t, 0, bb.Len(), "Put should reset the buffer")
	bb2 := GetLookaheadBuffer()
	assert.Equal(t, 0, bb2.Len())
	PutLookaheadBuffer(bb2)
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)

	bb := p.Get()
	bb.Grow(10000)
	require.Greater(t, bb.Cap(), 4096)
	appendCommitted(bb, "kept?")

	p.Put(bb)

	assert.Equal(t, 5, bb.Len(), "oversized buffers are dropped untouched")
	bb2 := p.Get()
	assert.LessOrEqual(t, bb2.Cap(), 4096, "should not reuse buffer larger than threshold")
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 32
	const numIterations = 500

	p := NewByteBufferPool(64, 0)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				bb := p.Get()
				appendCommitted(bb, "data")
				assert.Equal(t, 4, bb.Len())
				p.Put(bb)
			}
		}()
	}

	wg.Wait()
}
