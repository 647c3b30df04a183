package pool

import "sync"

// Default sizes for pooled byte buffers used by the chunk store and the
// result blob codec.
const (
	// ChunkBufferDefaultSize covers a 4096-element float64 chunk payload.
	ChunkBufferDefaultSize = 1024 * 32 // 32KiB
	// ChunkBufferMaxThreshold caps what is returned to the pool; oversized
	// buffers are dropped so a single huge chunk does not pin memory.
	ChunkBufferMaxThreshold = 1024 * 512 // 512KiB
)

// ByteBuffer is a reusable byte buffer for payload serialization.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

var byteBufferPool = sync.Pool{
	New: func() any { return NewByteBuffer(ChunkBufferDefaultSize) },
}

// GetByteBuffer retrieves an empty ByteBuffer from the pool.
func GetByteBuffer() *ByteBuffer {
	bb, _ := byteBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutByteBuffer returns a ByteBuffer to the pool. Buffers that grew past
// ChunkBufferMaxThreshold are dropped.
func PutByteBuffer(bb *ByteBuffer) {
	if bb == nil || bb.Cap() > ChunkBufferMaxThreshold {
		return
	}
	byteBufferPool.Put(bb)
}
