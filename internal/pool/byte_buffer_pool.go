package pool

import (
	"io"
	"sync"
)

const (
	MsgBufferDefaultSize    = 4 * 1024  // 4KiB, the conventional frame size limit
	MsgBufferMaxThreshold   = 64 * 1024 // 64KiB
	TransBufferDefaultSize  = 64 * 1024
	TransBufferMaxThreshold = 1024 * 1024
)

// ByteBuffer is a reusable byte slice with an amortized growth strategy.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
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

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes
// without reallocating. If the buffer has sufficient capacity, Grow does
// nothing.
//
// Small buffers grow by MsgBufferDefaultSize to minimize reallocations;
// larger buffers grow by 25% of current capacity to balance memory usage
// against reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := MsgBufferDefaultSize
	if cap(bb.B) > 4*MsgBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers. The pool can be
// configured with a maximum size threshold to avoid retaining overly large
// buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
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

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	buf, _ := bbp.pool.Get().(*ByteBuffer)
	buf.Reset()

	return buf
}

// Put returns a ByteBuffer to the pool. Buffers that grew beyond the pool's
// threshold are dropped instead of retained.
func (bbp *ByteBufferPool) Put(buf *ByteBuffer) {
	if buf == nil {
		return
	}
	if bbp.maxThreshold > 0 && buf.Cap() > bbp.maxThreshold {
		return
	}

	bbp.pool.Put(buf)
}

var (
	msgBufferPool   = NewByteBufferPool(MsgBufferDefaultSize, MsgBufferMaxThreshold)
	transBufferPool = NewByteBufferPool(TransBufferDefaultSize, TransBufferMaxThreshold)
)

// GetMessageBuffer retrieves a buffer sized for a single protocol frame.
func GetMessageBuffer() *ByteBuffer {
	return msgBufferPool.Get()
}

// PutMessageBuffer returns a frame buffer to its pool.
func PutMessageBuffer(buf *ByteBuffer) {
	msgBufferPool.Put(buf)
}

// GetTranscriptBuffer retrieves a buffer sized for a serialized session transcript.
func GetTranscriptBuffer() *ByteBuffer {
	return transBufferPool.Get()
}

// PutTranscriptBuffer returns a transcript buffer to its pool.
func PutTranscriptBuffer(buf *ByteBuffer) {
	transBufferPool.Put(buf)
}
