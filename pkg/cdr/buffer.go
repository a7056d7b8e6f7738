package cdr

import "github.com/eprosima/fastcdr-go/internal/bytesize"

// minGrowth is the smallest allocation step for an owned Buffer the first
// time it needs to grow from zero capacity.
const minGrowth = 64

// Buffer is the octet region a Cdr cursor reads and writes through. It is
// either owned (growable by doubling, per the teacher's pkg/bufpool tiered
// sizing idea) or borrowed (wraps a caller-supplied slice and never
// relocates).
type Buffer struct {
	data   []byte
	length int
	owned  bool
}

// NewBuffer allocates an owned Buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{data: make([]byte, capacity), owned: true}
}

// WrapBuffer borrows b: its logical length starts at len(b), so the wrapped
// bytes can be decoded, and writes beyond len(b) fail with
// ErrNotEnoughMemory instead of growing.
func WrapBuffer(b []byte) *Buffer {
	return &Buffer{data: b, length: len(b), owned: false}
}

// NewBufferWithSize allocates an owned Buffer whose initial capacity is
// given as a human-readable size (e.g. "4Ki", "1Mi"), as parsed by
// internal/bytesize.
func NewBufferWithSize(spec string) (*Buffer, error) {
	sz, err := bytesize.ParseByteSize(spec)
	if err != nil {
		return nil, newBadParam("buffer: %v", err)
	}
	return NewBuffer(int(sz)), nil
}

// Cap returns the backing region's capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Len returns the logical length: the high-water mark of bytes written.
func (b *Buffer) Len() int { return b.length }

// Bytes returns the logical content. The returned slice aliases the
// Buffer's storage and is invalidated by the next write that grows it.
func (b *Buffer) Bytes() []byte { return b.data[:b.length] }

// Reserve grows an owned, still-empty buffer to exactly n bytes of capacity.
// It fails with BadParam once any content has been written, and with
// NotEnoughMemory on a borrowed buffer smaller than n.
func (b *Buffer) Reserve(n int) error {
	if b.length != 0 {
		return newBadParam("buffer: reserve requires an empty buffer")
	}
	if n <= len(b.data) {
		return nil
	}
	if !b.owned {
		return newNotEnoughMemory("buffer: cannot reserve %d bytes on a borrowed buffer of capacity %d", n, len(b.data))
	}
	nd := make([]byte, n)
	b.data = nd
	return nil
}

// ensureCapacity grows an owned buffer so that len(b.data) >= need, doubling
// from its current capacity (or minGrowth) until it is large enough.
// Borrowed buffers never relocate; a request past their fixed capacity
// fails.
func (b *Buffer) ensureCapacity(need int) error {
	if need <= len(b.data) {
		return nil
	}
	if !b.owned {
		return newNotEnoughMemory("buffer: write at byte %d exceeds borrowed capacity %d", need, len(b.data))
	}
	newCap := len(b.data)
	if newCap == 0 {
		newCap = minGrowth
	}
	for newCap < need {
		newCap *= 2
	}
	nd := make([]byte, newCap)
	copy(nd, b.data[:b.length])
	b.data = nd
	return nil
}

func (b *Buffer) writeAt(offset int, src []byte) error {
	end := offset + len(src)
	if err := b.ensureCapacity(end); err != nil {
		return err
	}
	copy(b.data[offset:end], src)
	if end > b.length {
		b.length = end
	}
	return nil
}

func (b *Buffer) readAt(offset int, n int) ([]byte, error) {
	end := offset + n
	if offset < 0 || end > b.length {
		return nil, newNotEnoughMemory("buffer: read of %d bytes at offset %d exceeds logical length %d", n, offset, b.length)
	}
	return b.data[offset:end], nil
}

// shiftRight moves every byte from [from, length) to [from+n, length+n),
// growing the buffer if needed, and zero-fills the freshly opened gap
// [from, from+n). It is used to promote a provisional member header to its
// larger form in place, per §4.5's header-rewrite rule.
func (b *Buffer) shiftRight(from int, n int) error {
	if n <= 0 {
		return nil
	}
	newLen := b.length + n
	if err := b.ensureCapacity(newLen); err != nil {
		return err
	}
	copy(b.data[from+n:newLen], b.data[from:b.length])
	for i := from; i < from+n; i++ {
		b.data[i] = 0
	}
	b.length = newLen
	return nil
}
