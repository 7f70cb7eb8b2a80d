package valuecollections

import "fmt"

// buf owns one contiguous region of element storage. len(data) is the
// logical capacity; the owning container tracks the live count. Storage is
// either leased from the shared slab pool or supplied by the caller (fixed
// mode, which never grows and is never returned to the pool).
//
// Invariant: slots at or beyond the live count are zero, so a slab can go
// back to the pool after clearing just the live region.
type buf[T any] struct {
	data  []T
	fixed bool
}

func (b *buf[T]) capacity() int {
	return len(b.data)
}

// ensure makes capacity at least n, copying the live [0, size) region into
// a freshly leased slab if growth is needed. A trimmed slab is extended in
// place first, since its backing array is still a full size class.
func (b *buf[T]) ensure(size, n int) error {
	if len(b.data) >= n {
		return nil
	}
	if b.fixed {
		return fmt.Errorf("%w: need %d, fixed capacity %d", ErrCapacityExceeded, n, len(b.data))
	}
	if cap(b.data) >= n {
		b.data = b.data[:cap(b.data)]
		return nil
	}
	slab := rentSlab[T](n)
	if size > 0 {
		copy(slab, b.data[:size])
	}
	b.giveBack(size)
	b.data = slab
	return nil
}

// mustEnsure is ensure for mutators, where a fixed-buffer overflow is a
// caller precondition violation rather than a recoverable condition.
func (b *buf[T]) mustEnsure(size, n int) {
	if err := b.ensure(size, n); err != nil {
		panic(err)
	}
}

// trim reduces capacity to exactly size. The replacement lease is still a
// power-of-two slab underneath, resliced so the visible capacity is tight.
// No-op for fixed storage and for already-tight buffers.
func (b *buf[T]) trim(size int) {
	if b.fixed || len(b.data) == size {
		return
	}
	if size == 0 {
		b.giveBack(0)
		b.data = nil
		return
	}
	if nextPowOf2(max(size, minSlabLen[T]())) == cap(b.data) {
		b.data = b.data[:size]
		return
	}
	slab := rentSlab[T](size)
	copy(slab, b.data[:size])
	b.giveBack(size)
	b.data = slab[:size]
}

// release returns the current lease, if any. Idempotent.
func (b *buf[T]) release(size int) {
	if b.data != nil && !b.fixed {
		b.giveBack(size)
	}
	b.data = nil
	b.fixed = false
}

// giveBack clears the live region and returns the full backing slab to its
// size class. Fixed storage never reaches the pool.
func (b *buf[T]) giveBack(size int) {
	if b.data == nil || b.fixed {
		return
	}
	clear(b.data[:size])
	returnSlab(b.data[:cap(b.data)])
}
