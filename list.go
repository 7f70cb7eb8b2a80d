package valuecollections

import (
	"fmt"
	"iter"
	"slices"
)

// List is a dynamic array over pooled contiguous storage. There is no hash
// index; order is insertion order and searches are linear.
//
// The zero value is an empty list ready for use. A List must not be copied
// after first use, and a single instance is not safe for concurrent use.
type List[T comparable] struct {
	_    noCopy
	buf  buf[T]
	size int
}

// NewList creates an empty List. WithPresize pre-leases capacity.
func NewList[T comparable](options ...func(*Config)) *List[T] {
	l := &List[T]{}
	var c Config
	for _, o := range options {
		o(&c)
	}
	if c.sizeHint > 0 {
		l.buf.mustEnsure(0, c.sizeHint)
	}
	return l
}

// NewListFrom creates a List holding items in order.
func NewListFrom[T comparable](items ...T) *List[T] {
	l := NewList[T](WithPresize(len(items)))
	copy(l.buf.data, items)
	l.size = len(items)
	return l
}

// NewListFromSeq creates a List from any element sequence, e.g. another
// container's All().
func NewListFromSeq[T comparable](seq iter.Seq[T]) *List[T] {
	l := NewList[T]()
	l.AddSeq(seq)
	return l
}

// NewListBuffer creates a List over caller-supplied storage, opting out of
// pooling for this instance. Capacity is fixed at len(buffer) and
// exceeding it panics with ErrCapacityExceeded.
func NewListBuffer[T comparable](buffer []T) *List[T] {
	return &List[T]{buf: buf[T]{data: buffer, fixed: true}}
}

func (l *List[T]) check(i int) {
	if i < 0 || i >= l.size {
		panic(fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, l.size))
	}
}

// Size returns the number of elements.
func (l *List[T]) Size() int {
	return l.size
}

// IsZero checks if the list is empty.
func (l *List[T]) IsZero() bool {
	return l.size == 0
}

// Capacity returns the number of elements the list can hold before growing.
func (l *List[T]) Capacity() int {
	return l.buf.capacity()
}

// Get returns the element at index i, panicking with a wrapped
// ErrIndexOutOfRange outside [0, Size).
func (l *List[T]) Get(i int) T {
	l.check(i)
	return l.buf.data[i]
}

// Set overwrites the element at index i.
func (l *List[T]) Set(i int, v T) {
	l.check(i)
	l.buf.data[i] = v
}

// Add appends v.
func (l *List[T]) Add(v T) {
	l.buf.mustEnsure(l.size, l.size+1)
	l.buf.data[l.size] = v
	l.size++
}

// AddSeq appends every element of seq.
func (l *List[T]) AddSeq(seq iter.Seq[T]) {
	for v := range seq {
		l.Add(v)
	}
}

// Insert places v at index i, shifting [i, Size) right. i may equal Size,
// which appends.
func (l *List[T]) Insert(i int, v T) {
	if i < 0 || i > l.size {
		panic(fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, l.size))
	}
	l.buf.mustEnsure(l.size, l.size+1)
	copy(l.buf.data[i+1:l.size+1], l.buf.data[i:l.size])
	l.buf.data[i] = v
	l.size++
}

// RemoveAt deletes the element at index i, shifting the tail left and
// zeroing the vacated slot.
func (l *List[T]) RemoveAt(i int) {
	l.check(i)
	copy(l.buf.data[i:l.size-1], l.buf.data[i+1:l.size])
	var zero T
	l.buf.data[l.size-1] = zero
	l.size--
}

// Remove deletes the first occurrence of v and reports whether one was
// found.
func (l *List[T]) Remove(v T) bool {
	i := l.IndexOf(v)
	if i < 0 {
		return false
	}
	l.RemoveAt(i)
	return true
}

// IndexOf returns the index of the first occurrence of v, or -1.
func (l *List[T]) IndexOf(v T) int {
	for i := 0; i < l.size; i++ {
		if l.buf.data[i] == v {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the index of the last occurrence of v, or -1.
func (l *List[T]) LastIndexOf(v T) int {
	for i := l.size - 1; i >= 0; i-- {
		if l.buf.data[i] == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is in the list.
func (l *List[T]) Contains(v T) bool {
	return l.IndexOf(v) >= 0
}

// Clear removes all elements, keeping capacity.
func (l *List[T]) Clear() {
	clear(l.buf.data[:l.size])
	l.size = 0
}

// EnsureCapacity grows capacity to at least n, so that n appends trigger
// no further growth. Fails with ErrCapacityExceeded on a fixed-buffer list
// that cannot satisfy n.
func (l *List[T]) EnsureCapacity(n int) error {
	return l.buf.ensure(l.size, n)
}

// TrimExcess reduces capacity to exactly Size.
func (l *List[T]) TrimExcess() {
	l.buf.trim(l.size)
}

// Items returns a borrowed read-only view over the live region. The view
// is valid only until the next mutating call; do not modify it.
func (l *List[T]) Items() []T {
	return l.buf.data[:l.size]
}

// All returns an iterator over index/element pairs. The list must not be
// mutated during iteration.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < l.size; i++ {
			if !yield(i, l.buf.data[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < l.size; i++ {
			if !yield(l.buf.data[i]) {
				return
			}
		}
	}
}

// ToSlice returns a fresh slice of the elements.
func (l *List[T]) ToSlice() []T {
	return slices.Clone(l.Items())
}

// Clone returns an independent copy.
func (l *List[T]) Clone() *List[T] {
	c := &List[T]{}
	if l.size > 0 {
		c.buf.mustEnsure(0, l.size)
		copy(c.buf.data, l.buf.data[:l.size])
		c.size = l.size
	}
	return c
}

// Release returns any leased storage to the pool and resets the list to an
// empty, reusable state. Idempotent.
func (l *List[T]) Release() {
	l.buf.release(l.size)
	l.size = 0
}
