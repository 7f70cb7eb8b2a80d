package valuecollections

import (
	"iter"
	"math/rand/v2"
	"slices"
	"unsafe"
)

// Set is a set of comparable elements over pooled contiguous storage,
// indexed by a sorted parallel array of hash codes.
//
// The zero value is an empty set ready for use. A Set must not be copied
// after first use, and a single instance is not safe for concurrent use;
// the backing slab pool may be shared by any number of instances.
type Set[T comparable] struct {
	_     noCopy
	table sortedTable[T]
	seed  uintptr
	hash  HashFunc
}

// NewSet creates an empty Set.
//
// Options:
//   - WithPresize to pre-lease capacity
//   - WithHasherUnsafe / WithBuiltInHasher to override the element hasher
func NewSet[T comparable](options ...func(*Config)) *Set[T] {
	s := &Set[T]{}
	var c Config
	for _, o := range options {
		o(&c)
	}
	s.init()
	if c.keyHash != nil {
		s.hash = c.keyHash
	}
	if c.sizeHint > 0 {
		s.table.items.mustEnsure(0, c.sizeHint)
		s.table.codes.mustEnsure(0, c.sizeHint)
	}
	return s
}

// NewSetWithHasher creates an empty Set with a custom element hash
// function. nil falls back to the built-in hasher. Equality always remains
// the built-in ==, so hash collisions only affect probe length, never
// element identity.
func NewSetWithHasher[T comparable](
	hash func(v T, seed uintptr) uintptr,
	options ...func(*Config),
) *Set[T] {
	if hash != nil {
		options = append(options, WithHasherUnsafe(func(ptr unsafe.Pointer, seed uintptr) uintptr {
			return hash(*(*T)(ptr), seed)
		}))
	}
	return NewSet[T](options...)
}

// NewSetFrom creates a Set holding the distinct values of items.
func NewSetFrom[T comparable](items ...T) *Set[T] {
	s := NewSet[T](WithPresize(len(items)))
	for _, v := range items {
		s.Add(v)
	}
	return s
}

// NewSetFromSeq creates a Set from any element sequence, e.g. another
// container's All().
func NewSetFromSeq[T comparable](seq iter.Seq[T]) *Set[T] {
	s := NewSet[T]()
	s.AddSeq(seq)
	return s
}

// NewSetBuffer creates a Set over caller-supplied storage, opting out of
// pooling for this instance. items and codes must have the same length;
// the set's capacity is fixed at that length and exceeding it panics with
// ErrCapacityExceeded.
func NewSetBuffer[T comparable](items []T, codes []uintptr) *Set[T] {
	if len(items) != len(codes) {
		panic("valuecollections: NewSetBuffer: mismatched buffer lengths")
	}
	s := &Set[T]{}
	s.init()
	s.table.items = buf[T]{data: items, fixed: true}
	s.table.codes = buf[uintptr]{data: codes, fixed: true}
	return s
}

func (s *Set[T]) init() {
	if s.hash == nil {
		s.seed = uintptr(rand.Uint64())
		s.hash, _ = defaultHasher[T, struct{}]()
	}
}

func (s *Set[T]) hashOf(v T) uintptr {
	return s.hash(noescape(unsafe.Pointer(&v)), s.seed)
}

func (s *Set[T]) find(v T) (int, bool) {
	return s.table.find(s.hashOf(v), func(e *T) bool { return *e == v })
}

// Size returns the number of elements.
func (s *Set[T]) Size() int {
	return s.table.size
}

// IsZero checks if the set is empty.
func (s *Set[T]) IsZero() bool {
	return s.table.size == 0
}

// Capacity returns the number of elements the set can hold before growing.
func (s *Set[T]) Capacity() int {
	return s.table.items.capacity()
}

// Add inserts v and reports whether it was added (false when already
// present). New elements land at the end of their hash-code run, so order
// within a run is insertion order.
func (s *Set[T]) Add(v T) bool {
	s.init()
	code := s.hashOf(v)
	idx, found := s.table.find(code, func(e *T) bool { return *e == v })
	if found {
		return false
	}
	s.table.insertAt(idx, v, code)
	return true
}

// AddSeq inserts every element of seq.
func (s *Set[T]) AddSeq(seq iter.Seq[T]) {
	for v := range seq {
		s.Add(v)
	}
}

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	s.init()
	idx, found := s.find(v)
	if !found {
		return false
	}
	s.table.removeAt(idx)
	return true
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	if s.table.size == 0 {
		return false
	}
	_, found := s.find(v)
	return found
}

// Clear removes all elements, keeping capacity.
func (s *Set[T]) Clear() {
	s.table.clear()
}

// EnsureCapacity grows capacity to at least n, so that n insertions from
// empty trigger no further growth. Fails with ErrCapacityExceeded on a
// fixed-buffer set that cannot satisfy n.
func (s *Set[T]) EnsureCapacity(n int) error {
	s.init()
	return s.table.ensure(n)
}

// TrimExcess reduces capacity to exactly Size.
func (s *Set[T]) TrimExcess() {
	s.table.trim()
}

// Items returns a borrowed read-only view over the live region. The view
// is valid only until the next mutating call; do not modify it.
func (s *Set[T]) Items() []T {
	return s.table.items.data[:s.table.size]
}

// All returns an iterator over the elements in index order. The set must
// not be mutated during iteration.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < s.table.size; i++ {
			if !yield(s.table.items.data[i]) {
				return
			}
		}
	}
}

// ToSlice returns a fresh slice of the elements.
func (s *Set[T]) ToSlice() []T {
	return slices.Clone(s.Items())
}

// Clone returns an independent copy sharing the hasher and seed, so its
// internal order matches the source.
func (s *Set[T]) Clone() *Set[T] {
	s.init()
	c := &Set[T]{seed: s.seed, hash: s.hash}
	s.table.cloneInto(&c.table)
	return c
}

// Release returns any leased storage to the pool and resets the set to an
// empty, reusable state. Idempotent.
func (s *Set[T]) Release() {
	s.table.release()
	s.seed = 0
	s.hash = nil
}

// UnionWith adds every element of other.
func (s *Set[T]) UnionWith(other *Set[T]) {
	if other == nil || other == s {
		return
	}
	for i := 0; i < other.table.size; i++ {
		s.Add(other.table.items.data[i])
	}
}

// IntersectWith removes every element not present in other.
func (s *Set[T]) IntersectWith(other *Set[T]) {
	if other == s {
		return
	}
	if other == nil || other.table.size == 0 {
		s.Clear()
		return
	}
	for i := s.table.size - 1; i >= 0; i-- {
		if !other.Contains(s.table.items.data[i]) {
			s.table.removeAt(i)
		}
	}
}

// ExceptWith removes every element present in other.
func (s *Set[T]) ExceptWith(other *Set[T]) {
	if other == s {
		s.Clear()
		return
	}
	if other == nil {
		return
	}
	for i := 0; i < other.table.size; i++ {
		s.Remove(other.table.items.data[i])
	}
}

// SymmetricExceptWith leaves the elements present in exactly one of the
// two sets. Self is snapshotted first since it is both read and rebuilt.
func (s *Set[T]) SymmetricExceptWith(other *Set[T]) {
	if other == s {
		s.Clear()
		return
	}
	if other == nil {
		return
	}
	snapshot := s.Clone()
	defer snapshot.Release()
	s.Clear()
	for i := 0; i < other.table.size; i++ {
		if v := other.table.items.data[i]; !snapshot.Contains(v) {
			s.Add(v)
		}
	}
	for i := 0; i < snapshot.table.size; i++ {
		if v := snapshot.table.items.data[i]; !other.Contains(v) {
			s.Add(v)
		}
	}
}

// IsSubsetOf reports whether every element of s is in other. Neither set
// is mutated.
func (s *Set[T]) IsSubsetOf(other *Set[T]) bool {
	if other == s {
		return true
	}
	if other == nil || s.table.size > other.table.size {
		return s.table.size == 0
	}
	for i := 0; i < s.table.size; i++ {
		if !other.Contains(s.table.items.data[i]) {
			return false
		}
	}
	return true
}

// IsSupersetOf reports whether every element of other is in s.
func (s *Set[T]) IsSupersetOf(other *Set[T]) bool {
	if other == nil {
		return true
	}
	return other.IsSubsetOf(s)
}

// Overlaps reports whether the sets share at least one element, probing
// the smaller operand against the larger one's index.
func (s *Set[T]) Overlaps(other *Set[T]) bool {
	if other == nil {
		return false
	}
	small, large := s, other
	if small.table.size > large.table.size {
		small, large = large, small
	}
	for i := 0; i < small.table.size; i++ {
		if large.Contains(small.table.items.data[i]) {
			return true
		}
	}
	return false
}

// SetEquals reports whether the sets hold exactly the same elements.
func (s *Set[T]) SetEquals(other *Set[T]) bool {
	if other == s {
		return true
	}
	if other == nil {
		return s.table.size == 0
	}
	return s.table.size == other.table.size && s.IsSubsetOf(other)
}
