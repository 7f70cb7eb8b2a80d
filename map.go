package valuecollections

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"unsafe"
)

// Entry is a Map key/value pair.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a key/value container over pooled contiguous storage, indexed the
// same way as Set but keyed by the Key component only: hashing and
// equality never look at values.
//
// The zero value is an empty map ready for use. A Map must not be copied
// after first use, and a single instance is not safe for concurrent use.
type Map[K comparable, V any] struct {
	_        noCopy
	table    sortedTable[Entry[K, V]]
	seed     uintptr
	keyHash  HashFunc
	valEqual EqualFunc
}

// NewMap creates an empty Map.
//
// Options:
//   - WithPresize to pre-lease capacity
//   - WithHasherUnsafe / WithBuiltInHasher to override the key hasher
func NewMap[K comparable, V any](options ...func(*Config)) *Map[K, V] {
	m := &Map[K, V]{}
	var c Config
	for _, o := range options {
		o(&c)
	}
	m.init()
	if c.keyHash != nil {
		m.keyHash = c.keyHash
	}
	if c.sizeHint > 0 {
		m.table.items.mustEnsure(0, c.sizeHint)
		m.table.codes.mustEnsure(0, c.sizeHint)
	}
	return m
}

// NewMapWithHasher creates an empty Map with a custom key hash function.
// nil falls back to the built-in hasher.
func NewMapWithHasher[K comparable, V any](
	keyHash func(key K, seed uintptr) uintptr,
	options ...func(*Config),
) *Map[K, V] {
	if keyHash != nil {
		options = append(options, WithHasherUnsafe(func(ptr unsafe.Pointer, seed uintptr) uintptr {
			return keyHash(*(*K)(ptr), seed)
		}))
	}
	return NewMap[K, V](options...)
}

// NewMapFrom creates a Map holding the entries of src.
func NewMapFrom[K comparable, V any](src map[K]V) *Map[K, V] {
	m := NewMap[K, V](WithPresize(len(src)))
	for k, v := range src {
		m.Store(k, v)
	}
	return m
}

// NewMapFromSeq creates a Map from any key/value sequence, e.g. another
// map's All(). Later entries for a key overwrite earlier ones.
func NewMapFromSeq[K comparable, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	m := NewMap[K, V]()
	m.StoreSeq(seq)
	return m
}

// NewMapBuffer creates a Map over caller-supplied storage, opting out of
// pooling for this instance. entries and codes must have the same length;
// the map's capacity is fixed at that length and exceeding it panics with
// ErrCapacityExceeded.
func NewMapBuffer[K comparable, V any](entries []Entry[K, V], codes []uintptr) *Map[K, V] {
	if len(entries) != len(codes) {
		panic("valuecollections: NewMapBuffer: mismatched buffer lengths")
	}
	m := &Map[K, V]{}
	m.init()
	m.table.items = buf[Entry[K, V]]{data: entries, fixed: true}
	m.table.codes = buf[uintptr]{data: codes, fixed: true}
	return m
}

func (m *Map[K, V]) init() {
	if m.keyHash == nil {
		m.seed = uintptr(rand.Uint64())
		m.keyHash, m.valEqual = defaultHasher[K, V]()
	}
}

func (m *Map[K, V]) hashOf(key K) uintptr {
	return m.keyHash(noescape(unsafe.Pointer(&key)), m.seed)
}

func (m *Map[K, V]) find(key K) (int, bool) {
	return m.table.find(m.hashOf(key), func(e *Entry[K, V]) bool { return e.Key == key })
}

// Size returns the number of entries.
func (m *Map[K, V]) Size() int {
	return m.table.size
}

// IsZero checks if the map is empty.
func (m *Map[K, V]) IsZero() bool {
	return m.table.size == 0
}

// Capacity returns the number of entries the map can hold before growing.
func (m *Map[K, V]) Capacity() int {
	return m.table.items.capacity()
}

// Load returns the value stored for key and whether it was present.
func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	if m.table.size == 0 {
		return value, false
	}
	idx, found := m.find(key)
	if !found {
		return value, false
	}
	return m.table.items.data[idx].Value, true
}

// MustLoad returns the value stored for key, panicking with a wrapped
// ErrKeyNotFound when absent.
func (m *Map[K, V]) MustLoad(key K) V {
	v, ok := m.Load(key)
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrKeyNotFound, key))
	}
	return v
}

// Store upserts: an existing key has its value overwritten in place (the
// slot position and hash code are unchanged since the key is unchanged), an
// absent key gets a new sorted slot.
func (m *Map[K, V]) Store(key K, value V) {
	m.init()
	code := m.hashOf(key)
	idx, found := m.table.find(code, func(e *Entry[K, V]) bool { return e.Key == key })
	if found {
		m.table.items.data[idx].Value = value
		return
	}
	m.table.insertAt(idx, Entry[K, V]{Key: key, Value: value}, code)
}

// StoreSeq upserts every entry of seq.
func (m *Map[K, V]) StoreSeq(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.Store(k, v)
	}
}

// Add inserts a new entry, failing with ErrDuplicateKey when the key
// already exists. The map is unchanged on failure.
func (m *Map[K, V]) Add(key K, value V) error {
	m.init()
	code := m.hashOf(key)
	idx, found := m.table.find(code, func(e *Entry[K, V]) bool { return e.Key == key })
	if found {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	m.table.insertAt(idx, Entry[K, V]{Key: key, Value: value}, code)
	return nil
}

// LoadOrStore returns the existing value for key if present. Otherwise it
// stores and returns the given value. The loaded result is true when the
// value was already present.
func (m *Map[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	m.init()
	code := m.hashOf(key)
	idx, found := m.table.find(code, func(e *Entry[K, V]) bool { return e.Key == key })
	if found {
		return m.table.items.data[idx].Value, true
	}
	m.table.insertAt(idx, Entry[K, V]{Key: key, Value: value}, code)
	return value, false
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	_, ok := m.LoadAndDelete(key)
	return ok
}

// LoadAndDelete removes key, returning the previous value if any. The
// loaded result is true when the key was present.
func (m *Map[K, V]) LoadAndDelete(key K) (value V, loaded bool) {
	if m.table.size == 0 {
		return value, false
	}
	idx, found := m.find(key)
	if !found {
		return value, false
	}
	value = m.table.items.data[idx].Value
	m.table.removeAt(idx)
	return value, true
}

// ContainsKey reports whether key is in the map.
func (m *Map[K, V]) ContainsKey(key K) bool {
	if m.table.size == 0 {
		return false
	}
	_, found := m.find(key)
	return found
}

// ContainsValue reports whether any entry holds value. Values are not
// indexed, so this is a linear scan over all entries. Panics with
// ErrNotComparable when V is not a comparable type.
func (m *Map[K, V]) ContainsValue(value V) bool {
	m.init()
	if m.valEqual == nil {
		panic(ErrNotComparable)
	}
	for i := 0; i < m.table.size; i++ {
		if m.valEqual(
			noescape(unsafe.Pointer(&m.table.items.data[i].Value)),
			noescape(unsafe.Pointer(&value)),
		) {
			return true
		}
	}
	return false
}

// Clear removes all entries, keeping capacity.
func (m *Map[K, V]) Clear() {
	m.table.clear()
}

// EnsureCapacity grows capacity to at least n, so that n insertions from
// empty trigger no further growth. Fails with ErrCapacityExceeded on a
// fixed-buffer map that cannot satisfy n.
func (m *Map[K, V]) EnsureCapacity(n int) error {
	m.init()
	return m.table.ensure(n)
}

// TrimExcess reduces capacity to exactly Size.
func (m *Map[K, V]) TrimExcess() {
	m.table.trim()
}

// Entries returns a borrowed read-only view over the live entries. The
// view is valid only until the next mutating call; do not modify it.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	return m.table.items.data[:m.table.size]
}

// All returns an iterator over key/value pairs in index order. The map
// must not be mutated during iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := 0; i < m.table.size; i++ {
			e := &m.table.items.data[i]
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys in index order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := 0; i < m.table.size; i++ {
			if !yield(m.table.items.data[i].Key) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in index order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := 0; i < m.table.size; i++ {
			if !yield(m.table.items.data[i].Value) {
				return
			}
		}
	}
}

// ToMap returns a fresh ordinary map of the entries.
func (m *Map[K, V]) ToMap() map[K]V {
	out := make(map[K]V, m.table.size)
	for i := 0; i < m.table.size; i++ {
		e := &m.table.items.data[i]
		out[e.Key] = e.Value
	}
	return out
}

// ToSlice returns a fresh slice of the entries.
func (m *Map[K, V]) ToSlice() []Entry[K, V] {
	return slices.Clone(m.Entries())
}

// Clone returns an independent copy sharing the hasher and seed, so its
// internal order matches the source.
func (m *Map[K, V]) Clone() *Map[K, V] {
	m.init()
	c := &Map[K, V]{seed: m.seed, keyHash: m.keyHash, valEqual: m.valEqual}
	m.table.cloneInto(&c.table)
	return c
}

// Release returns any leased storage to the pool and resets the map to an
// empty, reusable state. Idempotent.
func (m *Map[K, V]) Release() {
	m.table.release()
	m.seed = 0
	m.keyHash = nil
	m.valEqual = nil
}
