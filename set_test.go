package valuecollections

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"
	"unsafe"
)

var testData [128]string

func init() {
	for i := range testData {
		testData[i] = fmt.Sprintf("%b", i)
	}
}

// newBadSet stubs out the good hash function with a terrible one (constant
// zero), forcing every element into a single run. Everything should still
// work as expected because equality, not hash equality, is the final
// arbiter.
func newBadSet[T comparable]() *Set[T] {
	var s Set[T]
	s.hash = func(ptr unsafe.Pointer, seed uintptr) uintptr {
		return 0
	}
	return &s
}

// newTruncSet stubs out the good hash function with a truncated one. This
// is useful to catch issues with near collisions, where only the last few
// bits of the hash differ.
func newTruncSet[T comparable]() *Set[T] {
	var s Set[T]
	hasher, _ := builtInHasher[T, struct{}]()
	s.hash = func(ptr unsafe.Pointer, seed uintptr) uintptr {
		return hasher(ptr, seed) & ((uintptr(1) << 4) - 1)
	}
	return &s
}

func TestSet(t *testing.T) {
	testSet(t, func() *Set[string] {
		return &Set[string]{}
	})
}

func TestSetBadHash(t *testing.T) {
	testSet(t, newBadSet[string])
}

func TestSetTruncHash(t *testing.T) {
	testSet(t, newTruncSet[string])
}

func testSet(t *testing.T, newSet func() *Set[string]) {
	t.Run("ContainsEmpty", func(t *testing.T) {
		s := newSet()
		for _, v := range testData {
			if s.Contains(v) {
				t.Errorf("expected %q to be absent from empty set", v)
			}
		}
	})
	t.Run("AddContains", func(t *testing.T) {
		s := newSet()
		for _, v := range testData {
			if !s.Add(v) {
				t.Errorf("expected first Add(%q) to report added", v)
			}
			if s.Add(v) {
				t.Errorf("expected second Add(%q) to report already present", v)
			}
			if !s.Contains(v) {
				t.Errorf("expected %q to be present after Add", v)
			}
		}
		if s.Size() != len(testData) {
			t.Errorf("expected size %d, got %d", len(testData), s.Size())
		}
		checkSetInvariants(t, s)
	})
	t.Run("Remove", func(t *testing.T) {
		s := newSet()
		for _, v := range testData {
			s.Add(v)
		}
		for i, v := range testData {
			if i%2 != 0 {
				continue
			}
			if !s.Remove(v) {
				t.Errorf("expected Remove(%q) to report success", v)
			}
			if s.Remove(v) {
				t.Errorf("expected second Remove(%q) to report absent", v)
			}
			if s.Contains(v) {
				t.Errorf("expected %q to be absent after Remove", v)
			}
		}
		if want := len(testData) / 2; s.Size() != want {
			t.Errorf("expected size %d, got %d", want, s.Size())
		}
		for i, v := range testData {
			if got, want := s.Contains(v), i%2 != 0; got != want {
				t.Errorf("Contains(%q) = %v, want %v", v, got, want)
			}
		}
		checkSetInvariants(t, s)
	})
	t.Run("ChurnKeepsIndexSorted", func(t *testing.T) {
		s := newSet()
		rng := rand.New(rand.NewPCG(1, 2))
		live := make(map[string]bool)
		for step := 0; step < 4096; step++ {
			v := testData[rng.IntN(len(testData))]
			if rng.IntN(2) == 0 {
				if got, want := s.Add(v), !live[v]; got != want {
					t.Fatalf("Add(%q) = %v, want %v", v, got, want)
				}
				live[v] = true
			} else {
				if got, want := s.Remove(v), live[v]; got != want {
					t.Fatalf("Remove(%q) = %v, want %v", v, got, want)
				}
				delete(live, v)
			}
		}
		if s.Size() != len(live) {
			t.Fatalf("expected size %d, got %d", len(live), s.Size())
		}
		for v := range live {
			if !s.Contains(v) {
				t.Errorf("expected surviving element %q to be present", v)
			}
		}
		for _, v := range s.Items() {
			if !live[v] {
				t.Errorf("unexpected element %q in set", v)
			}
		}
		checkSetInvariants(t, s)
	})
	t.Run("Clear", func(t *testing.T) {
		s := newSet()
		for _, v := range testData {
			s.Add(v)
		}
		capacity := s.Capacity()
		s.Clear()
		if s.Size() != 0 || !s.IsZero() {
			t.Errorf("expected empty set after Clear, size %d", s.Size())
		}
		if s.Capacity() != capacity {
			t.Errorf("expected Clear to keep capacity %d, got %d", capacity, s.Capacity())
		}
		for _, v := range testData {
			if s.Contains(v) {
				t.Errorf("expected %q to be absent after Clear", v)
			}
		}
	})
	t.Run("Clone", func(t *testing.T) {
		s := newSet()
		for _, v := range testData[:32] {
			s.Add(v)
		}
		c := s.Clone()
		defer c.Release()
		if !c.SetEquals(s) {
			t.Error("expected clone to equal source")
		}
		c.Remove(testData[0])
		if !s.Contains(testData[0]) {
			t.Error("expected clone mutation to leave source untouched")
		}
		checkSetInvariants(t, c)
	})
	t.Run("All", func(t *testing.T) {
		s := newSet()
		for _, v := range testData {
			s.Add(v)
		}
		seen := make(map[string]int)
		for v := range s.All() {
			seen[v]++
		}
		if len(seen) != len(testData) {
			t.Errorf("expected %d distinct elements, got %d", len(testData), len(seen))
		}
		for v, n := range seen {
			if n != 1 {
				t.Errorf("element %q yielded %d times", v, n)
			}
		}
	})
	t.Run("Release", func(t *testing.T) {
		s := newSet()
		for _, v := range testData {
			s.Add(v)
		}
		s.Release()
		if s.Size() != 0 {
			t.Errorf("expected size 0 after Release, got %d", s.Size())
		}
		if s.Capacity() != 0 {
			t.Errorf("expected capacity 0 after Release, got %d", s.Capacity())
		}
		s.Release() // idempotent
		if !s.Add(testData[0]) {
			t.Error("expected released set to be reusable")
		}
	})
}

// checkSetInvariants verifies the index invariants: the hash-code array is
// ascending-sorted, positionally aligned with the elements, and each code
// equals the element's hash.
func checkSetInvariants[T comparable](t *testing.T, s *Set[T]) {
	t.Helper()
	codes := s.table.codes.data[:s.table.size]
	if !sort.SliceIsSorted(codes, func(i, j int) bool { return codes[i] < codes[j] }) {
		t.Fatalf("hash-code array is not ascending: %v", codes)
	}
	for i, v := range s.Items() {
		if codes[i] != s.hashOf(v) {
			t.Fatalf("code[%d] = %d does not match hash of element %v", i, codes[i], v)
		}
	}
	if got := len(s.table.codes.data); got < s.table.size {
		t.Fatalf("code capacity %d below size %d", got, s.table.size)
	}
}

func TestSetZeroValue(t *testing.T) {
	var s Set[int]
	if s.Contains(1) {
		t.Error("zero-value set should contain nothing")
	}
	if !s.Add(1) || !s.Contains(1) {
		t.Error("zero-value set should accept Add")
	}
	s.Release()
}

func TestSetRunInsertionOrder(t *testing.T) {
	// With a constant hash every element shares one run; order within the
	// run must be insertion order.
	s := newBadSet[string]()
	defer s.Release()
	for _, v := range []string{"c", "a", "b"} {
		s.Add(v)
	}
	got := s.ToSlice()
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("run order = %v, want %v", got, want)
		}
	}
	// Removing from the middle of a run keeps the rest in order.
	s.Remove("a")
	got = s.ToSlice()
	want = []string{"c", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("run order after remove = %v, want %v", got, want)
		}
	}
}

func TestSetFixedBuffer(t *testing.T) {
	items := make([]string, 4)
	codes := make([]uintptr, 4)
	s := NewSetBuffer(items, codes)
	for _, v := range []string{"a", "b", "c", "d"} {
		if !s.Add(v) {
			t.Fatalf("expected Add(%q) to succeed within fixed capacity", v)
		}
	}
	if err := s.EnsureCapacity(5); err == nil {
		t.Fatal("expected EnsureCapacity beyond fixed buffer to fail")
	}
	size := s.Size()
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected Add beyond fixed capacity to panic")
			}
		}()
		s.Add("e")
	}()
	if s.Size() != size {
		t.Errorf("failed Add mutated the set: size %d, want %d", s.Size(), size)
	}
	checkSetInvariants(t, s)
}
