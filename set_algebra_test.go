package valuecollections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetUnionWith(t *testing.T) {
	a := NewSetFrom(1, 2, 3)
	b := NewSetFrom(3, 4, 5)
	defer a.Release()
	defer b.Release()

	originalA := a.Clone()
	defer originalA.Release()

	a.UnionWith(b)

	assert.True(t, originalA.IsSubsetOf(a))
	assert.True(t, b.IsSubsetOf(a))
	assert.Equal(t, 5, a.Size())

	// Union with self is a no-op.
	a.UnionWith(a)
	assert.Equal(t, 5, a.Size())
}

func TestSetIntersectWith(t *testing.T) {
	a := NewSetFrom(1, 2, 3, 4)
	b := NewSetFrom(3, 4, 5)
	defer a.Release()
	defer b.Release()

	a.IntersectWith(b)

	assert.True(t, a.IsSubsetOf(b))
	assert.ElementsMatch(t, []int{3, 4}, a.ToSlice())
	assert.Equal(t, 3, b.Size(), "other operand must not be mutated")

	a.IntersectWith(a)
	assert.Equal(t, 2, a.Size())

	a.IntersectWith(nil)
	assert.True(t, a.IsZero())
}

func TestSetExceptWith(t *testing.T) {
	a := NewSetFrom(1, 2, 3, 4)
	b := NewSetFrom(3, 4, 5)
	defer a.Release()
	defer b.Release()

	a.ExceptWith(b)
	assert.ElementsMatch(t, []int{1, 2}, a.ToSlice())

	a.ExceptWith(a)
	assert.True(t, a.IsZero())
}

func TestSetSymmetricExceptWith(t *testing.T) {
	a := NewSetFrom(1, 2, 3)
	b := NewSetFrom(2, 3, 4)
	defer a.Release()
	defer b.Release()

	a.SymmetricExceptWith(b)
	assert.ElementsMatch(t, []int{1, 4}, a.ToSlice())
	assert.ElementsMatch(t, []int{2, 3, 4}, b.ToSlice(), "other operand must not be mutated")

	// A.SymmetricExceptWith(A) empties A.
	c := NewSetFrom(1, 2, 3)
	defer c.Release()
	c.SymmetricExceptWith(c)
	assert.True(t, c.IsZero())
}

func TestSetPredicates(t *testing.T) {
	a := NewSetFrom(1, 2)
	b := NewSetFrom(1, 2, 3)
	empty := NewSet[int]()
	defer a.Release()
	defer b.Release()
	defer empty.Release()

	assert.True(t, a.IsSubsetOf(a), "IsSubsetOf must be reflexive")
	assert.True(t, a.IsSubsetOf(b))
	assert.False(t, b.IsSubsetOf(a))
	assert.True(t, b.IsSupersetOf(a))
	assert.False(t, a.IsSupersetOf(b))
	assert.True(t, empty.IsSubsetOf(a))
	assert.True(t, a.IsSupersetOf(empty))

	assert.True(t, a.Overlaps(b))
	assert.False(t, empty.Overlaps(a))
	assert.False(t, a.Overlaps(empty))

	c := NewSetFrom(2, 1)
	defer c.Release()
	assert.True(t, a.SetEquals(c), "SetEquals must ignore order")
	assert.False(t, a.SetEquals(b))
	assert.True(t, a.SetEquals(a))

	// Predicates never mutate.
	assert.Equal(t, 2, a.Size())
	assert.Equal(t, 3, b.Size())
}

func TestSetAlgebraWithCollidingHash(t *testing.T) {
	// The algebra must hold even when every element collides onto one
	// hash code.
	newColliding := func(items ...int) *Set[int] {
		s := NewSetWithHasher[int](func(int, uintptr) uintptr { return 42 })
		for _, v := range items {
			require.True(t, s.Add(v))
		}
		return s
	}

	a := newColliding(1, 2, 3)
	b := newColliding(2, 3, 4)
	defer a.Release()
	defer b.Release()

	a.SymmetricExceptWith(b)
	assert.ElementsMatch(t, []int{1, 4}, a.ToSlice())

	a.UnionWith(b)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, a.ToSlice())

	a.IntersectWith(b)
	assert.ElementsMatch(t, []int{2, 3, 4}, a.ToSlice())
	checkSetInvariants(t, a)
}

func TestSetFromSeqRoundTrip(t *testing.T) {
	l := NewListFrom(1, 2, 2, 3)
	defer l.Release()

	s := NewSetFromSeq(l.Values())
	defer s.Release()
	assert.Equal(t, 3, s.Size(), "duplicates collapse")

	back := NewListFromSeq(s.All())
	defer back.Release()
	assert.ElementsMatch(t, []int{1, 2, 3}, back.ToSlice())
}
