package valuecollections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirst(t *testing.T) {
	l := NewListFrom(10, 20, 30)
	defer l.Release()

	v, ok := First(l.Values())
	require.True(t, ok)
	assert.Equal(t, 10, v)

	empty := NewList[int]()
	defer empty.Release()
	_, ok = First(empty.Values())
	assert.False(t, ok)
}

func TestSingle(t *testing.T) {
	one := NewListFrom("only")
	defer one.Release()
	v, err := Single(one.Values())
	require.NoError(t, err)
	assert.Equal(t, "only", v)

	empty := NewList[string]()
	defer empty.Release()
	_, err = Single(empty.Values())
	assert.ErrorIs(t, err, ErrInvalidOperation)

	two := NewListFrom("a", "b")
	defer two.Release()
	_, err = Single(two.Values())
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestSingleOrZero(t *testing.T) {
	empty := NewList[int]()
	defer empty.Release()
	v, err := SingleOrZero(empty.Values())
	require.NoError(t, err)
	assert.Zero(t, v)

	two := NewListFrom(1, 2)
	defer two.Release()
	_, err = SingleOrZero(two.Values())
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestFilterMapSeq(t *testing.T) {
	l := NewListFrom(1, 2, 3, 4, 5)
	defer l.Release()

	even := Filter(l.Values(), func(v int) bool { return v%2 == 0 })
	assert.Equal(t, 2, CountSeq(even))
	// Restartable: a second pass sees the same elements.
	assert.Equal(t, 2, CountSeq(even))

	doubled := MapSeq(even, func(v int) int { return v * 2 })
	var got []int
	for v := range doubled {
		got = append(got, v)
	}
	assert.Equal(t, []int{4, 8}, got)
}

func TestSeqEarlyStop(t *testing.T) {
	l := NewListFrom(1, 2, 3)
	defer l.Release()

	n := 0
	for range Filter(l.Values(), func(int) bool { return true }) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
