package valuecollections

import (
	"fmt"
	"iter"
)

// Lazy, restartable sequence helpers shared by every container flavor.
// They operate on iter.Seq so the same functions serve List.Values,
// Set.All, Map.Keys and Map.Values alike.

// First returns the first element of seq, or false when seq is empty.
func First[T any](seq iter.Seq[T]) (T, bool) {
	for v := range seq {
		return v, true
	}
	var zero T
	return zero, false
}

// Single returns the sole element of seq. It fails with a wrapped
// ErrInvalidOperation when seq is empty or holds more than one element.
func Single[T any](seq iter.Seq[T]) (T, error) {
	var (
		result T
		n      int
	)
	for v := range seq {
		if n++; n > 1 {
			return result, fmt.Errorf("%w: sequence has more than one element", ErrInvalidOperation)
		}
		result = v
	}
	if n == 0 {
		var zero T
		return zero, fmt.Errorf("%w: sequence has no elements", ErrInvalidOperation)
	}
	return result, nil
}

// SingleOrZero is Single, except an empty sequence yields the zero value
// instead of failing.
func SingleOrZero[T any](seq iter.Seq[T]) (T, error) {
	var (
		result T
		n      int
	)
	for v := range seq {
		if n++; n > 1 {
			var zero T
			return zero, fmt.Errorf("%w: sequence has more than one element", ErrInvalidOperation)
		}
		result = v
	}
	return result, nil
}

// CountSeq counts the elements of seq.
func CountSeq[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// Filter returns a lazy sequence of the elements matching pred.
func Filter[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

// MapSeq returns a lazy sequence applying fn to each element.
func MapSeq[T, U any](seq iter.Seq[T], fn func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			if !yield(fn(v)) {
				return
			}
		}
	}
}
