package valuecollections

import "errors"

var (
	// ErrCapacityExceeded is reported when a container backed by a
	// caller-supplied fixed buffer needs more capacity than the buffer
	// holds. The failing operation leaves the container unchanged.
	ErrCapacityExceeded = errors.New("valuecollections: capacity exceeded")

	// ErrKeyNotFound is reported by required-style keyed lookups on an
	// absent key.
	ErrKeyNotFound = errors.New("valuecollections: key not found")

	// ErrDuplicateKey is reported by Map.Add when the key already exists.
	ErrDuplicateKey = errors.New("valuecollections: duplicate key")

	// ErrIndexOutOfRange is the panic value (wrapped) for positional
	// access outside [0, Size).
	ErrIndexOutOfRange = errors.New("valuecollections: index out of range")

	// ErrInvalidOperation is reported by sequence queries whose
	// cardinality preconditions do not hold, e.g. Single over an empty or
	// multi-element sequence.
	ErrInvalidOperation = errors.New("valuecollections: invalid operation")

	// ErrNotComparable is the panic value for value-equality operations
	// on a non-comparable value type.
	ErrNotComparable = errors.New("valuecollections: value type is not comparable")
)
