package valuecollections

// Config defines configurable container options.
type Config struct {
	sizeHint int
	keyHash  HashFunc
}

// WithPresize configures a new container with capacity enough to hold
// sizeHint entries, so that sizeHint insertions trigger no further growth.
// If sizeHint is zero or negative, the value is ignored.
func WithPresize(sizeHint int) func(*Config) {
	return func(c *Config) {
		c.sizeHint = sizeHint
	}
}

// WithHasherUnsafe configures a custom hash function in the raw runtime
// shape. The hash is applied to a Set's elements or a Map's keys; equality
// always remains the built-in comparison for the type, so a custom hash may
// collapse distinct values onto one code (they stay distinct entries) but
// must be consistent: equal values must produce equal codes.
//
//	s := NewSet[int](WithHasherUnsafe(func(ptr unsafe.Pointer, _ uintptr) uintptr {
//		return *(*uintptr)(ptr) >> 4
//	}))
func WithHasherUnsafe(keyHash HashFunc) func(*Config) {
	return func(c *Config) {
		c.keyHash = keyHash
	}
}

// WithBuiltInHasher explicitly sets the built-in hash function for the
// specified type, bypassing the integer direct-read fast paths.
func WithBuiltInHasher[T comparable]() func(*Config) {
	return func(c *Config) {
		c.keyHash = GetBuiltInHasher[T]()
	}
}
