package valuecollections

import (
	"math/bits"
	"unsafe"
)

// HashFunc hashes the value behind ptr with the given seed. It has the same
// shape as the runtime's internal hashers so the built-in implementations
// can be used directly without a wrapping closure.
type HashFunc func(ptr unsafe.Pointer, seed uintptr) uintptr

// EqualFunc reports whether the two values behind the pointers are equal.
type EqualFunc func(ptr, ptr2 unsafe.Pointer) bool

// GetBuiltInHasher returns Go's built-in hash function for the specified
// type, the same function the native map uses for T.
//
// Usage:
//
//	s := NewSet[string](WithHasherUnsafe(GetBuiltInHasher[string]()))
func GetBuiltInHasher[T comparable]() HashFunc {
	hash, _ := builtInHasher[T, struct{}]()
	return hash
}

// defaultHasher returns the hash and value-equality functions for K and V,
// substituting direct-read hashers for integer keys. Integer keys hash to
// themselves, which keeps the sorted code array in value order and skips
// the runtime hasher call; distribution does not matter here because codes
// are binary-searched, not bucketed.
func defaultHasher[K comparable, V any]() (keyHash HashFunc, valEqual EqualFunc) {
	keyHash, valEqual = builtInHasher[K, V]()

	switch any(*new(K)).(type) {
	case uint, int, uintptr:
		return func(ptr unsafe.Pointer, seed uintptr) uintptr {
			return *(*uintptr)(ptr)
		}, valEqual

	case uint64, int64:
		if bits.UintSize == 32 {
			return func(ptr unsafe.Pointer, seed uintptr) uintptr {
				v := *(*uint64)(ptr)
				return uintptr(v) ^ uintptr(v>>32)
			}, valEqual
		}
		return func(ptr unsafe.Pointer, seed uintptr) uintptr {
			return uintptr(*(*uint64)(ptr))
		}, valEqual

	case uint32, int32:
		return func(ptr unsafe.Pointer, seed uintptr) uintptr {
			return uintptr(*(*uint32)(ptr))
		}, valEqual

	case uint16, int16:
		return func(ptr unsafe.Pointer, seed uintptr) uintptr {
			return uintptr(*(*uint16)(ptr))
		}, valEqual

	case uint8, int8:
		return func(ptr unsafe.Pointer, seed uintptr) uintptr {
			return uintptr(*(*uint8)(ptr))
		}, valEqual

	default:
		return keyHash, valEqual
	}
}

// builtInHasher obtains Go's built-in hash and equality functions for the
// specified types from the runtime's map type descriptor.
//
// Notes:
//   - This relies on Go's internal type representation
//   - It should be verified for compatibility with each Go version upgrade
func builtInHasher[K comparable, V any]() (keyHash HashFunc, valEqual EqualFunc) {
	var m map[K]V
	mapType := iTypeOf(m).MapType()
	return mapType.Hasher, mapType.Elem.Equal
}

type iTFlag uint8
type iKind uint8
type iNameOff int32
type iTypeOff int32

type iType struct {
	Size_       uintptr
	PtrBytes    uintptr // number of (prefix) bytes in the type that can contain pointers
	Hash        uint32  // hash of type; avoids computation in hash tables
	TFlag       iTFlag  // extra type information flags
	Align_      uint8   // alignment of variable with this type
	FieldAlign_ uint8   // alignment of struct field with this type
	Kind_       iKind   // enumeration for C
	// function for comparing objects of this type
	// (ptr to object A, ptr to object B) -> ==?
	Equal func(unsafe.Pointer, unsafe.Pointer) bool
	// GCData stores the GC type data for the garbage collector.
	GCData    *byte
	Str       iNameOff // string form
	PtrToThis iTypeOff // type for pointer to this type, may be zero
}

func (t *iType) MapType() *iMapType {
	return (*iMapType)(unsafe.Pointer(t))
}

type iMapType struct {
	iType
	Key   *iType
	Elem  *iType
	Group *iType // internal type representing a slot group
	// function for hashing keys (ptr to key, seed) -> hash
	Hasher func(unsafe.Pointer, uintptr) uintptr
}

func iTypeOf(a any) *iType {
	eface := *(*iEmptyInterface)(unsafe.Pointer(&a))
	// Types are either static (for compiler-created types) or
	// heap-allocated but always reachable (for reflection-created
	// types, held in the central map). There is no need to escape a.
	return (*iType)(noescape(unsafe.Pointer(eface.Type)))
}

type iEmptyInterface struct {
	Type *iType
	Data unsafe.Pointer
}

func noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	//nolint:staticcheck
	return unsafe.Pointer(x ^ 0)
}

// nextPowOf2 returns the smallest power of two >= n.
func nextPowOf2(n int) int {
	if n <= 0 {
		return 1
	}

	if bits.UintSize == 32 {
		v := uint32(n)
		v--
		v |= v >> 1
		v |= v >> 2
		v |= v >> 4
		v |= v >> 8
		v |= v >> 16
		v++
		return int(v)
	}

	v := uint64(n)
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return int(v)
}

// noCopy may be added to structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527 for details.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
