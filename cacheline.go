package valuecollections

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the CPU cache line size for the target architecture.
// It's automatically calculated using the `golang.org/x/sys` package.
// Slabs rented from the pool are sized to span at least one cache line.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
