package valuecollections

import (
	"math/bits"
	"reflect"
	"sync"
	"unsafe"

	"github.com/eapache/queue"
)

const (
	// maxSlabClass bounds the number of power-of-two size classes kept
	// per element type; class index is log2 of the slab length.
	maxSlabClass = 48

	// slabsPerClass bounds each free list. Returns beyond the bound are
	// dropped and left to the GC instead of growing the pool forever.
	slabsPerClass = 256
)

// slabPool holds the free lists for one element type. Rent and return are
// safe for concurrent use by independently-owned containers; this is the
// only process-wide shared state in the package.
type slabPool struct {
	classes [maxSlabClass]slabClass
}

type slabClass struct {
	mu   sync.Mutex
	free *queue.Queue // of []T boxed as any, created on first return
}

func (c *slabClass) take() (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.free == nil || c.free.Length() == 0 {
		return nil, false
	}
	return c.free.Remove(), true
}

func (c *slabClass) put(s any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.free == nil {
		c.free = queue.New()
	}
	if c.free.Length() >= slabsPerClass {
		return
	}
	c.free.Add(s)
}

// slabPools maps reflect.Type to *slabPool, populated lazily on first rent
// per element type and never torn down.
var slabPools sync.Map

func poolFor[T any]() *slabPool {
	t := reflect.TypeFor[T]()
	if p, ok := slabPools.Load(t); ok {
		return p.(*slabPool)
	}
	p, _ := slabPools.LoadOrStore(t, new(slabPool))
	return p.(*slabPool)
}

// minSlabLen returns the smallest power-of-two element count whose slab
// spans at least one cache line, the minimum allocation granularity.
func minSlabLen[T any]() int {
	size := unsafe.Sizeof(*new(T))
	if size == 0 || size >= CacheLineSize {
		return 1
	}
	return nextPowOf2(int(CacheLineSize / size))
}

// rentSlab leases a zeroed slab with at least n elements. The slab length
// is the smallest power of two >= n, floored at minSlabLen.
func rentSlab[T any](n int) []T {
	length := nextPowOf2(max(n, minSlabLen[T]()))
	class := bits.TrailingZeros(uint(length))
	if class < maxSlabClass {
		if s, ok := poolFor[T]().classes[class].take(); ok {
			return s.([]T)
		}
	}
	return make([]T, length)
}

// returnSlab gives a slab back to its size class. The caller must have
// cleared the live region already; slabs held by the pool are fully zeroed.
// Slabs whose length is not a pool class (caller-supplied buffers never get
// here) or whose class is full are dropped.
func returnSlab[T any](s []T) {
	length := len(s)
	if length == 0 || length&(length-1) != 0 {
		return
	}
	class := bits.TrailingZeros(uint(length))
	if class >= maxSlabClass {
		return
	}
	poolFor[T]().classes[class].put(s)
}
