// Package valuecollections provides list, set and map containers backed by
// contiguous storage leased from a shared, type-keyed slab pool.
//
// The containers trade per-operation allocation for pooled reuse: growth
// rents a power-of-two slab, copies the live region and returns the old
// slab, so a workload that repeatedly builds and releases containers of
// similar sizes settles into steady-state with no allocation churn.
//
// Set and Map keep a parallel array of hash codes sorted ascending next to
// the elements. Lookups are a binary search for the start of the run of
// equal codes followed by a short equality scan, giving O(log n + run)
// probes without buckets or chaining; inserts and removes shift both arrays
// in lockstep. This layout favors small-to-moderate cardinalities where
// contiguous memory beats pointer-chasing structures.
//
// Containers are zero-value usable and lazily initialized. A container
// instance is not safe for concurrent use; the backing slab pool is safe
// for concurrent rent/return across independently-owned instances.
// Containers must not be copied after first use.
package valuecollections
