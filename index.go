package valuecollections

// sortedTable is the indexing core shared by Set and Map: an element buffer
// plus a positionally-aligned buffer of hash codes kept ascending at all
// times. Lookup binary-searches the code array for the start of the run of
// equal codes, then resolves within the run by real equality, so colliding
// keys are always disambiguated. Inserts and removes shift both arrays in
// lockstep.
type sortedTable[E any] struct {
	items buf[E]
	codes buf[uintptr]
	size  int
}

// runStart returns the smallest index whose code is >= code: the first
// entry of the run when code is present, the sorted insertion point when it
// is not.
func (t *sortedTable[E]) runStart(code uintptr) int {
	codes := t.codes.data
	lo, hi := 0, t.size
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if codes[mid] < code {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// find locates the entry with the given code matched by eq. On a miss the
// returned index is where an entry with this code inserts without breaking
// the sort order (the end of its run).
func (t *sortedTable[E]) find(code uintptr, eq func(*E) bool) (int, bool) {
	i := t.runStart(code)
	for i < t.size && t.codes.data[i] == code {
		if eq(&t.items.data[i]) {
			return i, true
		}
		i++
	}
	return i, false
}

// ensure grows both arrays to hold at least n entries.
func (t *sortedTable[E]) ensure(n int) error {
	if err := t.items.ensure(t.size, n); err != nil {
		return err
	}
	return t.codes.ensure(t.size, n)
}

// insertAt shifts [idx, size) right by one in both arrays and writes the
// entry and its code at idx. idx must come from find so the code array
// stays ascending.
func (t *sortedTable[E]) insertAt(idx int, e E, code uintptr) {
	t.items.mustEnsure(t.size, t.size+1)
	t.codes.mustEnsure(t.size, t.size+1)
	items, codes := t.items.data, t.codes.data
	copy(items[idx+1:t.size+1], items[idx:t.size])
	copy(codes[idx+1:t.size+1], codes[idx:t.size])
	items[idx] = e
	codes[idx] = code
	t.size++
}

// removeAt closes the gap at idx and zeroes the vacated slot so stale
// references are not retained.
func (t *sortedTable[E]) removeAt(idx int) {
	items, codes := t.items.data, t.codes.data
	copy(items[idx:t.size-1], items[idx+1:t.size])
	copy(codes[idx:t.size-1], codes[idx+1:t.size])
	var zero E
	items[t.size-1] = zero
	codes[t.size-1] = 0
	t.size--
}

func (t *sortedTable[E]) clear() {
	clear(t.items.data[:t.size])
	clear(t.codes.data[:t.size])
	t.size = 0
}

func (t *sortedTable[E]) trim() {
	t.items.trim(t.size)
	t.codes.trim(t.size)
}

func (t *sortedTable[E]) release() {
	t.items.release(t.size)
	t.codes.release(t.size)
	t.size = 0
}

// cloneInto copies the live region into dst, which must be empty.
func (t *sortedTable[E]) cloneInto(dst *sortedTable[E]) {
	if t.size == 0 {
		return
	}
	dst.items.mustEnsure(0, t.size)
	dst.codes.mustEnsure(0, t.size)
	copy(dst.items.data, t.items.data[:t.size])
	copy(dst.codes.data, t.codes.data[:t.size])
	dst.size = t.size
}
