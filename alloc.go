package plume

// Alloc is the single memory capability the interpreter's owned buffers go
// through. It mirrors the shape of C's realloc:
//
//   - old == nil, size > 0: allocate a buffer of size bytes
//   - old != nil, size > 0: resize, preserving the common prefix
//   - size == 0: release old and return nil
//
// A nil return for a nonzero size signals allocation failure. After the first
// failure the interpreter sets a sticky fatal flag and fails fast on further
// evaluation rather than retrying.
//
// Substituting an Alloc is the intended seam for bounded arenas, allocation
// counting, and fault injection in tests. Pass nil to [NewWithAlloc] to get
// the default heap allocator.
type Alloc func(old []byte, size int) []byte

// heapAlloc is the default allocator backed by the Go heap.
func heapAlloc(old []byte, size int) []byte {
	if size == 0 {
		return nil
	}
	buf := make([]byte, size)
	copy(buf, old)
	return buf
}
