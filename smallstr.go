package plume

// smallStringCap is the inline capacity of a compactString in bytes,
// including one reserved terminator slot. A string is stored inline if and
// only if its length plus the terminator fits this capacity.
const smallStringCap = 16

// compactString stores short strings inline and spills longer ones to a
// buffer owned through the interpreter's allocator. The heap buffer, when
// present, is released exactly once: either when the string is replaced or
// when it is explicitly released.
type compactString struct {
	inline [smallStringCap]byte
	heap   []byte // non-nil when the value did not fit inline
	n      int
}

// set replaces the stored string. The previous heap buffer, if any, is
// released after the new value is in place. Returns false on allocation
// failure, leaving the previous value released and the string empty.
func (c *compactString) set(s string, alloc Alloc) bool {
	old := c.heap
	if len(s)+1 <= smallStringCap {
		copy(c.inline[:], s)
		c.heap = nil
		c.n = len(s)
		if old != nil {
			alloc(old, 0)
		}
		return true
	}
	buf := alloc(nil, len(s)+1)
	if buf == nil {
		c.heap = nil
		c.n = 0
		if old != nil {
			alloc(old, 0)
		}
		return false
	}
	copy(buf, s)
	c.heap = buf
	c.n = len(s)
	if old != nil {
		alloc(old, 0)
	}
	return true
}

// get returns the stored string.
func (c *compactString) get() string {
	if c.heap != nil {
		return string(c.heap[:c.n])
	}
	return string(c.inline[:c.n])
}

// release drops the stored string, returning any heap buffer to the
// allocator. Safe to call on an already-empty string.
func (c *compactString) release(alloc Alloc) {
	if c.heap != nil {
		alloc(c.heap, 0)
		c.heap = nil
	}
	c.n = 0
}

// isInline reports whether the value is stored without a heap buffer.
func (c *compactString) isInline() bool {
	return c.heap == nil
}

func (c *compactString) len() int {
	return c.n
}
