package plume

import "testing"

// countingAlloc wraps the heap allocator with counters, optionally failing
// every request to exercise the out-of-memory paths.
type countingAlloc struct {
	allocs int
	frees  int
	fail   bool
}

func (c *countingAlloc) fn(old []byte, size int) []byte {
	if size == 0 {
		if old != nil {
			c.frees++
		}
		return nil
	}
	if c.fail {
		return nil
	}
	c.allocs++
	return make([]byte, size)
}

func TestCompactStringInlineNeverAllocates(t *testing.T) {
	var c countingAlloc
	var s compactString
	// longest string that still fits with the terminator slot
	inline := "123456789012345"
	if len(inline)+1 != smallStringCap {
		t.Fatalf("test string mismatched to cap: %d", len(inline))
	}
	if !s.set(inline, c.fn) {
		t.Fatal("set failed")
	}
	if s.get() != inline {
		t.Errorf("got %q, want %q", s.get(), inline)
	}
	if !s.isInline() {
		t.Error("string of cap-1 bytes should be inline")
	}
	if c.allocs != 0 {
		t.Errorf("inline storage allocated %d times", c.allocs)
	}
	s.release(c.fn)
	if c.frees != 0 {
		t.Errorf("inline release freed %d buffers", c.frees)
	}
}

func TestCompactStringSpillsAtCap(t *testing.T) {
	var c countingAlloc
	var s compactString
	spill := "1234567890123456" // length == smallStringCap, needs the heap
	if !s.set(spill, c.fn) {
		t.Fatal("set failed")
	}
	if s.isInline() {
		t.Error("string of cap bytes must spill to the heap")
	}
	if c.allocs != 1 {
		t.Errorf("expected 1 allocation, got %d", c.allocs)
	}
	if s.get() != spill {
		t.Errorf("got %q, want %q", s.get(), spill)
	}
	s.release(c.fn)
	if c.frees != 1 {
		t.Errorf("expected 1 free, got %d", c.frees)
	}
}

func TestCompactStringReplaceFreesOldBuffer(t *testing.T) {
	var c countingAlloc
	var s compactString
	s.set("a long string that spills to heap", c.fn)
	s.set("another long string that also spills", c.fn)
	if c.allocs != 2 || c.frees != 1 {
		t.Errorf("allocs=%d frees=%d, want 2/1", c.allocs, c.frees)
	}
	// shrinking back to inline frees the heap buffer too
	s.set("short", c.fn)
	if c.frees != 2 {
		t.Errorf("shrink to inline did not free: frees=%d", c.frees)
	}
	s.release(c.fn)
	if c.frees != 2 {
		t.Errorf("releasing an inline string freed a buffer: frees=%d", c.frees)
	}
}

func TestCompactStringSetFailure(t *testing.T) {
	c := countingAlloc{fail: true}
	var s compactString
	if s.set("a long string that needs the allocator", c.fn) {
		t.Fatal("set should fail when the allocator fails")
	}
	if s.get() != "" {
		t.Errorf("failed set must leave the string empty, got %q", s.get())
	}
	// inline values still work with a failing allocator
	if !s.set("short", c.fn) {
		t.Error("inline set must succeed regardless of the allocator")
	}
}
