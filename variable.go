package plume

// varKind selects which storage a variable carries.
type varKind uint8

const (
	// varValue holds an owned value string.
	varValue varKind = iota
	// varLinked aliases a variable in another frame (upvar).
	varLinked
)

// varLink names the target of a link variable by absolute frame level plus
// variable name. Using (level, name) instead of a pointer keeps links valid
// across variable creation in the target frame.
type varLink struct {
	level int
	name  string
}

// variable is a single entry in a call frame. Its name and value are
// compact strings owned through the interpreter's allocator.
type variable struct {
	name compactString
	val  compactString // varValue only
	link varLink       // varLinked only
	kind varKind
}

// callFrame is a scope boundary holding local variables. The interpreter
// keeps frames in a stack slice; level is the frame's index in it. argv is
// the invocation vector for procedure frames, kept for info level.
type callFrame struct {
	vars  []*variable
	argv  []string
	level int
}

// find scans the frame's variable list for name. Lookup is a deliberate
// linear scan: frames are expected to stay small, and the scan keeps the
// storage model a plain owned slice.
func (f *callFrame) find(name string) *variable {
	for _, v := range f.vars {
		if v.name.get() == name {
			return v
		}
	}
	return nil
}

// remove unlinks the named variable from the frame, releasing its storage.
func (f *callFrame) remove(name string, alloc Alloc) bool {
	for idx, v := range f.vars {
		if v.name.get() == name {
			v.name.release(alloc)
			v.val.release(alloc)
			f.vars = append(f.vars[:idx], f.vars[idx+1:]...)
			return true
		}
	}
	return false
}

type linkKey struct {
	level int
	name  string
}

// resolveVar follows link variables until it reaches a value variable (or
// the spot where one would be created). It returns the terminal frame, the
// variable (nil if it does not exist yet), and its name in that frame.
//
// A visited set catches link cycles, including direct self-links: a cycle
// fails with an error instead of looping.
func (i *Interp) resolveVar(name string) (*callFrame, *variable, string, Status) {
	frame := i.frames[i.active]
	cur := name
	var seen map[linkKey]bool
	for {
		v := frame.find(cur)
		if v == nil || v.kind == varValue {
			return frame, v, cur, StatusOK
		}
		key := linkKey{frame.level, cur}
		if seen == nil {
			seen = make(map[linkKey]bool)
		}
		if seen[key] {
			return nil, nil, "", i.errorf("upvar link cycle detected for %q", name)
		}
		seen[key] = true
		if v.link.level < 0 || v.link.level >= len(i.frames) {
			return nil, nil, "", i.errorf("upvar target frame for %q no longer exists", name)
		}
		frame = i.frames[v.link.level]
		cur = v.link.name
	}
}

// getVar reads a variable's value, following links.
func (i *Interp) getVar(name string) (string, Status) {
	_, v, _, st := i.resolveVar(name)
	if st != StatusOK {
		return "", st
	}
	if v == nil {
		return "", i.errorf("can't read %q: no such variable", name)
	}
	return v.val.get(), StatusOK
}

// setVar writes a variable, following links, creating it on first
// assignment in the terminal frame.
func (i *Interp) setVar(name, value string) Status {
	frame, v, terminal, st := i.resolveVar(name)
	if st != StatusOK {
		return st
	}
	if v != nil {
		if !v.val.set(value, i.alloc) {
			return i.allocFailed()
		}
		return StatusOK
	}
	v = &variable{kind: varValue}
	if !v.name.set(terminal, i.alloc) || !v.val.set(value, i.alloc) {
		v.name.release(i.alloc)
		v.val.release(i.alloc)
		return i.allocFailed()
	}
	frame.vars = append(frame.vars, v)
	return StatusOK
}

// unsetVar removes the named entry from the active frame. Removing a link
// drops only the link, never its target.
func (i *Interp) unsetVar(name string) Status {
	if !i.frames[i.active].remove(name, i.alloc) {
		return i.errorf("can't unset %q: no such variable", name)
	}
	return StatusOK
}

// linkVar creates (or retargets) a link variable in the active frame
// aliasing target (an absolute frame level plus name).
func (i *Interp) linkVar(localName string, target varLink) Status {
	frame := i.frames[i.active]
	if target.level == frame.level && target.name == localName {
		return i.errorf("can't upvar from variable %q to itself", localName)
	}
	if v := frame.find(localName); v != nil {
		v.val.release(i.alloc)
		v.kind = varLinked
		v.link = target
		return StatusOK
	}
	v := &variable{kind: varLinked, link: target}
	if !v.name.set(localName, i.alloc) {
		return i.allocFailed()
	}
	frame.vars = append(frame.vars, v)
	return StatusOK
}

// pushFrame enters a new call frame and makes it active, returning the
// index of the previously active frame.
func (i *Interp) pushFrame(argv []string) int {
	prev := i.active
	f := &callFrame{level: len(i.frames), argv: argv}
	i.frames = append(i.frames, f)
	i.active = len(i.frames) - 1
	return prev
}

// popFrame drops the top frame, releasing its variables, and restores the
// previously active index. Frames are destroyed in strict LIFO order on
// every path, including error unwinding.
func (i *Interp) popFrame(prevActive int) {
	f := i.frames[len(i.frames)-1]
	for _, v := range f.vars {
		v.name.release(i.alloc)
		v.val.release(i.alloc)
	}
	i.frames = i.frames[:len(i.frames)-1]
	i.active = prevActive
}
