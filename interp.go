package plume

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRecursionLimit is the default maximum nested evaluation depth.
const DefaultRecursionLimit = 1000

// errOutOfMemory is short enough to store inline, so reporting an
// allocation failure never itself allocates.
const errOutOfMemory = "out of memory"

// Reserved command names consulted by the dispatcher.
const (
	unknownCommand = "unknown"
	tracerCommand  = "tracer"
)

// Interp is an interpreter instance.
//
// Create one with [New] (or [NewWithAlloc] to substitute the allocator) and
// release it with [Interp.Close]. An interpreter is not safe for concurrent
// use from multiple goroutines; separate instances are fully independent.
//
//	interp := plume.New()
//	defer interp.Close()
//	result, err := interp.Eval("expr 2 + 2")
type Interp struct {
	alloc  Alloc
	cmds   commandTable
	frames []*callFrame
	active int // currently active frame index
	depth  int // nested evaluation depth, checked against the recursion limit

	recursionLimit int
	result         compactString

	fatal        bool // sticky after an allocation failure; fail fast from then on
	tracing      bool
	inUnknown    bool // reentrancy guard for the unknown handler
	inTrace      bool // reentrancy guard for the tracer hook
	lineTracking bool
	linePrefixed bool

	// MatchFunc is the pattern-matching seam used by string match, lsearch,
	// and the info commands. The default is a small glob matcher supporting
	// *, ?, [set] and backslash escapes.
	MatchFunc func(pattern, s string) bool
}

// setResult replaces the interpreter's current result, releasing the
// previous owned buffer first.
func (i *Interp) setResult(s string) {
	if !i.result.set(s, i.alloc) {
		i.fatal = true
		i.result.set(errOutOfMemory, i.alloc)
	}
}

// Result returns the current result string.
func (i *Interp) Result() string {
	return i.result.get()
}

// SetResult replaces the interpreter result. Commands registered through
// [Interp.RegisterInternalCommand] use this to publish their result text.
func (i *Interp) SetResult(s string) {
	i.setResult(s)
}

// match applies the configured pattern matcher.
func (i *Interp) match(pattern, s string) bool {
	if i.MatchFunc == nil {
		return globMatch(pattern, s)
	}
	return i.MatchFunc(pattern, s)
}

// errorf formats an error message into the result and returns StatusError.
func (i *Interp) errorf(format string, args ...any) Status {
	i.setResult(fmt.Sprintf(format, args...))
	return StatusError
}

// allocFailed records an allocation failure: the sticky fatal flag is set
// and the interpreter degrades to fail-fast behavior.
func (i *Interp) allocFailed() Status {
	i.fatal = true
	i.result.set(errOutOfMemory, i.alloc)
	return StatusError
}

func (i *Interp) effectiveRecursionLimit() int {
	if i.recursionLimit <= 0 {
		return DefaultRecursionLimit
	}
	return i.recursionLimit
}

// SetRecursionLimit sets the maximum nested evaluation depth. A limit of 0
// or less restores the default (1000).
func (i *Interp) SetRecursionLimit(limit int) {
	if limit <= 0 {
		i.recursionLimit = DefaultRecursionLimit
	} else {
		i.recursionLimit = limit
	}
}

// SetLineTracking enables or disables source line prefixes on error
// messages ("line N: ...").
func (i *Interp) SetLineTracking(on bool) {
	i.lineTracking = on
}

// eval evaluates a script with full substitution.
func (i *Interp) eval(script string) Status {
	return i.evalFlags(script, substAll)
}

// evalFlags is the evaluator core: it walks the token stream, performs
// substitution, assembles argument vectors, and dispatches one command per
// statement. A non-OK status from a dispatched command abandons the
// remaining tokens and propagates to the caller, which decides what the
// code means (loop, procedure boundary, or top level).
func (i *Interp) evalFlags(script string, flags substFlags) Status {
	if i.fatal {
		i.result.set(errOutOfMemory, i.alloc)
		return StatusError
	}
	i.depth++
	defer func() { i.depth-- }()
	if i.depth > i.effectiveRecursionLimit() {
		return i.errorf("too many nested evaluations (infinite loop?)")
	}

	p := newParser(script, flags)
	i.setResult("")
	var argv []string
	prev := tokEOL
	stmtLine := 1
	for {
		if err := p.next(); err != nil {
			return i.parseFail(err)
		}
		switch p.typ {
		case tokEOF, tokEOL:
			if len(argv) > 0 {
				st := i.dispatch(argv, stmtLine)
				argv = argv[:0]
				if st != StatusOK {
					return st
				}
			}
			if p.typ == tokEOF {
				return StatusOK
			}
			prev = tokEOL
			continue
		case tokSep:
			prev = tokSep
			continue
		}

		var word string
		switch p.typ {
		case tokVar:
			val, st := i.getVar(p.token())
			if st != StatusOK {
				return st
			}
			word = val
		case tokCmd:
			// Nested command substitution re-enters the evaluator and is
			// the dominant contributor to recursion depth.
			st := i.eval(p.token())
			if st != StatusOK {
				return st
			}
			word = i.Result()
		case tokEsc:
			word = p.token()
			if flags&substNoEscapes == 0 {
				word = unescape(word)
			}
		default: // tokStr
			word = p.token()
		}

		if prev == tokSep || prev == tokEOL {
			if len(argv) == 0 {
				stmtLine = p.line(p.start)
			}
			argv = append(argv, word)
		} else {
			argv[len(argv)-1] += word
		}
		prev = p.typ
	}
}

// substOnly performs substitution without statement structure: variable,
// command, and escape tokens are replaced in place, everything else passes
// through verbatim. Backs the subst command and expression conditions.
func (i *Interp) substOnly(text string, flags substFlags) (string, Status) {
	if i.fatal {
		i.result.set(errOutOfMemory, i.alloc)
		return "", StatusError
	}
	i.depth++
	defer func() { i.depth-- }()
	if i.depth > i.effectiveRecursionLimit() {
		return "", i.errorf("too many nested evaluations (infinite loop?)")
	}

	p := newParser(text, flags|substNoEval)
	var b strings.Builder
	b.Grow(len(text))
	for {
		if err := p.next(); err != nil {
			return "", i.parseFail(err)
		}
		switch p.typ {
		case tokEOF:
			return b.String(), StatusOK
		case tokVar:
			val, st := i.getVar(p.token())
			if st != StatusOK {
				return "", st
			}
			b.WriteString(val)
		case tokCmd:
			st := i.eval(p.token())
			if st != StatusOK {
				return "", st
			}
			b.WriteString(i.Result())
		case tokEsc:
			word := p.token()
			if flags&substNoEscapes == 0 {
				word = unescape(word)
			}
			b.WriteString(word)
		default: // tokStr, tokSep, tokEOL pass through as written
			b.WriteString(p.token())
		}
	}
}

func (i *Interp) parseFail(err error) Status {
	pe, ok := err.(*parseError)
	if !ok {
		return i.errorf("%s", err)
	}
	if i.lineTracking {
		return i.errorf("line %d: %s", pe.line, pe.msg)
	}
	return i.errorf("%s", pe.msg)
}

// dispatch looks up argv[0] and invokes it. A missing command falls back to
// the reserved unknown handler with the original name prepended; a missing
// or failing handler cannot recurse thanks to the reentrancy guard.
func (i *Interp) dispatch(argv []string, line int) Status {
	if i.tracing && !i.inTrace {
		if tracer := i.cmds.lookup(tracerCommand); tracer != nil {
			i.traceDispatch(tracer, argv)
		}
	}

	c := i.cmds.lookup(argv[0])
	if c == nil {
		c = i.cmds.lookup(unknownCommand)
		if c == nil || i.inUnknown {
			return i.linePrefix(i.errorf("invalid command name %q", argv[0]), line)
		}
		i.inUnknown = true
		defer func() { i.inUnknown = false }()
		argv = append([]string{unknownCommand}, argv...)
	}

	return i.linePrefix(i.invoke(c, argv), line)
}

// linePrefix stamps an error result with the statement's source line when
// line tracking is on. The linePrefixed flag keeps nested dispatches from
// stacking prefixes as the error propagates.
func (i *Interp) linePrefix(st Status, line int) Status {
	if st == StatusError && i.lineTracking && !i.linePrefixed {
		i.linePrefixed = true
		i.setResult(fmt.Sprintf("line %d: %s", line, i.Result()))
	}
	return st
}

// traceDispatch invokes the tracer hook with the about-to-run argv. The
// tracer's own result and status are discarded so tracing cannot alter the
// traced command's outcome.
func (i *Interp) traceDispatch(tracer *command, argv []string) {
	i.inTrace = true
	defer func() { i.inTrace = false }()
	saved := i.Result()
	i.invoke(tracer, append([]string{tracerCommand}, argv...))
	i.setResult(saved)
}

func (i *Interp) invoke(c *command, argv []string) Status {
	if c.kind == cmdProc {
		return i.callProc(c, argv)
	}
	return c.fn(i, argv, c.priv)
}

// callProc runs a defined procedure: a fresh frame, parameters bound from
// argv, the body evaluated, and RETURN converted to OK at the boundary.
// BREAK and CONTINUE escaping a body with no enclosing loop propagate
// unchanged to the caller.
func (i *Interp) callProc(c *command, argv []string) Status {
	params, err := parseListText(c.params)
	if err != nil {
		return i.errorf("invalid parameter list for %q: %s", argv[0], err)
	}
	prev := i.pushFrame(argv)
	defer i.popFrame(prev)
	if st := i.bindParams(argv, params); st != StatusOK {
		return st
	}
	st := i.eval(c.body)
	if st == StatusReturn {
		st = StatusOK
	}
	return st
}

// bindParams assigns argv[1:] to the parameter list. A parameter written as
// a {name default} pair is optional; a final parameter named "args"
// collects the remaining arguments as a list.
func (i *Interp) bindParams(argv, params []string) Status {
	args := argv[1:]
	for idx, param := range params {
		name, def := param, ""
		hasDefault := false
		if parts, err := parseListText(param); err == nil {
			switch len(parts) {
			case 1:
				name = parts[0]
			case 2:
				name, def = parts[0], parts[1]
				hasDefault = true
			}
		}
		if name == "args" && idx == len(params)-1 {
			var rest []string
			if len(args) > idx {
				rest = args[idx:]
			}
			return i.setVar("args", joinList(rest))
		}
		switch {
		case idx < len(args):
			if st := i.setVar(name, args[idx]); st != StatusOK {
				return st
			}
		case hasDefault:
			if st := i.setVar(name, def); st != StatusOK {
				return st
			}
		default:
			return i.arityErr(argv)
		}
	}
	if len(args) > len(params) {
		return i.arityErr(argv)
	}
	return StatusOK
}

// callLambda invokes an anonymous {params body} pair the way apply does.
func (i *Interp) callLambda(lambda string, argv []string) Status {
	parts, err := parseListText(lambda)
	if err != nil || len(parts) < 2 || len(parts) > 3 {
		return i.errorf("can't interpret %q as a lambda expression", lambda)
	}
	c := &command{name: argv[0], kind: cmdProc, params: parts[0], body: parts[1]}
	return i.callProc(c, argv)
}

// arityErr formats the standard wrong-argument-count error, echoing the
// offending argument vector.
func (i *Interp) arityErr(argv []string) Status {
	return i.errorf("wrong # args: \"%s\"", strings.Join(argv, " "))
}

// parseLevel resolves a frame level spec: a bare count climbs that many
// frames toward the global frame, "#N" addresses absolute frame N.
func (i *Interp) parseLevel(spec string) (int, Status) {
	s := spec
	abs := false
	if strings.HasPrefix(s, "#") {
		abs = true
		s = s[1:]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, i.errorf("bad level %q", spec)
	}
	level := n
	if !abs {
		level = i.frames[i.active].level - n
	}
	if level < 0 || level >= len(i.frames) {
		return 0, i.errorf("bad level %q", spec)
	}
	return level, StatusOK
}

// withFrame relocates the active frame pointer to level, runs fn, and
// restores the original frame on every exit path. uplevel and upvar depend
// on this restore-on-all-paths discipline.
func (i *Interp) withFrame(level int, fn func() Status) Status {
	saved := i.active
	savedDepth := i.depth
	i.active = level
	defer func() {
		i.active = saved
		i.depth = savedDepth
	}()
	return fn()
}

// registerBuiltin binds a built-in callable, replacing any previous binding.
func (i *Interp) registerBuiltin(name string, fn builtinFunc) {
	i.cmds.insert(&command{name: name, kind: cmdBuiltin, fn: fn})
}

// registerProc binds a defined procedure from its parameter-list and body
// text.
func (i *Interp) registerProc(name, params, body string) {
	i.cmds.insert(&command{name: name, kind: cmdProc, params: params, body: body})
}
