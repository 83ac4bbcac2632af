package plume

import "strings"

// New creates an interpreter with the default allocator and the full
// built-in command library installed.
func New() *Interp {
	return NewWithAlloc(nil)
}

// NewWithAlloc creates an interpreter whose string storage goes through the
// supplied allocator. A nil allocator selects the default heap allocator.
// The allocator is a capability: a failing allocator makes the interpreter
// fail fast with "out of memory" on every subsequent evaluation.
func NewWithAlloc(alloc Alloc) *Interp {
	if alloc == nil {
		alloc = heapAlloc
	}
	i := &Interp{
		alloc:          alloc,
		recursionLimit: DefaultRecursionLimit,
		MatchFunc:      globMatch,
	}
	i.frames = append(i.frames, &callFrame{level: 0})
	registerCoreCommands(i)
	return i
}

// Close releases the interpreter's owned storage: every remaining call
// frame, the global variables, and the result buffer. The interpreter must
// not be used afterwards.
func (i *Interp) Close() {
	for len(i.frames) > 1 {
		i.popFrame(0)
	}
	if len(i.frames) == 1 {
		i.popFrame(0)
		i.frames = nil
	}
	i.result.release(i.alloc)
}

// Eval evaluates a script and returns its final result.
//
// A script that completes with an error status returns a nil Value and an
// [*EvalError] carrying the message. A break or continue escaping to the top
// level is an error too: there is no enclosing loop to consume it.
func (i *Interp) Eval(script string) (Value, error) {
	i.linePrefixed = false
	return i.finish(i.eval(script))
}

// finish converts an evaluation status into the public (Value, error) pair.
func (i *Interp) finish(st Status) (Value, error) {
	switch st {
	case StatusOK, StatusReturn:
		return stringValue(i.Result()), nil
	case StatusBreak:
		return nil, &EvalError{Message: `invoked "break" outside of a loop`}
	case StatusContinue:
		return nil, &EvalError{Message: `invoked "continue" outside of a loop`}
	}
	return nil, &EvalError{Message: i.Result()}
}

// Call invokes a command with Go values as arguments. Each argument is
// converted to its script representation and quoted, so callers never
// hand-escape:
//
//	v, err := interp.Call("lindex", "a b c", 1)
func (i *Interp) Call(cmd string, args ...any) (Value, error) {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, cmd)
	for _, arg := range args {
		parts = append(parts, toScriptString(arg))
	}
	i.linePrefixed = false
	return i.finish(i.eval(strings.Join(parts, " ")))
}

// Var reads a variable in the current scope. A missing variable yields an
// empty value; the interpreter result is left untouched.
func (i *Interp) Var(name string) Value {
	saved := i.Result()
	val, st := i.getVar(name)
	if st != StatusOK {
		i.setResult(saved)
		return stringValue("")
	}
	return stringValue(val)
}

// SetVar assigns a variable in the current scope. The value is stored as its
// plain string form, unquoted.
func (i *Interp) SetVar(name string, value any) error {
	if st := i.setVar(name, rawString(value)); st != StatusOK {
		return &EvalError{Message: i.Result()}
	}
	return nil
}

// SetVars assigns several variables at once.
func (i *Interp) SetVars(vars map[string]any) error {
	for name, value := range vars {
		if err := i.SetVar(name, value); err != nil {
			return err
		}
	}
	return nil
}

// CommandFunc is the shape of a command registered from Go through
// [Interp.RegisterCommand]: the invocation name, the substituted arguments
// (without the name), and a [Result] built with [OK], [Error], [Break],
// [Continue], or [Return].
type CommandFunc func(i *Interp, cmd string, args []string) Result

// RegisterCommand binds a Go function as a script command, replacing any
// existing command of the same name.
//
//	interp.RegisterCommand("double", func(i *plume.Interp, cmd string, args []string) plume.Result {
//		n, err := strconv.Atoi(args[0])
//		if err != nil {
//			return plume.Errorf("expected integer but got %q", args[0])
//		}
//		return plume.OK(n * 2)
//	})
func (i *Interp) RegisterCommand(name string, fn CommandFunc) {
	i.cmds.insert(&command{name: name, kind: cmdBuiltin, priv: fn, fn: callCommandFunc})
}

func callCommandFunc(i *Interp, argv []string, priv any) Status {
	res := priv.(CommandFunc)(i, argv[0], argv[1:])
	i.setResult(res.val)
	return res.code
}

// InternalCommandFunc is the low-level command shape: the full argument
// vector with argv[0] holding the invocation name, plus the opaque private
// data bound at registration. The result text is written into the
// interpreter; the return value is only the status code. Most callers want
// [Interp.RegisterCommand] instead.
type InternalCommandFunc func(i *Interp, argv []string, priv any) Status

// RegisterInternalCommand binds a command in its low-level form.
func (i *Interp) RegisterInternalCommand(name string, fn InternalCommandFunc, priv any) {
	i.cmds.insert(&command{name: name, kind: cmdBuiltin, fn: builtinFunc(fn), priv: priv})
}

// UnregisterCommand removes a command binding, reporting whether it existed.
func (i *Interp) UnregisterCommand(name string) bool {
	return i.cmds.remove(name)
}

// SetUnknownHandler installs the fallback invoked when a command name has no
// binding. The handler receives the unresolved name as its first argument
// followed by the original arguments. A nil handler removes the fallback,
// restoring the plain "invalid command name" error.
func (i *Interp) SetUnknownHandler(fn CommandFunc) {
	if fn == nil {
		i.cmds.remove(unknownCommand)
		return
	}
	i.RegisterCommand(unknownCommand, fn)
}

// SetTracer installs the hook invoked before every command dispatch while
// tracing is enabled. The hook receives the about-to-run argument vector;
// its result and status are discarded. A nil hook removes the tracer.
func (i *Interp) SetTracer(fn CommandFunc) {
	if fn == nil {
		i.cmds.remove(tracerCommand)
		return
	}
	i.RegisterCommand(tracerCommand, fn)
}

// EnableTracing turns the dispatch tracer on or off. The trace command
// toggles the same switch from script code.
func (i *Interp) EnableTracing(on bool) {
	i.tracing = on
}

// ParseStatus classifies the outcome of [Interp.Parse].
type ParseStatus int

const (
	// ParseOK means the script is a complete, well-formed token stream.
	ParseOK ParseStatus = iota
	// ParseIncomplete means a grouping is still open at end of input; more
	// text may complete it. REPLs use this to decide whether to keep reading.
	ParseIncomplete
	// ParseError means the script is malformed regardless of further input.
	ParseError
)

// ParseResult is the outcome of a syntax check, with the parse message for
// the two failure cases.
type ParseResult struct {
	Status  ParseStatus
	Message string
}

// Parse checks a script's syntax without evaluating anything.
func (i *Interp) Parse(script string) ParseResult {
	p := newParser(script, substAll)
	for {
		if err := p.next(); err != nil {
			if pe, ok := err.(*parseError); ok && pe.incomplete {
				return ParseResult{Status: ParseIncomplete, Message: pe.msg}
			}
			return ParseResult{Status: ParseError, Message: err.Error()}
		}
		if p.typ == tokEOF {
			return ParseResult{Status: ParseOK}
		}
	}
}
