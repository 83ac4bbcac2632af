package plume

import "fmt"

// Status is the five-valued control-flow result produced by every evaluation
// step. It is deliberately distinct from Go's error type: loop and procedure
// constructs pattern-match on Break/Continue/Return, which are signals rather
// than failures. Only the public API boundary converts a non-OK status into
// an error.
type Status uint

const (
	// StatusOK is the initial and normal completion status.
	StatusOK Status = iota

	// StatusError carries a human-readable message in the interpreter result.
	StatusError

	// StatusReturn unwinds to the nearest procedure boundary, where it is
	// converted to StatusOK.
	StatusReturn

	// StatusBreak terminates the nearest enclosing loop with StatusOK.
	StatusBreak

	// StatusContinue skips to the next iteration of the nearest enclosing loop.
	StatusContinue
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusReturn:
		return "return"
	case StatusBreak:
		return "break"
	case StatusContinue:
		return "continue"
	}
	return fmt.Sprintf("status(%d)", uint(s))
}

// Result represents the outcome of a command registered through
// [Interp.RegisterCommand]. Create results with [OK], [Error], or [Errorf].
type Result struct {
	code Status
	val  string
}

// OK returns a successful result with a value.
//
// The value is auto-converted to its script string representation.
//
//	return plume.OK("success")
//	return plume.OK(42)
func OK(v any) Result {
	switch val := v.(type) {
	case string:
		return Result{code: StatusOK, val: val}
	case int:
		return Result{code: StatusOK, val: fmt.Sprintf("%d", val)}
	case int64:
		return Result{code: StatusOK, val: fmt.Sprintf("%d", val)}
	case float64:
		return Result{code: StatusOK, val: fmt.Sprintf("%g", val)}
	case bool:
		if val {
			return Result{code: StatusOK, val: "1"}
		}
		return Result{code: StatusOK, val: "0"}
	default:
		return Result{code: StatusOK, val: fmt.Sprintf("%v", v)}
	}
}

// Error returns an error result with a message.
//
//	return plume.Error("something went wrong")
func Error(msg string) Result {
	return Result{code: StatusError, val: msg}
}

// Errorf returns a formatted error result.
//
//	return plume.Errorf("expected %d args, got %d", want, got)
func Errorf(format string, args ...any) Result {
	return Result{code: StatusError, val: fmt.Sprintf(format, args...)}
}

// Break returns a result carrying the break control-flow signal.
func Break() Result {
	return Result{code: StatusBreak}
}

// Continue returns a result carrying the continue control-flow signal.
func Continue() Result {
	return Result{code: StatusContinue}
}

// Return returns a result that unwinds the enclosing procedure with a value.
func Return(v any) Result {
	r := OK(v)
	r.code = StatusReturn
	return r
}

// EvalError is the error type surfaced by [Interp.Eval] and [Interp.Call]
// when evaluation does not complete with StatusOK.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return e.Message
}
