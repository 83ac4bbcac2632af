package plume_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/plume-lang/plume"
)

func TestNew(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	result, err := interp.Eval("expr {2 + 2}")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result.String() != "4" {
		t.Errorf("expected '4', got %q", result.String())
	}
}

func TestSetVarAndSubstitution(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	interp.SetVar("name", "World")
	result, err := interp.Eval(`set greeting "Hello, $name!"`)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result.String() != "Hello, World!" {
		t.Errorf("expected 'Hello, World!', got %q", result.String())
	}
}

func TestVarAccessors(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	_, err := interp.Eval("set a 54; set b 3; set c -4x")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}

	a, err := interp.Var("a").Int()
	if err != nil {
		t.Fatalf("Int() failed: %v", err)
	}
	if a != 54 {
		t.Errorf("expected 54, got %d", a)
	}

	if _, err := interp.Var("c").Int(); err == nil {
		t.Error("Int() of '-4x' should fail")
	}
	if got := interp.Var("c").String(); got != "-4x" {
		t.Errorf("expected '-4x', got %q", got)
	}

	if !interp.Var("missing").IsNil() {
		t.Error("missing variable should be nil-valued")
	}
}

func TestValueList(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	result, err := interp.Eval("list 1 2 3")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	items, err := result.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(items))
	}
	n, err := items[1].Int()
	if err != nil || n != 2 {
		t.Errorf("expected 2, got %d (%v)", n, err)
	}
}

func TestValueBool(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	interp.SetVar("yes", "on")
	interp.SetVar("no", "false")
	interp.SetVar("num", "7")

	for name, want := range map[string]bool{"yes": true, "no": false, "num": true} {
		got, err := interp.Var(name).Bool()
		if err != nil {
			t.Fatalf("Bool(%s) failed: %v", name, err)
		}
		if got != want {
			t.Errorf("Bool(%s) = %v, want %v", name, got, want)
		}
	}

	interp.SetVar("junk", "perhaps")
	if _, err := interp.Var("junk").Bool(); err == nil {
		t.Error("Bool of 'perhaps' should fail")
	}
}

func TestSetVars(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	err := interp.SetVars(map[string]any{
		"s": "text",
		"n": 42,
		"f": 2.5,
		"b": true,
		"l": []string{"a", "b c"},
	})
	if err != nil {
		t.Fatalf("SetVars failed: %v", err)
	}
	if got := interp.Var("n").String(); got != "42" {
		t.Errorf("n = %q", got)
	}
	if got := interp.Var("b").String(); got != "1" {
		t.Errorf("b = %q", got)
	}
	if got, _ := interp.Var("l").List(); len(got) != 2 || got[1].String() != "b c" {
		t.Errorf("l = %v", got)
	}
}

func TestCall(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	// arguments are quoted automatically, embedded spaces stay one word
	result, err := interp.Call("lindex", "a b c", 1)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result.String() != "b" {
		t.Errorf("expected 'b', got %q", result.String())
	}

	result, err = interp.Call("string", "length", "two words")
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result.String() != "9" {
		t.Errorf("expected '9', got %q", result.String())
	}
}

func TestRegisterCommand(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	interp.RegisterCommand("double", func(i *plume.Interp, cmd string, args []string) plume.Result {
		if len(args) != 1 {
			return plume.Errorf("wrong # args: \"%s\"", cmd)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return plume.Errorf("expected integer but got %q", args[0])
		}
		return plume.OK(n * 2)
	})

	result, err := interp.Eval("double 21")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result.String() != "42" {
		t.Errorf("expected '42', got %q", result.String())
	}

	_, err = interp.Eval("double nope")
	if err == nil {
		t.Fatal("expected error")
	}
	var evalErr *plume.EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvalError, got %T", err)
	}
	if !strings.Contains(evalErr.Message, "expected integer") {
		t.Errorf("unexpected message: %q", evalErr.Message)
	}
}

func TestRegisterCommandControlFlow(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	interp.RegisterCommand("stop", func(i *plume.Interp, cmd string, args []string) plume.Result {
		return plume.Break()
	})
	result, err := interp.Eval(`
		set n 0
		while {1} {
			incr n
			stop
		}
		set n
	`)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result.String() != "1" {
		t.Errorf("expected '1', got %q", result.String())
	}
}

func TestRegisterInternalCommand(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	interp.RegisterInternalCommand("tagged", func(i *plume.Interp, argv []string, priv any) plume.Status {
		i.SetResult(priv.(string) + ":" + strings.Join(argv[1:], ","))
		return plume.StatusOK
	}, "tag")

	result, err := interp.Eval("tagged a b")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result.String() != "tag:a,b" {
		t.Errorf("expected 'tag:a,b', got %q", result.String())
	}
}

func TestUnregisterCommand(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	interp.RegisterCommand("gone", func(i *plume.Interp, cmd string, args []string) plume.Result {
		return plume.OK("here")
	})
	if !interp.UnregisterCommand("gone") {
		t.Fatal("UnregisterCommand reported missing command")
	}
	if _, err := interp.Eval("gone"); err == nil {
		t.Error("removed command still callable")
	}
	if interp.UnregisterCommand("gone") {
		t.Error("second removal should report false")
	}
}

func TestParse(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	if r := interp.Parse("set a 1"); r.Status != plume.ParseOK {
		t.Errorf("complete script: %+v", r)
	}
	if r := interp.Parse("while {1} {"); r.Status != plume.ParseIncomplete {
		t.Errorf("open brace: %+v", r)
	}
	if r := interp.Parse(`set a "unclosed`); r.Status != plume.ParseIncomplete {
		t.Errorf("open quote: %+v", r)
	}
}

func TestEvalErrorTopLevelBreak(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	_, err := interp.Eval("break")
	if err == nil || err.Error() != `invoked "break" outside of a loop` {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProcReturnValue(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	script := `
		proc fib {n} {
			if {$n < 2} { return $n }
			+ [fib [- $n 1]] [fib [- $n 2]]
		}
		fib 10
	`
	result, err := interp.Eval(script)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result.String() != "55" {
		t.Errorf("expected '55', got %q", result.String())
	}
}

func TestRecursionLimitPublic(t *testing.T) {
	interp := plume.New()
	defer interp.Close()

	interp.SetRecursionLimit(20)
	_, err := interp.Eval("proc f {} {f}; f")
	if err == nil || !strings.Contains(err.Error(), "too many nested evaluations") {
		t.Errorf("unexpected error: %v", err)
	}
}
