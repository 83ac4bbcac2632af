package plume

import (
	"strings"
	"testing"
)

func TestInfoExists(t *testing.T) {
	i := New()
	defer i.Close()

	if got := mustEval(t, i, "info exists nope"); got != "0" {
		t.Errorf("got %q", got)
	}
	mustEval(t, i, "set here 1")
	if got := mustEval(t, i, "info exists here"); got != "1" {
		t.Errorf("got %q", got)
	}
}

func TestInfoCommandsAndProcs(t *testing.T) {
	i := New()
	defer i.Close()

	mustEval(t, i, "proc myproc {} {}")
	cmds := mustEval(t, i, "info commands")
	for _, name := range []string{"set", "while", "myproc", "lindex"} {
		if !strings.Contains(" "+cmds+" ", " "+name+" ") {
			t.Errorf("info commands missing %q: %q", name, cmds)
		}
	}

	procs := mustEval(t, i, "info procs")
	if procs != "myproc" {
		t.Errorf("info procs: got %q", procs)
	}

	filtered := mustEval(t, i, "info commands l*")
	if !strings.Contains(filtered, "lindex") || strings.Contains(filtered, "set") {
		t.Errorf("glob filter: got %q", filtered)
	}
}

func TestInfoVarsAndGlobals(t *testing.T) {
	i := New()
	defer i.Close()

	mustEval(t, i, "set g1 1; set g2 2; set other 3")
	if got := mustEval(t, i, "info vars"); got != "g1 g2 other" {
		t.Errorf("info vars at top level: got %q", got)
	}
	if got := mustEval(t, i, "info vars g*"); got != "g1 g2" {
		t.Errorf("info vars with pattern: got %q", got)
	}
	mustEval(t, i, `proc snapshot {} {
		set local 1
		upvar #0 vars v
		upvar #0 globals g
		set v [info vars]
		set g [info globals]
	}`)
	mustEval(t, i, "snapshot")
	vars := mustEval(t, i, "set vars")
	if !strings.Contains(vars, "local") || strings.Contains(vars, "g1") {
		t.Errorf("info vars inside proc: got %q", vars)
	}
	globals := mustEval(t, i, "set globals")
	if !strings.Contains(globals, "g1") || !strings.Contains(globals, "g2") {
		t.Errorf("info globals inside proc: got %q", globals)
	}
}

func TestInfoLevel(t *testing.T) {
	i := New()
	defer i.Close()

	if got := mustEval(t, i, "info level"); got != "0" {
		t.Errorf("top level: got %q", got)
	}
	mustEval(t, i, "proc depth {} { info level }")
	if got := mustEval(t, i, "depth"); got != "1" {
		t.Errorf("inside proc: got %q", got)
	}
	mustEval(t, i, "proc outer {} { depth }")
	if got := mustEval(t, i, "outer"); got != "2" {
		t.Errorf("nested: got %q", got)
	}
}

func TestInfoBodyAndArgs(t *testing.T) {
	i := New()
	defer i.Close()

	mustEval(t, i, "proc adder {a b} { + $a $b }")
	if got := mustEval(t, i, "info args adder"); got != "a b" {
		t.Errorf("info args: got %q", got)
	}
	if got := mustEval(t, i, "info body adder"); got != " + $a $b " {
		t.Errorf("info body: got %q", got)
	}

	msg := evalErr(t, i, "info body set")
	if !strings.Contains(msg, "isn't a procedure") {
		t.Errorf("unexpected message: %q", msg)
	}
	msg = evalErr(t, i, "info args ghost")
	if !strings.Contains(msg, "isn't a procedure") {
		t.Errorf("unexpected message: %q", msg)
	}
}
