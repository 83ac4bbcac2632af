package plume

import (
	"strings"
	"testing"
)

func TestPrefixOperators(t *testing.T) {
	i := New()
	defer i.Close()

	cases := []struct{ script, want string }{
		{"+ 2 2", "4"},
		{"* -2 9", "-18"},
		{"- 10 3", "7"},
		{"/ 7 2", "3"},
		{"% 7 2", "1"},
		{"== 3 3", "1"},
		{"!= 3 3", "0"},
		{"< 1 2", "1"},
		{"> 1 2", "0"},
		{"<= 2 2", "1"},
		{">= 1 2", "0"},
		{"&& 1 0", "0"},
		{"|| 1 0", "1"},
		{"! 0", "1"},
		{"! 5", "0"},
		{"- 5", "-5"},
		{"+ 5", "5"},
		{"+ 1.5 2", "3.5"},
	}
	for _, c := range cases {
		if got := mustEval(t, i, c.script); got != c.want {
			t.Errorf("%q: got %q, want %q", c.script, got, c.want)
		}
	}
}

func TestPrefixOperatorErrors(t *testing.T) {
	i := New()
	defer i.Close()

	msg := evalErr(t, i, "/ 1 0")
	if !strings.Contains(msg, "divide by zero") {
		t.Errorf("unexpected message: %q", msg)
	}
	msg = evalErr(t, i, "+ 1 banana")
	if !strings.Contains(msg, "expected number") {
		t.Errorf("unexpected message: %q", msg)
	}
	msg = evalErr(t, i, "% 1.5 2")
	if !strings.Contains(msg, "floating-point") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestExprInfix(t *testing.T) {
	i := New()
	defer i.Close()

	cases := []struct{ script, want string }{
		{"expr {2 + 2}", "4"},
		{"expr {2 + 3 * 4}", "14"},
		{"expr {(2 + 3) * 4}", "20"},
		{"expr {10 / 4}", "2"},
		{"expr {10.0 / 4}", "2.5"},
		{"expr {1 < 2 && 3 > 2}", "1"},
		{"expr {!0}", "1"},
		{"expr {-3 + 1}", "-2"},
		{"expr {2 == 2.0}", "1"},
		{"expr {0x10 + 1}", "17"},
		{"expr {1e2 + 1}", "101"},
	}
	for _, c := range cases {
		if got := mustEval(t, i, c.script); got != c.want {
			t.Errorf("%q: got %q, want %q", c.script, got, c.want)
		}
	}
}

func TestExprSubstitutesFirst(t *testing.T) {
	i := New()
	defer i.Close()

	mustEval(t, i, "set n 4")
	if got := mustEval(t, i, "expr {$n * [+ 1 1]}"); got != "8" {
		t.Errorf("got %q, want 8", got)
	}
}

func TestExprErrors(t *testing.T) {
	i := New()
	defer i.Close()

	msg := evalErr(t, i, "expr {1 / 0}")
	if !strings.Contains(msg, "divide by zero") {
		t.Errorf("unexpected message: %q", msg)
	}
	msg = evalErr(t, i, "expr {(1 + 2}")
	if !strings.Contains(msg, "parenthesis") {
		t.Errorf("unexpected message: %q", msg)
	}
	msg = evalErr(t, i, "expr {1 + }")
	if !strings.Contains(msg, "unexpected end") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestConditionIsAnExpression(t *testing.T) {
	i := New()
	defer i.Close()

	got := mustEval(t, i, `
		set n 7
		if {$n % 2 == 1} { set kind odd } else { set kind even }
		set kind
	`)
	if got != "odd" {
		t.Errorf("got %q, want odd", got)
	}
}

func TestGlobMatch(t *testing.T) {
	cases := []struct {
		pattern, s string
		want       bool
	}{
		{"*", "", true},
		{"*", "anything", true},
		{"a*c", "abc", true},
		{"a*c", "ac", true},
		{"a*c", "abd", false},
		{"?", "x", true},
		{"?", "", false},
		{"[a-c]x", "bx", true},
		{"[a-c]x", "dx", false},
		{"[^a-c]x", "dx", true},
		{"a\\*b", "a*b", true},
		{"a\\*b", "axb", false},
		{"*.go", "main.go", true},
		{"*.go", "main.rs", false},
		{"[unterminated", "u", false},
	}
	for _, c := range cases {
		if got := globMatch(c.pattern, c.s); got != c.want {
			t.Errorf("globMatch(%q, %q) = %v, want %v", c.pattern, c.s, got, c.want)
		}
	}
}

func TestGlobMatchIsRuneBased(t *testing.T) {
	cases := []struct {
		pattern, s string
		want       bool
	}{
		{"?", "é", true},
		{"h?llo", "héllo", true},
		{"h[é]llo", "héllo", true},
		{"*é*", "café au lait", true},
		{"??", "é", false},
	}
	for _, c := range cases {
		if got := globMatch(c.pattern, c.s); got != c.want {
			t.Errorf("globMatch(%q, %q) = %v, want %v", c.pattern, c.s, got, c.want)
		}
	}

	i := New()
	defer i.Close()
	if got := mustEval(t, i, "string match ? é"); got != "1" {
		t.Errorf("string match ? é: got %q", got)
	}
}
