package plume

import (
	"strings"
	"testing"
)

func TestStringBasics(t *testing.T) {
	i := New()
	defer i.Close()

	cases := []struct{ script, want string }{
		{"string length hello", "5"},
		{"string length {}", "0"},
		{"string index hello 1", "e"},
		{"string index hello end", "o"},
		{"string index hello 99", ""},
		{"string range hello 1 3", "ell"},
		{"string range hello 0 end", "hello"},
		{"string tolower HeLLo", "hello"},
		{"string toupper HeLLo", "HELLO"},
		{"string repeat ab 3", "ababab"},
		{"string repeat ab 0", ""},
		{"string reverse abc", "cba"},
		{"string first ll hello", "2"},
		{"string last l hello", "3"},
		{"string first zz hello", "-1"},
		{"string compare abc abd", "-1"},
		{"string compare abc abc", "0"},
		{"string equal abc abc", "1"},
		{"string equal abc abd", "0"},
	}
	for _, c := range cases {
		if got := mustEval(t, i, c.script); got != c.want {
			t.Errorf("%q: got %q, want %q", c.script, got, c.want)
		}
	}
}

func TestStringIndexIsRuneBased(t *testing.T) {
	i := New()
	defer i.Close()

	if got := mustEval(t, i, "string length héllo"); got != "5" {
		t.Errorf("length: got %q", got)
	}
	if got := mustEval(t, i, "string index héllo 1"); got != "é" {
		t.Errorf("index: got %q", got)
	}
	if got := mustEval(t, i, "string reverse héllo"); got != "olléh" {
		t.Errorf("reverse: got %q", got)
	}
}

func TestStringTrim(t *testing.T) {
	i := New()
	defer i.Close()

	if got := mustEval(t, i, `string trim "  spaced  "`); got != "spaced" {
		t.Errorf("trim: got %q", got)
	}
	if got := mustEval(t, i, `string trimleft "  spaced  "`); got != "spaced  " {
		t.Errorf("trimleft: got %q", got)
	}
	if got := mustEval(t, i, `string trimright "  spaced  "`); got != "  spaced" {
		t.Errorf("trimright: got %q", got)
	}
	if got := mustEval(t, i, "string trim xxaxx x"); got != "a" {
		t.Errorf("custom cutset: got %q", got)
	}
	// idempotence
	if got := mustEval(t, i, `string trim [string trim "  a  "]`); got != "a" {
		t.Errorf("double trim: got %q", got)
	}
}

func TestStringMatch(t *testing.T) {
	i := New()
	defer i.Close()

	if got := mustEval(t, i, "string match *.go main.go"); got != "1" {
		t.Errorf("got %q", got)
	}
	if got := mustEval(t, i, "string match *.go main.rs"); got != "0" {
		t.Errorf("got %q", got)
	}
	if got := mustEval(t, i, `string match {[a-c]?} bz`); got != "1" {
		t.Errorf("got %q", got)
	}
}

func TestStringBadSubcommand(t *testing.T) {
	i := New()
	defer i.Close()

	msg := evalErr(t, i, "string frobnicate x")
	if !strings.Contains(msg, "bad option") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestAppendCommand(t *testing.T) {
	i := New()
	defer i.Close()

	if got := mustEval(t, i, "append fresh a b c"); got != "abc" {
		t.Errorf("append to missing variable: got %q", got)
	}
	if got := mustEval(t, i, "append fresh !; set fresh"); got != "abc!" {
		t.Errorf("got %q", got)
	}
}

func TestFormatCommand(t *testing.T) {
	i := New()
	defer i.Close()

	cases := []struct{ script, want string }{
		{"format %d 42", "42"},
		{"format %05d 42", "00042"},
		{"format %x 255", "ff"},
		{"format %o 8", "10"},
		{"format %.2f 3.14159", "3.14"},
		{"format %s-%s a b", "a-b"},
		{"format %c 65", "A"},
		{"format %% ", "%"},
		{"format %i 7", "7"},
	}
	for _, c := range cases {
		if got := mustEval(t, i, c.script); got != c.want {
			t.Errorf("%q: got %q, want %q", c.script, got, c.want)
		}
	}
}

func TestFormatErrors(t *testing.T) {
	i := New()
	defer i.Close()

	msg := evalErr(t, i, "format %d notanumber")
	if !strings.Contains(msg, "expected integer") {
		t.Errorf("unexpected message: %q", msg)
	}
	msg = evalErr(t, i, "format %d%d 1")
	if !strings.Contains(msg, "not enough arguments") {
		t.Errorf("unexpected message: %q", msg)
	}
}
