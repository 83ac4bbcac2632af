package plume

import (
	"fmt"
	"strconv"
	"strings"
)

// number is an expression operand. Arithmetic stays in int64 until a
// floating-point operand appears, then promotes to float64.
type number struct {
	i     int64
	f     float64
	isInt bool
}

func intNum(v int64) number     { return number{i: v, isInt: true} }
func floatNum(v float64) number { return number{f: v} }

func (n number) float() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

func (n number) truthy() bool {
	if n.isInt {
		return n.i != 0
	}
	return n.f != 0
}

func (n number) text() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

func boolNum(b bool) number {
	if b {
		return intNum(1)
	}
	return intNum(0)
}

// parseNumber converts a word to a number, accepting decimal and 0x hex
// integers and standard floating-point syntax. The whole word must be
// numeric: a trailing non-numeric suffix fails.
func parseNumber(s string) (number, bool) {
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return intNum(v), true
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return floatNum(v), true
	}
	return number{}, false
}

// evalExpr substitutes the expression text and evaluates it as an infix
// expression: integer/double arithmetic, comparisons, ! && || and
// parentheses. Returns the result formatted as text.
func (i *Interp) evalExpr(text string) (string, Status) {
	substituted, st := i.substOnly(text, substAll)
	if st != StatusOK {
		return "", st
	}
	e := &exprScanner{src: substituted}
	n, err := e.parseOr()
	if err != nil {
		return "", i.errorf("%s", err)
	}
	e.skipSpace()
	if e.pos < len(e.src) {
		return "", i.errorf("invalid expression %q: trailing %q", substituted, e.src[e.pos:])
	}
	return n.text(), StatusOK
}

// evalCond evaluates a loop or if condition: the expression's truth value.
func (i *Interp) evalCond(text string) (bool, Status) {
	res, st := i.evalExpr(text)
	if st != StatusOK {
		return false, st
	}
	n, ok := parseNumber(res)
	if !ok {
		return false, i.errorf("expected boolean expression but got %q", res)
	}
	return n.truthy(), StatusOK
}

// exprScanner is a precedence-climbing parser over substituted expression
// text. Precedence, loosest first: || && (== !=) (< > <= >=) (+ -) (* / %)
// unary(! - +).
type exprScanner struct {
	src string
	pos int
}

func (e *exprScanner) skipSpace() {
	for e.pos < len(e.src) {
		switch e.src[e.pos] {
		case ' ', '\t', '\n', '\r':
			e.pos++
		default:
			return
		}
	}
}

// accept consumes op if it is next, longest operators first by caller order.
func (e *exprScanner) accept(op string) bool {
	e.skipSpace()
	if strings.HasPrefix(e.src[e.pos:], op) {
		// Don't split "<=" into "<" or "==" into "=".
		if (op == "<" || op == ">") && e.pos+1 < len(e.src) && e.src[e.pos+1] == '=' {
			return false
		}
		if op == "!" && e.pos+1 < len(e.src) && e.src[e.pos+1] == '=' {
			return false
		}
		e.pos += len(op)
		return true
	}
	return false
}

func (e *exprScanner) parseOr() (number, error) {
	left, err := e.parseAnd()
	if err != nil {
		return number{}, err
	}
	for e.accept("||") {
		right, err := e.parseAnd()
		if err != nil {
			return number{}, err
		}
		left = boolNum(left.truthy() || right.truthy())
	}
	return left, nil
}

func (e *exprScanner) parseAnd() (number, error) {
	left, err := e.parseEquality()
	if err != nil {
		return number{}, err
	}
	for e.accept("&&") {
		right, err := e.parseEquality()
		if err != nil {
			return number{}, err
		}
		left = boolNum(left.truthy() && right.truthy())
	}
	return left, nil
}

func (e *exprScanner) parseEquality() (number, error) {
	left, err := e.parseRelational()
	if err != nil {
		return number{}, err
	}
	for {
		switch {
		case e.accept("=="):
			right, err := e.parseRelational()
			if err != nil {
				return number{}, err
			}
			left = compareNum(left, right, func(c int) bool { return c == 0 })
		case e.accept("!="):
			right, err := e.parseRelational()
			if err != nil {
				return number{}, err
			}
			left = compareNum(left, right, func(c int) bool { return c != 0 })
		default:
			return left, nil
		}
	}
}

func (e *exprScanner) parseRelational() (number, error) {
	left, err := e.parseAdditive()
	if err != nil {
		return number{}, err
	}
	for {
		switch {
		case e.accept("<="):
			right, err := e.parseAdditive()
			if err != nil {
				return number{}, err
			}
			left = compareNum(left, right, func(c int) bool { return c <= 0 })
		case e.accept(">="):
			right, err := e.parseAdditive()
			if err != nil {
				return number{}, err
			}
			left = compareNum(left, right, func(c int) bool { return c >= 0 })
		case e.accept("<"):
			right, err := e.parseAdditive()
			if err != nil {
				return number{}, err
			}
			left = compareNum(left, right, func(c int) bool { return c < 0 })
		case e.accept(">"):
			right, err := e.parseAdditive()
			if err != nil {
				return number{}, err
			}
			left = compareNum(left, right, func(c int) bool { return c > 0 })
		default:
			return left, nil
		}
	}
}

func (e *exprScanner) parseAdditive() (number, error) {
	left, err := e.parseMultiplicative()
	if err != nil {
		return number{}, err
	}
	for {
		switch {
		case e.accept("+"):
			right, err := e.parseMultiplicative()
			if err != nil {
				return number{}, err
			}
			left = addNum(left, right)
		case e.accept("-"):
			right, err := e.parseMultiplicative()
			if err != nil {
				return number{}, err
			}
			left = subNum(left, right)
		default:
			return left, nil
		}
	}
}

func (e *exprScanner) parseMultiplicative() (number, error) {
	left, err := e.parseUnary()
	if err != nil {
		return number{}, err
	}
	for {
		switch {
		case e.accept("*"):
			right, err := e.parseUnary()
			if err != nil {
				return number{}, err
			}
			left = mulNum(left, right)
		case e.accept("/"):
			right, err := e.parseUnary()
			if err != nil {
				return number{}, err
			}
			left, err = divNum(left, right)
			if err != nil {
				return number{}, err
			}
		case e.accept("%"):
			right, err := e.parseUnary()
			if err != nil {
				return number{}, err
			}
			left, err = modNum(left, right)
			if err != nil {
				return number{}, err
			}
		default:
			return left, nil
		}
	}
}

func (e *exprScanner) parseUnary() (number, error) {
	switch {
	case e.accept("!"):
		n, err := e.parseUnary()
		if err != nil {
			return number{}, err
		}
		return boolNum(!n.truthy()), nil
	case e.accept("-"):
		n, err := e.parseUnary()
		if err != nil {
			return number{}, err
		}
		if n.isInt {
			return intNum(-n.i), nil
		}
		return floatNum(-n.f), nil
	case e.accept("+"):
		return e.parseUnary()
	}
	return e.parsePrimary()
}

func (e *exprScanner) parsePrimary() (number, error) {
	e.skipSpace()
	if e.pos >= len(e.src) {
		return number{}, fmt.Errorf("unexpected end of expression")
	}
	if e.src[e.pos] == '(' {
		e.pos++
		n, err := e.parseOr()
		if err != nil {
			return number{}, err
		}
		e.skipSpace()
		if e.pos >= len(e.src) || e.src[e.pos] != ')' {
			return number{}, fmt.Errorf("missing close parenthesis in expression")
		}
		e.pos++
		return n, nil
	}
	start := e.pos
	for e.pos < len(e.src) && isNumberChar(e.src[e.pos], e.pos > start && hasExponentAt(e.src, start, e.pos)) {
		e.pos++
	}
	if e.pos == start {
		return number{}, fmt.Errorf("invalid character %q in expression", string(e.src[e.pos]))
	}
	word := e.src[start:e.pos]
	n, ok := parseNumber(word)
	if !ok {
		return number{}, fmt.Errorf("expected number but got %q", word)
	}
	return n, nil
}

// isNumberChar accepts the characters a numeric literal may contain:
// digits, '.', hex digits and the 0x prefix, and a sign directly after an
// exponent marker.
func isNumberChar(c byte, afterExponent bool) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == 'x' || c == 'X':
		return true
	case (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F'):
		return true
	case c == '+' || c == '-':
		return afterExponent
	}
	return false
}

// hasExponentAt reports whether src[pos-1] is a decimal exponent marker, so
// a following sign belongs to the literal.
func hasExponentAt(src string, start, pos int) bool {
	if pos == 0 {
		return false
	}
	c := src[pos-1]
	if c != 'e' && c != 'E' {
		return false
	}
	// 0x1E is a hex digit, not an exponent.
	return !strings.HasPrefix(src[start:], "0x") && !strings.HasPrefix(src[start:], "0X")
}

func addNum(a, b number) number {
	if a.isInt && b.isInt {
		return intNum(a.i + b.i)
	}
	return floatNum(a.float() + b.float())
}

func subNum(a, b number) number {
	if a.isInt && b.isInt {
		return intNum(a.i - b.i)
	}
	return floatNum(a.float() - b.float())
}

func mulNum(a, b number) number {
	if a.isInt && b.isInt {
		return intNum(a.i * b.i)
	}
	return floatNum(a.float() * b.float())
}

func divNum(a, b number) (number, error) {
	if a.isInt && b.isInt {
		if b.i == 0 {
			return number{}, fmt.Errorf("divide by zero")
		}
		return intNum(a.i / b.i), nil
	}
	if b.float() == 0 {
		return number{}, fmt.Errorf("divide by zero")
	}
	return floatNum(a.float() / b.float()), nil
}

func modNum(a, b number) (number, error) {
	if !a.isInt || !b.isInt {
		return number{}, fmt.Errorf("can't use floating-point value as operand of %%")
	}
	if b.i == 0 {
		return number{}, fmt.Errorf("divide by zero")
	}
	return intNum(a.i % b.i), nil
}

// compareNum compares two numbers and maps the three-way result through ok.
func compareNum(a, b number, ok func(int) bool) number {
	var c int
	if a.isInt && b.isInt {
		switch {
		case a.i < b.i:
			c = -1
		case a.i > b.i:
			c = 1
		}
	} else {
		switch {
		case a.float() < b.float():
			c = -1
		case a.float() > b.float():
			c = 1
		}
	}
	return boolNum(ok(c))
}
