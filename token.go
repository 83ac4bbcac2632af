package plume

import "strings"

// tokenType classifies a lexical unit produced by the tokenizer.
type tokenType int

const (
	tokEsc tokenType = iota // word subject to escape processing
	tokStr                  // verbatim word (brace grouping, lone '$')
	tokCmd                  // bracketed command substitution
	tokVar                  // variable reference
	tokSep                  // run of whitespace between words
	tokEOL                  // statement terminator
	tokEOF
)

// substFlags select the restricted substitution modes of the tokenizer and
// evaluator. The zero value enables everything.
type substFlags uint

const (
	substNoVariables substFlags = 1 << iota
	substNoCommands
	substNoEscapes

	// substNoEval strips statement structure: ';' and '#' become ordinary
	// characters. Used when re-tokenizing list text.
	substNoEval
)

const (
	substAll  substFlags = 0
	substNone            = substNoVariables | substNoCommands | substNoEscapes | substNoEval
)

// parseError reports a malformed or unterminated grouping. incomplete marks
// errors caused by the input ending inside an open grouping, which a REPL
// treats as "keep reading" rather than failure.
type parseError struct {
	msg        string
	line       int
	incomplete bool
}

func (e *parseError) Error() string { return e.msg }

// parser is the tokenizer cursor. Tokens are spans into the source text; no
// copy occurs until the evaluator materializes a token into an argument.
type parser struct {
	text        string
	pos         int
	start, stop int // current token span, stop exclusive
	typ         tokenType
	insideQuote bool
	flags       substFlags
}

func newParser(text string, flags substFlags) *parser {
	// Starting in the EOL state makes a leading '#' a comment.
	return &parser{text: text, typ: tokEOL, flags: flags}
}

// token returns the current token's text.
func (p *parser) token() string {
	return p.text[p.start:p.stop]
}

// line returns the 1-based source line of the given offset.
func (p *parser) line(pos int) int {
	if pos > len(p.text) {
		pos = len(p.text)
	}
	return 1 + strings.Count(p.text[:pos], "\n")
}

func (p *parser) errorAt(msg string, pos int, incomplete bool) *parseError {
	return &parseError{msg: msg, line: p.line(pos), incomplete: incomplete}
}

// next advances to the next token. After the final word it produces one
// tokEOL and then tokEOF.
func (p *parser) next() error {
	for {
		if p.pos >= len(p.text) {
			if p.typ != tokEOL && p.typ != tokEOF {
				p.typ = tokEOL
			} else {
				p.typ = tokEOF
			}
			p.start, p.stop = p.pos, p.pos
			return nil
		}
		c := p.text[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			if p.insideQuote {
				return p.parseWord()
			}
			return p.parseSeparator()
		case c == '\n' || (c == ';' && p.flags&substNoEval == 0):
			if p.insideQuote {
				return p.parseWord()
			}
			return p.parseEOL()
		case c == '[' && p.flags&substNoCommands == 0:
			return p.parseCommand()
		case c == '$' && p.flags&substNoVariables == 0:
			return p.parseVariable()
		case c == '#' && p.typ == tokEOL && p.flags&substNoEval == 0:
			p.skipComment()
			continue
		default:
			return p.parseWord()
		}
	}
}

func (p *parser) parseSeparator() error {
	p.start = p.pos
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		if c != ' ' && c != '\t' && c != '\r' {
			break
		}
		p.pos++
	}
	p.stop = p.pos
	p.typ = tokSep
	return nil
}

func (p *parser) parseEOL() error {
	p.start = p.pos
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			p.pos++
			continue
		}
		if c == ';' && p.flags&substNoEval == 0 {
			p.pos++
			continue
		}
		break
	}
	p.stop = p.pos
	p.typ = tokEOL
	return nil
}

func (p *parser) parseWord() error {
	// Brace and quote grouping only open at the start of a word.
	if newWord := p.typ == tokSep || p.typ == tokEOL || p.typ == tokStr; newWord {
		switch p.text[p.pos] {
		case '{':
			return p.parseBrace()
		case '"':
			p.insideQuote = true
			p.pos++
		}
	}
	p.start = p.pos
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case '\\':
			// A backslash neutralizes the next character for boundary purposes.
			if p.pos+1 < len(p.text) {
				p.pos++
			}
		case '$':
			if p.flags&substNoVariables == 0 {
				p.stop = p.pos
				p.typ = tokEsc
				return nil
			}
		case '[':
			if p.flags&substNoCommands == 0 {
				p.stop = p.pos
				p.typ = tokEsc
				return nil
			}
		case ' ', '\t', '\r', '\n':
			if !p.insideQuote {
				p.stop = p.pos
				p.typ = tokEsc
				return nil
			}
		case ';':
			if !p.insideQuote && p.flags&substNoEval == 0 {
				p.stop = p.pos
				p.typ = tokEsc
				return nil
			}
		case '"':
			if p.insideQuote {
				p.stop = p.pos
				p.typ = tokEsc
				p.insideQuote = false
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	if p.insideQuote {
		return p.errorAt(`missing "`, p.pos, true)
	}
	p.stop = p.pos
	p.typ = tokEsc
	return nil
}

// parseBrace scans literal grouping: content up to the matching close brace
// is returned verbatim, with nested braces depth-counted and backslash
// escapes neutral.
func (p *parser) parseBrace() error {
	depth := 1
	open := p.pos
	p.pos++
	p.start = p.pos
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case '\\':
			if p.pos+1 < len(p.text) {
				p.pos++
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.stop = p.pos
				p.typ = tokStr
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	return p.errorAt("missing close-brace", open, true)
}

// parseCommand scans bracketed command substitution with independent bracket
// and brace depth counters. The grouping must close before end of input.
func (p *parser) parseCommand() error {
	level, braceLevel := 1, 0
	open := p.pos
	p.pos++
	p.start = p.pos
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case '\\':
			if p.pos+1 < len(p.text) {
				p.pos++
			}
		case '[':
			level++
		case ']':
			level--
			if level == 0 {
				p.stop = p.pos
				p.typ = tokCmd
				p.pos++
				return nil
			}
		case '{':
			braceLevel++
		case '}':
			if braceLevel > 0 {
				braceLevel--
			}
		}
		p.pos++
	}
	return p.errorAt("missing close-bracket", open, true)
}

// parseVariable scans $name or ${name}. Names are restricted to
// alphanumerics and underscore; a lone '$' is an ordinary string character.
func (p *parser) parseVariable() error {
	dollar := p.pos
	p.pos++
	if p.pos < len(p.text) && p.text[p.pos] == '{' {
		p.pos++
		p.start = p.pos
		for p.pos < len(p.text) && p.text[p.pos] != '}' {
			p.pos++
		}
		if p.pos >= len(p.text) {
			return p.errorAt("missing close-brace for variable name", dollar, true)
		}
		p.stop = p.pos
		p.typ = tokVar
		p.pos++
		return nil
	}
	p.start = p.pos
	for p.pos < len(p.text) && isVarNameChar(p.text[p.pos]) {
		p.pos++
	}
	if p.pos == p.start {
		p.start = dollar
		p.stop = p.pos
		p.typ = tokStr
		return nil
	}
	p.stop = p.pos
	p.typ = tokVar
	return nil
}

func (p *parser) skipComment() {
	for p.pos < len(p.text) && p.text[p.pos] != '\n' {
		p.pos++
	}
}

func isVarNameChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// unescape decodes backslash escape sequences in a word token. Recognized
// escapes are \n \t \r \\ \" \[ \] \{ \} \a \b \e \f \v and \xHH; a
// backslash followed by anything else passes the character through
// unchanged.
func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'e':
			b.WriteByte(0x1b)
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case 'x':
			if i+2 < len(s) {
				hi, okHi := hexDigit(s[i+1])
				lo, okLo := hexDigit(s[i+2])
				if okHi && okLo {
					b.WriteByte(hi<<4 | lo)
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		default:
			// Covers \\ \" \[ \] \{ \} and pass-through of unknown escapes.
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
