package plume

import (
	"fmt"
	"strconv"
	"strings"
)

// Value represents a script value with type-safe accessors. Every value is
// a string first; the accessors parse on demand.
type Value interface {
	// String returns the string representation of the value.
	String() string

	// Int returns the integer representation of the value.
	// Returns an error if the value cannot be converted to an integer.
	Int() (int64, error)

	// Float returns the floating-point representation of the value.
	// Returns an error if the value cannot be converted to a float.
	Float() (float64, error)

	// Bool returns the boolean representation of the value.
	// Truthy: "1", "true", "yes", "on"; falsy: "0", "false", "no", "off"
	// (case variants included); any nonzero integer is also true.
	Bool() (bool, error)

	// List returns the list representation of the value.
	// Returns an error if the value cannot be parsed as a list.
	List() ([]Value, error)

	// IsNil returns true if this is an empty value.
	IsNil() bool
}

// stringValue is the Value implementation: just a string.
type stringValue string

func (v stringValue) String() string {
	return string(v)
}

func (v stringValue) Int() (int64, error) {
	n, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected integer but got %q", string(v))
	}
	return n, nil
}

func (v stringValue) Float() (float64, error) {
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return 0, fmt.Errorf("expected floating-point number but got %q", string(v))
	}
	return f, nil
}

func (v stringValue) Bool() (bool, error) {
	switch string(v) {
	case "1", "true", "True", "TRUE", "yes", "Yes", "YES", "on", "On", "ON":
		return true, nil
	case "0", "false", "False", "FALSE", "no", "No", "NO", "off", "Off", "OFF":
		return false, nil
	}
	if n, err := strconv.ParseInt(string(v), 10, 64); err == nil {
		return n != 0, nil
	}
	return false, fmt.Errorf("expected boolean but got %q", string(v))
}

func (v stringValue) List() ([]Value, error) {
	items, err := parseListText(string(v))
	if err != nil {
		return nil, err
	}
	result := make([]Value, len(items))
	for i, item := range items {
		result[i] = stringValue(item)
	}
	return result, nil
}

func (v stringValue) IsNil() bool {
	return string(v) == ""
}

// parseListText splits serialized list text into its elements by
// re-tokenizing it with all substitutions disabled. Braced and quoted
// elements come back verbatim; nothing else is interpreted.
func parseListText(s string) ([]string, error) {
	p := newParser(s, substNone)
	var items []string
	prev := tokEOL
	for {
		if err := p.next(); err != nil {
			if pe, ok := err.(*parseError); ok {
				return nil, fmt.Errorf("unmatched grouping in list: %s", pe.msg)
			}
			return nil, err
		}
		if p.typ == tokEOF {
			return items, nil
		}
		if p.typ == tokSep || p.typ == tokEOL {
			prev = p.typ
			continue
		}
		word := p.token()
		if p.typ == tokEsc {
			// Backslash-escaped elements decode here; braced ones stay verbatim.
			word = unescape(word)
		}
		if prev == tokSep || prev == tokEOL {
			items = append(items, word)
		} else {
			items[len(items)-1] += word
		}
		prev = p.typ
	}
}

// formatListElement escapes a single element just enough to keep list
// boundaries unambiguous: a bare word needs nothing, one containing
// structural characters or whitespace gets braced, and an element braces
// cannot protect falls back to backslash escaping.
func formatListElement(s string) string {
	if s == "" {
		return "{}"
	}
	if !strings.ContainsAny(s, " \t\n\r;{}\"\\$[]") {
		return s
	}
	if bracesBalanced(s) && !strings.HasSuffix(s, "\\") {
		return "{" + s + "}"
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ', '\t', '\n', '\r', ';', '{', '}', '"', '\\', '$', '[', ']':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func bracesBalanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// joinList serializes elements back into list text. Round-trip invariant:
// parsing the result yields an element-for-element equal list.
func joinList(items []string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = formatListElement(item)
	}
	return strings.Join(parts, " ")
}
