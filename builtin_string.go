package plume

import (
	"fmt"
	"strconv"
	"strings"
)

func registerStringCommands(i *Interp) {
	i.registerBuiltin("string", cmdString)
	i.registerBuiltin("append", cmdAppend)
	i.registerBuiltin("format", cmdFormat)
}

// cmdString is the string ensemble. Index arguments are rune positions, not
// byte offsets.
func cmdString(i *Interp, argv []string, _ any) Status {
	if len(argv) < 3 {
		return i.arityErr(argv)
	}
	sub := argv[1]
	s := argv[2]
	switch sub {
	case "length":
		if len(argv) != 3 {
			return i.arityErr(argv)
		}
		i.setResult(strconv.Itoa(len([]rune(s))))
	case "index":
		if len(argv) != 4 {
			return i.arityErr(argv)
		}
		runes := []rune(s)
		idx, ok := parseListIndex(argv[3], len(runes))
		if !ok {
			return i.errorf("bad index %q: must be integer or end?-integer?", argv[3])
		}
		if idx < 0 || idx >= len(runes) {
			i.setResult("")
		} else {
			i.setResult(string(runes[idx]))
		}
	case "range":
		if len(argv) != 5 {
			return i.arityErr(argv)
		}
		runes := []rune(s)
		first, ok1 := parseListIndex(argv[3], len(runes))
		last, ok2 := parseListIndex(argv[4], len(runes))
		if !ok1 || !ok2 {
			return i.errorf("bad index: must be integer or end?-integer?")
		}
		if first < 0 {
			first = 0
		}
		if last >= len(runes) {
			last = len(runes) - 1
		}
		if first > last {
			i.setResult("")
		} else {
			i.setResult(string(runes[first : last+1]))
		}
	case "tolower":
		if len(argv) != 3 {
			return i.arityErr(argv)
		}
		i.setResult(strings.ToLower(s))
	case "toupper":
		if len(argv) != 3 {
			return i.arityErr(argv)
		}
		i.setResult(strings.ToUpper(s))
	case "trim", "trimleft", "trimright":
		if len(argv) != 3 && len(argv) != 4 {
			return i.arityErr(argv)
		}
		cutset := " \t\n\r"
		if len(argv) == 4 {
			cutset = argv[3]
		}
		switch sub {
		case "trim":
			i.setResult(strings.Trim(s, cutset))
		case "trimleft":
			i.setResult(strings.TrimLeft(s, cutset))
		case "trimright":
			i.setResult(strings.TrimRight(s, cutset))
		}
	case "repeat":
		if len(argv) != 4 {
			return i.arityErr(argv)
		}
		n, err := strconv.Atoi(argv[3])
		if err != nil {
			return i.errorf("expected integer but got %q", argv[3])
		}
		if n < 0 {
			n = 0
		}
		i.setResult(strings.Repeat(s, n))
	case "reverse":
		if len(argv) != 3 {
			return i.arityErr(argv)
		}
		runes := []rune(s)
		for a, b := 0, len(runes)-1; a < b; a, b = a+1, b-1 {
			runes[a], runes[b] = runes[b], runes[a]
		}
		i.setResult(string(runes))
	case "first":
		if len(argv) != 4 {
			return i.arityErr(argv)
		}
		i.setResult(strconv.Itoa(runeIndex(s, argv[3], false)))
	case "last":
		if len(argv) != 4 {
			return i.arityErr(argv)
		}
		i.setResult(strconv.Itoa(runeIndex(s, argv[3], true)))
	case "compare":
		if len(argv) != 4 {
			return i.arityErr(argv)
		}
		i.setResult(strconv.Itoa(strings.Compare(s, argv[3])))
	case "equal":
		if len(argv) != 4 {
			return i.arityErr(argv)
		}
		if s == argv[3] {
			i.setResult("1")
		} else {
			i.setResult("0")
		}
	case "match":
		if len(argv) != 4 {
			return i.arityErr(argv)
		}
		if i.match(s, argv[3]) {
			i.setResult("1")
		} else {
			i.setResult("0")
		}
	default:
		return i.errorf("bad option %q: must be length, index, range, tolower, toupper, trim, trimleft, trimright, repeat, reverse, first, last, compare, equal, or match", sub)
	}
	return StatusOK
}

// runeIndex locates needle in haystack and converts the byte offset to a
// rune position; -1 when absent.
func runeIndex(needle, haystack string, last bool) int {
	var off int
	if last {
		off = strings.LastIndex(haystack, needle)
	} else {
		off = strings.Index(haystack, needle)
	}
	if off < 0 {
		return -1
	}
	return len([]rune(haystack[:off]))
}

func cmdAppend(i *Interp, argv []string, _ any) Status {
	if len(argv) < 2 {
		return i.arityErr(argv)
	}
	cur := ""
	if _, v, _, st := i.resolveVar(argv[1]); st != StatusOK {
		return st
	} else if v != nil {
		cur = v.val.get()
	}
	var b strings.Builder
	b.WriteString(cur)
	for _, arg := range argv[2:] {
		b.WriteString(arg)
	}
	out := b.String()
	if st := i.setVar(argv[1], out); st != StatusOK {
		return st
	}
	i.setResult(out)
	return StatusOK
}

// cmdFormat is a printf-style formatter. Each verb's argument is converted
// to the Go type the verb expects before handing off to fmt.
func cmdFormat(i *Interp, argv []string, _ any) Status {
	if len(argv) < 2 {
		return i.arityErr(argv)
	}
	spec := argv[1]
	args := argv[2:]
	conv := make([]any, 0, len(args))
	argIdx := 0
	for pos := 0; pos < len(spec); pos++ {
		if spec[pos] != '%' {
			continue
		}
		pos++
		// skip flags, width, precision
		for pos < len(spec) && strings.ContainsRune("-+ #0123456789.", rune(spec[pos])) {
			pos++
		}
		if pos >= len(spec) {
			return i.errorf("format string ended in middle of field specifier")
		}
		verb := spec[pos]
		if verb == '%' {
			continue
		}
		if argIdx >= len(args) {
			return i.errorf("not enough arguments for all format specifiers")
		}
		arg := args[argIdx]
		argIdx++
		switch verb {
		case 'd', 'i', 'x', 'X', 'o', 'c':
			n, err := strconv.ParseInt(arg, 0, 64)
			if err != nil {
				return i.errorf("expected integer but got %q", arg)
			}
			if verb == 'c' {
				conv = append(conv, rune(n))
			} else {
				conv = append(conv, n)
			}
		case 'f', 'g', 'e', 'E', 'G':
			f, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return i.errorf("expected floating-point number but got %q", arg)
			}
			conv = append(conv, f)
		case 's', 'q':
			conv = append(conv, arg)
		default:
			return i.errorf("bad field specifier %q", string(verb))
		}
	}
	// %i is not a Go verb; rewrite it to %d now that conversion is done.
	goSpec := strings.ReplaceAll(spec, "%i", "%d")
	i.setResult(fmt.Sprintf(goSpec, conv...))
	return StatusOK
}
