package plume

import (
	"sort"
	"strconv"
	"strings"
)

func registerListCommands(i *Interp) {
	i.registerBuiltin("list", cmdListMake)
	i.registerBuiltin("llength", cmdLlength)
	i.registerBuiltin("lindex", cmdLindex)
	i.registerBuiltin("lrange", cmdLrange)
	i.registerBuiltin("lappend", cmdLappend)
	i.registerBuiltin("linsert", cmdLinsert)
	i.registerBuiltin("lreplace", cmdLreplace)
	i.registerBuiltin("lsort", cmdLsort)
	i.registerBuiltin("lsearch", cmdLsearch)
	i.registerBuiltin("lreverse", cmdLreverse)
	i.registerBuiltin("split", cmdSplit)
	i.registerBuiltin("join", cmdJoin)
	i.registerBuiltin("concat", cmdConcat)
}

// listArg re-tokenizes serialized list text with all substitutions
// disabled, failing with a script error on unbalanced groupings.
func (i *Interp) listArg(s string) ([]string, Status) {
	items, err := parseListText(s)
	if err != nil {
		return nil, i.errorf("%s", err)
	}
	return items, StatusOK
}

// parseListIndex resolves an index word against a list length: an integer,
// "end", or "end-N".
func parseListIndex(word string, length int) (int, bool) {
	if word == "end" {
		return length - 1, true
	}
	if rest, ok := strings.CutPrefix(word, "end-"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return 0, false
		}
		return length - 1 - n, true
	}
	n, err := strconv.Atoi(word)
	if err != nil {
		return 0, false
	}
	return n, true
}

func cmdListMake(i *Interp, argv []string, _ any) Status {
	i.setResult(joinList(argv[1:]))
	return StatusOK
}

func cmdLlength(i *Interp, argv []string, _ any) Status {
	if len(argv) != 2 {
		return i.arityErr(argv)
	}
	items, st := i.listArg(argv[1])
	if st != StatusOK {
		return st
	}
	i.setResult(strconv.Itoa(len(items)))
	return StatusOK
}

func cmdLindex(i *Interp, argv []string, _ any) Status {
	if len(argv) != 3 {
		return i.arityErr(argv)
	}
	items, st := i.listArg(argv[1])
	if st != StatusOK {
		return st
	}
	idx, ok := parseListIndex(argv[2], len(items))
	if !ok {
		return i.errorf("bad index %q: must be integer or end?-integer?", argv[2])
	}
	// An out-of-range index yields an empty result, not an error.
	if idx < 0 || idx >= len(items) {
		i.setResult("")
		return StatusOK
	}
	i.setResult(items[idx])
	return StatusOK
}

func cmdLrange(i *Interp, argv []string, _ any) Status {
	if len(argv) != 4 {
		return i.arityErr(argv)
	}
	items, st := i.listArg(argv[1])
	if st != StatusOK {
		return st
	}
	first, ok1 := parseListIndex(argv[2], len(items))
	last, ok2 := parseListIndex(argv[3], len(items))
	if !ok1 || !ok2 {
		return i.errorf("bad index: must be integer or end?-integer?")
	}
	if first < 0 {
		first = 0
	}
	if last >= len(items) {
		last = len(items) - 1
	}
	if first > last {
		i.setResult("")
		return StatusOK
	}
	i.setResult(joinList(items[first : last+1]))
	return StatusOK
}

func cmdLappend(i *Interp, argv []string, _ any) Status {
	if len(argv) < 2 {
		return i.arityErr(argv)
	}
	cur := ""
	if _, v, _, st := i.resolveVar(argv[1]); st != StatusOK {
		return st
	} else if v != nil {
		cur = v.val.get()
	}
	items, st := i.listArg(cur)
	if st != StatusOK {
		return st
	}
	items = append(items, argv[2:]...)
	out := joinList(items)
	if st := i.setVar(argv[1], out); st != StatusOK {
		return st
	}
	i.setResult(out)
	return StatusOK
}

func cmdLinsert(i *Interp, argv []string, _ any) Status {
	if len(argv) < 4 {
		return i.arityErr(argv)
	}
	items, st := i.listArg(argv[1])
	if st != StatusOK {
		return st
	}
	idx, ok := parseListIndex(argv[2], len(items))
	if !ok {
		return i.errorf("bad index %q: must be integer or end?-integer?", argv[2])
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(items) {
		idx = len(items)
	}
	out := make([]string, 0, len(items)+len(argv)-3)
	out = append(out, items[:idx]...)
	out = append(out, argv[3:]...)
	out = append(out, items[idx:]...)
	i.setResult(joinList(out))
	return StatusOK
}

func cmdLreplace(i *Interp, argv []string, _ any) Status {
	if len(argv) < 4 {
		return i.arityErr(argv)
	}
	items, st := i.listArg(argv[1])
	if st != StatusOK {
		return st
	}
	first, ok1 := parseListIndex(argv[2], len(items))
	last, ok2 := parseListIndex(argv[3], len(items))
	if !ok1 || !ok2 {
		return i.errorf("bad index: must be integer or end?-integer?")
	}
	if first < 0 {
		first = 0
	}
	if last >= len(items) {
		last = len(items) - 1
	}
	out := make([]string, 0, len(items))
	if first <= len(items) {
		out = append(out, items[:min(first, len(items))]...)
	}
	out = append(out, argv[4:]...)
	if last+1 >= 0 && last+1 <= len(items) {
		out = append(out, items[last+1:]...)
	} else if last < 0 {
		out = append(out, items[min(first, len(items)):]...)
	}
	i.setResult(joinList(out))
	return StatusOK
}

func cmdLsort(i *Interp, argv []string, _ any) Status {
	if len(argv) < 2 {
		return i.arityErr(argv)
	}
	numeric := false
	decreasing := false
	args := argv[1:]
	for len(args) > 1 {
		switch args[0] {
		case "-integer":
			numeric = true
		case "-decreasing":
			decreasing = true
		case "-increasing":
			decreasing = false
		default:
			return i.errorf("bad option %q: must be -integer, -increasing, or -decreasing", args[0])
		}
		args = args[1:]
	}
	items, st := i.listArg(args[0])
	if st != StatusOK {
		return st
	}
	sorted := make([]string, len(items))
	copy(sorted, items)
	var bad string
	sort.SliceStable(sorted, func(a, b int) bool {
		var less bool
		if numeric {
			na, errA := strconv.ParseInt(sorted[a], 10, 64)
			nb, errB := strconv.ParseInt(sorted[b], 10, 64)
			if errA != nil && bad == "" {
				bad = sorted[a]
			}
			if errB != nil && bad == "" {
				bad = sorted[b]
			}
			less = na < nb
		} else {
			less = sorted[a] < sorted[b]
		}
		if decreasing {
			return !less
		}
		return less
	})
	if bad != "" {
		return i.errorf("expected integer but got %q", bad)
	}
	i.setResult(joinList(sorted))
	return StatusOK
}

// cmdLsearch returns the index of the first element matching the glob
// pattern, or -1.
func cmdLsearch(i *Interp, argv []string, _ any) Status {
	if len(argv) != 3 {
		return i.arityErr(argv)
	}
	items, st := i.listArg(argv[1])
	if st != StatusOK {
		return st
	}
	for idx, item := range items {
		if i.match(argv[2], item) {
			i.setResult(strconv.Itoa(idx))
			return StatusOK
		}
	}
	i.setResult("-1")
	return StatusOK
}

func cmdLreverse(i *Interp, argv []string, _ any) Status {
	if len(argv) != 2 {
		return i.arityErr(argv)
	}
	items, st := i.listArg(argv[1])
	if st != StatusOK {
		return st
	}
	for a, b := 0, len(items)-1; a < b; a, b = a+1, b-1 {
		items[a], items[b] = items[b], items[a]
	}
	i.setResult(joinList(items))
	return StatusOK
}

// cmdSplit splits a string on any of the delimiter characters (default
// whitespace). An empty delimiter set splits into individual characters.
func cmdSplit(i *Interp, argv []string, _ any) Status {
	if len(argv) != 2 && len(argv) != 3 {
		return i.arityErr(argv)
	}
	chars := " \t\n\r"
	if len(argv) == 3 {
		chars = argv[2]
	}
	var parts []string
	if chars == "" {
		for _, r := range argv[1] {
			parts = append(parts, string(r))
		}
	} else {
		// adjacent delimiters keep their empty elements
		parts = splitKeepEmpty(argv[1], chars)
	}
	i.setResult(joinList(parts))
	return StatusOK
}

func splitKeepEmpty(s, chars string) []string {
	var parts []string
	start := 0
	for idx, r := range s {
		if strings.ContainsRune(chars, r) {
			parts = append(parts, s[start:idx])
			start = idx + len(string(r))
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func cmdJoin(i *Interp, argv []string, _ any) Status {
	if len(argv) != 2 && len(argv) != 3 {
		return i.arityErr(argv)
	}
	sep := " "
	if len(argv) == 3 {
		sep = argv[2]
	}
	items, st := i.listArg(argv[1])
	if st != StatusOK {
		return st
	}
	i.setResult(strings.Join(items, sep))
	return StatusOK
}

func cmdConcat(i *Interp, argv []string, _ any) Status {
	parts := make([]string, 0, len(argv)-1)
	for _, arg := range argv[1:] {
		trimmed := strings.TrimSpace(arg)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	i.setResult(strings.Join(parts, " "))
	return StatusOK
}
