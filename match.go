package plume

// globMatch is the default pattern matcher behind [Interp.MatchFunc]. It
// supports '*' (any run), '?' (any single character), '[set]' with ranges
// and a leading '^' for negation, and backslash escapes. Matching is
// rune-based, like the index arguments of the string ensemble.
func globMatch(pattern, s string) bool {
	p := []rune(pattern)
	r := []rune(s)
	pi, si := 0, 0
	starP, starS := -1, 0
	for si < len(r) {
		if pi < len(p) {
			switch c := p[pi]; c {
			case '*':
				starP, starS = pi, si
				pi++
				continue
			case '?':
				pi++
				si++
				continue
			case '[':
				if ok, next := matchSet(p, pi, r[si]); ok {
					pi = next
					si++
					continue
				}
			case '\\':
				if pi+1 < len(p) && p[pi+1] == r[si] {
					pi += 2
					si++
					continue
				}
			default:
				if c == r[si] {
					pi++
					si++
					continue
				}
			}
		}
		if starP >= 0 {
			starS++
			pi, si = starP+1, starS
			continue
		}
		return false
	}
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}

// matchSet matches one rune against a [set] starting at pattern[open] and
// returns the index just past the closing bracket.
func matchSet(pattern []rune, open int, c rune) (bool, int) {
	i := open + 1
	negate := false
	if i < len(pattern) && pattern[i] == '^' {
		negate = true
		i++
	}
	matched := false
	first := true
	for i < len(pattern) && (first || pattern[i] != ']') {
		first = false
		lo := pattern[i]
		hi := lo
		if i+2 < len(pattern) && pattern[i+1] == '-' && pattern[i+2] != ']' {
			hi = pattern[i+2]
			i += 2
		}
		if lo <= c && c <= hi {
			matched = true
		}
		i++
	}
	if i >= len(pattern) {
		return false, open // unterminated set never matches
	}
	return matched != negate, i + 1
}
