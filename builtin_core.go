package plume

import (
	"strconv"
	"strings"
)

// registerCoreCommands installs the built-in command library. Called once
// at interpreter construction.
func registerCoreCommands(i *Interp) {
	registerControlCommands(i)
	registerMathCommands(i)
	registerListCommands(i)
	registerStringCommands(i)
	registerInfoCommands(i)
}

func registerControlCommands(i *Interp) {
	i.registerBuiltin("set", cmdSet)
	i.registerBuiltin("unset", cmdUnset)
	i.registerBuiltin("incr", cmdIncr)
	i.registerBuiltin("if", cmdIf)
	i.registerBuiltin("while", cmdWhile)
	i.registerBuiltin("for", cmdFor)
	i.registerBuiltin("proc", cmdProcDef)
	i.registerBuiltin("return", cmdReturn)
	i.registerBuiltin("break", cmdBreak)
	i.registerBuiltin("continue", cmdContinue)
	i.registerBuiltin("catch", cmdCatch)
	i.registerBuiltin("eval", cmdEval)
	i.registerBuiltin("uplevel", cmdUplevel)
	i.registerBuiltin("upvar", cmdUpvar)
	i.registerBuiltin("apply", cmdApply)
	i.registerBuiltin("rename", cmdRename)
	i.registerBuiltin("subst", cmdSubst)
	i.registerBuiltin("trace", cmdTrace)
	i.registerBuiltin("expr", cmdExpr)
}

func cmdSet(i *Interp, argv []string, _ any) Status {
	switch len(argv) {
	case 2:
		val, st := i.getVar(argv[1])
		if st != StatusOK {
			return st
		}
		i.setResult(val)
		return StatusOK
	case 3:
		if st := i.setVar(argv[1], argv[2]); st != StatusOK {
			return st
		}
		i.setResult(argv[2])
		return StatusOK
	}
	return i.arityErr(argv)
}

func cmdUnset(i *Interp, argv []string, _ any) Status {
	if len(argv) < 2 {
		return i.arityErr(argv)
	}
	for _, name := range argv[1:] {
		if st := i.unsetVar(name); st != StatusOK {
			return st
		}
	}
	i.setResult("")
	return StatusOK
}

func cmdIncr(i *Interp, argv []string, _ any) Status {
	if len(argv) != 2 && len(argv) != 3 {
		return i.arityErr(argv)
	}
	delta := int64(1)
	if len(argv) == 3 {
		d, err := strconv.ParseInt(argv[2], 10, 64)
		if err != nil {
			return i.errorf("expected integer but got %q", argv[2])
		}
		delta = d
	}
	cur := int64(0)
	if _, v, _, st := i.resolveVar(argv[1]); st != StatusOK {
		return st
	} else if v != nil {
		n, err := strconv.ParseInt(v.val.get(), 10, 64)
		if err != nil {
			return i.errorf("expected integer but got %q", v.val.get())
		}
		cur = n
	}
	next := strconv.FormatInt(cur+delta, 10)
	if st := i.setVar(argv[1], next); st != StatusOK {
		return st
	}
	i.setResult(next)
	return StatusOK
}

func cmdIf(i *Interp, argv []string, _ any) Status {
	if len(argv) < 3 {
		return i.arityErr(argv)
	}
	idx := 1
	for {
		if idx+1 >= len(argv) {
			return i.arityErr(argv)
		}
		ok, st := i.evalCond(argv[idx])
		if st != StatusOK {
			return st
		}
		if ok {
			return i.eval(argv[idx+1])
		}
		next := idx + 2
		if next >= len(argv) {
			i.setResult("")
			return StatusOK
		}
		switch argv[next] {
		case "elseif":
			idx = next + 1
		case "else":
			if next+2 != len(argv) {
				return i.arityErr(argv)
			}
			return i.eval(argv[next+1])
		default:
			return i.errorf("expected \"elseif\" or \"else\" but got %q", argv[next])
		}
	}
}

func cmdWhile(i *Interp, argv []string, _ any) Status {
	if len(argv) != 3 {
		return i.arityErr(argv)
	}
	for {
		ok, st := i.evalCond(argv[1])
		if st != StatusOK {
			return st
		}
		if !ok {
			i.setResult("")
			return StatusOK
		}
		switch st := i.eval(argv[2]); st {
		case StatusOK, StatusContinue:
		case StatusBreak:
			i.setResult("")
			return StatusOK
		default:
			return st
		}
	}
}

func cmdFor(i *Interp, argv []string, _ any) Status {
	if len(argv) != 5 {
		return i.arityErr(argv)
	}
	if st := i.eval(argv[1]); st != StatusOK {
		return st
	}
	for {
		ok, st := i.evalCond(argv[2])
		if st != StatusOK {
			return st
		}
		if !ok {
			i.setResult("")
			return StatusOK
		}
		switch st := i.eval(argv[4]); st {
		case StatusOK, StatusContinue:
		case StatusBreak:
			i.setResult("")
			return StatusOK
		default:
			return st
		}
		switch st := i.eval(argv[3]); st {
		case StatusOK:
		case StatusBreak:
			i.setResult("")
			return StatusOK
		default:
			return st
		}
	}
}

func cmdProcDef(i *Interp, argv []string, _ any) Status {
	if len(argv) != 4 {
		return i.arityErr(argv)
	}
	i.registerProc(argv[1], argv[2], argv[3])
	i.setResult("")
	return StatusOK
}

func cmdReturn(i *Interp, argv []string, _ any) Status {
	switch len(argv) {
	case 1:
		i.setResult("")
	case 2:
		i.setResult(argv[1])
	default:
		return i.arityErr(argv)
	}
	return StatusReturn
}

func cmdBreak(i *Interp, argv []string, _ any) Status {
	if len(argv) != 1 {
		return i.arityErr(argv)
	}
	return StatusBreak
}

func cmdContinue(i *Interp, argv []string, _ any) Status {
	if len(argv) != 1 {
		return i.arityErr(argv)
	}
	return StatusContinue
}

// cmdCatch is the sole path for converting any status into an ordinary
// value: the inner status code becomes the integer result, the inner result
// text optionally lands in a variable, and catch itself always returns OK.
func cmdCatch(i *Interp, argv []string, _ any) Status {
	if len(argv) != 2 && len(argv) != 3 {
		return i.arityErr(argv)
	}
	st := i.eval(argv[1])
	msg := i.Result()
	i.linePrefixed = false
	if len(argv) == 3 {
		if st := i.setVar(argv[2], msg); st != StatusOK {
			return st
		}
	}
	i.setResult(strconv.Itoa(int(st)))
	return StatusOK
}

func cmdEval(i *Interp, argv []string, _ any) Status {
	if len(argv) < 2 {
		return i.arityErr(argv)
	}
	return i.eval(strings.Join(argv[1:], " "))
}

func cmdUplevel(i *Interp, argv []string, _ any) Status {
	if len(argv) < 2 {
		return i.arityErr(argv)
	}
	levelSpec := "1"
	rest := argv[1:]
	if len(rest) > 1 && looksLikeLevel(rest[0]) {
		levelSpec = rest[0]
		rest = rest[1:]
	}
	level, st := i.parseLevel(levelSpec)
	if st != StatusOK {
		return st
	}
	return i.withFrame(level, func() Status {
		return i.eval(strings.Join(rest, " "))
	})
}

func cmdUpvar(i *Interp, argv []string, _ any) Status {
	args := argv[1:]
	levelSpec := "1"
	if len(args)%2 == 1 {
		levelSpec = args[0]
		args = args[1:]
	}
	if len(args) == 0 {
		return i.arityErr(argv)
	}
	level, st := i.parseLevel(levelSpec)
	if st != StatusOK {
		return st
	}
	for j := 0; j+1 < len(args); j += 2 {
		if st := i.linkVar(args[j+1], varLink{level: level, name: args[j]}); st != StatusOK {
			return st
		}
	}
	i.setResult("")
	return StatusOK
}

func cmdApply(i *Interp, argv []string, _ any) Status {
	if len(argv) < 2 {
		return i.arityErr(argv)
	}
	return i.callLambda(argv[1], argv[1:])
}

func cmdRename(i *Interp, argv []string, _ any) Status {
	if len(argv) != 3 {
		return i.arityErr(argv)
	}
	old, next := argv[1], argv[2]
	c := i.cmds.lookup(old)
	if c == nil {
		return i.errorf("can't rename %q: command doesn't exist", old)
	}
	if next != "" {
		i.cmds.insert(&command{
			name:   next,
			kind:   c.kind,
			fn:     c.fn,
			params: c.params,
			body:   c.body,
			priv:   c.priv,
		})
	}
	i.cmds.remove(old)
	i.setResult("")
	return StatusOK
}

func cmdSubst(i *Interp, argv []string, _ any) Status {
	flags := substAll
	args := argv[1:]
	for len(args) > 1 {
		switch args[0] {
		case "-nobackslashes":
			flags |= substNoEscapes
		case "-nocommands":
			flags |= substNoCommands
		case "-novariables":
			flags |= substNoVariables
		default:
			return i.errorf("bad option %q: must be -nobackslashes, -nocommands, or -novariables", args[0])
		}
		args = args[1:]
	}
	if len(args) != 1 {
		return i.arityErr(argv)
	}
	out, st := i.substOnly(args[0], flags)
	if st != StatusOK {
		return st
	}
	i.setResult(out)
	return StatusOK
}

func cmdTrace(i *Interp, argv []string, _ any) Status {
	if len(argv) != 2 {
		return i.arityErr(argv)
	}
	switch argv[1] {
	case "on":
		i.tracing = true
		i.setResult("")
	case "off":
		i.tracing = false
		i.setResult("")
	case "status":
		if i.tracing {
			i.setResult("1")
		} else {
			i.setResult("0")
		}
	default:
		return i.errorf("bad option %q: must be on, off, or status", argv[1])
	}
	return StatusOK
}

func cmdExpr(i *Interp, argv []string, _ any) Status {
	if len(argv) < 2 {
		return i.arityErr(argv)
	}
	res, st := i.evalExpr(strings.Join(argv[1:], " "))
	if st != StatusOK {
		return st
	}
	i.setResult(res)
	return StatusOK
}

// looksLikeLevel reports whether a word is a frame level spec ("#N" or a
// bare count) rather than the start of a script.
func looksLikeLevel(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '#' {
		s = s[1:]
		if s == "" {
			return false
		}
	}
	for j := 0; j < len(s); j++ {
		if s[j] < '0' || s[j] > '9' {
			return false
		}
	}
	return true
}
