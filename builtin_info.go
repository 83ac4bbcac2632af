package plume

import (
	"sort"
	"strconv"
)

func registerInfoCommands(i *Interp) {
	i.registerBuiltin("info", cmdInfo)
}

func cmdInfo(i *Interp, argv []string, _ any) Status {
	if len(argv) < 2 {
		return i.arityErr(argv)
	}
	switch argv[1] {
	case "commands":
		return i.infoCommands(argv, func(*command) bool { return true })
	case "procs":
		return i.infoCommands(argv, func(c *command) bool { return c.kind == cmdProc })
	case "vars":
		return i.infoVars(argv, i.frames[i.active])
	case "globals":
		return i.infoVars(argv, i.frames[0])
	case "exists":
		if len(argv) != 3 {
			return i.arityErr(argv)
		}
		if _, v, _, st := i.resolveVar(argv[2]); st != StatusOK {
			return st
		} else if v != nil {
			i.setResult("1")
		} else {
			i.setResult("0")
		}
		return StatusOK
	case "level":
		if len(argv) != 2 {
			return i.arityErr(argv)
		}
		i.setResult(strconv.Itoa(i.frames[i.active].level))
		return StatusOK
	case "body":
		if len(argv) != 3 {
			return i.arityErr(argv)
		}
		c := i.cmds.lookup(argv[2])
		if c == nil || c.kind != cmdProc {
			return i.errorf("%q isn't a procedure", argv[2])
		}
		i.setResult(c.body)
		return StatusOK
	case "args":
		if len(argv) != 3 {
			return i.arityErr(argv)
		}
		c := i.cmds.lookup(argv[2])
		if c == nil || c.kind != cmdProc {
			return i.errorf("%q isn't a procedure", argv[2])
		}
		i.setResult(c.params)
		return StatusOK
	}
	return i.errorf("bad option %q: must be commands, procs, vars, globals, exists, level, body, or args", argv[1])
}

// infoCommands collects command names passing keep, optionally filtered by a
// glob pattern, sorted.
func (i *Interp) infoCommands(argv []string, keep func(*command) bool) Status {
	if len(argv) != 2 && len(argv) != 3 {
		return i.arityErr(argv)
	}
	pattern := ""
	if len(argv) == 3 {
		pattern = argv[2]
	}
	var names []string
	i.cmds.each(func(c *command) {
		if !keep(c) {
			return
		}
		if pattern != "" && !i.match(pattern, c.name) {
			return
		}
		names = append(names, c.name)
	})
	sort.Strings(names)
	i.setResult(joinList(names))
	return StatusOK
}

func (i *Interp) infoVars(argv []string, f *callFrame) Status {
	if len(argv) != 2 && len(argv) != 3 {
		return i.arityErr(argv)
	}
	pattern := ""
	if len(argv) == 3 {
		pattern = argv[2]
	}
	var names []string
	for _, v := range f.vars {
		name := v.name.get()
		if pattern != "" && !i.match(pattern, name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	i.setResult(joinList(names))
	return StatusOK
}
