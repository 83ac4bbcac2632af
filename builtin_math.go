package plume

// mathOps are the prefix operator commands: each is registered under its
// operator name, carried as the command's private data.
var mathOps = []string{
	"+", "-", "*", "/", "%",
	"==", "!=", ">", "<", ">=", "<=",
	"&&", "||", "!",
}

func registerMathCommands(i *Interp) {
	for _, op := range mathOps {
		i.cmds.insert(&command{name: op, kind: cmdBuiltin, fn: cmdMathOp, priv: op})
	}
}

// cmdMathOp implements the unary and binary operator commands, e.g.
// "+ 2 2" → "4" and "! 0" → "1". "+" and "-" accept the unary form.
func cmdMathOp(i *Interp, argv []string, priv any) Status {
	op := priv.(string)

	if op == "!" {
		if len(argv) != 2 {
			return i.arityErr(argv)
		}
		n, ok := parseNumber(argv[1])
		if !ok {
			return i.errorf("expected number but got %q", argv[1])
		}
		i.setResult(boolNum(!n.truthy()).text())
		return StatusOK
	}

	if len(argv) == 2 && (op == "+" || op == "-") {
		n, ok := parseNumber(argv[1])
		if !ok {
			return i.errorf("expected number but got %q", argv[1])
		}
		if op == "-" {
			if n.isInt {
				n = intNum(-n.i)
			} else {
				n = floatNum(-n.f)
			}
		}
		i.setResult(n.text())
		return StatusOK
	}

	if len(argv) != 3 {
		return i.arityErr(argv)
	}
	a, okA := parseNumber(argv[1])
	b, okB := parseNumber(argv[2])
	if !okA {
		return i.errorf("expected number but got %q", argv[1])
	}
	if !okB {
		return i.errorf("expected number but got %q", argv[2])
	}

	var n number
	var err error
	switch op {
	case "+":
		n = addNum(a, b)
	case "-":
		n = subNum(a, b)
	case "*":
		n = mulNum(a, b)
	case "/":
		n, err = divNum(a, b)
	case "%":
		n, err = modNum(a, b)
	case "==":
		n = compareNum(a, b, func(c int) bool { return c == 0 })
	case "!=":
		n = compareNum(a, b, func(c int) bool { return c != 0 })
	case ">":
		n = compareNum(a, b, func(c int) bool { return c > 0 })
	case "<":
		n = compareNum(a, b, func(c int) bool { return c < 0 })
	case ">=":
		n = compareNum(a, b, func(c int) bool { return c >= 0 })
	case "<=":
		n = compareNum(a, b, func(c int) bool { return c <= 0 })
	case "&&":
		n = boolNum(a.truthy() && b.truthy())
	case "||":
		n = boolNum(a.truthy() || b.truthy())
	}
	if err != nil {
		return i.errorf("%s", err)
	}
	i.setResult(n.text())
	return StatusOK
}
