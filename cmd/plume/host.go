package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/plume-lang/plume"
)

var stdinReader = bufio.NewReader(os.Stdin)

// registerHostCommands adds the commands that touch the outside world. The
// interpreter core stays free of OS dependencies; everything here goes
// through the same public registration API an embedder would use.
func registerHostCommands(i *plume.Interp) {
	i.RegisterCommand("puts", cmdPuts)
	i.RegisterCommand("gets", cmdGets)
	i.RegisterCommand("source", cmdSource)
	i.RegisterCommand("clock", cmdClock)
	i.RegisterCommand("env", cmdEnv)
	i.RegisterCommand("exit", cmdExit)
}

func cmdPuts(i *plume.Interp, cmd string, args []string) plume.Result {
	newline := true
	if len(args) > 0 && args[0] == "-nonewline" {
		newline = false
		args = args[1:]
	}
	if len(args) != 1 {
		return plume.Errorf("wrong # args: \"%s %s\"", cmd, strings.Join(args, " "))
	}
	if newline {
		fmt.Println(args[0])
	} else {
		fmt.Print(args[0])
	}
	return plume.OK("")
}

func cmdGets(i *plume.Interp, cmd string, args []string) plume.Result {
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return plume.Errorf("gets: %s", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if len(args) == 1 {
		if err := i.SetVar(args[0], line); err != nil {
			return plume.Error(err.Error())
		}
		return plume.OK(len(line))
	}
	return plume.OK(line)
}

func cmdSource(i *plume.Interp, cmd string, args []string) plume.Result {
	if len(args) != 1 {
		return plume.Errorf("wrong # args: \"%s %s\"", cmd, strings.Join(args, " "))
	}
	script, err := os.ReadFile(args[0])
	if err != nil {
		return plume.Errorf("couldn't read file %q: %s", args[0], err)
	}
	result, err := i.Eval(string(script))
	if err != nil {
		return plume.Error(err.Error())
	}
	return plume.OK(result.String())
}

func cmdClock(i *plume.Interp, cmd string, args []string) plume.Result {
	if len(args) == 0 || args[0] == "seconds" {
		return plume.OK(time.Now().Unix())
	}
	switch args[0] {
	case "milliseconds":
		return plume.OK(time.Now().UnixMilli())
	case "format":
		if len(args) != 2 {
			return plume.Errorf("wrong # args: \"%s format seconds\"", cmd)
		}
		secs, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return plume.Errorf("expected integer but got %q", args[1])
		}
		return plume.OK(time.Unix(secs, 0).UTC().Format(time.RFC3339))
	}
	return plume.Errorf("bad option %q: must be seconds, milliseconds, or format", args[0])
}

func cmdEnv(i *plume.Interp, cmd string, args []string) plume.Result {
	if len(args) != 1 {
		return plume.Errorf("wrong # args: \"%s name\"", cmd)
	}
	return plume.OK(os.Getenv(args[0]))
}

func cmdExit(i *plume.Interp, cmd string, args []string) plume.Result {
	code := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return plume.Errorf("expected integer but got %q", args[0])
		}
		code = n
	}
	os.Exit(code)
	return plume.OK("")
}
