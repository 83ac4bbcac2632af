// Package plume provides a small embeddable Tcl-like scripting language for
// Go applications.
//
// # Overview
//
// plume is a compact interpreter built for embedding: a handful of source
// files, a string-only value model, and a deliberately small footprint. It
// provides:
//
//   - A clean, idiomatic Go API
//   - Automatic type conversion between Go and script values
//   - A pluggable allocator capability controlling all string storage
//   - No external dependencies beyond the Go standard library
//
// # Quick Start
//
//	import "github.com/plume-lang/plume"
//
//	func main() {
//	    interp := plume.New()
//	    defer interp.Close()
//
//	    // Evaluate scripts
//	    result, _ := interp.Eval("expr {2 + 2}")
//	    fmt.Println(result.String()) // "4"
//
//	    // Set and get variables
//	    interp.SetVar("name", "World")
//	    result, _ = interp.Eval(`set greeting "Hello, $name!"`)
//
//	    // Register Go commands
//	    interp.RegisterCommand("double", func(i *plume.Interp, cmd string, args []string) plume.Result {
//	        n, _ := strconv.Atoi(args[0])
//	        return plume.OK(n * 2)
//	    })
//	    result, _ = interp.Eval("double 21") // "42"
//	}
//
// # Language
//
// The language is classic Tcl at its core: every value is a string, a script
// is a sequence of commands, and the only syntax is substitution. Braces
// quote verbatim, double quotes group with substitution, brackets evaluate a
// nested script, and $name reads a variable. Control flow (if, while, for,
// proc, return, break, continue, catch) is implemented as ordinary commands
// on top of a five-valued status protocol rather than as special forms.
//
// # Values
//
// The Value interface provides type-safe access to script values:
//
//	result, _ := interp.Eval("list 1 2 3")
//
//	str := result.String()        // "1 2 3"
//	list, _ := result.List()      // []Value with 3 elements
//	for _, v := range list {
//	    n, _ := v.Int()           // 1, 2, 3
//	}
//
// Go to script:
//   - string → string
//   - int, int64 → integer
//   - float64 → double
//   - bool → "1" or "0"
//   - []string → list
//
// # Memory
//
// Variable names, values, and the interpreter result are stored in compact
// strings: short strings live inline with zero allocations, longer ones are
// carried in buffers obtained from the interpreter's allocator. The default
// allocator is the Go heap; [NewWithAlloc] substitutes another, which is how
// embedders meter or cap the interpreter's string memory. An allocation
// failure is sticky: the interpreter reports "out of memory" and refuses
// further evaluation.
package plume
