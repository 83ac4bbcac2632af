package plume

import (
	"fmt"
	"strings"
)

// rawString converts a Go value to its plain string form with no quoting.
// Used by [Interp.SetVar], where the value becomes variable content rather
// than script text.
func rawString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case []string:
		return joinList(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toScriptString converts a Go value to its script string representation,
// quoted so it survives re-parsing as a single word. Used by [Interp.Call]
// to build command invocations without manual escaping.
func toScriptString(v any) string {
	if v == nil {
		return "{}"
	}
	switch val := v.(type) {
	case string:
		return formatListElement(val)
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case []string:
		parts := make([]string, len(val))
		for i, s := range val {
			parts[i] = formatListElement(s)
		}
		return formatListElement(strings.Join(parts, " "))
	default:
		return formatListElement(fmt.Sprintf("%v", v))
	}
}
