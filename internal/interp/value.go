package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a runtime Lox value. Unlike go-dws's runtime.Value interface
// (Type()/String()/arithmetic methods implemented per concrete numeric
// kind, see internal/interp/runtime/value_interfaces.go and
// primitives.go's IntegerValue/FloatValue split), spec.md §3 names exactly
// four value kinds with a single numeric kind (float64), so there is no
// numeric-kind hierarchy to model: a plain `any` holding nil, bool,
// float64, string, or Callable covers the whole domain, and truthy/
// equality/stringify live as free functions below rather than interface
// methods.
type Value = any

// Callable is a value that can be invoked with Call. Functions (user
// Function values) and native builtins (clock) both satisfy it.
type Callable interface {
	Arity() int
	Call(it *Interpreter, args []Value) (Value, error)
	String() string
}

// isTruthy applies spec.md §4.7's truthiness rule: nil and false are
// falsey, everything else (including 0 and "") is truthy.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual applies spec.md §4.7's equality rule: nil equals only nil, and
// values of different underlying Go types are never equal (so no implicit
// string/number coercion).
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a Value for `print`, per
// spec.md §4.7: nil is "nil", numbers drop a trailing ".0" for integral
// values, everything else uses its natural Go formatting.
func stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	switch val := v.(type) {
	case float64:
		text := strconv.FormatFloat(val, 'f', -1, 64)
		if strings.Contains(text, ".") {
			text = strings.TrimRight(text, "0")
			text = strings.TrimSuffix(text, ".")
		}
		return text
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case Callable:
		return "function"
	default:
		return "value"
	}
}
