package filter

import (
	"fmt"
	"strings"
)

// Render returns a compact human-readable form of the expression, e.g.
// { x1: {$eq: 1} }. It is meant for logs and error messages, not for the
// server; use Marshal for the wire form.
func Render(expr Expression) string {
	switch e := expr.(type) {
	case Comparison:
		if e.err != nil {
			return fmt.Sprintf("<invalid: %v>", e.err)
		}
		return fmt.Sprintf("{ %s: {%s: %v} }", e.Field, e.Operator, e.Value)
	case Not:
		inner := e.Comparison
		if inner.err != nil {
			return fmt.Sprintf("<invalid: %v>", inner.err)
		}
		return fmt.Sprintf("{ %s: {$not: {%s: %v}} }", inner.Field, inner.Operator, inner.Value)
	case List:
		parts := make([]string, len(e))
		for i, sub := range e {
			parts[i] = Render(sub)
		}
		return strings.Join(parts, ", ")
	case Logical:
		return fmt.Sprintf("{ %s: [%s, %s] }", e.Operator, Render(e.Left), Render(e.Right))
	case invalid:
		return fmt.Sprintf("<invalid: %v>", e.err)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<unsupported %T>", expr)
	}
}
