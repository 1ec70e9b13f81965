package filter

// Operator is a MongoDB query operator keyword. The string values are part of
// the wire contract with the server and must be emitted exactly as named.
type Operator string

// Comparison operators.
const (
	OpEq  Operator = "$eq"
	OpGt  Operator = "$gt"
	OpGte Operator = "$gte"
	OpLt  Operator = "$lt"
	OpLte Operator = "$lte"
	OpNe  Operator = "$ne"
	OpIn  Operator = "$in"
	OpNin Operator = "$nin"
)

// Logical operators.
const (
	OpAnd Operator = "$and"
	OpOr  Operator = "$or"
	OpNot Operator = "$not"
)

// IsComparison reports whether op is one of the comparison operators.
func (op Operator) IsComparison() bool {
	switch op {
	case OpEq, OpGt, OpGte, OpLt, OpLte, OpNe, OpIn, OpNin:
		return true
	default:
		return false
	}
}

// IsLogical reports whether op is $and or $or.
func (op Operator) IsLogical() bool {
	return op == OpAnd || op == OpOr
}
