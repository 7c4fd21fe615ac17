package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is a comparison operator usable in a Condition.
type Operator string

const (
	OpEqual              Operator = "="
	OpNotEqual           Operator = "<>"
	OpGreaterThan        Operator = ">"
	OpGreaterThanOrEqual Operator = ">="
	OpLessThan           Operator = "<"
	OpLessThanOrEqual    Operator = "<="
	OpILike              Operator = "ILIKE"
)

// Condition is a single WHERE clause comparing a column with a bound value.
// Column must come from code, never from request input.
type Condition struct {
	Column   string
	Operator Operator
	Value    any
}

// Eq creates an equality condition.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Operator: OpEqual, Value: value}
}

// Args collects bound parameters and hands out their placeholders in order,
// so every placeholder index is derived from the position of its value.
type Args struct {
	values []any
}

// Bind appends a value and returns its placeholder.
func (a *Args) Bind(value any) string {
	a.values = append(a.values, value)
	return "$" + strconv.Itoa(len(a.values))
}

// Values returns the bound values in placeholder order.
func (a *Args) Values() []any {
	return a.values
}

// Len returns the number of bound values.
func (a *Args) Len() int {
	return len(a.values)
}

// Predicates is a list of conditions joined with AND.
type Predicates []Condition

// And returns a copy of p with cond appended.
func (p Predicates) And(cond Condition) Predicates {
	out := make(Predicates, 0, len(p)+1)
	out = append(out, p...)
	return append(out, cond)
}

// Compile renders the WHERE clause, binding every value into args.
// An empty list compiles to an empty string.
func (p Predicates) Compile(args *Args) (string, error) {
	if len(p) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(p))
	for _, cond := range p {
		switch cond.Operator {
		case OpEqual, OpNotEqual, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual, OpILike:
			parts = append(parts, fmt.Sprintf("%s %s %s", cond.Column, cond.Operator, args.Bind(cond.Value)))
		default:
			return "", fmt.Errorf("unknown operator: %q", cond.Operator)
		}
	}

	return "WHERE " + strings.Join(parts, " AND "), nil
}
