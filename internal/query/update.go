package query

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Assignment is one SET clause of a partial update.
type Assignment struct {
	Column string
	Value  any
	// ClampedIncrement adds Value to the column, saturating at zero and at
	// the INT maximum so the sum never overflows.
	ClampedIncrement bool
}

// Update builds a single-statement UPDATE ... RETURNING. Assignments are
// bound before the predicates.
func Update(table string, set []Assignment, where Predicates, returning string) (string, []any, error) {
	if len(set) == 0 {
		return "", nil, errors.New("update requires at least one assignment")
	}
	if len(where) == 0 {
		return "", nil, errors.New("update requires a predicate")
	}

	var args Args
	clauses := make([]string, 0, len(set))
	for _, a := range set {
		if a.ClampedIncrement {
			clauses = append(clauses, fmt.Sprintf("%s = LEAST(GREATEST(%s::bigint + %s, 0), %d)",
				a.Column, a.Column, args.Bind(a.Value), math.MaxInt32))
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s = %s", a.Column, args.Bind(a.Value)))
	}

	whereSQL, err := where.Compile(&args)
	if err != nil {
		return "", nil, err
	}

	q := fmt.Sprintf("UPDATE %s SET %s %s", table, strings.Join(clauses, ", "), whereSQL)
	if returning != "" {
		q += " RETURNING " + returning
	}
	return q, args.Values(), nil
}
