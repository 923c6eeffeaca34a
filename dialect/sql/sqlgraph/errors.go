package sqlgraph

import (
	"errors"
	"fmt"

	"github.com/wilkerlucio/fulcro-sql/schema"
)

// ErrMaxDepth is returned when a traversal descends past the hard depth
// ceiling. Cycle detection normally stops recursive joins first; hitting
// the ceiling means the query or the schema is malformed.
var ErrMaxDepth = errors.New("sqlgraph: max traversal depth exceeded")

// UnresolvableTableError is returned when a query's entries do not agree
// on a single table.
type UnresolvableTableError struct {
	Query  Query
	Tables []string
}

// Error returns the error string.
func (e *UnresolvableTableError) Error() string {
	return fmt.Sprintf("sqlgraph: could not determine a single table from the subquery %s", e.Query)
}

// IsUnresolvableTable returns true if the error is an UnresolvableTableError.
func IsUnresolvableTable(err error) bool {
	if err == nil {
		return false
	}
	var e *UnresolvableTableError
	return errors.As(err, &e)
}

// UnknownJoinError is returned when an entry is shaped like a join but
// the schema declares no descriptor for its property.
type UnknownJoinError struct {
	Prop schema.Prop
}

// Error returns the error string.
func (e *UnknownJoinError) Error() string {
	return fmt.Sprintf("sqlgraph: no join descriptor for %q", e.Prop)
}

// IsUnknownJoin returns true if the error is an UnknownJoinError.
func IsUnknownJoin(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownJoinError
	return errors.As(err, &e)
}

// UnknownOperatorError is returned for a filter rule whose comparator is
// not part of the vocabulary. It carries the offending rule.
type UnknownOperatorError struct {
	Prop schema.Prop
	Rule Rule
}

// Error returns the error string.
func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("sqlgraph: unknown filter operation %q on %q", e.Rule.Op, e.Prop)
}

// IsUnknownOperator returns true if the error is an UnknownOperatorError.
func IsUnknownOperator(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownOperatorError
	return errors.As(err, &e)
}
