package sqlgraph

import (
	"fmt"
	"strings"

	"github.com/wilkerlucio/fulcro-sql/schema"
)

// Query is the shape of data to fetch: an ordered list of entries.
type Query []Entry

// Entry is a single element of a query: a plain property, or a join
// property together with its sub-query.
type Entry struct {
	Prop schema.Prop
	Sub  *Subquery
}

// IsJoin reports whether the entry is a join.
func (e Entry) IsJoin() bool { return e.Sub != nil }

// Subquery is the target of a join entry: a nested query, the recursion
// sentinel, or a remaining-depth counter.
type Subquery struct {
	// Query is the nested query, nil for recursive sub-queries.
	Query Query
	// Recursive marks the "..." sentinel: re-apply the enclosing query
	// until cycle detection stops the descent.
	Recursive bool
	// Depth is the number of remaining recursion levels when the
	// sub-query is a counter. Zero or negative means do not recurse.
	Depth int
}

// P returns a plain property entry.
func P(p schema.Prop) Entry {
	return Entry{Prop: p}
}

// J returns a join entry.
func J(p schema.Prop, sub *Subquery) Entry {
	return Entry{Prop: p, Sub: sub}
}

// Sub returns a nested sub-query.
func Sub(entries ...Entry) *Subquery {
	return &Subquery{Query: entries}
}

// Recur returns the recursion sentinel: the join re-applies the
// enclosing query until the cycle closes.
func Recur() *Subquery {
	return &Subquery{Recursive: true}
}

// Levels returns a counted recursion: the join re-applies the enclosing
// query for at most n more levels.
func Levels(n int) *Subquery {
	return &Subquery{Depth: n}
}

// String renders the query in its caller-facing shape, for error
// messages and logs.
func (q Query) String() string {
	parts := make([]string, len(q))
	for i, e := range q {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// String renders a single entry.
func (e Entry) String() string {
	if !e.IsJoin() {
		return string(e.Prop)
	}
	return fmt.Sprintf("{%s %s}", e.Prop, e.Sub)
}

// String renders the sub-query.
func (s *Subquery) String() string {
	switch {
	case s.Recursive:
		return "..."
	case s.Query == nil:
		return fmt.Sprintf("%d", s.Depth)
	default:
		return s.Query.String()
	}
}
