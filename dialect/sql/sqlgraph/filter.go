package sqlgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wilkerlucio/fulcro-sql/schema"
)

// Op is a filter comparator.
type Op string

// The comparator vocabulary. OpNull takes a boolean value: true emits
// IS NULL, false emits IS NOT NULL. Every other comparator emits
// "<col> <op> ?" and binds its value as the sole parameter.
const (
	OpEQ   Op = "eq"
	OpGT   Op = "gt"
	OpLT   Op = "lt"
	OpGTE  Op = "gte"
	OpLTE  Op = "lte"
	OpNE   Op = "ne"
	OpNull Op = "null"
)

var opSQL = map[Op]string{
	OpEQ:  "=",
	OpGT:  ">",
	OpLT:  "<",
	OpGTE: ">=",
	OpLTE: "<=",
	OpNE:  "<>",
}

// Depth defaults for filter rules.
const (
	DefaultMinDepth = 1
	DefaultMaxDepth = 1000
)

// Rule is a declarative filter on a caller property. Zero MinDepth and
// MaxDepth mean the defaults (1 and 1000).
type Rule struct {
	Op       Op
	Value    any
	MinDepth int
	MaxDepth int
}

// Clause is a compiled filter: a SQL fragment with ? placeholders, its
// parameters, and the inclusive depth range it applies to.
type Clause struct {
	Fragment string
	Params   []any
	MinDepth int
	MaxDepth int
}

// Filters groups compiled clauses by the SQL table they apply to.
type Filters map[string][]Clause

// FiltersFromParams compiles declarative filter parameters, grouping the
// clauses by the table derived from each property. An unknown comparator
// fails with an UnknownOperatorError carrying the offending rule.
func FiltersFromParams(s *schema.Schema, params map[schema.Prop]Rule) (Filters, error) {
	props := make([]schema.Prop, 0, len(params))
	for p := range params {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })

	filters := make(Filters)
	for _, p := range props {
		rule := params[p]
		sp := s.GraphToSQL(p)
		col := fmt.Sprintf("%s.%s", sp.Table(), sp.Column())
		c := Clause{
			MinDepth: rule.MinDepth,
			MaxDepth: rule.MaxDepth,
		}
		if c.MinDepth == 0 {
			c.MinDepth = DefaultMinDepth
		}
		if c.MaxDepth == 0 {
			c.MaxDepth = DefaultMaxDepth
		}
		switch rule.Op {
		case OpNull:
			if isNull, _ := rule.Value.(bool); isNull {
				c.Fragment = col + " IS NULL"
			} else {
				c.Fragment = col + " IS NOT NULL"
			}
		case OpEQ, OpGT, OpLT, OpGTE, OpLTE, OpNE:
			c.Fragment = fmt.Sprintf("%s %s ?", col, opSQL[rule.Op])
			c.Params = []any{rule.Value}
		default:
			return nil, &UnknownOperatorError{Prop: p, Rule: rule}
		}
		filters[sp.Table()] = append(filters[sp.Table()], c)
	}
	return filters, nil
}

// RowFilter composes the clauses applicable to the given tables at the
// given depth into a single WHERE fragment. The parameters follow in
// clause emission order. When nothing applies the fragment is empty.
func (f Filters) RowFilter(depth int, tables ...string) (string, []any) {
	var (
		fragments []string
		params    []any
	)
	for _, t := range tables {
		for _, c := range f[t] {
			if depth < c.MinDepth || depth > c.MaxDepth {
				continue
			}
			fragments = append(fragments, c.Fragment)
			params = append(params, c.Params...)
		}
	}
	if len(fragments) == 0 {
		return "", nil
	}
	return strings.Join(fragments, " AND "), params
}
