package sqlgraph

import (
	"context"
	"fmt"
	"sort"

	"github.com/wilkerlucio/fulcro-sql/dialect"
	sqldialect "github.com/wilkerlucio/fulcro-sql/dialect/sql"
	"github.com/wilkerlucio/fulcro-sql/schema"
)

// Row is a result record in caller property names. Join entries hold a
// nested Row (to-one) or []Row (to-many).
type Row map[schema.Prop]any

// Option configures a traversal.
type Option func(*runner)

// WithMaxDepth sets the hard ceiling on traversal depth. Cycle detection
// terminates sentinel recursion on its own; the ceiling backs it up.
// Default is 40.
func WithMaxDepth(n int) Option {
	return func(r *runner) { r.maxDepth = n }
}

// WithStableOrder sorts every to-many child list by child PK. Without
// it, child ordering is whatever the driver returns, which differs
// between databases.
func WithStableOrder() Option {
	return func(r *runner) { r.stable = true }
}

const defaultMaxDepth = 40

type runner struct {
	drv      dialect.Driver
	schema   *schema.Schema
	filters  Filters
	maxDepth int
	stable   bool
}

// RunQuery walks the query tree rooted at the given ids and returns the
// matching records in the tree shape of the query. The prop names the
// column the root id-set constrains: an ID property at level 0, or a
// join property when a caller resumes a traversal mid-graph. An empty
// root set returns an empty result without touching the database.
func RunQuery(ctx context.Context, drv dialect.Driver, s *schema.Schema, prop schema.Prop, q Query, rootIDs []int64, filters Filters, opts ...Option) ([]Row, error) {
	r := &runner{
		drv:      drv,
		schema:   s,
		filters:  filters,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.filters == nil {
		r.filters = Filters{}
	}
	incoming := prop
	if _, ok := s.Join(prop); !ok {
		// An ID property constrains the query's own table by PK.
		incoming = ""
	}
	nodes, err := r.run(ctx, incoming, q, rootIDs, 1, visitSet{})
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(nodes))
	for i, n := range nodes {
		rows[i] = n.row
	}
	return rows, nil
}

// node is one assembled row plus the value of the level's filter column,
// which the parent level groups by.
type node struct {
	key any
	row Row
}

// visitSet tracks (join property, id) pairs already expanded by sentinel
// recursion on the current branch.
type visitSet map[schema.Prop]map[int64]struct{}

func (v visitSet) has(p schema.Prop, id int64) bool {
	_, ok := v[p][id]
	return ok
}

func (v visitSet) add(p schema.Prop, id int64) {
	if v[p] == nil {
		v[p] = make(map[int64]struct{})
	}
	v[p][id] = struct{}{}
}

// clone deep-copies the set so sibling branches do not see each other's
// visits.
func (v visitSet) clone() visitSet {
	c := make(visitSet, len(v))
	for p, ids := range v {
		m := make(map[int64]struct{}, len(ids))
		for id := range ids {
			m[id] = struct{}{}
		}
		c[p] = m
	}
	return c
}

func (r *runner) run(ctx context.Context, incoming schema.Prop, q Query, ids []int64, depth int, visited visitSet) ([]node, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if depth > r.maxDepth {
		return nil, fmt.Errorf("%w: depth %d with query %s", ErrMaxDepth, depth, q)
	}
	p, err := planFor(r.schema, incoming, q, ids, r.filters, depth)
	if err != nil || p == nil {
		return nil, err
	}
	raws, err := r.queryRows(ctx, p.query)
	if err != nil {
		return nil, err
	}

	// Fetch every join's children, grouped by the child level's filter
	// column, before assembling this level's rows.
	children := make(map[schema.Prop]map[int64][]node)
	skipped := make(map[schema.Prop]bool)
	for _, e := range q {
		if !e.IsJoin() {
			continue
		}
		childQ, ok := r.resolveSub(q, e)
		if !ok {
			skipped[e.Prop] = true
			continue
		}
		col, err := SQLPropForJoin(r.schema, e)
		if err != nil {
			return nil, err
		}
		childIDs := collectIDs(raws, col)
		childVisited := visited
		if e.Sub.Recursive {
			childVisited = visited.clone()
			kept := childIDs[:0]
			for _, id := range childIDs {
				if childVisited.has(e.Prop, id) {
					continue
				}
				childVisited.add(e.Prop, id)
				kept = append(kept, id)
			}
			childIDs = kept
		}
		childNodes, err := r.run(ctx, e.Prop, childQ, childIDs, depth+1, childVisited)
		if err != nil {
			return nil, err
		}
		grouped := make(map[int64][]node)
		for _, n := range childNodes {
			key, ok := toInt64(n.key)
			if !ok {
				continue
			}
			grouped[key] = append(grouped[key], n)
		}
		children[e.Prop] = grouped
	}

	nodes := make([]node, 0, len(raws))
	for _, raw := range raws {
		row := make(Row, len(q))
		for _, e := range q {
			switch {
			case e.IsJoin():
				if skipped[e.Prop] {
					continue
				}
				col, err := SQLPropForJoin(r.schema, e)
				if err != nil {
					return nil, err
				}
				j, _ := r.schema.Join(e.Prop)
				var group []node
				if key, ok := toInt64(raw[col]); ok {
					group = children[e.Prop][key]
				}
				if j.Arity == schema.ToOne {
					if len(group) > 0 {
						row[e.Prop] = group[0].row
					}
				} else {
					rows := make([]Row, len(group))
					for i, n := range group {
						rows[i] = n.row
					}
					if r.stable {
						r.sortByPK(rows, childPKProp(r.schema, q, e))
					}
					row[e.Prop] = rows
				}
			case e.Prop.IsID():
				row[e.Prop] = raw[r.schema.IDProp(p.table)]
			default:
				row[e.Prop] = raw[r.schema.GraphToSQL(e.Prop)]
			}
		}
		nodes = append(nodes, node{key: raw[p.filterCol], row: row})
	}
	return nodes, nil
}

// resolveSub resolves a join's effective child query. Recursive joins
// re-apply the enclosing query; counted joins re-apply it with the
// counter decremented, and stop recursing at zero.
func (r *runner) resolveSub(q Query, e Entry) (Query, bool) {
	sub := e.Sub
	switch {
	case sub.Recursive:
		return q, true
	case sub.Query != nil:
		return sub.Query, true
	case sub.Depth <= 0:
		return nil, false
	default:
		child := make(Query, len(q))
		copy(child, q)
		for i, ce := range child {
			if ce.Prop == e.Prop && ce.IsJoin() {
				child[i] = J(ce.Prop, Levels(sub.Depth-1))
			}
		}
		return child, true
	}
}

// queryRows executes the statement and materializes the rows as
// SQL-property maps, keyed by the "table/col" column aliases.
func (r *runner) queryRows(ctx context.Context, q SQLQuery) ([]map[schema.Prop]any, error) {
	var rows sqldialect.Rows
	if err := r.drv.Query(ctx, q.SQL, q.Params, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []map[schema.Prop]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		raw := make(map[schema.Prop]any, len(cols))
		for i, c := range cols {
			raw[schema.Prop(c)] = normalizeValue(vals[i])
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *runner) sortByPK(rows []Row, pk schema.Prop) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, _ := toInt64(rows[i][pk])
		b, _ := toInt64(rows[j][pk])
		return a < b
	})
}

// childPKProp returns the property a child row's PK is attached under:
// db/id or id when the sub-query asked for it.
func childPKProp(s *schema.Schema, q Query, e Entry) schema.Prop {
	sub := e.Sub
	childQ := q
	if !sub.Recursive && sub.Query != nil {
		childQ = sub.Query
	}
	for _, ce := range childQ {
		if ce.Prop.IsID() {
			return ce.Prop
		}
	}
	return schema.DBIDSentinel
}

// collectIDs returns the distinct non-null integral values of the column
// across the rows, in row order.
func collectIDs(raws []map[schema.Prop]any, col schema.Prop) []int64 {
	var ids []int64
	seen := make(map[int64]struct{})
	for _, raw := range raws {
		id, ok := toInt64(raw[col])
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// toInt64 coerces the scalar forms drivers return for integral columns.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

// normalizeValue maps driver byte slices to strings; other scalars pass
// through.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
