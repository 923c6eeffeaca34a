package sqlgraph

import (
	"sort"

	"github.com/wilkerlucio/fulcro-sql/schema"
)

// TableFor derives the SQL table a query belongs to. Every entry must
// agree on a single table after the graph->sql remap; PK sentinels are
// skipped. A query whose entries span several tables, or name none, is
// unresolvable.
func TableFor(s *schema.Schema, q Query) (string, error) {
	var tables []string
	seen := make(map[string]struct{})
	for _, e := range q {
		if e.Prop.IsID() {
			continue
		}
		t := s.GraphToSQL(e.Prop).Table()
		if t == "" {
			continue
		}
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			tables = append(tables, t)
		}
	}
	if len(tables) != 1 {
		sort.Strings(tables)
		return "", &UnresolvableTableError{Query: q, Tables: tables}
	}
	return tables[0], nil
}

// SQLPropForJoin returns the column on the current table that resolves
// the join: the first descriptor entry when it lives on the join's
// source table, else the source table's PK.
func SQLPropForJoin(s *schema.Schema, e Entry) (schema.Prop, error) {
	j, ok := s.Join(e.Prop)
	if !ok {
		return "", &UnknownJoinError{Prop: e.Prop}
	}
	src := s.GraphToSQL(e.Prop).Table()
	first := s.Sqlize(j.Path[0])
	if first.Table() == src {
		return first, nil
	}
	return s.IDProp(src), nil
}

// ForwardJoin reports whether the FK of the join lives on the source
// table, i.e. the resolving column is not the source PK.
func ForwardJoin(s *schema.Schema, e Entry) (bool, error) {
	j, ok := s.Join(e.Prop)
	if !ok {
		return false, &UnknownJoinError{Prop: e.Prop}
	}
	if j.ManyToMany() {
		return false, nil
	}
	col, err := SQLPropForJoin(s, e)
	if err != nil {
		return false, err
	}
	src := s.GraphToSQL(e.Prop).Table()
	return col != s.IDProp(src), nil
}

// ReverseJoin reports whether the FK of the join lives on the target
// table.
func ReverseJoin(s *schema.Schema, e Entry) (bool, error) {
	fwd, err := ForwardJoin(s, e)
	if err != nil {
		return false, err
	}
	return !fwd, nil
}

// ColumnsFor returns the minimum set of SQL properties the SELECT list
// must contain for one level of the query: the table's PK, every leaf
// property, and the resolving column of every join. The result is
// sorted.
func ColumnsFor(s *schema.Schema, q Query) ([]schema.Prop, error) {
	table, err := TableFor(s, q)
	if err != nil {
		return nil, err
	}
	set := map[schema.Prop]struct{}{
		s.IDProp(table): {},
	}
	for _, e := range q {
		switch {
		case e.IsJoin():
			col, err := SQLPropForJoin(s, e)
			if err != nil {
				return nil, err
			}
			set[col] = struct{}{}
		case e.Prop.IsID():
			// PK is always selected.
		default:
			set[s.GraphToSQL(e.Prop)] = struct{}{}
		}
	}
	return sortedProps(set), nil
}

func sortedProps(set map[schema.Prop]struct{}) []schema.Prop {
	props := make([]schema.Prop, 0, len(set))
	for p := range set {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })
	return props
}
