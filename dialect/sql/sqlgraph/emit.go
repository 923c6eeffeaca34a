package sqlgraph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wilkerlucio/fulcro-sql/schema"
)

// SQLQuery is an emitted statement together with its bound parameters.
type SQLQuery struct {
	SQL    string
	Params []any
}

// columnSpec formats one SELECT list element.
type columnSpec func(p schema.Prop) string

// defaultColumnSpec emits `table.col AS "table/col"`, which every
// supported driver accepts.
func defaultColumnSpec(p schema.Prop) string {
	return fmt.Sprintf("%s.%s AS %q", p.Table(), p.Column(), string(p))
}

// columnSpecs holds the per-dialect overrides; the default serves
// Postgres, MySQL and SQLite alike.
var columnSpecs = map[string]columnSpec{}

// ColumnSpec emits the SELECT fragment for a SQL property, dispatching
// on the schema's driver flavor.
func ColumnSpec(s *schema.Schema, p schema.Prop) string {
	if fn, ok := columnSpecs[s.Driver()]; ok {
		return fn(p)
	}
	return defaultColumnSpec(p)
}

// plan is the per-level derivation: the emitted SQL, the target table,
// the link table for many-to-many joins, and the column the id-set
// constrains (also the grouping key for child rows).
type plan struct {
	query     SQLQuery
	table     string
	link      string
	filterCol schema.Prop
}

// planFor derives the plan for one level of the traversal. The incoming
// property is empty at level 0 (the id-set holds PKs of the query's own
// table) and a join property when recursing. An empty id-set
// short-circuits: no SQL is emitted and the plan is nil.
func planFor(s *schema.Schema, incoming schema.Prop, q Query, ids []int64, filters Filters, depth int) (*plan, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	table, err := TableFor(s, q)
	if err != nil {
		return nil, err
	}
	cols, err := ColumnsFor(s, q)
	if err != nil {
		return nil, err
	}
	p := &plan{
		table:     table,
		filterCol: s.IDProp(table),
	}
	from := table
	if incoming != "" {
		if j, ok := s.Join(incoming); ok {
			path := make([]schema.Prop, len(j.Path))
			for i, jp := range j.Path {
				path[i] = s.Sqlize(jp)
			}
			if j.ManyToMany() {
				// FROM target INNER JOIN link ON link.right = target.pk;
				// rows are constrained and regrouped by the link table's
				// parent-side column.
				link, right, target := path[1].Table(), path[2], path[3]
				from = fmt.Sprintf("%s INNER JOIN %s ON %s.%s = %s.%s",
					table, link, link, right.Column(), target.Table(), target.Column())
				p.link = link
				p.filterCol = path[1]
			} else {
				p.filterCol = path[1]
			}
		}
		// Non-root levels need the filter column in the SELECT list so
		// the assembler can group child rows by parent.
		cols = mergeProp(cols, p.filterCol)
	}

	specs := make([]string, len(cols))
	for i, c := range cols {
		specs[i] = ColumnSpec(s, c)
	}

	tables := []string{table}
	if p.link != "" {
		tables = append(tables, p.link)
	}
	fragment, params := filters.RowFilter(depth, tables...)

	in := fmt.Sprintf("%s.%s IN (%s)", p.filterCol.Table(), p.filterCol.Column(), renderIDs(ids))
	where := in
	if fragment != "" {
		where = fmt.Sprintf("(%s) AND %s", fragment, in)
	}
	p.query = SQLQuery{
		SQL:    fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(specs, ", "), from, where),
		Params: params,
	}
	return p, nil
}

// QueryFor emits the SQL for one level of the traversal. The boolean is
// false when the id-set is empty and no SQL applies.
func QueryFor(s *schema.Schema, incoming schema.Prop, q Query, ids []int64, filters Filters, depth int) (SQLQuery, bool, error) {
	p, err := planFor(s, incoming, q, ids, filters, depth)
	if err != nil || p == nil {
		return SQLQuery{}, false, err
	}
	return p.query, true, nil
}

// renderIDs renders the id-set as ascending comma-separated literals.
func renderIDs(ids []int64) string {
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// mergeProp inserts p into the sorted prop list if absent.
func mergeProp(cols []schema.Prop, p schema.Prop) []schema.Prop {
	i := sort.Search(len(cols), func(i int) bool { return cols[i] >= p })
	if i < len(cols) && cols[i] == p {
		return cols
	}
	cols = append(cols, "")
	copy(cols[i+1:], cols[i:])
	cols[i] = p
	return cols
}
