package schema

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// Prop is a namespaced graph or SQL property of the form "space/leaf",
// e.g. "account/name". The bare "id" and "db/id" forms are sentinels
// meaning "the primary key of the inferred table".
type Prop string

// IDSentinel and DBIDSentinel are the two spellings of the PK sentinel.
const (
	IDSentinel   Prop = "id"
	DBIDSentinel Prop = "db/id"
)

// Space returns the namespace part of the property, or "" when the
// property is not namespaced.
func (p Prop) Space() string {
	if i := strings.IndexByte(string(p), '/'); i >= 0 {
		return string(p)[:i]
	}
	return ""
}

// Leaf returns the name part of the property.
func (p Prop) Leaf() string {
	if i := strings.IndexByte(string(p), '/'); i >= 0 {
		return string(p)[i+1:]
	}
	return string(p)
}

// IsID reports whether the property is one of the PK sentinels.
func (p Prop) IsID() bool {
	return p == IDSentinel || p == DBIDSentinel
}

// Table returns the SQL table the property belongs to: its space with
// dashes normalized to underscores.
func (p Prop) Table() string {
	return sqlizeName(p.Space())
}

// Column returns the SQL column of the property: its leaf with dashes
// normalized to underscores.
func (p Prop) Column() string {
	return sqlizeName(p.Leaf())
}

// MakeProp joins a table and a column into a SQL property.
func MakeProp(table, column string) Prop {
	return Prop(table + "/" + column)
}

// sqlizer converts a graph property into SQL identifier form.
type sqlizer func(Prop) Prop

// defaultSqlize replaces dashes with underscores in both parts and
// snake-cases camelCase leaves, so "person/firstName" and
// "person/first-name" land on the same SQL property. All supported
// drivers share it.
func defaultSqlize(p Prop) Prop {
	if p.IsID() {
		return p
	}
	return MakeProp(p.Table(), p.Column())
}

func sqlizeName(s string) string {
	s = strings.ReplaceAll(s, "-", "_")
	return inflect.Underscore(s)
}

// sqlizers holds the per-dialect overrides. The default strategy covers
// every supported driver; the table exists so a dialect can diverge
// without touching callers.
var sqlizers = map[string]sqlizer{}

// Sqlize canonicalizes a caller property into SQL identifier form,
// dispatching on the schema's driver flavor.
func (s *Schema) Sqlize(p Prop) Prop {
	if fn, ok := sqlizers[s.driver]; ok {
		return fn(p)
	}
	return defaultSqlize(p)
}
