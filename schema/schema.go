package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wilkerlucio/fulcro-sql/dialect"
)

// Arity says how many rows a join resolves to on the target side.
type Arity int

const (
	// ToMany joins resolve to a list of rows. It is the default.
	ToMany Arity = iota
	// ToOne joins resolve to at most one row.
	ToOne
)

// String returns the arity name.
func (a Arity) String() string {
	if a == ToOne {
		return "to-one"
	}
	return "to-many"
}

// Join describes how rows in two tables relate. Path holds 2 SQL
// properties for a direct join (source-side column, target-side column)
// or 4 for a many-to-many join through a link table (source PK, link
// left column, link right column, target PK).
type Join struct {
	Path  []Prop
	Arity Arity
}

// ManyToMany reports whether the join goes through a link table.
func (j Join) ManyToMany() bool { return len(j.Path) == 4 }

// Config is the raw material a Schema is built from. All three mapping
// tables must be declared, even when empty: an absent table is a
// programmer error, not an empty mapping.
type Config struct {
	// Driver is the dialect flavor: dialect.Postgres, dialect.MySQL,
	// dialect.SQLite or dialect.Default. Empty means dialect.Default.
	Driver string
	// GraphToSQL remaps caller properties to SQL properties before any
	// other derivation, e.g. person/name -> member/name.
	GraphToSQL map[Prop]Prop
	// PKs maps a table to its primary key column. Absent tables default
	// to "id".
	PKs map[string]string
	// Joins maps a join property to its descriptor.
	Joins map[Prop]Join
}

// Schema is the validated, immutable form of a Config.
type Schema struct {
	driver     string
	graphToSQL map[Prop]Prop
	sqlToGraph map[Prop]Prop
	pks        map[string]string
	joins      map[Prop]Join
}

// ValidationError reports an invalid schema part. Schema construction is
// the programmer-error boundary: a failing Config is a bug in the caller.
type ValidationError struct {
	Part    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema: invalid %s: %s", e.Part, e.Message)
}

// New validates the config and returns an immutable schema.
func New(cfg Config) (*Schema, error) {
	if cfg.GraphToSQL == nil {
		return nil, &ValidationError{Part: "graph->sql", Message: "mapping must be declared"}
	}
	if cfg.PKs == nil {
		return nil, &ValidationError{Part: "pks", Message: "mapping must be declared"}
	}
	if cfg.Joins == nil {
		return nil, &ValidationError{Part: "joins", Message: "mapping must be declared"}
	}
	driver := cfg.Driver
	if driver == "" {
		driver = dialect.Default
	}
	switch driver {
	case dialect.Postgres, dialect.MySQL, dialect.SQLite, dialect.Default:
	default:
		return nil, &ValidationError{Part: "driver", Message: fmt.Sprintf("unknown driver flavor %q", driver)}
	}
	for table, pk := range cfg.PKs {
		if strings.ContainsAny(pk, "/.") {
			return nil, &ValidationError{
				Part:    "pks",
				Message: fmt.Sprintf("pk of table %q must be a bare column name, got %q", table, pk),
			}
		}
	}
	for jp, j := range cfg.Joins {
		if jp.Space() == "" {
			return nil, &ValidationError{
				Part:    "joins",
				Message: fmt.Sprintf("join property %q must be namespaced", jp),
			}
		}
		if n := len(j.Path); n != 2 && n != 4 {
			return nil, &ValidationError{
				Part:    "joins",
				Message: fmt.Sprintf("join %q must have 2 or 4 path entries, got %d", jp, n),
			}
		}
		for _, p := range j.Path {
			if p.Space() == "" {
				return nil, &ValidationError{
					Part:    "joins",
					Message: fmt.Sprintf("join %q path entry %q must be namespaced", jp, p),
				}
			}
		}
	}
	s := &Schema{
		driver:     driver,
		graphToSQL: make(map[Prop]Prop, len(cfg.GraphToSQL)),
		sqlToGraph: make(map[Prop]Prop, len(cfg.GraphToSQL)),
		pks:        make(map[string]string, len(cfg.PKs)),
		joins:      make(map[Prop]Join, len(cfg.Joins)),
	}
	for g, q := range cfg.GraphToSQL {
		s.graphToSQL[g] = q
		s.sqlToGraph[q] = g
	}
	for t, pk := range cfg.PKs {
		s.pks[t] = pk
	}
	for jp, j := range cfg.Joins {
		path := make([]Prop, len(j.Path))
		copy(path, j.Path)
		s.joins[jp] = Join{Path: path, Arity: j.Arity}
	}
	return s, nil
}

// MustNew is like New but panics on a validation error. Intended for
// fixtures and package-level schema values.
func MustNew(cfg Config) *Schema {
	s, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// Driver returns the dialect flavor of the schema.
func (s *Schema) Driver() string { return s.driver }

// GraphToSQL applies the graph->sql remap if present, else identity,
// then canonicalizes to SQL identifier form.
func (s *Schema) GraphToSQL(p Prop) Prop {
	if q, ok := s.graphToSQL[p]; ok {
		p = q
	}
	return s.Sqlize(p)
}

// SQLToGraph is the inverse of GraphToSQL on the remapped subset, and
// identity elsewhere.
func (s *Schema) SQLToGraph(p Prop) Prop {
	if g, ok := s.sqlToGraph[p]; ok {
		return g
	}
	return p
}

// PK returns the primary key column of the table, defaulting to "id".
func (s *Schema) PK(table string) string {
	if pk, ok := s.pks[table]; ok {
		return pk
	}
	return "id"
}

// IDProp returns the SQL property of the table's primary key, of the
// form "table/pk".
func (s *Schema) IDProp(table string) Prop {
	return MakeProp(table, s.PK(table))
}

// Join returns the descriptor of the join property, if any.
func (s *Schema) Join(p Prop) (Join, bool) {
	j, ok := s.joins[s.remap(p)]
	if !ok {
		j, ok = s.joins[p]
	}
	return j, ok
}

// remap applies the graph->sql remap without normalizing.
func (s *Schema) remap(p Prop) Prop {
	if q, ok := s.graphToSQL[p]; ok {
		return q
	}
	return p
}

// IDColumns returns one PK property per table declared in pks, sorted.
func (s *Schema) IDColumns() []Prop {
	cols := make([]Prop, 0, len(s.pks))
	for t := range s.pks {
		cols = append(cols, s.IDProp(t))
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })
	return cols
}
