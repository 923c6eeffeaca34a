// Package seed inserts fixture rows whose identifiers are symbolic
// placeholders, resolved to database-allocated primary keys and
// back-patched through the whole instruction set. It exists for test
// fixtures; production writes are out of the engine's scope.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/wilkerlucio/fulcro-sql/dialect"
	sqldialect "github.com/wilkerlucio/fulcro-sql/dialect/sql"
	"github.com/wilkerlucio/fulcro-sql/schema"
)

// DevEnv is the environment toggle that randomizes the first allocated
// id per table. With it set, seeded rows in different tables stop
// sharing identical small ids, which would otherwise mask cross-table
// mixups in queries.
const DevEnv = "FULCRO_SQL_DEV"

// Placeholder is a symbolic id. Used in a PK slot it defines the
// placeholder; used in any value slot it references the id the
// definition resolved to.
type Placeholder string

// Instruction is one seeding step.
type Instruction struct {
	table  string
	id     any
	value  map[string]any
	update bool
}

// Row returns an insert instruction. The value may carry a Placeholder
// in the PK slot and Placeholder references in value columns.
func Row(table string, value map[string]any) Instruction {
	return Instruction{table: table, value: value}
}

// Update returns an update instruction for a previously seeded row. The
// id may be a Placeholder.
func Update(table string, id any, value map[string]any) Instruction {
	return Instruction{table: table, id: id, value: value, update: true}
}

// DuplicatePlaceholderError is returned when two insert instructions
// define the same placeholder.
type DuplicatePlaceholderError struct {
	Placeholder Placeholder
}

// Error returns the error string.
func (e *DuplicatePlaceholderError) Error() string {
	return fmt.Sprintf("seed: placeholder %q defined twice", e.Placeholder)
}

// Seeder executes seeding instruction sets against one database.
type Seeder struct {
	drv    dialect.Driver
	schema *schema.Schema
	nextID nextIDFunc
}

// New returns a seeder for the given driver and schema. The id
// allocation strategy is dispatched on the schema's driver flavor.
func New(drv dialect.Driver, s *schema.Schema) *Seeder {
	sd := &Seeder{drv: drv, schema: s}
	switch s.Driver() {
	case dialect.MySQL, dialect.SQLite:
		sd.nextID = newCountingAllocator(drv)
	default:
		// Postgres and the default flavor read the table's sequence.
		sd.nextID = sequenceNextID(drv)
	}
	return sd
}

// Run executes the instructions in order. Placeholders in PK slots are
// resolved to real ids first, then substituted into every value
// position; unresolved placeholders pass through unchanged. The
// returned mapping holds every placeholder's allocated id.
func (sd *Seeder) Run(ctx context.Context, instructions []Instruction) (map[Placeholder]int64, error) {
	resolved := make(map[Placeholder]int64)
	for _, ins := range instructions {
		if ins.update {
			continue
		}
		pk := sd.schema.PK(ins.table)
		ph, ok := ins.value[pk].(Placeholder)
		if !ok {
			continue
		}
		if _, dup := resolved[ph]; dup {
			return nil, &DuplicatePlaceholderError{Placeholder: ph}
		}
		id, err := sd.nextID(ctx, ins.table, pk)
		if err != nil {
			return nil, fmt.Errorf("seed: allocate id for %s: %w", ins.table, err)
		}
		resolved[ph] = id
	}
	for _, ins := range instructions {
		value := substitute(ins.value, resolved)
		if ins.update {
			id := resolve(ins.id, resolved)
			if err := sd.execUpdate(ctx, ins.table, id, value); err != nil {
				return nil, err
			}
			continue
		}
		if err := sd.execInsert(ctx, ins.table, value); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func (sd *Seeder) execInsert(ctx context.Context, table string, value map[string]any) error {
	cols := sortedKeys(value)
	args := make([]any, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		args[i] = value[c]
		marks[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	if err := sd.drv.Exec(ctx, query, args, nil); err != nil {
		if sqldialect.IsConstraintError(err) {
			return fmt.Errorf("seed: insert into %s conflicts with existing fixtures: %w", table, err)
		}
		return err
	}
	return nil
}

func (sd *Seeder) execUpdate(ctx context.Context, table string, id any, value map[string]any) error {
	cols := sortedKeys(value)
	args := make([]any, 0, len(cols)+1)
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
		args = append(args, value[c])
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		table, strings.Join(sets, ", "), sd.schema.PK(table))
	return sd.drv.Exec(ctx, query, args, nil)
}

// substitute replaces resolved placeholder references in a value map.
func substitute(value map[string]any, resolved map[Placeholder]int64) map[string]any {
	out := make(map[string]any, len(value))
	for k, v := range value {
		out[k] = resolve(v, resolved)
	}
	return out
}

func resolve(v any, resolved map[Placeholder]int64) any {
	if ph, ok := v.(Placeholder); ok {
		if id, ok := resolved[ph]; ok {
			return id
		}
	}
	return v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// nextIDFunc allocates the next primary key for a table.
type nextIDFunc func(ctx context.Context, table, pk string) (int64, error)

// sequenceNextID reads the table's serial sequence, burning a random
// handful of ids per table first when DevEnv is set.
func sequenceNextID(drv dialect.Driver) nextIDFunc {
	burned := make(map[string]bool)
	return func(ctx context.Context, table, pk string) (int64, error) {
		extra := 0
		if devMode() && !burned[table] {
			burned[table] = true
			extra = rand.Intn(20)
		}
		var id int64
		for i := 0; i <= extra; i++ {
			var err error
			id, err = queryOneInt(ctx, drv, fmt.Sprintf("SELECT nextval('%s_%s_seq')", table, pk))
			if err != nil {
				return 0, err
			}
		}
		return id, nil
	}
}

// newCountingAllocator seeds a per-table counter from MAX(pk) and hands
// out monotonically increasing ids from there. MySQL and SQLite have no
// standalone sequences to consult; for fixture seeding a per-process
// counter suffices.
func newCountingAllocator(drv dialect.Driver) nextIDFunc {
	next := make(map[string]int64)
	return func(ctx context.Context, table, pk string) (int64, error) {
		if _, ok := next[table]; !ok {
			max, err := queryOneInt(ctx, drv, fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", pk, table))
			if err != nil {
				return 0, err
			}
			next[table] = max
			if devMode() {
				next[table] += int64(rand.Intn(20))
			}
		}
		next[table]++
		return next[table], nil
	}
}

func devMode() bool {
	_, ok := os.LookupEnv(DevEnv)
	return ok
}

func queryOneInt(ctx context.Context, drv dialect.Driver, query string) (int64, error) {
	var rows sqldialect.Rows
	if err := drv.Query(ctx, query, []any{}, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("seed: %q returned no rows", query)
	}
	var n int64
	if err := rows.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
