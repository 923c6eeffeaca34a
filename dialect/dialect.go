package dialect

import (
	"context"
)

// Dialect names for the supported drivers.
const (
	// Postgres is the PostgreSQL dialect.
	Postgres = "postgres"
	// MySQL is the MySQL/MariaDB dialect.
	MySQL = "mysql"
	// SQLite is the SQLite dialect, used as the embedded database flavor.
	SQLite = "sqlite"
	// Default selects the default behavior for dialect-dispatched operations.
	Default = "default"
)

// ExecQuerier wraps the two database operations the engine issues.
type ExecQuerier interface {
	// Exec executes a statement that returns no rows. The args are the
	// bound parameters, and v an optional *sql.Result destination.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows. The args are the bound
	// parameters, and v a *sql.Rows destination.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface database drivers implement.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx is the transaction interface returned by Driver.Tx.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}
