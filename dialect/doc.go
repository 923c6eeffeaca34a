// Package dialect provides the database dialect abstraction for the
// graph-query engine.
//
// The engine speaks to the database exclusively through the interfaces
// defined here, so any relational backend with a database/sql driver can
// serve it. The supported dialects are:
//
//   - Postgres: PostgreSQL database
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database (the embedded flavor)
//   - Default: fallback behavior for dialect-dispatched operations
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// The Driver interface wraps the operations the engine issues:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// Opening a connection:
//
//	import (
//	    "github.com/wilkerlucio/fulcro-sql/dialect"
//	    "github.com/wilkerlucio/fulcro-sql/dialect/sql"
//	)
//
//	db, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// The dialect/sql sub-package contains the database/sql-backed driver
// implementation, and dialect/sql/sqlgraph the graph traversal engine.
package dialect
