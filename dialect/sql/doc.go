// Package sql provides a dialect.Driver implementation backed by the
// standard database/sql package, plus optional wrappers for debug logging
// and query statistics.
//
// The driver is deliberately thin: it adapts *sql.DB / *sql.Tx to the
// dialect.ExecQuerier convention the graph engine uses, and classifies
// driver-specific constraint violations into portable predicates.
package sql
