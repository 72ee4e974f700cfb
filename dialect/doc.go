// Package dialect provides the database dialect abstraction for strata.
//
// This package defines the interfaces and constants used for
// database-specific operations, allowing strata to route statements to
// PostgreSQL, MySQL, and SQLite backends.
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The Tx interface wraps ExecQuerier with Commit and Rollback.
//
// # Debugging
//
// Debug wraps a driver so that every operation is logged with its latency
// through log/slog:
//
//	drv = dialect.Debug(drv, slog.Default())
//
// # Sub-packages
//
//   - dialect/sql: SQL query builders and the database/sql driver wrapper
package dialect
