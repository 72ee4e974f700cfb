package dialect

import (
	"context"
	"log/slog"
	"time"
)

// Dialect names.
const (
	// MySQL dialect.
	MySQL = "mysql"
	// SQLite dialect.
	SQLite = "sqlite"
	// Postgres dialect.
	Postgres = "postgres"
)

// ExecQuerier wraps the two standard database operations.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows. For example,
	// in SQL, INSERT or UPDATE.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows, typically a SELECT.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all database operations.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	// The provided context is used until the transaction is committed or rolled back.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps database transaction operations.
type Tx interface {
	ExecQuerier
	// Commit commits the transaction.
	Commit() error
	// Rollback discards the transaction.
	Rollback() error
}

type nopTx struct {
	Driver
}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

// NopTx returns a Tx with a no-op Commit / Rollback.
func NopTx(d Driver) Tx {
	return nopTx{d}
}

// DebugDriver is a driver that logs all driver operations.
type DebugDriver struct {
	Driver              // underlying driver.
	log    *slog.Logger // log function.
}

// Debug gets a driver and a logger, and returns a new debugged-driver that
// prints all outgoing operations with their latency.
func Debug(d Driver, logger *slog.Logger) Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugDriver{d, logger}
}

// Exec logs its params and calls the underlying driver Exec method.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "driver.Exec",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Query logs its params and calls the underlying driver Query method.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "driver.Query",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Tx adds a log-id for the transaction and calls the underlying driver Tx command.
func (d *DebugDriver) Tx(ctx context.Context) (Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	d.log.LogAttrs(ctx, slog.LevelDebug, "driver.Tx started")
	return &DebugTx{tx, d.log, ctx}, nil
}

// DebugTx is a transaction implementation that logs all transaction operations.
type DebugTx struct {
	Tx                 // underlying transaction.
	log *slog.Logger   // log function.
	ctx context.Context
}

// Exec logs its params and calls the underlying transaction Exec method.
func (d *DebugTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Tx.Exec(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "tx.Exec",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Query logs its params and calls the underlying transaction Query method.
func (d *DebugTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Tx.Query(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "tx.Query",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Commit logs the commit and calls the underlying transaction Commit method.
func (d *DebugTx) Commit() error {
	d.log.LogAttrs(d.ctx, slog.LevelDebug, "tx.Commit")
	return d.Tx.Commit()
}

// Rollback logs the rollback and calls the underlying transaction Rollback method.
func (d *DebugTx) Rollback() error {
	d.log.LogAttrs(d.ctx, slog.LevelDebug, "tx.Rollback")
	return d.Tx.Rollback()
}
