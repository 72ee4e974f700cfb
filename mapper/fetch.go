package mapper

import (
	"context"

	"github.com/syssam/strata"
	"github.com/syssam/strata/dialect"
	"github.com/syssam/strata/dialect/sql"
)

// Fetcher executes built queries against a read connection and
// reconstitutes rows into entities through a mapping and a binder.
type Fetcher[T any] struct {
	drv     dialect.Driver
	mapping *strata.Mapping
	binder  Binder[T]
}

// NewFetcher returns a Fetcher for the given driver, mapping and binder.
// The binder must cover every mapped property.
func NewFetcher[T any](drv dialect.Driver, m *strata.Mapping, b Binder[T]) (*Fetcher[T], error) {
	if err := b.validate(m); err != nil {
		return nil, err
	}
	return &Fetcher[T]{drv: drv, mapping: m, binder: b}, nil
}

// Select returns the base selector for the mapped table: all mapped
// columns, qualified by the mapping alias. Callers narrow it with
// predicates before fetching.
func (f *Fetcher[T]) Select() *sql.Selector {
	t := sql.Table(f.mapping.Table()).As(f.mapping.Alias())
	return sql.Dialect(f.drv.Dialect()).
		Select(t.Columns(f.mapping.Columns()...)...).
		From(t)
}

// Fetch executes the selector and returns a cursor over the matching
// entities. Zero matching rows yield an empty cursor, never an error.
func (f *Fetcher[T]) Fetch(ctx context.Context, selector *sql.Selector) (*Cursor[T], error) {
	query, args := selector.Query()
	if err := selector.Err(); err != nil {
		return nil, err
	}
	var rows sql.Rows
	if err := f.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	return &Cursor[T]{rows: rows, mapping: f.mapping, binder: f.binder}, nil
}

// All fetches and materializes every matching entity.
func (f *Fetcher[T]) All(ctx context.Context, selector *sql.Selector) ([]*T, error) {
	cur, err := f.Fetch(ctx, selector)
	if err != nil {
		return nil, err
	}
	return cur.All()
}

// Only fetches the entity matching the selector and fails if there is not
// exactly one: ErrNotFound on zero rows, ErrNotSingular on more than one.
// The caller's selector is left untouched.
func (f *Fetcher[T]) Only(ctx context.Context, selector *sql.Selector) (*T, error) {
	// Two rows are enough to prove non-singularity.
	cur, err := f.Fetch(ctx, selector.Clone().Limit(2))
	if err != nil {
		return nil, err
	}
	defer cur.Close()
	if !cur.Next() {
		if err := cur.Err(); err != nil {
			return nil, err
		}
		return nil, strata.NewNotFoundError(f.mapping.Label())
	}
	entity := cur.Entity()
	if cur.Next() {
		return nil, strata.NewNotSingularError(f.mapping.Label())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return entity, nil
}

// ByID fetches the single entity with the given primary key.
func (f *Fetcher[T]) ByID(ctx context.Context, id any) (*T, error) {
	selector := f.Select()
	selector.Where(sql.EQ(selector.C(f.mapping.ID()), id))
	e, err := f.Only(ctx, selector)
	if strata.IsNotFound(err) {
		return nil, strata.NewNotFoundErrorWithID(f.mapping.Label(), id)
	}
	return e, err
}

// Count executes a count-only variant of the selector instead of
// materializing rows.
func (f *Fetcher[T]) Count(ctx context.Context, selector *sql.Selector) (int, error) {
	count := selector.Clone().Count()
	query, args := count.Query()
	if err := count.Err(); err != nil {
		return 0, err
	}
	var rows sql.Rows
	if err := f.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, nil
	}
	var n int
	if err := rows.Scan(&n); err != nil {
		return 0, err
	}
	return n, rows.Err()
}

// Cursor is a lazy, forward-only sequence of entities. It produces an
// entity per Next call and is restartable only by re-executing the query.
type Cursor[T any] struct {
	rows    sql.Rows
	mapping *strata.Mapping
	binder  Binder[T]
	columns []string
	current *T
	err     error
	closed  bool
}

// Next advances to the next row, decoding it into a fresh entity.
// It returns false when the rows are exhausted or a decode error occurred;
// check Err after a false return.
func (c *Cursor[T]) Next() bool {
	if c.err != nil || c.closed {
		return false
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		c.Close()
		return false
	}
	if c.columns == nil {
		c.columns, c.err = c.rows.Columns()
		if c.err != nil {
			c.Close()
			return false
		}
	}
	entity := new(T)
	dests, err := c.binder.dests(c.mapping, entity, c.columns)
	if err != nil {
		c.err = err
		c.Close()
		return false
	}
	if err := c.rows.Scan(dests...); err != nil {
		c.err = err
		c.Close()
		return false
	}
	c.current = entity
	return true
}

// Entity returns the entity decoded by the last successful Next.
func (c *Cursor[T]) Entity() *T { return c.current }

// Err returns the first error encountered during iteration, if any.
func (c *Cursor[T]) Err() error { return c.err }

// Close releases the underlying rows. It is safe to call multiple times.
func (c *Cursor[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rows.Close()
}

// All drains the cursor into a slice and closes it. An empty result is a
// valid success and returns an empty, non-nil slice.
func (c *Cursor[T]) All() ([]*T, error) {
	defer c.Close()
	out := make([]*T, 0)
	for c.Next() {
		out = append(out, c.Entity())
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
