package mapper

import (
	"context"
	"database/sql/driver"
	"reflect"

	"github.com/google/uuid"

	"github.com/syssam/strata"
	"github.com/syssam/strata/dialect"
	"github.com/syssam/strata/dialect/sql"
)

// KeyGenerator produces a primary key value before an insert, for schemas
// where keys are assigned by the application rather than the database.
type KeyGenerator func() (any, error)

// UUIDKeys returns a KeyGenerator producing random UUID strings.
func UUIDKeys() KeyGenerator {
	return func() (any, error) {
		id, err := uuid.NewRandom()
		if err != nil {
			return nil, err
		}
		return id.String(), nil
	}
}

// Writer persists entities through a write connection. The operation kind
// is chosen by primary key presence: an unset key inserts, a set key
// updates. Read-only columns never appear in the write payload.
type Writer[T any] struct {
	drv     dialect.Driver
	mapping *strata.Mapping
	binder  Binder[T]
	keygen  KeyGenerator
}

// WriterOption configures a Writer.
type WriterOption[T any] func(*Writer[T])

// WithKeyGenerator makes the writer assign application-generated keys on
// insert instead of reading back a database-assigned one.
func WithKeyGenerator[T any](gen KeyGenerator) WriterOption[T] {
	return func(w *Writer[T]) { w.keygen = gen }
}

// NewWriter returns a Writer for the given driver, mapping and binder.
func NewWriter[T any](drv dialect.Driver, m *strata.Mapping, b Binder[T], opts ...WriterOption[T]) (*Writer[T], error) {
	if err := b.validate(m); err != nil {
		return nil, err
	}
	w := &Writer[T]{drv: drv, mapping: m, binder: b}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Save persists the entity in a single atomic statement and returns its
// identifier: the newly assigned key on insert, the existing key on update.
func (w *Writer[T]) Save(ctx context.Context, entity *T) (any, error) {
	key, err := w.binder.field(w.mapping, entity, w.mapping.IDProperty())
	if err != nil {
		return nil, err
	}
	if keyIsSet(key) {
		return w.update(ctx, entity, key)
	}
	return w.insert(ctx, entity, key)
}

func (w *Writer[T]) insert(ctx context.Context, entity *T, key any) (any, error) {
	columns := w.mapping.WritableColumns()
	if w.keygen != nil {
		id, err := w.keygen()
		if err != nil {
			return nil, err
		}
		if err := assignKey(key, id); err != nil {
			return nil, strata.NewMappingError(w.mapping.Label(), w.mapping.IDProperty(), err.Error())
		}
		if !contains(columns, w.mapping.ID()) {
			columns = append([]string{w.mapping.ID()}, columns...)
		}
	} else {
		columns = without(columns, w.mapping.ID())
	}
	values, err := w.binder.values(w.mapping, entity, columns)
	if err != nil {
		return nil, err
	}
	ins := sql.Dialect(w.drv.Dialect()).
		Insert(w.mapping.Table()).
		Columns(columns...).
		Values(values...)
	if w.keygen == nil && w.drv.Dialect() != dialect.MySQL {
		// Read the database-assigned key back in the same statement.
		ins.Returning(w.mapping.ID())
		query, args := ins.Query()
		if err := ins.Err(); err != nil {
			return nil, err
		}
		var rows sql.Rows
		if err := w.drv.Query(ctx, query, args, &rows); err != nil {
			return nil, err
		}
		defer rows.Close()
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return nil, err
			}
			return nil, strata.NewExecutionError(query, sqlErrNoReturnedKey)
		}
		if err := rows.Scan(key); err != nil {
			return nil, err
		}
		return deref(key), rows.Err()
	}
	query, args := ins.Query()
	if err := ins.Err(); err != nil {
		return nil, err
	}
	if w.keygen != nil {
		if err := w.drv.Exec(ctx, query, args, nil); err != nil {
			return nil, err
		}
		return deref(key), nil
	}
	var res sql.Result
	if err := w.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := assignKey(key, id); err != nil {
		return nil, strata.NewMappingError(w.mapping.Label(), w.mapping.IDProperty(), err.Error())
	}
	return deref(key), nil
}

func (w *Writer[T]) update(ctx context.Context, entity *T, key any) (any, error) {
	columns := without(w.mapping.WritableColumns(), w.mapping.ID())
	if len(columns) == 0 {
		// Every non-key column is read-only; there is nothing to write.
		return deref(key), nil
	}
	values, err := w.binder.values(w.mapping, entity, columns)
	if err != nil {
		return nil, err
	}
	upd := sql.Dialect(w.drv.Dialect()).Update(w.mapping.Table())
	for i, col := range columns {
		upd.Set(col, values[i])
	}
	upd.Where(sql.EQ(w.mapping.ID(), key))
	query, args := upd.Query()
	if err := upd.Err(); err != nil {
		return nil, err
	}
	if err := w.drv.Exec(ctx, query, args, nil); err != nil {
		return nil, err
	}
	return deref(key), nil
}

var sqlErrNoReturnedKey = errNoReturnedKey{}

type errNoReturnedKey struct{}

func (errNoReturnedKey) Error() string { return "insert returned no key" }

// keyIsSet reports whether the primary key field behind the pointer holds
// a value. The zero value of the key type reads as unset.
func keyIsSet(ptr any) bool {
	switch v := ptr.(type) {
	case *int:
		return *v != 0
	case *int32:
		return *v != 0
	case *int64:
		return *v != 0
	case *uint64:
		return *v != 0
	case *string:
		return *v != ""
	case *uuid.UUID:
		return *v != uuid.Nil
	case driver.Valuer:
		val, err := v.Value()
		return err == nil && val != nil
	default:
		rv := reflect.ValueOf(ptr)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return false
		}
		return !rv.Elem().IsZero()
	}
}

// assignKey writes a generated or database-assigned identifier through the
// primary key field pointer.
func assignKey(ptr, id any) error {
	switch v := ptr.(type) {
	case *int64:
		switch n := id.(type) {
		case int64:
			*v = n
			return nil
		case int:
			*v = int64(n)
			return nil
		}
	case *int:
		switch n := id.(type) {
		case int64:
			*v = int(n)
			return nil
		case int:
			*v = n
			return nil
		}
	case *int32:
		switch n := id.(type) {
		case int64:
			*v = int32(n)
			return nil
		case int:
			*v = int32(n)
			return nil
		}
	case *uint64:
		switch n := id.(type) {
		case int64:
			*v = uint64(n)
			return nil
		case int:
			*v = uint64(n)
			return nil
		}
	case *string:
		if s, ok := id.(string); ok {
			*v = s
			return nil
		}
	case *uuid.UUID:
		if s, ok := id.(string); ok {
			parsed, err := uuid.Parse(s)
			if err != nil {
				return err
			}
			*v = parsed
			return nil
		}
	}
	return errKeyAssign{ptr: ptr, id: id}
}

type errKeyAssign struct{ ptr, id any }

func (e errKeyAssign) Error() string {
	return "cannot assign key of type " + reflect.TypeOf(e.id).String() +
		" to field of type " + reflect.TypeOf(e.ptr).String()
}

func deref(ptr any) any {
	switch v := ptr.(type) {
	case *int:
		return *v
	case *int32:
		return *v
	case *int64:
		return *v
	case *uint64:
		return *v
	case *string:
		return *v
	case *uuid.UUID:
		return *v
	default:
		rv := reflect.ValueOf(ptr)
		if rv.Kind() == reflect.Pointer && !rv.IsNil() {
			return rv.Elem().Interface()
		}
		return ptr
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func without(ss []string, s string) []string {
	out := make([]string, 0, len(ss))
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
