package mapper

import (
	"github.com/syssam/strata"
)

// Binder exposes the fields of an entity type to the executors without
// reflection. It maps each mapped property name to an accessor returning a
// pointer to that field. The pointer doubles as a scan destination on reads
// and as a bound statement argument on writes; database/sql dereferences
// pointer arguments through its default value converter.
//
//	binder := mapper.Binder[User]{
//		"id":      func(u *User) any { return &u.ID },
//		"email":   func(u *User) any { return &u.Email },
//		"enabled": func(u *User) any { return &u.Enabled },
//	}
type Binder[T any] map[string]func(*T) any

// validate checks that every property the mapping declares has an accessor.
// A missing accessor is a configuration error raised at construction, never
// at query time.
func (b Binder[T]) validate(m *strata.Mapping) error {
	for _, prop := range m.Fields().Properties() {
		if _, ok := b[prop]; !ok {
			return strata.NewMappingError(m.Label(), prop, "no binder accessor for property")
		}
	}
	return nil
}

// field returns the pointer to the field holding the given property.
func (b Binder[T]) field(m *strata.Mapping, e *T, property string) (any, error) {
	fn, ok := b[property]
	if !ok {
		return nil, strata.NewMappingError(m.Label(), property, "no binder accessor for property")
	}
	return fn(e), nil
}

// dests resolves scan destinations for the given result columns, applying
// the field map in reverse (column to property).
func (b Binder[T]) dests(m *strata.Mapping, e *T, columns []string) ([]any, error) {
	out := make([]any, 0, len(columns))
	for _, col := range columns {
		prop, err := m.Property(col)
		if err != nil {
			return nil, err
		}
		dest, err := b.field(m, e, prop)
		if err != nil {
			return nil, err
		}
		out = append(out, dest)
	}
	return out, nil
}

// values resolves bound statement arguments for the given columns.
func (b Binder[T]) values(m *strata.Mapping, e *T, columns []string) ([]any, error) {
	return b.dests(m, e, columns)
}
