package sql

import "time"

// PredicateFunc is a constraint type for predicate functions.
// It allows typed fields to produce any predicate type that is based on
// func(*Selector), so entity packages can declare their own predicate
// aliases without conversion noise.
type PredicateFunc interface {
	~func(*Selector)
}

// StringField is a typed string field that provides predicate methods
// bound to the field's mapped column.
//
// Usage:
//
//	var Email = sql.StringField[predicate.User]("email")
//	query.Where(user.Email.EQ("a@b.com"))
type StringField[P PredicateFunc] string

// Name returns the field name.
func (f StringField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f StringField[P]) EQ(v string) P {
	return P(FieldEQ(string(f), v))
}

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f StringField[P]) NEQ(v string) P {
	return P(FieldNEQ(string(f), v))
}

// In returns a predicate that checks if the field value is in the given list.
func (f StringField[P]) In(vs ...string) P {
	return P(FieldIn(string(f), vs...))
}

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f StringField[P]) NotIn(vs ...string) P {
	return P(FieldNotIn(string(f), vs...))
}

// Contains returns a predicate that checks if the field contains the given substring.
func (f StringField[P]) Contains(v string) P {
	return P(FieldContains(string(f), v))
}

// ContainsFold returns a predicate that checks if the field contains the given substring (case-insensitive).
func (f StringField[P]) ContainsFold(v string) P {
	return P(FieldContainsFold(string(f), v))
}

// HasPrefix returns a predicate that checks if the field has the given prefix.
func (f StringField[P]) HasPrefix(v string) P {
	return P(FieldHasPrefix(string(f), v))
}

// HasSuffix returns a predicate that checks if the field has the given suffix.
func (f StringField[P]) HasSuffix(v string) P {
	return P(FieldHasSuffix(string(f), v))
}

// EqualFold returns a predicate that checks if the field equals the given value (case-insensitive).
func (f StringField[P]) EqualFold(v string) P {
	return P(FieldEqualFold(string(f), v))
}

// IsNull returns a predicate that checks if the field is NULL.
func (f StringField[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull returns a predicate that checks if the field is not NULL.
func (f StringField[P]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// Int64Field is a typed integer field that provides predicate methods
// bound to the field's mapped column.
type Int64Field[P PredicateFunc] string

// Name returns the field name.
func (f Int64Field[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f Int64Field[P]) EQ(v int64) P {
	return P(FieldEQ(string(f), v))
}

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f Int64Field[P]) NEQ(v int64) P {
	return P(FieldNEQ(string(f), v))
}

// In returns a predicate that checks if the field value is in the given list.
func (f Int64Field[P]) In(vs ...int64) P {
	return P(FieldIn(string(f), vs...))
}

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f Int64Field[P]) NotIn(vs ...int64) P {
	return P(FieldNotIn(string(f), vs...))
}

// GT returns a predicate that checks if the field is greater than the given value.
func (f Int64Field[P]) GT(v int64) P {
	return P(FieldGT(string(f), v))
}

// GTE returns a predicate that checks if the field is greater than or equal to the given value.
func (f Int64Field[P]) GTE(v int64) P {
	return P(FieldGTE(string(f), v))
}

// LT returns a predicate that checks if the field is less than the given value.
func (f Int64Field[P]) LT(v int64) P {
	return P(FieldLT(string(f), v))
}

// LTE returns a predicate that checks if the field is less than or equal to the given value.
func (f Int64Field[P]) LTE(v int64) P {
	return P(FieldLTE(string(f), v))
}

// IsNull returns a predicate that checks if the field is NULL.
func (f Int64Field[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull returns a predicate that checks if the field is not NULL.
func (f Int64Field[P]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// BoolField is a typed boolean field that provides predicate methods
// bound to the field's mapped column.
type BoolField[P PredicateFunc] string

// Name returns the field name.
func (f BoolField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f BoolField[P]) EQ(v bool) P {
	return P(FieldEQ(string(f), v))
}

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f BoolField[P]) NEQ(v bool) P {
	return P(FieldNEQ(string(f), v))
}

// IsNull returns a predicate that checks if the field is NULL.
func (f BoolField[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull returns a predicate that checks if the field is not NULL.
func (f BoolField[P]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// TimeField is a typed time field that provides predicate methods bound to
// the field's mapped column.
type TimeField[P PredicateFunc] string

// Name returns the field name.
func (f TimeField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f TimeField[P]) EQ(v time.Time) P {
	return P(FieldEQ(string(f), v))
}

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f TimeField[P]) NEQ(v time.Time) P {
	return P(FieldNEQ(string(f), v))
}

// GT returns a predicate that checks if the field is after the given value.
func (f TimeField[P]) GT(v time.Time) P {
	return P(FieldGT(string(f), v))
}

// GTE returns a predicate that checks if the field is at or after the given value.
func (f TimeField[P]) GTE(v time.Time) P {
	return P(FieldGTE(string(f), v))
}

// LT returns a predicate that checks if the field is before the given value.
func (f TimeField[P]) LT(v time.Time) P {
	return P(FieldLT(string(f), v))
}

// LTE returns a predicate that checks if the field is at or before the given value.
func (f TimeField[P]) LTE(v time.Time) P {
	return P(FieldLTE(string(f), v))
}

// IsNull returns a predicate that checks if the field is NULL.
func (f TimeField[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull returns a predicate that checks if the field is not NULL.
func (f TimeField[P]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// FieldInGeneric is a generic version of FieldIn for use with typed fields.
func FieldInGeneric[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) {
		v := make([]any, len(vs))
		for i := range vs {
			v[i] = vs[i]
		}
		s.Where(In(s.C(name), v...))
	}
}

// FieldNotInGeneric is a generic version of FieldNotIn for use with typed fields.
func FieldNotInGeneric[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) {
		v := make([]any, len(vs))
		for i := range vs {
			v[i] = vs[i]
		}
		s.Where(NotIn(s.C(name), v...))
	}
}
