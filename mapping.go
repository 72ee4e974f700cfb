package strata

import (
	"github.com/go-openapi/inflect"
)

// Field is a single property-to-column pair in a field map.
type Field struct {
	Property string
	Column   string
}

// FieldMap is an ordered, bidirectional translation table between domain
// object property names and physical column names. Both sides are unique.
// A FieldMap is immutable after construction.
type FieldMap struct {
	props  []string
	cols   []string
	toCol  map[string]string
	toProp map[string]string
}

// NewFieldMap builds a FieldMap from the given ordered pairs. It fails with
// a MappingError on empty or duplicate names on either side.
func NewFieldMap(fields ...Field) (*FieldMap, error) {
	fm := &FieldMap{
		props:  make([]string, 0, len(fields)),
		cols:   make([]string, 0, len(fields)),
		toCol:  make(map[string]string, len(fields)),
		toProp: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		switch {
		case f.Property == "":
			return nil, NewMappingError("", f.Column, "empty property name")
		case f.Column == "":
			return nil, NewMappingError("", f.Property, "empty column name")
		}
		if _, ok := fm.toCol[f.Property]; ok {
			return nil, NewMappingError("", f.Property, "duplicate property")
		}
		if _, ok := fm.toProp[f.Column]; ok {
			return nil, NewMappingError("", f.Column, "duplicate column")
		}
		fm.props = append(fm.props, f.Property)
		fm.cols = append(fm.cols, f.Column)
		fm.toCol[f.Property] = f.Column
		fm.toProp[f.Column] = f.Property
	}
	return fm, nil
}

// Column returns the column mapped to the given property.
func (fm *FieldMap) Column(property string) (string, error) {
	c, ok := fm.toCol[property]
	if !ok {
		return "", NewMappingError("", property, "property has no mapped column")
	}
	return c, nil
}

// Property returns the property mapped to the given column.
func (fm *FieldMap) Property(column string) (string, error) {
	p, ok := fm.toProp[column]
	if !ok {
		return "", NewMappingError("", column, "column has no mapped property")
	}
	return p, nil
}

// HasProperty reports whether the property is mapped.
func (fm *FieldMap) HasProperty(property string) bool {
	_, ok := fm.toCol[property]
	return ok
}

// HasColumn reports whether the column is mapped.
func (fm *FieldMap) HasColumn(column string) bool {
	_, ok := fm.toProp[column]
	return ok
}

// Properties returns the property names in declaration order.
func (fm *FieldMap) Properties() []string {
	out := make([]string, len(fm.props))
	copy(out, fm.props)
	return out
}

// Columns returns the column names in declaration order.
func (fm *FieldMap) Columns() []string {
	out := make([]string, len(fm.cols))
	copy(out, fm.cols)
	return out
}

// Len returns the number of mapped fields.
func (fm *FieldMap) Len() int { return len(fm.props) }

// MappingSpec declares how an entity type maps onto a relation. Table and
// Alias may be left empty to be derived from the label.
type MappingSpec struct {
	// Table is the physical relation name. Derived from the label
	// (underscored, pluralized) when empty.
	Table string
	// Alias is the short identifier used in generated SQL. Defaults to the
	// first letter of the table name when empty.
	Alias string
	// ID is the primary key column. Required, and must be mapped.
	ID string
	// Fields is the ordered property-to-column translation table.
	Fields []Field
	// ReadOnly lists columns excluded from write statements, such as
	// generated keys and audit timestamps. Each must be mapped.
	ReadOnly []string
}

// Mapping is the static per-entity-type descriptor: table, alias, primary
// key and the field translation table. Constructed once per entity type and
// never mutated afterwards.
type Mapping struct {
	label    string
	table    string
	alias    string
	id       string
	fields   *FieldMap
	readOnly map[string]struct{}
}

// NewMapping validates the spec and builds an immutable descriptor.
// All validation failures are MappingErrors raised here, eagerly, so that a
// malformed descriptor can never reach query construction.
func NewMapping(label string, spec MappingSpec) (*Mapping, error) {
	if label == "" {
		return nil, NewMappingError("", "", "empty entity label")
	}
	fm, err := NewFieldMap(spec.Fields...)
	if err != nil {
		return nil, err
	}
	if fm.Len() == 0 {
		return nil, NewMappingError(label, "", "no mapped fields")
	}
	table := spec.Table
	if table == "" {
		table = TableName(label)
	}
	alias := spec.Alias
	if alias == "" {
		alias = table[:1]
	}
	if spec.ID == "" {
		return nil, NewMappingError(label, "", "missing primary key column")
	}
	if !fm.HasColumn(spec.ID) {
		return nil, NewMappingError(label, spec.ID, "primary key column is not mapped")
	}
	ro := make(map[string]struct{}, len(spec.ReadOnly))
	for _, c := range spec.ReadOnly {
		if !fm.HasColumn(c) {
			return nil, NewMappingError(label, c, "read-only column is not mapped")
		}
		ro[c] = struct{}{}
	}
	return &Mapping{
		label:    label,
		table:    table,
		alias:    alias,
		id:       spec.ID,
		fields:   fm,
		readOnly: ro,
	}, nil
}

// Label returns the entity label the descriptor was registered under.
func (m *Mapping) Label() string { return m.label }

// Table returns the physical relation name.
func (m *Mapping) Table() string { return m.table }

// Alias returns the alias used in generated SQL.
func (m *Mapping) Alias() string { return m.alias }

// ID returns the primary key column.
func (m *Mapping) ID() string { return m.id }

// IDProperty returns the property mapped to the primary key column.
func (m *Mapping) IDProperty() string {
	p, _ := m.fields.Property(m.id)
	return p
}

// Fields returns the field translation table.
func (m *Mapping) Fields() *FieldMap { return m.fields }

// Column translates a property name to its column, carrying the entity
// label on failure.
func (m *Mapping) Column(property string) (string, error) {
	c, ok := m.fields.toCol[property]
	if !ok {
		return "", NewMappingError(m.label, property, "property has no mapped column")
	}
	return c, nil
}

// Property translates a column name to its property, carrying the entity
// label on failure.
func (m *Mapping) Property(column string) (string, error) {
	p, ok := m.fields.toProp[column]
	if !ok {
		return "", NewMappingError(m.label, column, "column has no mapped property")
	}
	return p, nil
}

// Columns returns all mapped columns in declaration order.
func (m *Mapping) Columns() []string { return m.fields.Columns() }

// ReadOnly reports whether the column is excluded from write statements.
func (m *Mapping) ReadOnly(column string) bool {
	_, ok := m.readOnly[column]
	return ok
}

// WritableColumns returns the mapped columns that participate in write
// statements, in declaration order.
func (m *Mapping) WritableColumns() []string {
	cols := make([]string, 0, m.fields.Len())
	for _, c := range m.fields.cols {
		if _, ok := m.readOnly[c]; ok {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// TableName derives a table name from an entity label: underscored and
// pluralized, e.g. "UserGroup" becomes "user_groups".
func TableName(label string) string {
	return inflect.Pluralize(inflect.Underscore(label))
}
