package sql

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/syssam/strata/dialect"
)

// Querier wraps the Query method. It is implemented by all statement
// builders in this package.
type Querier interface {
	// Query returns the rendered statement and its bound arguments.
	Query() (string, []any)
}

// Builder is the base query builder shared by all statement builders.
// It tracks the dialect, the rendered text and the bound arguments.
// Values always go through Arg and become placeholders; they are never
// written into the statement text.
type Builder struct {
	sb      strings.Builder
	dialect string
	args    []any
	total   int // total placeholders, for $n numbering
	errs    []error
}

// Quote quotes the given identifier according to the dialect.
func (b *Builder) Quote(ident string) string {
	quote := "`"
	if b.postgres() {
		quote = `"`
	}
	return quote + ident + quote
}

// Ident appends the given string as an identifier. Qualified names
// ("u.email") are quoted part by part; "*" and simple function
// expressions such as COUNT(*) are written as-is. Anything else is
// rejected with a build error: a name never carries query structure.
func (b *Builder) Ident(s string) *Builder {
	switch {
	case s == "":
	case s == "*":
		b.WriteString(s)
	case isIdent(s):
		parts := strings.Split(s, ".")
		for _, p := range parts {
			if !isSafeIdent(p) {
				b.AddError(fmt.Errorf("sql: invalid identifier %q", s))
				return b
			}
		}
		for i, p := range parts {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(b.Quote(p))
		}
	case exprRe.MatchString(s):
		b.WriteString(s)
	default:
		b.AddError(fmt.Errorf("sql: invalid identifier %q", s))
	}
	return b
}

// IdentComma appends the given identifiers separated by commas.
func (b *Builder) IdentComma(idents ...string) *Builder {
	for i, s := range idents {
		if i > 0 {
			b.Comma()
		}
		b.Ident(s)
	}
	return b
}

// Arg appends a placeholder for the given value and binds it.
func (b *Builder) Arg(v any) *Builder {
	b.total++
	b.args = append(b.args, v)
	if b.postgres() {
		b.WriteString("$" + strconv.Itoa(b.total))
	} else {
		b.WriteByte('?')
	}
	return b
}

// Args appends placeholders for all given values, comma separated.
func (b *Builder) Args(vs ...any) *Builder {
	for i, v := range vs {
		if i > 0 {
			b.Comma()
		}
		b.Arg(v)
	}
	return b
}

// Comma appends a comma separator.
func (b *Builder) Comma() *Builder {
	b.WriteString(", ")
	return b
}

// Pad appends a single space.
func (b *Builder) Pad() *Builder {
	b.WriteByte(' ')
	return b
}

// WriteString appends the given string to the statement text.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// WriteByte appends the given byte to the statement text.
func (b *Builder) WriteByte(c byte) *Builder {
	b.sb.WriteByte(c)
	return b
}

// Nested renders f inside parentheses.
func (b *Builder) Nested(f func(*Builder)) *Builder {
	b.WriteByte('(')
	f(b)
	b.WriteByte(')')
	return b
}

// AddError records an error encountered during building. Building never
// panics; errors surface from Err after rendering.
func (b *Builder) AddError(err error) *Builder {
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Err returns the errors recorded during building, joined.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// SetDialect sets the dialect used for quoting and placeholders.
func (b *Builder) SetDialect(d string) {
	b.dialect = d
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string {
	return b.dialect
}

func (b *Builder) postgres() bool {
	return b.dialect == dialect.Postgres
}

// String returns the accumulated statement text.
func (b *Builder) String() string {
	return b.sb.String()
}

// clone returns a fresh builder carrying the dialect and the current
// placeholder offset, for rendering sub-expressions.
func (b *Builder) clone() Builder {
	return Builder{dialect: b.dialect, total: b.total}
}

// isIdent reports whether s is a plain (possibly qualified) identifier
// that should be quoted. Expressions and already-quoted strings are not.
func isIdent(s string) bool {
	return !strings.ContainsAny(s, "()`\"' ")
}

var (
	// identPartRe matches one bare identifier part.
	identPartRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	// exprRe matches a simple function expression over identifiers, such
	// as COUNT(*). Quotes and statement separators never appear in one.
	exprRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*\([a-zA-Z0-9_.* ]*\)$`)
)

// isSafeIdent reports whether s is a single valid identifier part.
func isSafeIdent(s string) bool {
	return len(s) <= 128 && identPartRe.MatchString(s)
}

// DialectBuilder prefixes all root builders with the given dialect.
type DialectBuilder struct {
	dialect string
}

// Dialect creates a builder factory for the given dialect.
func Dialect(d string) *DialectBuilder {
	return &DialectBuilder{d}
}

// Select creates a Selector for the given columns with the configured dialect.
func (d *DialectBuilder) Select(columns ...string) *Selector {
	s := Select(columns...)
	s.SetDialect(d.dialect)
	return s
}

// Table creates a SelectTable with the configured dialect.
func (d *DialectBuilder) Table(name string) *SelectTable {
	t := Table(name)
	t.dialect = d.dialect
	return t
}

// Insert creates an InsertBuilder with the configured dialect.
func (d *DialectBuilder) Insert(table string) *InsertBuilder {
	i := Insert(table)
	i.SetDialect(d.dialect)
	return i
}

// Update creates an UpdateBuilder with the configured dialect.
func (d *DialectBuilder) Update(table string) *UpdateBuilder {
	u := Update(table)
	u.SetDialect(d.dialect)
	return u
}

// Delete creates a DeleteBuilder with the configured dialect.
func (d *DialectBuilder) Delete(table string) *DeleteBuilder {
	dl := Delete(table)
	dl.SetDialect(d.dialect)
	return dl
}

// SelectTable is a table selection with an optional alias.
type SelectTable struct {
	name    string
	as      string
	dialect string
}

// Table returns a new table view for the given table name.
func Table(name string) *SelectTable {
	return &SelectTable{name: name}
}

// As adds an alias to the table.
func (t *SelectTable) As(alias string) *SelectTable {
	t.as = alias
	return t
}

// Name returns the table name.
func (t *SelectTable) Name() string { return t.name }

// Alias returns the table alias, or the table name when no alias was set.
func (t *SelectTable) Alias() string {
	if t.as != "" {
		return t.as
	}
	return t.name
}

// C returns the given column qualified by the table alias.
func (t *SelectTable) C(column string) string {
	return t.Alias() + "." + column
}

// Columns returns the given columns qualified by the table alias.
func (t *SelectTable) Columns(columns ...string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = t.C(c)
	}
	return out
}

// ref renders the table reference, with alias if present.
func (t *SelectTable) ref(b *Builder) {
	b.Ident(t.name)
	if t.as != "" {
		b.WriteString(" AS ")
		b.Ident(t.as)
	}
}

// Predicate is a composable boolean condition tree. Each node is a deferred
// render function; values are bound as arguments at render time, never
// interpolated. Conditions appended to the same predicate are conjunctive.
type Predicate struct {
	fns []func(*Builder)
}

// P creates a new predicate, optionally seeded with render functions.
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

// Append adds a render function to the predicate.
func (p *Predicate) Append(f func(*Builder)) *Predicate {
	p.fns = append(p.fns, f)
	return p
}

// Query renders the predicate on its own, for inspection and tests.
func (p *Predicate) Query() (string, []any) {
	b := Builder{}
	p.render(&b)
	return b.String(), b.args
}

// render writes the predicate into b, joining the condition list with AND.
func (p *Predicate) render(b *Builder) {
	for i, f := range p.fns {
		if i > 0 {
			b.WriteString(" AND ")
		}
		f(b)
	}
}

// wrapped renders the predicate, parenthesized if it holds more than one
// condition.
func (p *Predicate) wrapped(b *Builder) {
	if len(p.fns) > 1 {
		b.Nested(p.render)
		return
	}
	p.render(b)
}

// And combines the given predicates conjunctively.
func And(preds ...*Predicate) *Predicate {
	p := P()
	return p.Append(func(b *Builder) {
		for i, pred := range preds {
			if i > 0 {
				b.WriteString(" AND ")
			}
			pred.wrapped(b)
		}
	})
}

// Or combines the given predicates disjunctively. Callers opt in to
// disjunction explicitly; predicate layering is conjunctive by default.
// A multi-term disjunction is parenthesized so it composes safely with
// surrounding conjunctions.
func Or(preds ...*Predicate) *Predicate {
	p := P()
	return p.Append(func(b *Builder) {
		render := func(b *Builder) {
			for i, pred := range preds {
				if i > 0 {
					b.WriteString(" OR ")
				}
				pred.wrapped(b)
			}
		}
		if len(preds) > 1 {
			b.Nested(render)
			return
		}
		render(b)
	})
}

// Not negates the given predicate.
func Not(pred *Predicate) *Predicate {
	p := P()
	return p.Append(func(b *Builder) {
		b.WriteString("NOT ")
		b.Nested(pred.render)
	})
}

// binary renders "<column> <op> <placeholder>".
func binary(column, op string, arg any) func(*Builder) {
	return func(b *Builder) {
		b.Ident(column)
		b.WriteString(" " + op + " ")
		b.Arg(arg)
	}
}

// EQ returns a "=" predicate bound to a placeholder.
func EQ(column string, arg any) *Predicate {
	return P(binary(column, "=", arg))
}

// NEQ returns a "<>" predicate bound to a placeholder.
func NEQ(column string, arg any) *Predicate {
	return P(binary(column, "<>", arg))
}

// GT returns a ">" predicate bound to a placeholder.
func GT(column string, arg any) *Predicate {
	return P(binary(column, ">", arg))
}

// GTE returns a ">=" predicate bound to a placeholder.
func GTE(column string, arg any) *Predicate {
	return P(binary(column, ">=", arg))
}

// LT returns a "<" predicate bound to a placeholder.
func LT(column string, arg any) *Predicate {
	return P(binary(column, "<", arg))
}

// LTE returns a "<=" predicate bound to a placeholder.
func LTE(column string, arg any) *Predicate {
	return P(binary(column, "<=", arg))
}

// In returns an "IN" predicate with one placeholder per value.
// An empty value list renders FALSE, matching no rows.
func In(column string, args ...any) *Predicate {
	return P(func(b *Builder) {
		if len(args) == 0 {
			b.WriteString("FALSE")
			return
		}
		b.Ident(column).WriteString(" IN ")
		b.Nested(func(b *Builder) {
			b.Args(args...)
		})
	})
}

// NotIn returns a "NOT IN" predicate with one placeholder per value.
// An empty value list renders TRUE, excluding no rows.
func NotIn(column string, args ...any) *Predicate {
	return P(func(b *Builder) {
		if len(args) == 0 {
			b.WriteString("TRUE")
			return
		}
		b.Ident(column).WriteString(" NOT IN ")
		b.Nested(func(b *Builder) {
			b.Args(args...)
		})
	})
}

// IsNull returns an "IS NULL" predicate.
func IsNull(column string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(column).WriteString(" IS NULL")
	})
}

// NotNull returns an "IS NOT NULL" predicate.
func NotNull(column string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(column).WriteString(" IS NOT NULL")
	})
}

// Like returns a "LIKE" predicate with the pattern bound as a placeholder.
func Like(column, pattern string) *Predicate {
	return P(binary(column, "LIKE", pattern))
}

// escapeLike escapes the LIKE wildcards in a literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// Contains returns a predicate matching rows whose column contains the
// given substring.
func Contains(column, sub string) *Predicate {
	return Like(column, "%"+escapeLike(sub)+"%")
}

// ContainsFold is a case-insensitive Contains.
func ContainsFold(column, sub string) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("LOWER(")
		b.Ident(column)
		b.WriteString(") LIKE ")
		b.Arg("%" + strings.ToLower(escapeLike(sub)) + "%")
	})
}

// HasPrefix returns a predicate matching rows whose column starts with the
// given prefix.
func HasPrefix(column, prefix string) *Predicate {
	return Like(column, escapeLike(prefix)+"%")
}

// HasSuffix returns a predicate matching rows whose column ends with the
// given suffix.
func HasSuffix(column, suffix string) *Predicate {
	return Like(column, "%"+escapeLike(suffix))
}

// EqualFold returns a case-insensitive "=" predicate.
func EqualFold(column, v string) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("LOWER(")
		b.Ident(column)
		b.WriteString(") = ")
		b.Arg(strings.ToLower(v))
	})
}

// join describes a single JOIN clause of a Selector.
type join struct {
	kind  string
	table *SelectTable
	on    *Predicate
}

// Order directions accepted by OrderBy column suffixes.
const (
	// OrderAsc is the ascending order suffix.
	OrderAsc = " ASC"
	// OrderDesc is the descending order suffix.
	OrderDesc = " DESC"
)

// Asc returns the column with an ascending order suffix.
func Asc(column string) string { return column + OrderAsc }

// Desc returns the column with a descending order suffix.
func Desc(column string) string { return column + OrderDesc }

// Selector is a deferred, mutable SELECT statement. Columns, source,
// predicates, joins, ordering and pagination are layered incrementally;
// no I/O happens until the rendered statement is executed elsewhere.
type Selector struct {
	Builder
	columns  []string
	from     *SelectTable
	joins    []join
	where    *Predicate
	order    []string
	limit    *int
	offset   *int
	distinct bool
}

// Select returns a Selector for the given columns. An empty column list
// selects "*".
func Select(columns ...string) *Selector {
	return &Selector{columns: columns}
}

// SelectColumns replaces the selected columns.
func (s *Selector) SelectColumns(columns ...string) *Selector {
	s.columns = columns
	return s
}

// From sets the source table of the selector.
func (s *Selector) From(t *SelectTable) *Selector {
	s.from = t
	return s
}

// Distinct marks the selection as DISTINCT.
func (s *Selector) Distinct() *Selector {
	s.distinct = true
	return s
}

// Table returns the source table of the selector.
func (s *Selector) Table() *SelectTable {
	return s.from
}

// C returns the given column qualified by the source table alias.
func (s *Selector) C(column string) string {
	if s.from == nil {
		return column
	}
	return s.from.C(column)
}

// Where adds a predicate to the selector. Successive calls narrow the
// result set: predicates are combined with AND, never replaced.
func (s *Selector) Where(p *Predicate) *Selector {
	if p == nil {
		return s
	}
	if s.where == nil {
		s.where = p
	} else {
		s.where = And(s.where, p)
	}
	return s
}

// P returns the root predicate of the selector, or nil if none was set.
func (s *Selector) P() *Predicate {
	return s.where
}

// Join appends an INNER JOIN on the given table. The ON condition is set
// with On on the returned selector.
func (s *Selector) Join(t *SelectTable) *Selector {
	return s.join("JOIN", t)
}

// LeftJoin appends a LEFT JOIN on the given table.
func (s *Selector) LeftJoin(t *SelectTable) *Selector {
	return s.join("LEFT JOIN", t)
}

// RightJoin appends a RIGHT JOIN on the given table.
func (s *Selector) RightJoin(t *SelectTable) *Selector {
	return s.join("RIGHT JOIN", t)
}

func (s *Selector) join(kind string, t *SelectTable) *Selector {
	s.joins = append(s.joins, join{kind: kind, table: t})
	return s
}

// On sets the condition of the most recent join to "c1 = c2".
func (s *Selector) On(c1, c2 string) *Selector {
	if len(s.joins) == 0 {
		s.AddError(errors.New("sql: On without a preceding Join"))
		return s
	}
	j := &s.joins[len(s.joins)-1]
	p := P(func(b *Builder) {
		b.Ident(c1).WriteString(" = ").Ident(c2)
	})
	if j.on == nil {
		j.on = p
	} else {
		j.on = And(j.on, p)
	}
	return s
}

// OrderBy appends ordering columns. Use Asc and Desc to attach an explicit
// direction.
func (s *Selector) OrderBy(columns ...string) *Selector {
	s.order = append(s.order, columns...)
	return s
}

// Limit sets the LIMIT clause.
func (s *Selector) Limit(n int) *Selector {
	s.limit = &n
	return s
}

// Offset sets the OFFSET clause.
func (s *Selector) Offset(n int) *Selector {
	s.offset = &n
	return s
}

// Count replaces the selection with a COUNT over the given column, or
// COUNT(*) when none is given. Predicates, joins and the source table are
// preserved; ordering and pagination are dropped since they do not affect
// the count.
func (s *Selector) Count(column ...string) *Selector {
	c := "*"
	if len(column) > 0 {
		c = column[0]
	}
	s.columns = []string{"COUNT(" + c + ")"}
	s.order = nil
	s.limit = nil
	s.offset = nil
	return s
}

// Clone returns an independent copy of the selector. The predicate tree is
// shared structurally but never mutated in place by Where, so layering on
// the clone does not affect the original.
func (s *Selector) Clone() *Selector {
	if s == nil {
		return nil
	}
	c := *s
	c.Builder = Builder{dialect: s.dialect, errs: append([]error(nil), s.errs...)}
	c.columns = append([]string(nil), s.columns...)
	c.joins = append([]join(nil), s.joins...)
	c.order = append([]string(nil), s.order...)
	if s.where != nil {
		c.where = P(s.where.fns...)
	}
	return &c
}

// Query renders the SELECT statement and its bound arguments. Rendering is
// repeatable; the selector is not consumed.
func (s *Selector) Query() (string, []any) {
	b := s.clone()
	b.WriteString("SELECT ")
	if s.distinct {
		b.WriteString("DISTINCT ")
	}
	if len(s.columns) == 0 {
		b.WriteString("*")
	} else {
		b.IdentComma(s.columns...)
	}
	if s.from != nil {
		b.WriteString(" FROM ")
		s.from.ref(&b)
	}
	for _, j := range s.joins {
		b.Pad().WriteString(j.kind).Pad()
		j.table.ref(&b)
		if j.on != nil {
			b.WriteString(" ON ")
			j.on.render(&b)
		}
	}
	if s.where != nil {
		b.WriteString(" WHERE ")
		s.where.render(&b)
	}
	if len(s.order) > 0 {
		b.WriteString(" ORDER BY ")
		for i, c := range s.order {
			if i > 0 {
				b.Comma()
			}
			col, dir := c, ""
			if v, ok := strings.CutSuffix(c, OrderAsc); ok {
				col, dir = v, OrderAsc
			} else if v, ok := strings.CutSuffix(c, OrderDesc); ok {
				col, dir = v, OrderDesc
			}
			b.Ident(col).WriteString(dir)
		}
	}
	if s.limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(*s.offset))
	}
	s.errs = append(s.errs, b.errs...)
	return b.String(), b.args
}

// InsertBuilder is a deferred INSERT statement.
type InsertBuilder struct {
	Builder
	table     string
	columns   []string
	values    [][]any
	defaults  bool
	returning []string
}

// Insert returns an InsertBuilder for the given table.
func Insert(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Columns sets the insert columns.
func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = columns
	return i
}

// Values appends a row of values. Values are bound as placeholders.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.values = append(i.values, values)
	return i
}

// Set is a syntactic sugar API for inserting a single row, setting one
// column at a time.
func (i *InsertBuilder) Set(column string, v any) *InsertBuilder {
	i.columns = append(i.columns, column)
	if len(i.values) == 0 {
		i.values = append(i.values, []any{v})
	} else {
		i.values[0] = append(i.values[0], v)
	}
	return i
}

// Default inserts a row with default values only.
func (i *InsertBuilder) Default() *InsertBuilder {
	i.defaults = true
	return i
}

// Returning adds a RETURNING clause. It is effective only on dialects that
// support it (Postgres, SQLite).
func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	i.returning = columns
	return i
}

// Query renders the INSERT statement and its bound arguments.
func (i *InsertBuilder) Query() (string, []any) {
	b := i.clone()
	b.WriteString("INSERT INTO ")
	b.Ident(i.table)
	if i.defaults && len(i.columns) == 0 {
		if b.dialect == dialect.MySQL {
			b.WriteString(" () VALUES ()")
		} else {
			b.WriteString(" DEFAULT VALUES")
		}
	} else {
		b.WriteString(" (").IdentComma(i.columns...).WriteString(")")
		b.WriteString(" VALUES ")
		for j, row := range i.values {
			if j > 0 {
				b.Comma()
			}
			if len(row) != len(i.columns) {
				b.AddError(fmt.Errorf("sql: insert into %q: %d values for %d columns", i.table, len(row), len(i.columns)))
			}
			b.Nested(func(b *Builder) {
				b.Args(row...)
			})
		}
	}
	if len(i.returning) > 0 && b.dialect != dialect.MySQL {
		b.WriteString(" RETURNING ")
		b.IdentComma(i.returning...)
	}
	i.errs = append(i.errs, b.errs...)
	return b.String(), b.args
}

// UpdateBuilder is a deferred UPDATE statement.
type UpdateBuilder struct {
	Builder
	table   string
	columns []string
	values  []any
	nulls   []string
	where   *Predicate
}

// Update returns an UpdateBuilder for the given table.
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set assigns a value to a column. The value is bound as a placeholder.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, v)
	return u
}

// SetNull assigns NULL to a column.
func (u *UpdateBuilder) SetNull(column string) *UpdateBuilder {
	u.nulls = append(u.nulls, column)
	return u
}

// Where adds a predicate, combined conjunctively with any existing one.
func (u *UpdateBuilder) Where(p *Predicate) *UpdateBuilder {
	if p == nil {
		return u
	}
	if u.where == nil {
		u.where = p
	} else {
		u.where = And(u.where, p)
	}
	return u
}

// Empty reports whether the update has no assignments.
func (u *UpdateBuilder) Empty() bool {
	return len(u.columns) == 0 && len(u.nulls) == 0
}

// Query renders the UPDATE statement and its bound arguments.
func (u *UpdateBuilder) Query() (string, []any) {
	b := u.clone()
	b.WriteString("UPDATE ")
	b.Ident(u.table)
	b.WriteString(" SET ")
	for j, c := range u.nulls {
		if j > 0 {
			b.Comma()
		}
		b.Ident(c).WriteString(" = NULL")
	}
	if len(u.nulls) > 0 && len(u.columns) > 0 {
		b.Comma()
	}
	for j, c := range u.columns {
		if j > 0 {
			b.Comma()
		}
		b.Ident(c).WriteString(" = ")
		b.Arg(u.values[j])
	}
	if u.where != nil {
		b.WriteString(" WHERE ")
		u.where.render(&b)
	}
	u.errs = append(u.errs, b.errs...)
	return b.String(), b.args
}

// DeleteBuilder is a deferred DELETE statement.
type DeleteBuilder struct {
	Builder
	table string
	where *Predicate
}

// Delete returns a DeleteBuilder for the given table.
func Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

// Where adds a predicate, combined conjunctively with any existing one.
func (d *DeleteBuilder) Where(p *Predicate) *DeleteBuilder {
	if p == nil {
		return d
	}
	if d.where == nil {
		d.where = p
	} else {
		d.where = And(d.where, p)
	}
	return d
}

// Query renders the DELETE statement and its bound arguments.
func (d *DeleteBuilder) Query() (string, []any) {
	b := d.clone()
	b.WriteString("DELETE FROM ")
	b.Ident(d.table)
	if d.where != nil {
		b.WriteString(" WHERE ")
		d.where.render(&b)
	}
	d.errs = append(d.errs, b.errs...)
	return b.String(), b.args
}

// Field helpers bridge selector-scoped predicates: each returns a function
// that qualifies the column by the selector's table before binding.

// FieldEQ returns a selector predicate for "column = value".
func FieldEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(EQ(s.C(name), v)) }
}

// FieldNEQ returns a selector predicate for "column <> value".
func FieldNEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(NEQ(s.C(name), v)) }
}

// FieldGT returns a selector predicate for "column > value".
func FieldGT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(GT(s.C(name), v)) }
}

// FieldGTE returns a selector predicate for "column >= value".
func FieldGTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(GTE(s.C(name), v)) }
}

// FieldLT returns a selector predicate for "column < value".
func FieldLT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(LT(s.C(name), v)) }
}

// FieldLTE returns a selector predicate for "column <= value".
func FieldLTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(LTE(s.C(name), v)) }
}

// FieldIn returns a selector predicate for "column IN (values)".
func FieldIn[T any](name string, vs ...T) func(*Selector) {
	return FieldInGeneric(name, vs...)
}

// FieldNotIn returns a selector predicate for "column NOT IN (values)".
func FieldNotIn[T any](name string, vs ...T) func(*Selector) {
	return FieldNotInGeneric(name, vs...)
}

// FieldContains returns a selector predicate matching a substring.
func FieldContains(name, sub string) func(*Selector) {
	return func(s *Selector) { s.Where(Contains(s.C(name), sub)) }
}

// FieldContainsFold returns a case-insensitive substring selector predicate.
func FieldContainsFold(name, sub string) func(*Selector) {
	return func(s *Selector) { s.Where(ContainsFold(s.C(name), sub)) }
}

// FieldHasPrefix returns a selector predicate matching a prefix.
func FieldHasPrefix(name, prefix string) func(*Selector) {
	return func(s *Selector) { s.Where(HasPrefix(s.C(name), prefix)) }
}

// FieldHasSuffix returns a selector predicate matching a suffix.
func FieldHasSuffix(name, suffix string) func(*Selector) {
	return func(s *Selector) { s.Where(HasSuffix(s.C(name), suffix)) }
}

// FieldEqualFold returns a case-insensitive equality selector predicate.
func FieldEqualFold(name, v string) func(*Selector) {
	return func(s *Selector) { s.Where(EqualFold(s.C(name), v)) }
}

// FieldIsNull returns a selector predicate for "column IS NULL".
func FieldIsNull(name string) func(*Selector) {
	return func(s *Selector) { s.Where(IsNull(s.C(name))) }
}

// FieldNotNull returns a selector predicate for "column IS NOT NULL".
func FieldNotNull(name string) func(*Selector) {
	return func(s *Selector) { s.Where(NotNull(s.C(name))) }
}
