package mapper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/syssam/strata"
	"github.com/syssam/strata/conn"
	"github.com/syssam/strata/dialect/sql"
)

// Ref is a tagged reference to a related entity: either a scalar key that
// is loaded on first resolution, or an already loaded entity.
type Ref[T any] struct {
	key    any
	entity *T
}

// ByKey returns a Ref that resolves the entity by primary key on demand.
func ByKey[T any](key any) Ref[T] {
	return Ref[T]{key: key}
}

// Loaded returns a Ref around an already loaded entity.
func Loaded[T any](entity *T) Ref[T] {
	return Ref[T]{entity: entity}
}

// Key returns the scalar key the Ref was declared with, if any.
func (r Ref[T]) Key() any { return r.key }

// IsLoaded reports whether the Ref already holds an entity.
func (r Ref[T]) IsLoaded() bool { return r.entity != nil }

// Resolver is the per-entity-type entry point. It owns the mapping
// descriptor, routes fetches to the read endpoint and writes to the write
// endpoint, and carries the reusable named query fragments for its type.
type Resolver[T any] struct {
	provider *conn.Provider
	mapping  *strata.Mapping
	binder   Binder[T]
	named    map[string]func(*sql.Selector)
	keygen   KeyGenerator
	log      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption[T any] func(*Resolver[T])

// WithLogger enables debug logging of resolver operations.
func WithLogger[T any](log *slog.Logger) ResolverOption[T] {
	return func(r *Resolver[T]) { r.log = log }
}

// WithKeys makes writes assign application-generated keys on insert.
func WithKeys[T any](gen KeyGenerator) ResolverOption[T] {
	return func(r *Resolver[T]) { r.keygen = gen }
}

// NewResolver looks up the mapping registered under label and returns a
// Resolver for it. The binder must cover every mapped property; a gap is a
// configuration error raised here.
func NewResolver[T any](provider *conn.Provider, registry *strata.Registry, label string, binder Binder[T], opts ...ResolverOption[T]) (*Resolver[T], error) {
	mapping, err := registry.Lookup(label)
	if err != nil {
		return nil, err
	}
	if err := binder.validate(mapping); err != nil {
		return nil, err
	}
	r := &Resolver[T]{
		provider: provider,
		mapping:  mapping,
		binder:   binder,
		named:    make(map[string]func(*sql.Selector)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Mapping returns the descriptor for the resolver's entity type. It is the
// same descriptor for the lifetime of the process.
func (r *Resolver[T]) Mapping() *strata.Mapping { return r.mapping }

// Named registers a reusable query fragment under the given name. The
// fragment narrows a selector through predicates only; it can never inject
// raw statement text. Registering the same name twice is an error.
func (r *Resolver[T]) Named(name string, fragment func(*sql.Selector)) error {
	if name == "" || fragment == nil {
		return fmt.Errorf("mapper: named fragment requires a name and a function")
	}
	if _, ok := r.named[name]; ok {
		return fmt.Errorf("mapper: named fragment %q already registered", name)
	}
	r.named[name] = fragment
	return nil
}

// fetcher resolves the read endpoint for one operation.
func (r *Resolver[T]) fetcher() (*Fetcher[T], error) {
	drv, err := r.provider.Resolve(conn.Read)
	if err != nil {
		return nil, err
	}
	return &Fetcher[T]{drv: drv, mapping: r.mapping, binder: r.binder}, nil
}

// writer resolves the write endpoint for one operation.
func (r *Resolver[T]) writer() (*Writer[T], error) {
	drv, err := r.provider.Resolve(conn.Write)
	if err != nil {
		return nil, err
	}
	return &Writer[T]{drv: drv, mapping: r.mapping, binder: r.binder, keygen: r.keygen}, nil
}

// Get fetches the entity with the given primary key from the read endpoint.
func (r *Resolver[T]) Get(ctx context.Context, id any) (*T, error) {
	f, err := r.fetcher()
	if err != nil {
		return nil, err
	}
	r.debug("get", slog.Any("id", id))
	return f.ByID(ctx, id)
}

// Save persists the entity through the write endpoint and returns its
// identifier. Insert or update is chosen by primary key presence.
func (r *Resolver[T]) Save(ctx context.Context, entity *T) (any, error) {
	w, err := r.writer()
	if err != nil {
		return nil, err
	}
	r.debug("save")
	return w.Save(ctx, entity)
}

// Relation resolves a reference to a related entity. A loaded reference is
// returned as is; a key reference is fetched by primary key first, so
// relations can be declared against unresolved foreign keys without an
// eager join.
func (r *Resolver[T]) Relation(ctx context.Context, ref Ref[T]) (*T, error) {
	if ref.IsLoaded() {
		return ref.entity, nil
	}
	if ref.key == nil {
		return nil, strata.NewNotFoundError(r.mapping.Label())
	}
	return r.Get(ctx, ref.key)
}

// Query starts an ad-hoc query against the read endpoint. Conditions are
// layered with Where and named fragments before execution; each layer
// narrows the result set and none can be removed.
func (r *Resolver[T]) Query() *Query[T] {
	return &Query[T]{resolver: r}
}

// Query is a deferred, composable fetch request. Construction performs no
// I/O; the statement is built and executed only by All, Only or Count.
type Query[T any] struct {
	resolver    *Resolver[T]
	conds       []func(*sql.Selector)
	order       []string
	limit       *int
	ignoreEmpty bool
	err         error
}

// IgnoreEmpty makes property conditions with empty values no-ops instead
// of generating conditions. A value is empty when it is nil, an empty
// string, or a zero time; numeric zero and false are meaningful values and
// are never dropped. This keeps optional filter arguments from producing
// accidental equals-NULL mismatches.
func (q *Query[T]) IgnoreEmpty() *Query[T] {
	q.ignoreEmpty = true
	return q
}

// Where layers a raw predicate condition onto the query.
func (q *Query[T]) Where(cond func(*sql.Selector)) *Query[T] {
	if cond != nil {
		q.conds = append(q.conds, cond)
	}
	return q
}

// WhereProperty layers an equality condition on a mapped property. The
// property is translated to its column through the mapping; an unmapped
// property is a configuration error surfaced at execution. The value is
// always bound as a parameter.
func (q *Query[T]) WhereProperty(property string, value any) *Query[T] {
	if q.ignoreEmpty && emptyValue(value) {
		return q
	}
	col, err := q.resolver.mapping.Column(property)
	if err != nil {
		q.fail(err)
		return q
	}
	return q.Where(func(s *sql.Selector) {
		s.Where(sql.EQ(s.C(col), value))
	})
}

// Named layers previously registered fragments onto the query,
// conjunctively, in the given order. An unknown name is an error surfaced
// at execution.
func (q *Query[T]) Named(names ...string) *Query[T] {
	for _, name := range names {
		frag, ok := q.resolver.named[name]
		if !ok {
			q.fail(fmt.Errorf("mapper: unknown named fragment %q for %s", name, q.resolver.mapping.Label()))
			continue
		}
		q.conds = append(q.conds, frag)
	}
	return q
}

// OrderByProperty orders the result by a mapped property, ascending.
func (q *Query[T]) OrderByProperty(property string) *Query[T] {
	col, err := q.resolver.mapping.Column(property)
	if err != nil {
		q.fail(err)
		return q
	}
	q.order = append(q.order, col)
	return q
}

// Limit caps the number of returned entities.
func (q *Query[T]) Limit(n int) *Query[T] {
	q.limit = &n
	return q
}

func (q *Query[T]) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

// build finalizes the selector for this query.
func (q *Query[T]) build(f *Fetcher[T]) (*sql.Selector, error) {
	if q.err != nil {
		return nil, q.err
	}
	selector := f.Select()
	for _, cond := range q.conds {
		cond(selector)
	}
	for _, col := range q.order {
		selector.OrderBy(sql.Asc(selector.C(col)))
	}
	if q.limit != nil {
		selector.Limit(*q.limit)
	}
	return selector, nil
}

// All executes the query and materializes every matching entity. No
// matching rows is a valid success and yields an empty slice.
func (q *Query[T]) All(ctx context.Context) ([]*T, error) {
	f, err := q.resolver.fetcher()
	if err != nil {
		return nil, err
	}
	selector, err := q.build(f)
	if err != nil {
		return nil, err
	}
	q.resolver.debug("query")
	return f.All(ctx, selector)
}

// Only executes the query and fails unless exactly one entity matches.
func (q *Query[T]) Only(ctx context.Context) (*T, error) {
	f, err := q.resolver.fetcher()
	if err != nil {
		return nil, err
	}
	selector, err := q.build(f)
	if err != nil {
		return nil, err
	}
	return f.Only(ctx, selector)
}

// Count executes a count-only variant of the query.
func (q *Query[T]) Count(ctx context.Context) (int, error) {
	f, err := q.resolver.fetcher()
	if err != nil {
		return 0, err
	}
	selector, err := q.build(f)
	if err != nil {
		return 0, err
	}
	return f.Count(ctx, selector)
}

func (r *Resolver[T]) debug(op string, attrs ...slog.Attr) {
	if r.log == nil {
		return
	}
	attrs = append(attrs, slog.String("entity", r.mapping.Label()))
	r.log.LogAttrs(context.Background(), slog.LevelDebug, "mapper."+op, attrs...)
}

// emptyValue reports whether a predicate argument counts as empty for
// IgnoreEmpty: nil, empty string, or zero time. Numeric zero and false are
// meaningful and never count as empty.
func emptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case *string:
		return x == nil || *x == ""
	case time.Time:
		return x.IsZero()
	case *time.Time:
		return x == nil || x.IsZero()
	}
	return false
}
