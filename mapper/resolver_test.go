package mapper

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/strata"
	"github.com/syssam/strata/conn"
	"github.com/syssam/strata/dialect"
	"github.com/syssam/strata/dialect/sql"
)

// newUserResolver spins up a file-backed SQLite database shared by the read
// and write endpoints, creates the users table and returns a resolver over it.
func newUserResolver(t *testing.T, opts ...ResolverOption[user]) *Resolver[user] {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "app.db")
	provider, err := conn.NewProvider(conn.Config{
		Read:  &conn.Endpoint{Dialect: dialect.SQLite, DSN: dsn},
		Write: &conn.Endpoint{Dialect: dialect.SQLite, DSN: dsn},
	})
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })

	drv, err := provider.Resolve(conn.Write)
	require.NoError(t, err)
	err = drv.Exec(context.Background(),
		"CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, email TEXT NOT NULL, enabled BOOLEAN NOT NULL)",
		[]any{}, nil)
	require.NoError(t, err)

	registry := strata.NewRegistry()
	_, err = registry.Register("User", strata.MappingSpec{
		Table: "users",
		Alias: "u",
		ID:    "id",
		Fields: []strata.Field{
			{Property: "id", Column: "id"},
			{Property: "email", Column: "email"},
			{Property: "enabled", Column: "enabled"},
		},
		ReadOnly: []string{"id"},
	})
	require.NoError(t, err)

	r, err := NewResolver(provider, registry, "User", userBinder(), opts...)
	require.NoError(t, err)
	return r
}

func TestResolverRoundTrip(t *testing.T) {
	r := newUserResolver(t)
	ctx := context.Background()

	u := &user{Email: "a@b.com", Enabled: true}
	id, err := r.Save(ctx, u)
	require.NoError(t, err)
	key, ok := id.(int64)
	require.True(t, ok)
	assert.Positive(t, key)
	assert.Equal(t, key, u.ID)

	got, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)
	assert.True(t, got.Enabled)
	assert.Equal(t, key, got.ID)
}

func TestResolverUpdateIdempotent(t *testing.T) {
	r := newUserResolver(t)
	ctx := context.Background()

	u := &user{Email: "a@b.com", Enabled: true}
	id, err := r.Save(ctx, u)
	require.NoError(t, err)

	// Re-writing a fetched entity with identical values changes nothing.
	fetched, err := r.Get(ctx, id)
	require.NoError(t, err)
	again, err := r.Save(ctx, fetched)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	final, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, fetched, final)
}

func TestResolverUpdateChangesRow(t *testing.T) {
	r := newUserResolver(t)
	ctx := context.Background()

	u := &user{Email: "a@b.com", Enabled: true}
	id, err := r.Save(ctx, u)
	require.NoError(t, err)

	u.Email = "new@b.com"
	u.Enabled = false
	_, err = r.Save(ctx, u)
	require.NoError(t, err)

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", got.Email)
	assert.False(t, got.Enabled)

	// Only one row exists; the second save updated rather than inserted.
	n, err := r.Query().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestResolverQuery(t *testing.T) {
	r := newUserResolver(t)
	ctx := context.Background()
	for _, u := range []*user{
		{Email: "on1@b.com", Enabled: true},
		{Email: "on2@b.com", Enabled: true},
		{Email: "off@b.com", Enabled: false},
	} {
		_, err := r.Save(ctx, u)
		require.NoError(t, err)
	}

	t.Run("where_property", func(t *testing.T) {
		users, err := r.Query().WhereProperty("enabled", true).All(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
	t.Run("conditions_are_conjunctive", func(t *testing.T) {
		users, err := r.Query().
			WhereProperty("enabled", true).
			WhereProperty("email", "on1@b.com").
			All(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "on1@b.com", users[0].Email)
	})
	t.Run("order_and_limit", func(t *testing.T) {
		users, err := r.Query().OrderByProperty("email").Limit(1).All(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "off@b.com", users[0].Email)
	})
	t.Run("empty_result_is_success", func(t *testing.T) {
		users, err := r.Query().WhereProperty("email", "missing@b.com").All(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
		n, err := r.Query().WhereProperty("email", "missing@b.com").Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
	t.Run("only", func(t *testing.T) {
		u, err := r.Query().WhereProperty("email", "off@b.com").Only(ctx)
		require.NoError(t, err)
		assert.False(t, u.Enabled)

		_, err = r.Query().WhereProperty("enabled", true).Only(ctx)
		require.Error(t, err)
		assert.True(t, strata.IsNotSingular(err))
	})
	t.Run("unknown_property", func(t *testing.T) {
		_, err := r.Query().WhereProperty("nickname", "x").All(ctx)
		require.Error(t, err)
		assert.True(t, strata.IsMapping(err))
	})
}

func TestResolverNamedFragments(t *testing.T) {
	r := newUserResolver(t)
	ctx := context.Background()
	for _, u := range []*user{
		{Email: "on@b.com", Enabled: true},
		{Email: "off@b.com", Enabled: false},
	} {
		_, err := r.Save(ctx, u)
		require.NoError(t, err)
	}

	require.NoError(t, r.Named("enabled", func(s *sql.Selector) {
		s.Where(sql.EQ(s.C("enabled"), true))
	}))
	require.NoError(t, r.Named("corporate", func(s *sql.Selector) {
		s.Where(sql.HasSuffix(s.C("email"), "@b.com"))
	}))

	t.Run("single_fragment", func(t *testing.T) {
		users, err := r.Query().Named("enabled").All(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "on@b.com", users[0].Email)
	})
	t.Run("fragments_narrow_conjunctively", func(t *testing.T) {
		users, err := r.Query().Named("enabled", "corporate").All(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
	t.Run("duplicate_registration", func(t *testing.T) {
		err := r.Named("enabled", func(s *sql.Selector) {})
		require.Error(t, err)
	})
	t.Run("unknown_fragment", func(t *testing.T) {
		_, err := r.Query().Named("vip").All(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vip")
	})
}

func TestResolverIgnoreEmpty(t *testing.T) {
	r := newUserResolver(t)
	ctx := context.Background()
	_, err := r.Save(ctx, &user{Email: "a@b.com", Enabled: true})
	require.NoError(t, err)

	t.Run("empty_string_dropped", func(t *testing.T) {
		users, err := r.Query().IgnoreEmpty().WhereProperty("email", "").All(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1, "empty filter must be a no-op")
	})
	t.Run("empty_string_kept_by_default", func(t *testing.T) {
		users, err := r.Query().WhereProperty("email", "").All(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
	t.Run("false_is_not_empty", func(t *testing.T) {
		users, err := r.Query().IgnoreEmpty().WhereProperty("enabled", false).All(ctx)
		require.NoError(t, err)
		assert.Empty(t, users, "false is a meaningful filter value")
	})
}

func TestResolverRelation(t *testing.T) {
	r := newUserResolver(t)
	ctx := context.Background()
	u := &user{Email: "a@b.com", Enabled: true}
	id, err := r.Save(ctx, u)
	require.NoError(t, err)

	t.Run("loaded", func(t *testing.T) {
		got, err := r.Relation(ctx, Loaded(u))
		require.NoError(t, err)
		assert.Same(t, u, got)
	})
	t.Run("by_key_lazy_loads", func(t *testing.T) {
		ref := ByKey[user](id)
		assert.False(t, ref.IsLoaded())
		got, err := r.Relation(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", got.Email)
	})
	t.Run("by_missing_key", func(t *testing.T) {
		_, err := r.Relation(ctx, ByKey[user](int64(9999)))
		require.Error(t, err)
		assert.True(t, strata.IsNotFound(err))
	})
	t.Run("nil_key", func(t *testing.T) {
		_, err := r.Relation(ctx, Ref[user]{})
		require.Error(t, err)
		assert.True(t, strata.IsNotFound(err))
	})
}

func TestResolverModeEnforcement(t *testing.T) {
	// A write-only provider serves saves but must never serve fetches.
	dsn := "file:" + filepath.Join(t.TempDir(), "wo.db")
	provider, err := conn.NewProvider(conn.Config{
		Write: &conn.Endpoint{Dialect: dialect.SQLite, DSN: dsn},
	})
	require.NoError(t, err)
	defer provider.Close()

	drv, err := provider.Resolve(conn.Write)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, drv.Exec(ctx,
		"CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, email TEXT NOT NULL, enabled BOOLEAN NOT NULL)",
		[]any{}, nil))

	registry := strata.NewRegistry()
	_, err = registry.Register("User", strata.MappingSpec{
		Table: "users",
		ID:    "id",
		Fields: []strata.Field{
			{Property: "id", Column: "id"},
			{Property: "email", Column: "email"},
			{Property: "enabled", Column: "enabled"},
		},
		ReadOnly: []string{"id"},
	})
	require.NoError(t, err)
	r, err := NewResolver(provider, registry, "User", userBinder())
	require.NoError(t, err)

	_, err = r.Save(ctx, &user{Email: "a@b.com", Enabled: true})
	require.NoError(t, err)

	_, err = r.Query().All(ctx)
	require.Error(t, err)
	assert.True(t, strata.IsMissingConfig(err))
}

func TestResolverLogging(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newUserResolver(t, WithLogger[user](log))
	_, err := r.Save(context.Background(), &user{Email: "a@b.com", Enabled: true})
	require.NoError(t, err)
}

func TestResolverUnregisteredLabel(t *testing.T) {
	provider, err := conn.NewProvider(conn.Config{
		Write: &conn.Endpoint{Dialect: dialect.SQLite, DSN: "file:unused.db?mode=memory"},
	})
	require.NoError(t, err)
	defer provider.Close()
	_, err = NewResolver(provider, strata.NewRegistry(), "Ghost", userBinder())
	require.Error(t, err)
	assert.True(t, strata.IsMapping(err))
}

func TestEmptyValue(t *testing.T) {
	now := time.Now()
	var nilStr *string
	empty := ""
	assert.True(t, emptyValue(nil))
	assert.True(t, emptyValue(""))
	assert.True(t, emptyValue(nilStr))
	assert.True(t, emptyValue(&empty))
	assert.True(t, emptyValue(time.Time{}))
	assert.False(t, emptyValue(0))
	assert.False(t, emptyValue(false))
	assert.False(t, emptyValue(now))
	assert.False(t, emptyValue("x"))
}
