package conn

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/strata"
	"github.com/syssam/strata/dialect"
	"github.com/syssam/strata/dialect/sql"
)

func TestParseConfig(t *testing.T) {
	t.Run("both_modes", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
read:
  dialect: mysql
  host: replica.internal
  database: app
  username: reader
  password: secret
write:
  dialect: mysql
  host: primary.internal
  port: 3307
  database: app
  username: writer
  password: secret
`))
		require.NoError(t, err)
		require.NotNil(t, cfg.Read)
		require.NotNil(t, cfg.Write)
		assert.Equal(t, "replica.internal", cfg.Read.Host)
		assert.Equal(t, 3307, cfg.Write.Port)
	})
	t.Run("unknown_key_rejected", func(t *testing.T) {
		_, err := ParseConfig([]byte("read:\n  dialect: mysql\n  hostname: oops\n"))
		require.Error(t, err)
	})
	t.Run("missing_mode_is_nil", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("write:\n  dialect: sqlite\n  dsn: file:app.db\n"))
		require.NoError(t, err)
		assert.Nil(t, cfg.Read)
		require.NotNil(t, cfg.Write)
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.yaml")
	require.NoError(t, os.WriteFile(path, []byte("read:\n  dialect: sqlite\n  dsn: file:read.db\n"), 0o600))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Read)
	assert.Equal(t, "file:read.db", cfg.Read.DSN)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestEndpointDSN(t *testing.T) {
	t.Run("mysql_built_from_parts", func(t *testing.T) {
		ep := &Endpoint{
			Dialect:  dialect.MySQL,
			Host:     "db.internal",
			Database: "app",
			Username: "svc",
			Password: "p@ss/word",
		}
		dsn := ep.dsn()
		assert.Contains(t, dsn, "tcp(db.internal:3306)")
		assert.Contains(t, dsn, "/app")
		assert.Contains(t, dsn, "parseTime=true")
	})
	t.Run("postgres_credentials_escaped", func(t *testing.T) {
		ep := &Endpoint{
			Dialect:  dialect.Postgres,
			Host:     "pg.internal",
			Database: "app",
			Username: "svc",
			Password: "p@ss word",
		}
		dsn := ep.dsn()
		assert.True(t, strings.HasPrefix(dsn, "postgres://"))
		assert.NotContains(t, dsn, "p@ss word")
		assert.Contains(t, dsn, "pg.internal:5432")
	})
	t.Run("explicit_dsn_wins", func(t *testing.T) {
		ep := &Endpoint{Dialect: dialect.MySQL, DSN: "svc:pw@tcp(host:3306)/app", Host: "ignored"}
		assert.Equal(t, "svc:pw@tcp(host:3306)/app", ep.dsn())
	})
}

func TestNewProvider(t *testing.T) {
	t.Run("no_endpoints", func(t *testing.T) {
		_, err := NewProvider(Config{})
		require.Error(t, err)
		assert.True(t, strata.IsMissingConfig(err))
	})
	t.Run("incomplete_endpoint", func(t *testing.T) {
		_, err := NewProvider(Config{Write: &Endpoint{Dialect: dialect.MySQL, Host: "h", Database: "d"}})
		require.Error(t, err)
		assert.True(t, strata.IsMissingConfig(err))
		assert.Contains(t, err.Error(), "username")
	})
	t.Run("unsupported_dialect", func(t *testing.T) {
		_, err := NewProvider(Config{Read: &Endpoint{Dialect: "oracle", DSN: "x"}})
		require.Error(t, err)
		assert.True(t, strata.IsMissingConfig(err))
	})
}

func TestProviderResolve(t *testing.T) {
	cfg := Config{
		Read:  &Endpoint{Dialect: dialect.SQLite, DSN: "file:read?mode=memory&cache=shared"},
		Write: &Endpoint{Dialect: dialect.SQLite, DSN: "file:write?mode=memory&cache=shared"},
	}
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	defer p.Close()

	read, err := p.Resolve(Read)
	require.NoError(t, err)
	write, err := p.Resolve(Write)
	require.NoError(t, err)
	assert.Equal(t, dialect.SQLite, read.Dialect())
	assert.NotSame(t, read, write)

	// Resolving the same mode again reuses the open driver.
	again, err := p.Resolve(Read)
	require.NoError(t, err)
	assert.Same(t, read, again)
}

func TestProviderResolveErrors(t *testing.T) {
	p, err := NewProvider(Config{
		Write: &Endpoint{Dialect: dialect.SQLite, DSN: "file:solo?mode=memory"},
	})
	require.NoError(t, err)
	defer p.Close()

	t.Run("empty_mode", func(t *testing.T) {
		_, err := p.Resolve("")
		require.Error(t, err)
		assert.True(t, strata.IsInvalidMode(err))
	})
	t.Run("unknown_mode", func(t *testing.T) {
		_, err := p.Resolve("admin")
		require.Error(t, err)
		assert.True(t, strata.IsInvalidMode(err))
		var ime *strata.InvalidModeError
		require.ErrorAs(t, err, &ime)
		assert.Equal(t, "admin", ime.Mode)
	})
	t.Run("unconfigured_mode", func(t *testing.T) {
		// The write endpoint exists but must never answer for reads.
		_, err := p.Resolve(Read)
		require.Error(t, err)
		assert.True(t, strata.IsMissingConfig(err))
	})
}

func TestProviderDriverWrapping(t *testing.T) {
	ctx := context.Background()

	t.Run("stats", func(t *testing.T) {
		var stats *sql.QueryStats
		p, err := NewProvider(Config{
			Write: &Endpoint{Dialect: dialect.SQLite, DSN: "file:stats?mode=memory&cache=shared"},
		}, WithStats(func(mode Mode, s *sql.QueryStats) {
			assert.Equal(t, Write, mode)
			stats = s
		}))
		require.NoError(t, err)
		defer p.Close()

		drv, err := p.Resolve(Write)
		require.NoError(t, err)
		_, ok := drv.(*sql.StatsDriver)
		assert.True(t, ok, "resolved driver must carry stats collection")
		require.NotNil(t, stats)

		require.NoError(t, drv.Exec(ctx, "CREATE TABLE counters (n INTEGER)", []any{}, nil))
		var rows sql.Rows
		require.NoError(t, drv.Query(ctx, "SELECT COUNT(*) FROM counters", []any{}, &rows))
		rows.Close()

		snap := stats.Stats()
		assert.Equal(t, int64(1), snap.TotalExecs)
		assert.Equal(t, int64(1), snap.TotalQueries)
	})

	t.Run("debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		p, err := NewProvider(Config{
			Read: &Endpoint{Dialect: dialect.SQLite, DSN: "file:logging?mode=memory&cache=shared"},
		}, WithDebug(logger))
		require.NoError(t, err)
		defer p.Close()

		drv, err := p.Resolve(Read)
		require.NoError(t, err)
		var rows sql.Rows
		require.NoError(t, drv.Query(ctx, "SELECT 1", []any{}, &rows))
		rows.Close()
		assert.Contains(t, buf.String(), "driver.Query")
		assert.Contains(t, buf.String(), "SELECT 1")
	})
}

func TestProviderClose(t *testing.T) {
	p, err := NewProvider(Config{
		Read: &Endpoint{Dialect: dialect.SQLite, DSN: "file:closing?mode=memory"},
	})
	require.NoError(t, err)
	_, err = p.Resolve(Read)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	// Closing twice is a no-op.
	require.NoError(t, p.Close())
}
