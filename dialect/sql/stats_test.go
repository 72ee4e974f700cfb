package sql

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/strata/dialect"
)

func newStatsDriver(t *testing.T, opts ...StatsOption) (*StatsDriver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStatsDriver(OpenDB(dialect.MySQL, db), opts...), mock
}

func TestStatsDriverCounts(t *testing.T) {
	drv, mock := newStatsDriver(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	var rows Rows
	require.NoError(t, drv.Query(ctx, "SELECT `id` FROM `users`", []any{}, &rows))
	rows.Close()

	mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, drv.Exec(ctx, "UPDATE `users` SET `x` = ?", []any{1}, nil))

	mock.ExpectExec("UPDATE").WillReturnError(errors.New("boom"))
	require.Error(t, drv.Exec(ctx, "UPDATE `users` SET `x` = ?", []any{2}, nil))

	stats := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), stats.TotalQueries)
	assert.Equal(t, int64(2), stats.TotalExecs)
	assert.Equal(t, int64(1), stats.Errors)
	assert.Contains(t, stats.String(), "queries=1")

	drv.QueryStats().Reset()
	assert.Equal(t, int64(0), drv.QueryStats().Stats().TotalQueries)
}

func TestStatsDriverSlowQueryHook(t *testing.T) {
	var (
		mu     sync.Mutex
		slowed []string
	)
	drv, mock := newStatsDriver(t,
		WithSlowThreshold(0), // every statement counts as slow
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			mu.Lock()
			slowed = append(slowed, query)
			mu.Unlock()
		}),
	)

	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, drv.Exec(context.Background(), "INSERT INTO `users` () VALUES ()", []any{}, nil))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, slowed, 1)
	assert.Contains(t, slowed[0], "INSERT")
	assert.Equal(t, int64(1), drv.QueryStats().Stats().SlowQueries)
}

func TestStatsDriverThreshold(t *testing.T) {
	drv, _ := newStatsDriver(t, WithSlowThreshold(time.Second))
	assert.Equal(t, time.Second, drv.SlowThreshold())
	drv.SetSlowThreshold(2 * time.Second)
	assert.Equal(t, 2*time.Second, drv.SlowThreshold())
}

func TestStatsTx(t *testing.T) {
	drv, mock := newStatsDriver(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Exec(ctx, "INSERT INTO `users` () VALUES ()", []any{}, nil))
	require.NoError(t, tx.Commit())

	assert.Equal(t, int64(1), drv.QueryStats().Stats().TotalExecs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvgQueryDuration(t *testing.T) {
	snap := StatsSnapshot{TotalQueries: 2, TotalExecs: 2, TotalDuration: 4 * time.Millisecond}
	assert.Equal(t, time.Millisecond, snap.AvgQueryDuration())
	assert.Equal(t, time.Duration(0), StatsSnapshot{}.AvgQueryDuration())
}
