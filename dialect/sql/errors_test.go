package sql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/syssam/strata"
)

func TestIsUniqueConstraintError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"mysql_number", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"mysql_other_number", &mysql.MySQLError{Number: 1040, Message: "Too many connections"}, false},
		{"pq_code", &pq.Error{Code: "23505"}, true},
		{"sqlite_text", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), true},
		{"postgres_text", errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`), true},
		{"wrapped", fmt.Errorf("save: %w", &mysql.MySQLError{Number: 1062}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsUniqueConstraintError(tt.err))
		})
	}
}

func TestIsForeignKeyConstraintError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsForeignKeyConstraintError(&mysql.MySQLError{Number: 1451}))
	assert.True(t, IsForeignKeyConstraintError(&mysql.MySQLError{Number: 1452}))
	assert.True(t, IsForeignKeyConstraintError(&pq.Error{Code: "23503"}))
	assert.True(t, IsForeignKeyConstraintError(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, IsForeignKeyConstraintError(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsForeignKeyConstraintError(nil))
}

func TestIsCheckConstraintError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsCheckConstraintError(&mysql.MySQLError{Number: 3819}))
	assert.True(t, IsCheckConstraintError(&pq.Error{Code: "23514"}))
	assert.True(t, IsCheckConstraintError(errors.New("CHECK constraint failed: age_positive")))
	assert.False(t, IsCheckConstraintError(&pq.Error{Code: "23505"}))
}

func TestIsConstraintError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsConstraintError(strata.NewConstraintError("users.email", nil)))
	assert.True(t, IsConstraintError(&mysql.MySQLError{Number: 1062}))
	assert.True(t, IsConstraintError(&pq.Error{Code: "23503"}))
	assert.False(t, IsConstraintError(errors.New("connection refused")))

	// Classification survives wrapping in an execution error.
	wrapped := strata.NewExecutionError("INSERT", &mysql.MySQLError{Number: 1062})
	assert.True(t, IsConstraintError(wrapped))
}
