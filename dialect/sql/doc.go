// Package sql provides SQL query building primitives and the database
// driver wrapper used by the strata data mapper.
//
// This package is the foundation for generating and executing SQL across
// PostgreSQL, MySQL, and SQLite. Statements are assembled through fluent
// builders; every value is bound as a parameter, never interpolated into
// the statement text.
//
// # Builder Types
//
// The package provides specialized builders for different SQL operations:
//
//   - Builder: Low-level SQL string builder with identifier quoting
//   - Selector: SELECT query builder with joins, predicates, and pagination
//   - InsertBuilder: INSERT statement builder with RETURNING support
//   - UpdateBuilder: UPDATE statement builder with SET and WHERE clauses
//   - DeleteBuilder: DELETE statement builder with WHERE predicates
//
// # Dialect Support
//
// SQL generation adapts to different database dialects:
//
//	import "github.com/syssam/strata/dialect"
//
//	// PostgreSQL
//	b := sql.Dialect(dialect.Postgres)
//	b.Select("id", "name").From(sql.Table("users")).Where(sql.EQ("status", "active"))
//
//	// MySQL
//	b := sql.Dialect(dialect.MySQL)
//
// # Predicates
//
// The package provides composable predicate functions:
//
//	// Equality
//	sql.EQ("name", "john")           // name = ?
//	sql.NEQ("status", "deleted")     // status <> ?
//
//	// Comparison
//	sql.GT("age", 18)                // age > ?
//	sql.LTE("price", 100.0)          // price <= ?
//
//	// String matching
//	sql.Contains("name", "john")     // name LIKE ?  (bound "%john%")
//	sql.HasPrefix("email", "admin")  // email LIKE ? (bound "admin%")
//
//	// NULL checks
//	sql.IsNull("deleted_at")         // deleted_at IS NULL
//	sql.NotNull("email")             // email IS NOT NULL
//
//	// IN clauses
//	sql.In("status", "active", "pending")  // status IN (?, ?)
//
// Predicates attached to the same statement combine with AND; disjunction
// is always explicit through sql.Or.
//
// # Joins
//
// Join operations are supported through the selector:
//
//	sql.Select("u.id", "u.name", "p.title").
//	    From(sql.Table("users").As("u")).
//	    Join(sql.Table("posts").As("p")).On("u.id", "p.user_id").
//	    Where(sql.EQ("u.status", "active"))
//
// # Pagination
//
// Offset-based pagination:
//
//	sql.Select("*").From(sql.Table("users")).Offset(20).Limit(10)
//
// # Driver
//
// The package also wraps database/sql with the dialect.Driver interface,
// and provides a statistics-collecting driver with slow query logging
// (see OpenWithStats).
package sql
