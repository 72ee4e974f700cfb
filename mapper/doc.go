// Package mapper translates between relational rows and typed entities.
//
// A Resolver is the per-entity-type entry point: it owns the mapping
// descriptor, routes fetches to the read endpoint and writes to the write
// endpoint of a conn.Provider, and carries reusable named query fragments.
// Entities are plain structs exposed through a Binder, an explicit
// property-to-field table, so no reflection is involved in row decoding.
//
//	type User struct {
//		ID      int64
//		Email   string
//		Enabled bool
//	}
//
//	binder := mapper.Binder[User]{
//		"id":      func(u *User) any { return &u.ID },
//		"email":   func(u *User) any { return &u.Email },
//		"enabled": func(u *User) any { return &u.Enabled },
//	}
//
//	users, err := mapper.NewResolver(provider, registry, "User", binder)
//	...
//	enabled, err := users.Query().
//		WhereProperty("enabled", true).
//		All(ctx)
//
// Queries are deferred: conditions and named fragments are layered before
// execution and every value is bound as a statement parameter.
package mapper
