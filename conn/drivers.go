package conn

// Register the database/sql drivers for the supported dialects. The MySQL
// driver is imported directly in config.go for DSN formatting; Postgres
// and SQLite only need their driver registration side effects.
import (
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)
