package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/rpggio/itemboard/internal/config"
	"github.com/rpggio/itemboard/migrations"
)

// Dialect names the SQL flavour a DB speaks. It doubles as the
// database/sql driver name.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DB wraps a database connection pool together with its dialect
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open creates a connection pool for the configured driver. No connection
// is made until the first query.
func Open(cfg config.DBConfig) (*DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return New(SQLite, cfg.Path)
	case config.DriverPostgres:
		return New(Postgres, cfg.PostgresDSN())
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

// New creates a connection pool for the given dialect and data source
func New(dialect Dialect, dataSourceName string) (*DB, error) {
	db, err := sql.Open(string(dialect), dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serialises writers; one connection also keeps a :memory:
	// database alive for the lifetime of the pool.
	if dialect == SQLite {
		db.SetMaxOpenConns(1)
	}

	return &DB{DB: db, dialect: dialect}, nil
}

// Dialect reports the SQL flavour of the pool.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// RunMigrations applies the embedded schema for the pool's dialect. Every
// statement is create-if-missing, so running it again is harmless.
func (db *DB) RunMigrations(ctx context.Context) error {
	name := fmt.Sprintf("001_items.%s.up.sql", db.dialect)
	data, err := migrations.FS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	if _, err := db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders into the dialect's bind syntax.
func (db *DB) rebind(query string) string {
	if db.dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
