package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	// Postgres driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db      *sql.DB
	drv     *entsql.Driver
	dialect string
}

// Open connects to the database named by dsn and migrates the schema.
// A postgres:// or postgresql:// URL selects Postgres; anything else is
// treated as a SQLite file path or DSN.
func Open(dsn string) (*Store, error) {
	return OpenContext(context.Background(), dsn)
}

// OpenContext is Open with a caller-supplied context for the migration step.
func OpenContext(ctx context.Context, dsn string) (*Store, error) {
	driverName, dia := driverFor(dsn)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dia == dialect.SQLite {
		// SQLite allows a single writer; one connection also keeps
		// per-connection pragmas and in-memory databases consistent.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	drv := entsql.OpenDB(dia, db)
	if err := migrate(ctx, drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, drv: drv, dialect: dia}, nil
}

// OpenMemory opens a private in-memory SQLite database. Nothing written to
// it survives Close.
func OpenMemory(ctx context.Context) (*Store, error) {
	return OpenContext(ctx, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
}

func driverFor(dsn string) (driverName, dia string) {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return "pgx", dialect.Postgres
	}
	return "sqlite", dialect.SQLite
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect reports the SQL dialect in use ("sqlite3" or "postgres").
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Patterns returns the error-pattern repository.
func (s *Store) Patterns() PatternRepo {
	return &patternRepo{db: s.db, dialect: s.dialect}
}

// Reviews returns the review-schedule repository.
func (s *Store) Reviews() ReviewRepo {
	return &reviewRepo{db: s.db, dialect: s.dialect}
}

// Sessions returns the session-result log.
func (s *Store) Sessions() SessionRepo {
	return &sessionRepo{db: s.db, dialect: s.dialect}
}

// LLMEvents returns the LLM request log.
func (s *Store) LLMEvents() LLMEventRepo {
	return &llmEventRepo{db: s.db, dialect: s.dialect}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. GRAMMIZ_DB environment variable
// 2. $XDG_DATA_HOME/grammiz/grammiz.db
// 3. ~/.local/share/grammiz/grammiz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("GRAMMIZ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "grammiz", "grammiz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
// Database URLs are left alone.
func EnsureDir(path string) error {
	if name, _ := driverFor(path); name != "sqlite" || strings.HasPrefix(path, "file:") {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
