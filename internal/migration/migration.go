// Package migration applies the numbered SQL files embedded in the
// migrations package and tracks which ones a database has seen.
package migration

import (
	"cmp"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"time"
)

// Dialect selects the bind parameter style for the runner's own queries.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// fileName matches "NNN_name.sql".
var fileName = regexp.MustCompile(`^(\d+)_([A-Za-z0-9_\-]+)\.sql$`)

// Migration is one numbered schema step.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies migrations from an fs.FS to a database. Every applied
// version is kept as a row in schema_version; the schema version is the
// highest of them.
type Runner struct {
	db      *sql.DB
	files   fs.FS
	dialect Dialect
}

func NewRunner(db *sql.DB, files fs.FS, dialect Dialect) *Runner {
	return &Runner{db: db, files: files, dialect: dialect}
}

const historyDDL = `CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	applied_at TEXT NOT NULL DEFAULT ''
)`

func (r *Runner) insertSQL() string {
	return fmt.Sprintf("INSERT INTO schema_version (version, name, applied_at) VALUES (%s, %s, %s)",
		r.dialect.placeholder(1), r.dialect.placeholder(2), r.dialect.placeholder(3))
}

// Current returns the applied schema version, 0 for a fresh database.
func (r *Runner) Current() (int, error) {
	if _, err := r.db.Exec(historyDDL); err != nil {
		return 0, fmt.Errorf("failed to create schema_version table: %w", err)
	}
	var version sql.NullInt64
	if err := r.db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}

// record marks version as applied outside of a migration run.
func (r *Runner) record(version int, name string) error {
	if _, err := r.db.Exec(historyDDL); err != nil {
		return err
	}
	_, err := r.db.Exec(r.insertSQL(), version, name, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Migrations returns the migration files ordered by version.
func (r *Runner) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(r.files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		m := fileName.FindStringSubmatch(entry.Name())
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %s (expected NNN_name.sql)", entry.Name())
		}
		version, _ := strconv.Atoi(m[1])
		if version < 1 {
			return nil, fmt.Errorf("invalid migration filename %s: version must be at least 1", entry.Name())
		}
		body, err := fs.ReadFile(r.files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: m[2], SQL: string(body)})
	}

	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

// Latest returns the highest available migration version.
func (r *Runner) Latest() (int, error) {
	all, err := r.Migrations()
	if err != nil || len(all) == 0 {
		return 0, err
	}
	return all[len(all)-1].Version, nil
}

// Check fails when the database was migrated by a newer build.
func (r *Runner) Check() error {
	current, err := r.Current()
	if err != nil {
		return err
	}
	latest, err := r.Latest()
	if err != nil {
		return err
	}
	return tooNew(current, latest)
}

func tooNew(current, latest int) error {
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade homeplan", current, latest)
	}
	return nil
}

// Up applies every pending migration, each in its own transaction, and
// returns how many were applied. logFn may be nil.
func (r *Runner) Up(logFn func(string)) (int, error) {
	say := func(format string, args ...any) {
		if logFn != nil {
			logFn(fmt.Sprintf(format, args...))
		}
	}

	current, err := r.Current()
	if err != nil {
		return 0, err
	}
	all, err := r.Migrations()
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		say("No migration files found")
		return 0, nil
	}
	latest := all[len(all)-1].Version
	if err := tooNew(current, latest); err != nil {
		return 0, err
	}

	pending := slices.DeleteFunc(all, func(m Migration) bool { return m.Version <= current })
	if len(pending) == 0 {
		say("Database schema is up to date (version %d)", current)
		return 0, nil
	}

	say("Migrating schema from version %d to %d (%d pending)", current, latest, len(pending))
	started := time.Now()
	for i, m := range pending {
		if err := r.apply(m); err != nil {
			return i, err
		}
		say("  ✓ %03d_%s", m.Version, m.Name)
	}
	say("Applied %d migration(s) in %v", len(pending), time.Since(started).Round(time.Millisecond))
	return len(pending), nil
}

func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: failed to begin transaction: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
	}
	if _, err := tx.Exec(r.insertSQL(), m.Version, m.Name, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("migration %d: failed to record version: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: failed to commit: %w", m.Version, err)
	}
	return nil
}
