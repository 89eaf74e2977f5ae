package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/homeplan/internal/constants"
)

// setupTestDB creates a minimal database carrying the profiles table that
// restore verification looks for.
func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "homeplan.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		"CREATE TABLE profiles (id TEXT PRIMARY KEY, child_name TEXT)",
		"INSERT INTO profiles (id, child_name) VALUES ('p1', 'Ava')",
		"INSERT INTO profiles (id, child_name) VALUES ('p2', 'Ben')",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed test database: %v", err)
		}
	}
	return dbPath
}

// stepClock returns a clock that advances one minute per call.
func stepClock(start time.Time) func() time.Time {
	current := start.Add(-time.Minute)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func countProfiles(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&n); err != nil {
		t.Fatalf("failed to count profiles: %v", err)
	}
	return n
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != mgr.BackupDir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(backupPath), mgr.BackupDir())
	}
	if got := countProfiles(t, backupPath); got != 2 {
		t.Errorf("expected 2 profiles in backup, got %d", got)
	}
}

func TestCreateBackup_NoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("CreateBackup error = %v, want ErrNoDatabase", err)
	}
}

func TestBackupRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = stepClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local))

	for i := range constants.MaxBackups + 5 {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted newest first at %d", i)
		}
	}
	oldestKept := time.Date(2025, 6, 1, 9, 5, 0, 0, time.Local)
	if got := backups[len(backups)-1].Timestamp; !got.Equal(oldestKept) {
		t.Errorf("oldest kept backup = %v, want %v", got, oldestKept)
	}
}

func TestListBackups(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = stepClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local))

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := range 3 {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}
	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(mgr.BackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("incomplete backup info: %+v", b)
		}
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	fixed := time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := make(map[string]bool)
	for i := range 5 {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		name := filepath.Base(path)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 5 {
		t.Errorf("counter-suffixed backups should be listed, got %d", len(backups))
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		want time.Time
	}{
		{"homeplan-20250601-0930.db", true, time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local)},
		{"homeplan-20250601-093015.db", true, time.Date(2025, 6, 1, 9, 30, 15, 0, time.Local)},
		{"homeplan-20250601-093015-3.db", true, time.Date(2025, 6, 1, 9, 30, 15, 0, time.Local)},
		{"homeplan-latest.db", false, time.Time{}},
		{"other-20250601-0930.db", false, time.Time{}},
		{"homeplan-20250601-0930.sql", false, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseName(tt.name)
			if ok != tt.ok {
				t.Fatalf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = stepClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO profiles (id, child_name) VALUES ('p3', 'Cy')"); err != nil {
		t.Fatalf("failed to insert profile: %v", err)
	}
	db.Close()

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countProfiles(t, dbPath); got != 2 {
		t.Errorf("expected 2 profiles after restore, got %d", got)
	}
	if previous == "" {
		t.Fatal("RestoreBackup should back up the current database first")
	}
	if got := countProfiles(t, previous); got != 3 {
		t.Errorf("pre-restore backup has %d profiles, want 3", got)
	}
}

func TestRestoreBackup_Invalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}

	garbage := filepath.Join(mgr.BackupDir(), "garbage.db")
	if err := os.WriteFile(garbage, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(garbage); err == nil {
		t.Error("RestoreBackup should reject a corrupted file")
	}

	foreign := filepath.Join(t.TempDir(), "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE habits (id TEXT)"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if _, err := mgr.RestoreBackup(foreign); err == nil {
		t.Error("RestoreBackup should reject a database without a profiles table")
	}

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("RestoreBackup should fail for a missing file")
	}
	if got := countProfiles(t, dbPath); got != 2 {
		t.Errorf("failed restores must leave the database alone, got %d profiles", got)
	}
}
