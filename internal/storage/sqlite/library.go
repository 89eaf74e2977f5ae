package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/homeplan/internal/models"
)

// AddLibraryExercise inserts or replaces a library exercise. An empty ID
// is assigned a new one.
func (s *Store) AddLibraryExercise(e models.LibraryExercise) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO exercise_library (id, name, min_age, max_age, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.MinAge, e.MaxAge, string(data), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to add library exercise: %w", err)
	}
	return nil
}

// QueryLibrary narrows by age in SQL and by concerns in Go, since skill
// areas live in the JSON document.
func (s *Store) QueryLibrary(q models.LibraryQuery) ([]models.LibraryExercise, error) {
	return s.queryLibrary(
		"SELECT data FROM exercise_library WHERE min_age <= ? AND max_age >= ? ORDER BY created_at, id",
		func(e models.LibraryExercise) bool { return q.Matches(e) },
		q.MinAge, q.MaxAge)
}

func (s *Store) ListLibrary() ([]models.LibraryExercise, error) {
	return s.queryLibrary("SELECT data FROM exercise_library ORDER BY created_at, id", nil)
}

func (s *Store) queryLibrary(query string, keep func(models.LibraryExercise) bool, args ...any) ([]models.LibraryExercise, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.LibraryExercise{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var e models.LibraryExercise
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			return nil, fmt.Errorf("failed to decode library exercise: %w", err)
		}
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	return out, rows.Err()
}
