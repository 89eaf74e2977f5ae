package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/homeplan/internal/models"
)

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
		INSERT INTO exercise_library (id, name, min_age, max_age, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			min_age = EXCLUDED.min_age,
			max_age = EXCLUDED.max_age,
			data = EXCLUDED.data`,
		e.ID, e.Name, e.MinAge, e.MaxAge, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to add library exercise: %w", err)
	}
	return nil
}

func (s *Store) QueryLibrary(q models.LibraryQuery) ([]models.LibraryExercise, error) {
	return s.queryLibrary(
		"SELECT data FROM exercise_library WHERE min_age <= $1 AND max_age >= $2 ORDER BY created_at, id",
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
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var e models.LibraryExercise
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to decode library exercise: %w", err)
		}
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	return out, rows.Err()
}
