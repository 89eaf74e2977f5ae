package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/storage"
)

// SaveProfile inserts or replaces a profile. The prescribed exercises
// embedded in the profile are stored separately, see
// SavePrescribedExercises.
func (s *Store) SaveProfile(p models.UserProfile) error {
	if p.ID == "" {
		return fmt.Errorf("profile ID cannot be empty")
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	prescribed := p.PrescribedExercises
	p.PrescribedExercises = nil

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO profiles (id, child_name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			child_name = excluded.child_name,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		p.ID, p.ChildName, string(data), formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if prescribed != nil {
		if err := replacePrescribed(tx, p.ID, prescribed); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) GetProfile(id string) (models.UserProfile, error) {
	var data, created, updated string
	err := s.db.QueryRow("SELECT data, created_at, updated_at FROM profiles WHERE id = ?", id).
		Scan(&data, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, fmt.Errorf("profile %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.UserProfile{}, err
	}

	p, err := decodeProfile(data, created, updated)
	if err != nil {
		return models.UserProfile{}, err
	}
	if p.PrescribedExercises, err = s.GetPrescribedExercises(id); err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

// ListProfiles returns every profile without its prescribed exercises.
func (s *Store) ListProfiles() ([]models.UserProfile, error) {
	rows, err := s.db.Query("SELECT data, created_at, updated_at FROM profiles ORDER BY child_name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.UserProfile{}
	for rows.Next() {
		var data, created, updated string
		if err := rows.Scan(&data, &created, &updated); err != nil {
			return nil, err
		}
		p, err := decodeProfile(data, created, updated)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) DeleteProfile(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"completions", "prescribed_exercises", "generations"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE profile_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}
	res, err := tx.Exec("DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s: %w", id, storage.ErrNotFound)
	}
	return tx.Commit()
}

func decodeProfile(data, created, updated string) (models.UserProfile, error) {
	var p models.UserProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

func (s *Store) SavePrescribedExercises(profileID string, exercises []models.PrescribedExercise) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM profiles WHERE id = ?", profileID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("profile %s: %w", profileID, storage.ErrNotFound)
	}
	if err := replacePrescribed(tx, profileID, exercises); err != nil {
		return err
	}
	return tx.Commit()
}

func replacePrescribed(tx *sql.Tx, profileID string, exercises []models.PrescribedExercise) error {
	if _, err := tx.Exec("DELETE FROM prescribed_exercises WHERE profile_id = ?", profileID); err != nil {
		return fmt.Errorf("failed to clear prescribed exercises: %w", err)
	}
	for i, e := range exercises {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			"INSERT INTO prescribed_exercises (profile_id, position, name, data) VALUES (?, ?, ?, ?)",
			profileID, i, e.Name, string(data)); err != nil {
			return fmt.Errorf("failed to save prescribed exercise %q: %w", e.Name, err)
		}
	}
	return nil
}

func (s *Store) GetPrescribedExercises(profileID string) ([]models.PrescribedExercise, error) {
	rows, err := s.db.Query("SELECT data FROM prescribed_exercises WHERE profile_id = ? ORDER BY position", profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []models.PrescribedExercise{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var e models.PrescribedExercise
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			return nil, fmt.Errorf("failed to decode prescribed exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}
