package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/storage"
)

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
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			child_name = EXCLUDED.child_name,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.ChildName, string(data), p.CreatedAt, p.UpdatedAt)
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
	var data []byte
	var created, updated time.Time
	err := s.db.QueryRow("SELECT data, created_at, updated_at FROM profiles WHERE id = $1", id).
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

func (s *Store) ListProfiles() ([]models.UserProfile, error) {
	rows, err := s.db.Query("SELECT data, created_at, updated_at FROM profiles ORDER BY child_name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.UserProfile{}
	for rows.Next() {
		var data []byte
		var created, updated time.Time
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

// DeleteProfile relies on ON DELETE CASCADE for dependent rows.
func (s *Store) DeleteProfile(id string) error {
	res, err := s.db.Exec("DELETE FROM profiles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func decodeProfile(data []byte, created, updated time.Time) (models.UserProfile, error) {
	var p models.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	p.CreatedAt = created
	p.UpdatedAt = updated
	return p, nil
}

func (s *Store) SavePrescribedExercises(profileID string, exercises []models.PrescribedExercise) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS (SELECT 1 FROM profiles WHERE id = $1)", profileID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("profile %s: %w", profileID, storage.ErrNotFound)
	}
	if err := replacePrescribed(tx, profileID, exercises); err != nil {
		return err
	}
	return tx.Commit()
}

func replacePrescribed(tx *sql.Tx, profileID string, exercises []models.PrescribedExercise) error {
	if _, err := tx.Exec("DELETE FROM prescribed_exercises WHERE profile_id = $1", profileID); err != nil {
		return fmt.Errorf("failed to clear prescribed exercises: %w", err)
	}
	for i, e := range exercises {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			"INSERT INTO prescribed_exercises (profile_id, position, name, data) VALUES ($1, $2, $3, $4)",
			profileID, i, e.Name, string(data)); err != nil {
			return fmt.Errorf("failed to save prescribed exercise %q: %w", e.Name, err)
		}
	}
	return nil
}

func (s *Store) GetPrescribedExercises(profileID string) ([]models.PrescribedExercise, error) {
	rows, err := s.db.Query("SELECT data FROM prescribed_exercises WHERE profile_id = $1 ORDER BY position", profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []models.PrescribedExercise{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var e models.PrescribedExercise
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to decode prescribed exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}
