package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/storage"
)

// SaveGeneration replaces the stored week for result.ProfileID.
func (s *Store) SaveGeneration(result models.GenerationResult) error {
	if result.ProfileID == "" {
		return fmt.Errorf("generation has no profile ID")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode generation: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM generations WHERE profile_id = ?", result.ProfileID); err != nil {
		return fmt.Errorf("failed to clear previous generation: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO generations (profile_id, run_id, generated_at, total_scheduled, expected_total, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		result.ProfileID, result.RunID, formatTime(result.GeneratedAt),
		result.TotalScheduled, result.ExpectedTotal, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save generation: %w", err)
	}
	return tx.Commit()
}

func (s *Store) GetGeneration(profileID string) (models.GenerationResult, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM generations WHERE profile_id = ?", profileID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GenerationResult{}, fmt.Errorf("schedule for profile %s: %w", profileID, storage.ErrNotFound)
	}
	if err != nil {
		return models.GenerationResult{}, err
	}

	var result models.GenerationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return models.GenerationResult{}, fmt.Errorf("failed to decode generation: %w", err)
	}
	return result, nil
}
