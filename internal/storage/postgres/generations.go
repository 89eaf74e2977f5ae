package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/storage"
)

func (s *Store) SaveGeneration(result models.GenerationResult) error {
	if result.ProfileID == "" {
		return fmt.Errorf("generation has no profile ID")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode generation: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO generations (profile_id, run_id, generated_at, total_scheduled, expected_total, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (profile_id) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			generated_at = EXCLUDED.generated_at,
			total_scheduled = EXCLUDED.total_scheduled,
			expected_total = EXCLUDED.expected_total,
			payload = EXCLUDED.payload`,
		result.ProfileID, result.RunID, result.GeneratedAt,
		result.TotalScheduled, result.ExpectedTotal, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save generation: %w", err)
	}
	return nil
}

func (s *Store) GetGeneration(profileID string) (models.GenerationResult, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM generations WHERE profile_id = $1", profileID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GenerationResult{}, fmt.Errorf("schedule for profile %s: %w", profileID, storage.ErrNotFound)
	}
	if err != nil {
		return models.GenerationResult{}, err
	}

	var result models.GenerationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return models.GenerationResult{}, fmt.Errorf("failed to decode generation: %w", err)
	}
	return result, nil
}
