package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/homeplan/internal/models"
)

func (s *Store) AddCompletion(c models.Completion) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO completions (id, profile_id, date, time, exercise_name, therapy_type, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ProfileID, c.Date, c.Time, c.ExerciseName, c.TherapyType, string(c.Status), c.Notes, formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add completion: %w", err)
	}
	return nil
}

func (s *Store) GetCompletions(profileID, startDay, endDay string) ([]models.Completion, error) {
	query := []string{"SELECT id, profile_id, date, time, exercise_name, therapy_type, status, notes, created_at FROM completions WHERE profile_id = ?"}
	args := []any{profileID}
	if startDay != "" {
		query = append(query, "AND date >= ?")
		args = append(args, startDay)
	}
	if endDay != "" {
		query = append(query, "AND date <= ?")
		args = append(args, endDay)
	}
	query = append(query, "ORDER BY date, time, created_at")

	rows, err := s.db.Query(strings.Join(query, " "), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Completion{}
	for rows.Next() {
		var c models.Completion
		var status, created string
		if err := rows.Scan(&c.ID, &c.ProfileID, &c.Date, &c.Time, &c.ExerciseName, &c.TherapyType, &status, &c.Notes, &created); err != nil {
			return nil, err
		}
		c.Status = models.CompletionStatus(status)
		c.CreatedAt = parseTime(created)
		out = append(out, c)
	}
	return out, rows.Err()
}
