package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-mocker/internal/models"
)

var ErrAttemptNotFound = errors.New("attempt not found")

type AttemptRepository interface {
	Create(attempt *models.RoastAttempt) error
	FindByID(id uuid.UUID) (*models.RoastAttempt, error)
	UpdateState(id uuid.UUID, state models.AttemptState) error
	UpdateOutcome(id uuid.UUID, outcome *AttemptOutcome) error
}

// AttemptOutcome is written once, when an attempt reaches a terminal state.
type AttemptOutcome struct {
	Outcome      models.AttemptState
	ErrorCode    *string
	MockScore    *int
	MockLabel    *string
	SectionCount int
	FinishedAt   time.Time
	DurationMs   int64
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *models.RoastAttempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

func (r *attemptRepository) FindByID(id uuid.UUID) (*models.RoastAttempt, error) {
	var attempt models.RoastAttempt
	if err := r.db.Where("id = ?", id).First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to find attempt: %w", err)
	}
	return &attempt, nil
}

func (r *attemptRepository) UpdateState(id uuid.UUID, state models.AttemptState) error {
	result := r.db.Model(&models.RoastAttempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":      state,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update state: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrAttemptNotFound
	}

	return nil
}

func (r *attemptRepository) UpdateOutcome(id uuid.UUID, outcome *AttemptOutcome) error {
	updates := map[string]interface{}{
		"state":         outcome.Outcome,
		"outcome":       outcome.Outcome,
		"section_count": outcome.SectionCount,
		"finished_at":   outcome.FinishedAt,
		"duration_ms":   outcome.DurationMs,
		"updated_at":    time.Now(),
	}

	if outcome.ErrorCode != nil {
		updates["error_code"] = *outcome.ErrorCode
	}
	if outcome.MockScore != nil {
		updates["mock_score"] = *outcome.MockScore
	}
	if outcome.MockLabel != nil {
		updates["mock_label"] = *outcome.MockLabel
	}

	result := r.db.Model(&models.RoastAttempt{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update outcome: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrAttemptNotFound
	}

	return nil
}
