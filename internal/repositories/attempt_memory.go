package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-mocker/internal/models"
)

// MemoryAttemptRepository keeps the most recent attempts in memory and is
// safe for concurrent use. The oldest entry is evicted once capacity is hit.
type MemoryAttemptRepository struct {
	mu       sync.RWMutex
	capacity int
	byID     map[uuid.UUID]models.RoastAttempt
	order    []uuid.UUID
}

func NewMemoryAttemptRepository(capacity int) *MemoryAttemptRepository {
	if capacity <= 0 {
		capacity = 100
	}
	return &MemoryAttemptRepository{
		capacity: capacity,
		byID:     make(map[uuid.UUID]models.RoastAttempt, capacity),
	}
}

func (r *MemoryAttemptRepository) Create(attempt *models.RoastAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[attempt.ID]; !exists {
		if len(r.order) >= r.capacity {
			oldest := r.order[0]
			r.order = r.order[1:]
			delete(r.byID, oldest)
		}
		r.order = append(r.order, attempt.ID)
	}

	if attempt.UpdatedAt.IsZero() {
		attempt.UpdatedAt = time.Now()
	}
	r.byID[attempt.ID] = *attempt
	return nil
}

func (r *MemoryAttemptRepository) FindByID(id uuid.UUID) (*models.RoastAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	attempt, ok := r.byID[id]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	return &attempt, nil
}

func (r *MemoryAttemptRepository) UpdateState(id uuid.UUID, state models.AttemptState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempt, ok := r.byID[id]
	if !ok {
		return ErrAttemptNotFound
	}
	attempt.State = state
	attempt.UpdatedAt = time.Now()
	r.byID[id] = attempt
	return nil
}

func (r *MemoryAttemptRepository) UpdateOutcome(id uuid.UUID, outcome *AttemptOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempt, ok := r.byID[id]
	if !ok {
		return ErrAttemptNotFound
	}

	finishedAt := outcome.FinishedAt
	attempt.State = outcome.Outcome
	attempt.Outcome = outcome.Outcome
	attempt.SectionCount = outcome.SectionCount
	attempt.FinishedAt = &finishedAt
	attempt.DurationMs = outcome.DurationMs
	attempt.UpdatedAt = time.Now()
	if outcome.ErrorCode != nil {
		attempt.ErrorCode = outcome.ErrorCode
	}
	if outcome.MockScore != nil {
		attempt.MockScore = outcome.MockScore
	}
	if outcome.MockLabel != nil {
		attempt.MockLabel = outcome.MockLabel
	}

	r.byID[id] = attempt
	return nil
}

// Len returns the number of attempts currently held.
func (r *MemoryAttemptRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
