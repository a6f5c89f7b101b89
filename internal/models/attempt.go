package models

import (
	"time"

	"github.com/google/uuid"
)

type AttemptState string

const (
	StateIdle       AttemptState = "idle"
	StateEncoding   AttemptState = "encoding"
	StateRequesting AttemptState = "requesting"
	StateValidating AttemptState = "validating"
	StateSucceeded  AttemptState = "succeeded"
	StateFailed     AttemptState = "failed"
)

// IsTerminal reports whether the attempt has produced an outcome.
func (s AttemptState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// RoastAttempt is the ledger row kept for every roast attempt. It holds
// metadata only; neither the file nor the roast text is stored.
type RoastAttempt struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	State          AttemptState `gorm:"type:text;not null" json:"state"`
	Outcome        AttemptState `gorm:"type:text" json:"outcome,omitempty"`
	FileName       string       `gorm:"type:text" json:"fileName"`
	MimeType       string       `gorm:"type:text" json:"mimeType"`
	FileSize       int64        `json:"fileSize"`
	Intensity      int          `json:"intensity"`
	IntensityLabel string       `gorm:"type:text" json:"intensityLabel"`
	Provider       string       `gorm:"type:text" json:"provider"`
	Model          string       `gorm:"type:text" json:"model"`
	ErrorCode      *string      `gorm:"type:text" json:"errorCode,omitempty"`
	MockScore      *int         `json:"mockScore,omitempty"`
	MockLabel      *string      `gorm:"type:text" json:"mockLabel,omitempty"`
	SectionCount   int          `json:"sectionCount"`
	DurationMs     int64        `json:"durationMs"`
	StartedAt      time.Time    `json:"startedAt"`
	FinishedAt     *time.Time   `json:"finishedAt,omitempty"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (RoastAttempt) TableName() string {
	return "roast_attempts"
}
