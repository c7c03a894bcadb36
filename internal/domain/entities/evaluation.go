package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
	"gorm.io/datatypes"
)

// Mode selects the model configuration used to judge a meeting
type Mode string

const (
	ModeGPT41  Mode = "4.1"
	ModeO3Mini Mode = "o3-mini"
	ModeO3High Mode = "o3-high"
)

// Modes lists every supported mode in display order
var Modes = []Mode{ModeGPT41, ModeO3Mini, ModeO3High}

func (m Mode) Valid() bool {
	switch m {
	case ModeGPT41, ModeO3Mini, ModeO3High:
		return true
	}
	return false
}

// Reasoning reports whether the mode runs on a reasoning model
func (m Mode) Reasoning() bool {
	return m == ModeO3Mini || m == ModeO3High
}

// ParseMode converts user input into a Mode
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", ErrInvalidMode
	}
	return m, nil
}

type (
	// EvaluationResult is the judged comparison of one meeting's summaries
	EvaluationResult = scoring.Result
	// AggregateResult is the mean of many evaluation results
	AggregateResult = scoring.AggregateResult
)

// StoredEvaluation is the persisted evaluation of one meeting under one mode
type StoredEvaluation struct {
	ID        uuid.UUID                          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID                          `gorm:"type:uuid;not null;uniqueIndex:idx_stored_evaluations_meeting_mode" json:"meeting_id"`
	Mode      Mode                               `gorm:"type:varchar(20);not null;uniqueIndex:idx_stored_evaluations_meeting_mode;index" json:"mode"`
	Model     string                             `gorm:"type:varchar(100)" json:"model"`
	Results   datatypes.JSONType[scoring.Result] `gorm:"type:jsonb;not null" json:"results"`
	CreatedAt time.Time                          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                          `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for StoredEvaluation
func (StoredEvaluation) TableName() string {
	return "stored_evaluations"
}

// Result returns the decoded evaluation
func (e *StoredEvaluation) Result() scoring.Result {
	return e.Results.Data()
}
