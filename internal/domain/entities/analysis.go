package entities

import (
	"time"

	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
	"gorm.io/datatypes"
)

// LatestSnapshotKey identifies the most recent analysis of a mode
const LatestSnapshotKey = "latest"

// CriterionExplanations is the model-written prose for each criterion of an aggregate
type CriterionExplanations struct {
	Truthfulness string `json:"truthfulness"`
	Clarity      string `json:"clarity"`
	Conciseness  string `json:"conciseness"`
	Relevance    string `json:"relevance"`
	Completeness string `json:"completeness"`
	Notes        string `json:"notes"`
	Overall      string `json:"overall"`
}

// Analysis is the aggregate of every stored evaluation for a mode
type Analysis struct {
	Mode              Mode                    `json:"mode"`
	Aggregate         scoring.AggregateResult `json:"aggregate"`
	Explanations      *CriterionExplanations  `json:"explanations,omitempty"`
	ExplanationsError string                  `json:"explanations_error,omitempty"`
	GeneratedAt       time.Time               `json:"generated_at"`
}

// AnalysisSnapshot persists the latest Analysis per mode
type AnalysisSnapshot struct {
	Key       string                       `gorm:"type:varchar(50);primaryKey" json:"key"`
	Mode      Mode                         `gorm:"type:varchar(20);primaryKey" json:"mode"`
	Payload   datatypes.JSONType[Analysis] `gorm:"type:jsonb;not null" json:"payload"`
	CreatedAt time.Time                    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for AnalysisSnapshot
func (AnalysisSnapshot) TableName() string {
	return "analysis_snapshots"
}
