package analysis

import (
	"time"

	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
)

// ExplanationsResponse is the prose accompanying an aggregate
type ExplanationsResponse struct {
	Truthfulness string `json:"truthfulness"`
	Clarity      string `json:"clarity"`
	Conciseness  string `json:"conciseness"`
	Relevance    string `json:"relevance"`
	Completeness string `json:"completeness"`
	Notes        string `json:"notes"`
	Overall      string `json:"overall"`
}

// AnalysisResponse represents the aggregate analysis of one mode
type AnalysisResponse struct {
	Mode              string                  `json:"mode"`
	Count             int                     `json:"count"`
	Aggregate         scoring.AggregateResult `json:"aggregate"`
	Explanations      *ExplanationsResponse   `json:"explanations,omitempty"`
	ExplanationsError string                  `json:"explanations_error,omitempty"`
	GeneratedAt       time.Time               `json:"generated_at"`
}
