package evaluation

import (
	"time"

	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/common"
	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
)

// EvaluationResponse represents a stored evaluation
type EvaluationResponse struct {
	ID        string         `json:"id"`
	MeetingID string         `json:"meeting_id"`
	Mode      string         `json:"mode"`
	Model     string         `json:"model"`
	Results   scoring.Result `json:"results"`
	common.TimestampResponse
}

// BatchItemResponse is one meeting's outcome inside a batch
type BatchItemResponse struct {
	MeetingID  string              `json:"meeting_id"`
	Evaluation *EvaluationResponse `json:"evaluation,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// BatchResponse summarises a batch evaluation
type BatchResponse struct {
	BatchID    string              `json:"batch_id"`
	Mode       string              `json:"mode"`
	Succeeded  int                 `json:"succeeded"`
	Failed     int                 `json:"failed"`
	DurationMs int64               `json:"duration_ms"`
	Items      []BatchItemResponse `json:"items"`
}

// ExportResponse points at an uploaded export document
type ExportResponse struct {
	ObjectName string    `json:"object_name"`
	URL        string    `json:"url"`
	Mode       string    `json:"mode"`
	Count      int       `json:"count"`
	ExpiresAt  time.Time `json:"expires_at"`
}
