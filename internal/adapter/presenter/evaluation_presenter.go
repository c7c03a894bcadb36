package presenter

import (
	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/common"
	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/evaluation"
	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	evaluationUC "github.com/johnquangdev/summary-evaluator/internal/usecase/evaluation"
	"github.com/johnquangdev/summary-evaluator/internal/usecase/export"
)

// ToEvaluationResponse converts a StoredEvaluation to EvaluationResponse DTO
func ToEvaluationResponse(e *entities.StoredEvaluation) *evaluation.EvaluationResponse {
	if e == nil {
		return nil
	}
	return &evaluation.EvaluationResponse{
		ID:        e.ID.String(),
		MeetingID: e.MeetingID.String(),
		Mode:      string(e.Mode),
		Model:     e.Model,
		Results:   e.Result(),
		TimestampResponse: common.TimestampResponse{
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		},
	}
}

// ToEvaluationListResponse converts a slice of stored evaluations
func ToEvaluationListResponse(evaluations []*entities.StoredEvaluation) *common.ListResponse {
	items := make([]*evaluation.EvaluationResponse, len(evaluations))
	for i, e := range evaluations {
		items[i] = ToEvaluationResponse(e)
	}
	return &common.ListResponse{Items: items, Total: len(items)}
}

// ToBatchResponse converts a batch outcome. Per-meeting errors are reported as text.
func ToBatchResponse(b *evaluationUC.BatchResult) *evaluation.BatchResponse {
	resp := &evaluation.BatchResponse{
		BatchID:    b.BatchID.String(),
		Mode:       string(b.Mode),
		Succeeded:  b.Succeeded,
		Failed:     b.Failed,
		DurationMs: b.Duration.Milliseconds(),
		Items:      make([]evaluation.BatchItemResponse, len(b.Items)),
	}
	for i, item := range b.Items {
		resp.Items[i] = evaluation.BatchItemResponse{
			MeetingID:  item.MeetingID.String(),
			Evaluation: ToEvaluationResponse(item.Evaluation),
		}
		if item.Err != nil {
			resp.Items[i].Error = item.Err.Error()
		}
	}
	return resp
}

// ToExportResponse converts an export result
func ToExportResponse(r *export.Result) *evaluation.ExportResponse {
	return &evaluation.ExportResponse{
		ObjectName: r.ObjectName,
		URL:        r.URL,
		Mode:       r.Mode,
		Count:      r.Count,
		ExpiresAt:  r.ExpiresAt,
	}
}
