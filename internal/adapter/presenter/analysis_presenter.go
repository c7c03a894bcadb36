package presenter

import (
	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/analysis"
	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
)

// ToAnalysisResponse converts an Analysis to AnalysisResponse DTO
func ToAnalysisResponse(a *entities.Analysis) *analysis.AnalysisResponse {
	if a == nil {
		return nil
	}
	resp := &analysis.AnalysisResponse{
		Mode:              string(a.Mode),
		Count:             a.Aggregate.Count,
		Aggregate:         a.Aggregate,
		ExplanationsError: a.ExplanationsError,
		GeneratedAt:       a.GeneratedAt,
	}
	if e := a.Explanations; e != nil {
		resp.Explanations = &analysis.ExplanationsResponse{
			Truthfulness: e.Truthfulness,
			Clarity:      e.Clarity,
			Conciseness:  e.Conciseness,
			Relevance:    e.Relevance,
			Completeness: e.Completeness,
			Notes:        e.Notes,
			Overall:      e.Overall,
		}
	}
	return resp
}

// ToAnalysisListResponse converts several analyses
func ToAnalysisListResponse(analyses []*entities.Analysis) []*analysis.AnalysisResponse {
	out := make([]*analysis.AnalysisResponse, len(analyses))
	for i, a := range analyses {
		out[i] = ToAnalysisResponse(a)
	}
	return out
}
