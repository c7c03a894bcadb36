package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	"github.com/johnquangdev/summary-evaluator/pkg/ai"
	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
)

const explanationsSystemPrompt = `You review the work of an evaluator who compared two summaries of the same meetings,
criterion by criterion, on a 0-10 scale. You receive, for every criterion, the averaged scores
of both summaries and the evaluator's individual explanations from each meeting.

For every criterion write one short, concrete paragraph explaining why the better-scoring summary
wins it (or why they are even), drawing on specific points from the explanations. Then do the same
for the overall result. Refer to the summaries as "summary 1" and "summary 2", never "v1" or "v2".

Reply with one JSON object and nothing else:
{
  "truthfulness": string,
  "clarity": string,
  "conciseness": string,
  "relevance": string,
  "completeness": string,
  "notes": string,
  "overall": string
}`

type criterionInput struct {
	V1Score      float64  `json:"v1Score"`
	V2Score      float64  `json:"v2Score"`
	Explanations []string `json:"explanations"`
}

type overallInput struct {
	Winner       scoring.Winner `json:"winner"`
	V1Score      *float64       `json:"v1Score,omitempty"`
	V2Score      *float64       `json:"v2Score,omitempty"`
	Explanations []string       `json:"explanations"`
}

type explanationsInput struct {
	TotalEvaluations int                                 `json:"totalEvaluations"`
	Criteria         map[scoring.Criterion]criterionInput `json:"criteria"`
	Overall          overallInput                        `json:"overall"`
}

// buildExplanationsInput collects every non-empty explanation per criterion next to the averaged scores
func buildExplanationsInput(agg scoring.AggregateResult, results []scoring.Result) explanationsInput {
	in := explanationsInput{
		TotalEvaluations: agg.Count,
		Criteria:         make(map[scoring.Criterion]criterionInput, len(scoring.Criteria)),
		Overall: overallInput{
			Winner:  agg.Overall.Winner,
			V1Score: agg.Overall.V1Score,
			V2Score: agg.Overall.V2Score,
		},
	}

	for _, c := range scoring.Criteria {
		avg := agg.Score(c)
		ci := criterionInput{V1Score: avg.V1Score, V2Score: avg.V2Score, Explanations: []string{}}
		for _, r := range results {
			if e := r.Score(c).Explanation; e != "" {
				ci.Explanations = append(ci.Explanations, e)
			}
		}
		in.Criteria[c] = ci
	}

	in.Overall.Explanations = []string{}
	for _, r := range results {
		if e := r.Overall.Explanation; e != "" {
			in.Overall.Explanations = append(in.Overall.Explanations, e)
		}
	}
	return in
}

func parseExplanations(content string) (*entities.CriterionExplanations, error) {
	var out entities.CriterionExplanations
	if err := json.Unmarshal([]byte(ai.ExtractJSON(content)), &out); err != nil {
		return nil, fmt.Errorf("failed to parse explanations: %w", err)
	}
	if out == (entities.CriterionExplanations{}) {
		return nil, fmt.Errorf("explanations response is empty")
	}
	return &out, nil
}
