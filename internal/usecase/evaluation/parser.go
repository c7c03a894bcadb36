package evaluation

import (
	"encoding/json"
	"fmt"

	"github.com/johnquangdev/summary-evaluator/pkg/ai"
	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
)

const (
	minScore = 0
	maxScore = 10
)

type rawScore struct {
	V1Score     *float64 `json:"v1Score"`
	V2Score     *float64 `json:"v2Score"`
	Explanation string   `json:"explanation"`
}

type rawOverall struct {
	Winner      string `json:"winner"`
	Explanation string `json:"explanation"`
}

type rawResult struct {
	Truthfulness *rawScore  `json:"truthfulness"`
	Clarity      *rawScore  `json:"clarity"`
	Conciseness  *rawScore  `json:"conciseness"`
	Relevance    *rawScore  `json:"relevance"`
	Completeness *rawScore  `json:"completeness"`
	Notes        *rawScore  `json:"notes"`
	Overall      rawOverall `json:"overall"`
}

func (r *rawResult) criterion(c scoring.Criterion) *rawScore {
	switch c {
	case scoring.CriterionTruthfulness:
		return r.Truthfulness
	case scoring.CriterionClarity:
		return r.Clarity
	case scoring.CriterionConciseness:
		return r.Conciseness
	case scoring.CriterionRelevance:
		return r.Relevance
	case scoring.CriterionCompleteness:
		return r.Completeness
	case scoring.CriterionNotes:
		return r.Notes
	}
	return nil
}

// ParseEvaluation decodes a model reply into a Result. Every criterion must be
// present with both scores inside [0, 10]. The reported winner is kept as-is;
// callers recompute it.
func ParseEvaluation(content string) (scoring.Result, error) {
	var raw rawResult
	if err := json.Unmarshal([]byte(ai.ExtractJSON(content)), &raw); err != nil {
		return scoring.Result{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	var result scoring.Result
	for _, c := range scoring.Criteria {
		score := raw.criterion(c)
		if score == nil {
			return scoring.Result{}, fmt.Errorf("missing %s in response", c)
		}
		if score.V1Score == nil || score.V2Score == nil {
			return scoring.Result{}, fmt.Errorf("missing score for %s", c)
		}
		if err := checkRange(c, *score.V1Score, *score.V2Score); err != nil {
			return scoring.Result{}, err
		}
		result.SetScore(c, scoring.CriterionScore{
			V1Score:     *score.V1Score,
			V2Score:     *score.V2Score,
			Explanation: score.Explanation,
		})
	}

	result.Overall = scoring.Overall{
		Winner:      scoring.Winner(raw.Overall.Winner),
		Explanation: raw.Overall.Explanation,
	}
	return result, nil
}

func checkRange(c scoring.Criterion, scores ...float64) error {
	for _, s := range scores {
		if s < minScore || s > maxScore {
			return fmt.Errorf("%s score %v outside [%d, %d]", c, s, minScore, maxScore)
		}
	}
	return nil
}
