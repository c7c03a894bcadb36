package scoring

import "fmt"

// Aggregate averages a batch of results that share one evaluation mode.
//
// Each criterion's v1 and v2 means are rounded to one decimal and the per-criterion
// explanations are left blank. The overall winner is recomputed from the averaged
// scores with Weighted, never voted from the inputs' own winners.
// ok is false when results is empty; callers must treat that as "no aggregate".
func Aggregate(results []Result) (agg AggregateResult, ok bool) {
	n := len(results)
	if n == 0 {
		return AggregateResult{}, false
	}

	for _, c := range Criteria {
		var sumV1, sumV2 float64
		for _, r := range results {
			s := r.Score(c)
			sumV1 += s.V1Score
			sumV2 += s.V2Score
		}
		agg.SetScore(c, CriterionScore{
			V1Score: Round1(sumV1 / float64(n)),
			V2Score: Round1(sumV2 / float64(n)),
		})
	}

	winner, v1, v2 := Decide(agg.Result)
	v1, v2 = Round1(v1), Round1(v2)
	agg.Overall = Overall{
		Winner:      winner,
		Explanation: AggregateExplanation(n, winner),
		V1Score:     &v1,
		V2Score:     &v2,
	}
	agg.Count = n

	return agg, true
}

// AggregateExplanation renders the templated verdict sentence for a batch of count meetings
func AggregateExplanation(count int, winner Winner) string {
	var clause string
	switch winner {
	case WinnerV1:
		clause = "Summary V1 performs better overall"
	case WinnerV2:
		clause = "Summary V2 performs better overall"
	default:
		clause = "both summaries perform equally well"
	}
	return fmt.Sprintf("Based on the average scores across %d meetings, %s.", count, clause)
}
