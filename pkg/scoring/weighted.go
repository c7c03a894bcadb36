package scoring

import "math"

const (
	// notesWeight is how many times the notes criterion counts
	notesWeight = 2
	// weightDivisor is five single-weight criteria plus notes counted twice
	weightDivisor = 7
)

// Weighted returns the overall score of one summary version.
// All callers must go through this function so the display and evaluation paths agree.
func Weighted(truthfulness, clarity, conciseness, relevance, completeness, notes float64) float64 {
	return (truthfulness + clarity + conciseness + relevance + completeness + notesWeight*notes) / weightDivisor
}

// WeightedScores returns the weighted score of V1 and V2 for r
func (r Result) WeightedScores() (v1, v2 float64) {
	v1 = Weighted(
		r.Truthfulness.V1Score,
		r.Clarity.V1Score,
		r.Conciseness.V1Score,
		r.Relevance.V1Score,
		r.Completeness.V1Score,
		r.Notes.V1Score,
	)
	v2 = Weighted(
		r.Truthfulness.V2Score,
		r.Clarity.V2Score,
		r.Conciseness.V2Score,
		r.Relevance.V2Score,
		r.Completeness.V2Score,
		r.Notes.V2Score,
	)
	return v1, v2
}

// Pick compares two weighted totals. Exact equality is a tie.
func Pick(v1, v2 float64) Winner {
	switch {
	case v1 > v2:
		return WinnerV1
	case v2 > v1:
		return WinnerV2
	default:
		return WinnerTie
	}
}

// Decide computes the winner of a single result from its criterion scores
func Decide(r Result) (winner Winner, v1, v2 float64) {
	v1, v2 = r.WeightedScores()
	return Pick(v1, v2), v1, v2
}

// Round1 rounds x to one decimal place, halves away from zero
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
