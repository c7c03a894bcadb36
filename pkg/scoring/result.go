package scoring

// Winner names the summary version that won a comparison
type Winner string

const (
	WinnerV1  Winner = "v1"
	WinnerV2  Winner = "v2"
	WinnerTie Winner = "tie"
)

// Valid reports whether w is one of the known winner values
func (w Winner) Valid() bool {
	switch w {
	case WinnerV1, WinnerV2, WinnerTie:
		return true
	}
	return false
}

// Criterion is a named axis of comparison between two summary versions
type Criterion string

const (
	CriterionTruthfulness Criterion = "truthfulness"
	CriterionClarity      Criterion = "clarity"
	CriterionConciseness  Criterion = "conciseness"
	CriterionRelevance    Criterion = "relevance"
	CriterionCompleteness Criterion = "completeness"
	CriterionNotes        Criterion = "notes"
)

// Criteria lists every criterion in display order
var Criteria = []Criterion{
	CriterionTruthfulness,
	CriterionClarity,
	CriterionConciseness,
	CriterionRelevance,
	CriterionCompleteness,
	CriterionNotes,
}

// CriterionScore holds the scores of both versions for one criterion (0-10 each)
type CriterionScore struct {
	V1Score     float64 `json:"v1Score"`
	V2Score     float64 `json:"v2Score"`
	Explanation string  `json:"explanation"`
}

// Overall is the final verdict of a comparison
type Overall struct {
	Winner      Winner   `json:"winner"`
	Explanation string   `json:"explanation"`
	V1Score     *float64 `json:"v1Score,omitempty"`
	V2Score     *float64 `json:"v2Score,omitempty"`
}

// Result is the structured score object for one comparison. Its JSON shape is the
// contract shared with the language model.
type Result struct {
	Truthfulness CriterionScore `json:"truthfulness"`
	Clarity      CriterionScore `json:"clarity"`
	Conciseness  CriterionScore `json:"conciseness"`
	Relevance    CriterionScore `json:"relevance"`
	Completeness CriterionScore `json:"completeness"`
	Notes        CriterionScore `json:"notes"`
	Overall      Overall        `json:"overall"`
}

// AggregateResult is a Result whose criterion scores are means over Count results
type AggregateResult struct {
	Result
	Count int `json:"count"`
}

// Score returns the score for criterion c. Unknown criteria yield a zero value.
func (r Result) Score(c Criterion) CriterionScore {
	if p := r.criterion(c); p != nil {
		return *p
	}
	return CriterionScore{}
}

// SetScore replaces the score for criterion c; unknown criteria are ignored
func (r *Result) SetScore(c Criterion, s CriterionScore) {
	if p := r.criterion(c); p != nil {
		*p = s
	}
}

func (r *Result) criterion(c Criterion) *CriterionScore {
	switch c {
	case CriterionTruthfulness:
		return &r.Truthfulness
	case CriterionClarity:
		return &r.Clarity
	case CriterionConciseness:
		return &r.Conciseness
	case CriterionRelevance:
		return &r.Relevance
	case CriterionCompleteness:
		return &r.Completeness
	case CriterionNotes:
		return &r.Notes
	}
	return nil
}
