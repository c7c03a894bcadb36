package analysis

// AnalyzeRequest represents the request to aggregate stored evaluations.
// An empty Modes list analyzes every mode.
type AnalyzeRequest struct {
	Modes []string `json:"modes,omitempty" validate:"omitempty,max=3,dive,oneof=4.1 o3-mini o3-high"`
}
