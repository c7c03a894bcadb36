package evaluation

// EvaluateRequest represents the request to judge a meeting's summaries
type EvaluateRequest struct {
	Mode string `json:"mode" validate:"required,oneof=4.1 o3-mini o3-high"`
}

// BatchRequest represents the request to evaluate every meeting under one mode
type BatchRequest struct {
	Mode        string `json:"mode" validate:"required,oneof=4.1 o3-mini o3-high"`
	Concurrency int    `json:"concurrency" validate:"omitempty,min=1,max=16"`
}

// ListEvaluationsRequest represents query parameters for listing evaluations
type ListEvaluationsRequest struct {
	Mode string `query:"mode" json:"mode" validate:"omitempty,oneof=4.1 o3-mini o3-high"`
}
