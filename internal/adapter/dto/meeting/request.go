package meeting

// CreateMeetingRequest represents the request to add a meeting to the catalogue
type CreateMeetingRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=255"`
	Date       string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Transcript string `json:"transcript" validate:"required"`
	Notes      string `json:"notes,omitempty"`
	SummaryV1  string `json:"summary_v1" validate:"required"`
	SummaryV2  string `json:"summary_v2" validate:"required"`
}
