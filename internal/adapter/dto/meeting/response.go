package meeting

import (
	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/common"
	"github.com/johnquangdev/summary-evaluator/pkg/transcript"
)

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Date       string `json:"date,omitempty"`
	Transcript string `json:"transcript"`
	Notes      string `json:"notes"`
	HasNotes   bool   `json:"has_notes"`
	SummaryV1  string `json:"summary_v1"`
	SummaryV2  string `json:"summary_v2"`
	common.TimestampResponse
}

// MeetingListItem is the compact form used by the meeting list
type MeetingListItem struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Date     string `json:"date,omitempty"`
	HasNotes bool   `json:"has_notes"`
}

// TranscriptResponse is the segmented transcript of a meeting
type TranscriptResponse struct {
	MeetingID string                    `json:"meeting_id"`
	Turns     []transcript.Turn         `json:"turns"`
	Speakers  []string                  `json:"speakers"`
	Stats     []transcript.SpeakerStats `json:"stats"`
}
