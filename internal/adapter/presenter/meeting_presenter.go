package presenter

import (
	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/common"
	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/meeting"
	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	meetingUC "github.com/johnquangdev/summary-evaluator/internal/usecase/meeting"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}
	return &meeting.MeetingResponse{
		ID:         m.ID.String(),
		Slug:       m.Slug,
		Title:      m.Title,
		Date:       m.Date,
		Transcript: m.Transcript,
		Notes:      m.Notes,
		HasNotes:   m.HasNotes(),
		SummaryV1:  m.SummaryV1,
		SummaryV2:  m.SummaryV2,
		TimestampResponse: common.TimestampResponse{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToMeetingListResponse converts meetings to their compact list form
func ToMeetingListResponse(meetings []*entities.Meeting) *common.ListResponse {
	items := make([]meeting.MeetingListItem, len(meetings))
	for i, m := range meetings {
		items[i] = meeting.MeetingListItem{
			ID:       m.ID.String(),
			Slug:     m.Slug,
			Title:    m.Title,
			Date:     m.Date,
			HasNotes: m.HasNotes(),
		}
	}
	return &common.ListResponse{Items: items, Total: len(items)}
}

// ToTranscriptResponse converts a segmented transcript
func ToTranscriptResponse(t *meetingUC.Transcript) *meeting.TranscriptResponse {
	if t == nil {
		return nil
	}
	return &meeting.TranscriptResponse{
		MeetingID: t.MeetingID.String(),
		Turns:     t.Turns,
		Speakers:  t.Speakers,
		Stats:     t.Stats,
	}
}

// ToMeetingEntity builds a meeting from a create request
func ToMeetingEntity(req *meeting.CreateMeetingRequest) *entities.Meeting {
	return &entities.Meeting{
		Title:      req.Title,
		Date:       req.Date,
		Transcript: req.Transcript,
		Notes:      req.Notes,
		SummaryV1:  req.SummaryV1,
		SummaryV2:  req.SummaryV2,
	}
}
