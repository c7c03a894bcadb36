package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Meeting is one transcript with the user's notes and the two candidate summaries
type Meeting struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id" yaml:"-"`
	Slug       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug" yaml:"id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title" yaml:"title"`
	Date       string    `gorm:"type:varchar(20)" json:"date" yaml:"date"`
	Transcript string    `gorm:"type:text;not null" json:"transcript" yaml:"transcript"`
	Notes      string    `gorm:"type:text" json:"notes" yaml:"notes"`
	SummaryV1  string    `gorm:"column:summary_v1;type:text;not null" json:"summary_v1" yaml:"summaryV1"`
	SummaryV2  string    `gorm:"column:summary_v2;type:text;not null" json:"summary_v2" yaml:"summaryV2"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at" yaml:"-"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at" yaml:"-"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// HasNotes reports whether the user took any notes
func (m *Meeting) HasNotes() bool {
	return strings.TrimSpace(m.Notes) != ""
}

// Validate checks the fields an evaluation depends on
func (m *Meeting) Validate() error {
	switch {
	case strings.TrimSpace(m.Title) == "":
		return ErrMeetingTitleRequired
	case strings.TrimSpace(m.Transcript) == "":
		return ErrTranscriptRequired
	case strings.TrimSpace(m.SummaryV1) == "" || strings.TrimSpace(m.SummaryV2) == "":
		return ErrSummariesRequired
	}
	return nil
}
