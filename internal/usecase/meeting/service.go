package meeting

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	"github.com/johnquangdev/summary-evaluator/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/summary-evaluator/internal/usecase/errors"
	"github.com/johnquangdev/summary-evaluator/pkg/transcript"
)

// Transcript is a meeting's transcript split into speaker turns
type Transcript struct {
	MeetingID uuid.UUID                 `json:"meeting_id"`
	Turns     []transcript.Turn         `json:"turns"`
	Speakers  []string                  `json:"speakers"`
	Stats     []transcript.SpeakerStats `json:"stats"`
}

// Service defines meeting catalogue use cases
type Service interface {
	List(ctx context.Context) ([]*entities.Meeting, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	Create(ctx context.Context, meeting *entities.Meeting) error
	// Import loads a YAML list of meetings, updating those whose slug already exists
	Import(ctx context.Context, r io.Reader) (int, error)
	ImportFile(ctx context.Context, path string) (int, error)
	Turns(ctx context.Context, id uuid.UUID) (*Transcript, error)
}

type meetingService struct {
	meetings repositories.MeetingRepository
	logger   *zap.Logger
}

// NewService constructs the meeting service
func NewService(meetings repositories.MeetingRepository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &meetingService{meetings: meetings, logger: logger}
}

func (s *meetingService) List(ctx context.Context) ([]*entities.Meeting, error) {
	meetings, err := s.meetings.List(ctx)
	if err != nil {
		return nil, usecaseErrors.Storage("list meetings", err)
	}
	return meetings, nil
}

func (s *meetingService) Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return nil, usecaseErrors.Storage("load meeting", err)
	}
	if meeting == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}
	return meeting, nil
}

func (s *meetingService) Create(ctx context.Context, meeting *entities.Meeting) error {
	if err := meeting.Validate(); err != nil {
		return fmt.Errorf("%w: %w", usecaseErrors.ErrMeetingInvalid, err)
	}
	if meeting.Slug == "" {
		meeting.Slug = slugify(meeting.Title) + "-" + uuid.NewString()[:8]
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		return usecaseErrors.Storage("create meeting", err)
	}

	s.logger.Info("📝 Meeting created",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("slug", meeting.Slug),
	)
	return nil
}

type fixture struct {
	Meetings []*entities.Meeting `yaml:"meetings"`
}

func (s *meetingService) Import(ctx context.Context, r io.Reader) (int, error) {
	var f fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return 0, fmt.Errorf("%w: %w", usecaseErrors.ErrFixtureInvalid, err)
	}

	seen := make(map[string]bool, len(f.Meetings))
	for i, m := range f.Meetings {
		if m == nil {
			return 0, fmt.Errorf("%w: meeting %d is empty", usecaseErrors.ErrFixtureInvalid, i)
		}
		if m.Slug == "" {
			return 0, fmt.Errorf("%w: meeting %d has no id", usecaseErrors.ErrFixtureInvalid, i)
		}
		if seen[m.Slug] {
			return 0, fmt.Errorf("%w: duplicate id %q", usecaseErrors.ErrFixtureInvalid, m.Slug)
		}
		seen[m.Slug] = true
		if err := m.Validate(); err != nil {
			return 0, fmt.Errorf("%w: meeting %q: %w", usecaseErrors.ErrFixtureInvalid, m.Slug, err)
		}
	}

	for _, m := range f.Meetings {
		if err := s.meetings.UpsertBySlug(ctx, m); err != nil {
			return 0, usecaseErrors.Storage(fmt.Sprintf("import meeting %q", m.Slug), err)
		}
	}

	s.logger.Info("📥 Meetings imported", zap.Int("count", len(f.Meetings)))
	return len(f.Meetings), nil
}

func (s *meetingService) ImportFile(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer file.Close()

	return s.Import(ctx, file)
}

func (s *meetingService) Turns(ctx context.Context, id uuid.UUID) (*Transcript, error) {
	meeting, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	turns := transcript.Split(meeting.Transcript)
	return &Transcript{
		MeetingID: meeting.ID,
		Turns:     turns,
		Speakers:  transcript.Speakers(turns),
		Stats:     transcript.Stats(turns),
	}, nil
}

func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "meeting"
	}
	if len(slug) > 80 {
		slug = strings.TrimSuffix(slug[:80], "-")
	}
	return slug
}
