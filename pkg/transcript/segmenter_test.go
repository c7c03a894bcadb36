package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Turn
	}{
		{
			name: "empty input",
			raw:  "",
			want: []Turn{},
		},
		{
			name: "no markers",
			raw:  "Alex: welcome everyone. Sarah: thanks.",
			want: []Turn{},
		},
		{
			name: "two speakers",
			raw:  "Me: hello Them: hi there",
			want: []Turn{
				{Speaker: SpeakerMe, Text: "hello"},
				{Speaker: SpeakerThem, Text: "hi there"},
			},
		},
		{
			name: "empty turn between markers is dropped",
			raw:  "Me:    Them: hi",
			want: []Turn{{Speaker: SpeakerThem, Text: "hi"}},
		},
		{
			name: "text before first marker is discarded",
			raw:  "Recording started.\nMe: first point\nThem: agreed",
			want: []Turn{
				{Speaker: SpeakerMe, Text: "first point"},
				{Speaker: SpeakerThem, Text: "agreed"},
			},
		},
		{
			name: "consecutive turns of one speaker are not merged",
			raw:  "Me: one Me: two",
			want: []Turn{
				{Speaker: SpeakerMe, Text: "one"},
				{Speaker: SpeakerMe, Text: "two"},
			},
		},
		{
			name: "marker must follow whitespace",
			raw:  "Me: see README:Them: inline",
			want: []Turn{{Speaker: SpeakerMe, Text: "see README:Them: inline"}},
		},
		{
			name: "matching is case sensitive",
			raw:  "me: lower Them: upper",
			want: []Turn{{Speaker: SpeakerThem, Text: "upper"}},
		},
		{
			name: "trailing marker without text",
			raw:  "Them: last words Me:",
			want: []Turn{{Speaker: SpeakerThem, Text: "last words"}},
		},
		{
			name: "multiline content is trimmed",
			raw:  "Me:\n  line one\n  line two\n\nThem:\tok  ",
			want: []Turn{
				{Speaker: SpeakerMe, Text: "line one\n  line two"},
				{Speaker: SpeakerThem, Text: "ok"},
			},
		},
		{
			name: "label followed by other letters is not a marker",
			raw:  "Meeting: notes Me: real",
			want: []Turn{{Speaker: SpeakerMe, Text: "real"}},
		},
		{
			name: "only whitespace after markers",
			raw:  "Me:   Them:   ",
			want: []Turn{},
		},
		{
			name: "vertical tab before marker",
			raw:  "Me: a\vThem: b",
			want: []Turn{{Speaker: SpeakerMe, Text: "a"}, {Speaker: SpeakerThem, Text: "b"}},
		},
		{
			name: "line separator before marker",
			raw:  "Me: a\u2028Them: b",
			want: []Turn{{Speaker: SpeakerMe, Text: "a"}, {Speaker: SpeakerThem, Text: "b"}},
		},
		{
			name: "next line and no-break space before markers",
			raw:  "Me: a\u0085Them: b\u00a0Me: c",
			want: []Turn{{Speaker: SpeakerMe, Text: "a"}, {Speaker: SpeakerThem, Text: "b"}, {Speaker: SpeakerMe, Text: "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.raw)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplit_Idempotent(t *testing.T) {
	raw := "Intro Me: a b c Them: d e Me:  Them: f"
	first := Split(raw)
	second := Split(raw)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestSpeakersAndStats(t *testing.T) {
	turns := Split("Them: hi there Me: hello Them: how are you")

	assert.Equal(t, []string{SpeakerThem, SpeakerMe}, Speakers(turns))

	stats := Stats(turns)
	assert.Equal(t, []SpeakerStats{
		{Speaker: SpeakerThem, TurnCount: 2, WordCount: 5},
		{Speaker: SpeakerMe, TurnCount: 1, WordCount: 1},
	}, stats)

	assert.Empty(t, Speakers(nil))
	assert.Empty(t, Stats(nil))
}
