package transcript

import (
	"regexp"
	"strings"
)

// Speaker labels recognised inside a raw transcript
const (
	SpeakerMe   = "Me"
	SpeakerThem = "Them"
)

// markerPattern matches "Me:" or "Them:" at the start of the text or right after whitespace.
// The preceding whitespace is consumed but the trailing whitespace is not, so two markers
// separated by a single space are both found. The class is the set accepted by
// unicode.IsSpace, the same set strings.TrimSpace strips from turn text.
var markerPattern = regexp.MustCompile(`(?:^|[\s\v\p{Z}\x{85}])(Me|Them):`)

// Turn is one contiguous block of transcript text attributed to a single speaker
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Split converts a raw annotated transcript into ordered speaker turns.
//
// Text before the first marker is discarded and turns whose text is empty after
// trimming are dropped. Consecutive turns of the same speaker are kept separate.
// Split never fails: input without markers yields an empty slice.
func Split(raw string) []Turn {
	turns := make([]Turn, 0)
	if raw == "" {
		return turns
	}

	matches := markerPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return turns
	}

	for i, m := range matches {
		// m[0]:m[1] is the whole match, m[2]:m[3] the speaker label
		speaker := raw[m[2]:m[3]]

		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		text := strings.TrimSpace(raw[m[1]:end])
		if text == "" {
			continue
		}
		turns = append(turns, Turn{Speaker: speaker, Text: text})
	}

	return turns
}
