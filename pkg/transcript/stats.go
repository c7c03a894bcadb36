package transcript

import "strings"

// SpeakerStats summarises how much one speaker contributed to a transcript
type SpeakerStats struct {
	Speaker   string `json:"speaker"`
	TurnCount int    `json:"turn_count"`
	WordCount int    `json:"word_count"`
}

// Speakers returns the distinct speakers in order of first appearance
func Speakers(turns []Turn) []string {
	seen := make(map[string]struct{}, 2)
	out := make([]string, 0, 2)
	for _, t := range turns {
		if _, ok := seen[t.Speaker]; ok {
			continue
		}
		seen[t.Speaker] = struct{}{}
		out = append(out, t.Speaker)
	}
	return out
}

// Stats computes per-speaker turn and word counts, ordered like Speakers
func Stats(turns []Turn) []SpeakerStats {
	index := make(map[string]int, 2)
	out := make([]SpeakerStats, 0, 2)
	for _, t := range turns {
		i, ok := index[t.Speaker]
		if !ok {
			i = len(out)
			index[t.Speaker] = i
			out = append(out, SpeakerStats{Speaker: t.Speaker})
		}
		out[i].TurnCount++
		out[i].WordCount += len(strings.Fields(t.Text))
	}
	return out
}
