package evaluation

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
)

const noNotesPlaceholder = "(no notes)"

// outputContract is appended to every system prompt
const outputContract = `# Overall score
Notes integration counts double:
  overall = (truthfulness + clarity + conciseness + relevance + completeness + 2 * notes) / 7
The summary with the higher overall score wins. Equal scores are a tie.

# Output
Reply with one JSON object and nothing else:
{
  "truthfulness": {"v1Score": number, "v2Score": number, "explanation": string},
  "clarity":      {"v1Score": number, "v2Score": number, "explanation": string},
  "conciseness":  {"v1Score": number, "v2Score": number, "explanation": string},
  "relevance":    {"v1Score": number, "v2Score": number, "explanation": string},
  "completeness": {"v1Score": number, "v2Score": number, "explanation": string},
  "notes":        {"v1Score": number, "v2Score": number, "explanation": string},
  "overall":      {"v1Score": number, "v2Score": number, "winner": "v1" | "v2" | "tie", "explanation": string}
}

# Rules
- Every score is a number from 0 to 10.
- When the notes are "(no notes)", both notes scores MUST be 0.
- Look for real differences between the two summaries and name them; do not hand out near-identical scores.
- Explanations cite concrete passages from the summaries.`

const criteriaSection = `# Criteria
1. Truthfulness: is everything in the summary supported by the transcript, with nothing invented or distorted?
2. Clarity: is it organised and readable enough that someone who missed the meeting can follow it?
3. Conciseness: does it keep the important content without padding?
4. Relevance: does it put the key discussions, decisions and action items first?
5. Completeness: are all major points, decisions and action items covered?
6. Notes integration (highest priority): how much of what the user wrote down is covered, prioritised
   the way the user prioritised it, clarified where the notes are terse, and organised into a coherent whole?`

// defaultSystemPrompt drives the non-reasoning judge
var defaultSystemPrompt = strings.Join([]string{
	`You judge two competing summaries (V1 and V2) of the same meeting. You are given the transcript
and the notes the user took during the meeting. Decide which summary serves that user better.`,
	criteriaSection,
	`# Process
- Read the transcript, then the notes, then both summaries.
- Score each criterion for both summaries and compare them directly.`,
	outputContract,
}, "\n\n")

// reasoningSystemPrompt walks reasoning models through a fixed procedure
var reasoningSystemPrompt = strings.Join([]string{
	`You judge two competing summaries (V1 and V2) of the same meeting. Work through the steps below
before scoring. You are given the transcript and the notes the user took during the meeting.`,
	`# Step 1: extract from the transcript
- the main topics
- decisions
- action items and owners
- facts and figures
- open problems`,
	`# Step 2: extract from the notes
- topics the user cared about
- items the user recorded as actions`,
	`# Step 3: check each summary against steps 1 and 2
- which topics and user priorities are present or missing
- anything stated that the transcript does not support
- whether the structure follows the meeting`,
	criteriaSection,
	outputContract,
}, "\n\n")

// SystemPrompt returns the judge instructions for mode
func SystemPrompt(mode entities.Mode) string {
	if mode.Reasoning() {
		return reasoningSystemPrompt
	}
	return defaultSystemPrompt
}

// UserPrompt renders the meeting material for the judge
func UserPrompt(m *entities.Meeting) string {
	notes := strings.TrimSpace(m.Notes)
	if notes == "" {
		notes = noNotesPlaceholder
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Meeting title: %s\n\n", m.Title)
	fmt.Fprintf(&b, "## Transcript\n%s\n\n", strings.TrimSpace(m.Transcript))
	fmt.Fprintf(&b, "## Notes\n%s\n\n", notes)
	fmt.Fprintf(&b, "## Summary V1\n%s\n\n", strings.TrimSpace(m.SummaryV1))
	fmt.Fprintf(&b, "## Summary V2\n%s\n", strings.TrimSpace(m.SummaryV2))
	return b.String()
}
