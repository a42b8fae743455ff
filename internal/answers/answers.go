// Package answers collects the user's per-question answers and turns them
// into the submission payload.
package answers

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aiethics/selfcheck/internal/api"
)

// Answer is one of the options offered for every question.
type Answer string

const (
	Yes           Answer = "yes"
	No            Answer = "no"
	NotApplicable Answer = "not-applicable"
)

// Options lists the answers in display order.
var Options = []Answer{Yes, No, NotApplicable}

// ErrUnknownAnswer is returned by Parse for strings outside Options.
var ErrUnknownAnswer = errors.New("unknown answer")

// Parse converts user input into an Answer. Matching is case-insensitive
// and accepts the wire spelling as well.
func Parse(s string) (Answer, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "_", "-")
	switch Answer(norm) {
	case Yes, No, NotApplicable:
		return Answer(norm), nil
	case "na", "n/a":
		return NotApplicable, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAnswer, s)
}

// Label returns the text shown next to the radio button.
func (a Answer) Label() string {
	if a == NotApplicable {
		return "N/A"
	}
	return strings.ToUpper(string(a))
}

// Wire returns the normalized form sent to the server.
func (a Answer) Wire() api.WireAnswer {
	return api.WireAnswer(strings.ReplaceAll(strings.ToUpper(string(a)), "-", "_"))
}

// Map holds the answers recorded so far, keyed by question id.
// The zero value is not usable; call NewMap.
type Map struct {
	entries map[int]Answer
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{entries: make(map[int]Answer)}
}

// Record stores a for questionID, replacing any earlier answer. The id is
// not checked against the loaded questions.
func (m *Map) Record(questionID int, a Answer) {
	m.entries[questionID] = a
}

// Get returns the answer recorded for questionID.
func (m *Map) Get(questionID int) (Answer, bool) {
	a, ok := m.entries[questionID]
	return a, ok
}

// Len returns the number of answered questions.
func (m *Map) Len() int {
	return len(m.entries)
}

// Clone returns an independent copy.
func (m *Map) Clone() *Map {
	c := NewMap()
	for id, a := range m.entries {
		c.entries[id] = a
	}
	return c
}

// IDs returns the answered question ids in ascending order.
func (m *Map) IDs() []int {
	ids := make([]int, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Payload builds the submission entries, one per recorded answer, in
// ascending question id order. Unanswered questions are absent.
func (m *Map) Payload() []api.AnswerEntry {
	out := make([]api.AnswerEntry, 0, len(m.entries))
	for _, id := range m.IDs() {
		out = append(out, api.AnswerEntry{QuestionID: id, Answer: m.entries[id].Wire()})
	}
	return out
}
