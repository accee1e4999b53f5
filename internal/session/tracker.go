package session

import (
	"github.com/AptiPro-2025/exam-session-service/internal/models"
)

// Tracker owns the current-question pointer and the set of user-selected
// answers for one session. The answer map only ever holds entries for
// questions of the session's question set, and only valid option labels.
type Tracker struct {
	cursor  Cursor
	valid   map[int]struct{}
	answers map[int]models.OptionLabel
}

func NewTracker(questions []models.Question) *Tracker {
	valid := make(map[int]struct{}, len(questions))
	for _, q := range questions {
		valid[q.ID] = struct{}{}
	}
	return &Tracker{
		cursor:  NewCursor(len(questions)),
		valid:   valid,
		answers: make(map[int]models.OptionLabel, len(questions)),
	}
}

// Select records the option picked for a question. Selecting again
// overwrites the prior pick; a selection is never removed. Unknown question
// ids and labels outside A-D are ignored. Returns whether the selection was
// recorded.
func (t *Tracker) Select(questionID int, label models.OptionLabel) bool {
	if _, ok := t.valid[questionID]; !ok {
		return false
	}
	if !models.ValidOptionLabel(label) {
		return false
	}
	t.answers[questionID] = label
	return true
}

// Answer returns the recorded selection for a question, if any.
func (t *Tracker) Answer(questionID int) (models.OptionLabel, bool) {
	label, ok := t.answers[questionID]
	return label, ok
}

// Progress reports how many distinct questions have an answer, out of the
// question count.
func (t *Tracker) Progress() (answered, total int) {
	return len(t.answers), t.cursor.Size()
}

func (t *Tracker) Index() int { return t.cursor.Index() }

func (t *Tracker) Prev() { t.cursor.Prev() }

func (t *Tracker) Next() { t.cursor.Next() }

func (t *Tracker) JumpTo(index int) { t.cursor.JumpTo(index) }
