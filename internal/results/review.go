package results

import (
	"github.com/AptiPro-2025/exam-session-service/internal/models"
	"github.com/AptiPro-2025/exam-session-service/internal/session"
)

// Review is a navigable walk over an already-graded question list. It uses
// the same cursor as live sessions, so clamping behaves identically; the
// underlying selections are fixed and never mutated here.
type Review struct {
	result *models.TransformedResult
	cursor session.Cursor
}

func NewReview(result *models.TransformedResult) *Review {
	return &Review{
		result: result,
		cursor: session.NewCursor(len(result.Questions)),
	}
}

func (r *Review) Result() *models.TransformedResult { return r.result }

func (r *Review) Index() int { return r.cursor.Index() }

func (r *Review) Prev() { r.cursor.Prev() }

func (r *Review) Next() { r.cursor.Next() }

func (r *Review) JumpTo(index int) { r.cursor.JumpTo(index) }

// Current returns the question under the cursor. The second return is false
// for the no-questions state.
func (r *Review) Current() (models.TransformedQuestion, bool) {
	if !r.result.HasQuestions() {
		return models.TransformedQuestion{}, false
	}
	return r.result.Questions[r.cursor.Index()], true
}

// Percentage is the overall score of the reviewed result.
func (r *Review) Percentage() int {
	return Percentage(r.result.MarksScored, r.result.TotalMarks)
}

// Band classifies the overall score.
func (r *Review) Band() Band {
	return BandFor(r.Percentage())
}
