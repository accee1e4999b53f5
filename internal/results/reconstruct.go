package results

import (
	"encoding/json"
	"strconv"

	"github.com/AptiPro-2025/exam-session-service/internal/models"
)

// Reconstruct derives the display view of a stored result for the given
// viewer. The raw per-question outcome data is a serialized JSON list; when
// it is malformed or empty the returned result carries no questions
// (HasQuestions reports false) instead of a partially built view. Correctness
// per question is an exact label match; an absent selection is simply
// incorrect.
func Reconstruct(raw models.RawResult, viewer models.Viewer) *models.TransformedResult {
	result := &models.TransformedResult{
		ID:           strconv.Itoa(raw.ID),
		TestID:       strconv.Itoa(raw.TestID),
		Title:        raw.Name,
		MarksScored:  raw.Marks,
		TotalMarks:   raw.TotalMarks,
		Difficulty:   raw.Difficulty,
		Subject:      raw.Subject,
		StudentID:    viewer.ID,
		StudentName:  viewer.Name,
		StudentEmail: raw.StudentEmail,
	}

	var outcomes []models.OutcomeRecord
	if err := json.Unmarshal([]byte(raw.Data), &outcomes); err != nil {
		return result
	}

	result.Questions = make([]models.TransformedQuestion, len(outcomes))
	for i, o := range outcomes {
		marks := 0
		if o.SelectedOption != "" && o.SelectedOption == o.CorrectOption {
			marks = 1
		}
		result.Questions[i] = models.TransformedQuestion{
			ID:             o.ID,
			Text:           o.Prompt,
			Options:        o.Options(),
			SelectedOption: o.SelectedOption,
			CorrectOption:  o.CorrectOption,
			MarksScored:    marks,
		}
	}
	return result
}
