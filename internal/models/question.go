package models

// OptionLabel identifies one of the four answer choices of a question.
type OptionLabel string

const (
	OptionA OptionLabel = "A"
	OptionB OptionLabel = "B"
	OptionC OptionLabel = "C"
	OptionD OptionLabel = "D"
)

// ValidOptionLabel reports whether label is one of A, B, C or D.
func ValidOptionLabel(label OptionLabel) bool {
	switch label {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "Easy"
	DifficultyMedium DifficultyLevel = "Medium"
	DifficultyHard   DifficultyLevel = "Hard"
)

// Question is a single multiple-choice question as served by the question
// collaborator. Immutable once fetched for a session.
type Question struct {
	ID            int             `json:"id" validate:"required"`
	Prompt        string          `json:"question" validate:"required"`
	OptionA       string          `json:"optionA"`
	OptionB       string          `json:"optionB"`
	OptionC       string          `json:"optionC"`
	OptionD       string          `json:"optionD"`
	CorrectOption OptionLabel     `json:"correct_option" validate:"required,option_label"`
	Subject       string          `json:"subject"`
	Difficulty    DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
}

// Option pairs a label with its display text.
type Option struct {
	ID   OptionLabel `json:"id"`
	Text string      `json:"text"`
}

// Options returns the four labeled choices in display order.
func (q Question) Options() []Option {
	return []Option{
		{ID: OptionA, Text: q.OptionA},
		{ID: OptionB, Text: q.OptionB},
		{ID: OptionC, Text: q.OptionC},
		{ID: OptionD, Text: q.OptionD},
	}
}
