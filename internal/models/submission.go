package models

// ResponseRecord is a question augmented with the option the student picked,
// or null when the question was left unanswered. Produced only by the
// submission assembler and never mutated afterwards.
type ResponseRecord struct {
	Question
	SelectedOption *OptionLabel `json:"selected_option"`
}

// Submission is the single outbound payload representing a completed
// session's answers. Responses preserve the order and count of the original
// question set.
type Submission struct {
	User      Viewer           `json:"user"`
	Test      Test             `json:"test"`
	Responses []ResponseRecord `json:"responses"`
}
