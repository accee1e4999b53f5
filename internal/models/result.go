package models

// RawResult is the persisted record of a completed session as returned by
// the results collaborator. Data holds the per-question outcome records as
// a serialized JSON string; it is read-only from this service's perspective.
type RawResult struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Marks        int             `json:"marks"`
	TotalMarks   int             `json:"total_marks"`
	Difficulty   DifficultyLevel `json:"difficulty"`
	Subject      string          `json:"subject"`
	StudentEmail string          `json:"student_email"`
	TeacherEmail string          `json:"teacher_email"`
	Data         string          `json:"data"`
	TestID       int             `json:"test_id"`
}

// OutcomeRecord is one parsed entry of RawResult.Data: a question together
// with the option the student selected (empty when unanswered).
type OutcomeRecord struct {
	Question
	SelectedOption OptionLabel `json:"selected_option"`
}

// TransformedQuestion is the display-ready view of one graded question.
// Never persisted; rebuilt from the raw result on every display.
type TransformedQuestion struct {
	ID             int         `json:"id"`
	Text           string      `json:"text"`
	Options        []Option    `json:"options"`
	SelectedOption OptionLabel `json:"selected_option"`
	CorrectOption  OptionLabel `json:"correct_option"`
	MarksScored    int         `json:"marks_scored"`
}

// TransformedResult is the recomputed view model derived from a RawResult
// and the current viewer's identity.
type TransformedResult struct {
	ID           string                `json:"id"`
	TestID       string                `json:"test_id"`
	Title        string                `json:"title"`
	MarksScored  int                   `json:"marks_scored"`
	TotalMarks   int                   `json:"total_marks"`
	Difficulty   DifficultyLevel       `json:"difficulty"`
	Subject      string                `json:"subject"`
	StudentID    string                `json:"student_id"`
	StudentName  string                `json:"student_name"`
	StudentEmail string                `json:"student_email"`
	Questions    []TransformedQuestion `json:"questions"`
}

// HasQuestions reports whether reconstruction produced a navigable question
// list. False means the raw data was missing, malformed or empty and the
// caller should render the no-questions state.
func (r *TransformedResult) HasQuestions() bool {
	return len(r.Questions) > 0
}
