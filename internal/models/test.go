package models

import "time"

// Test describes one scheduled exam. The descriptor is immutable for the
// lifetime of a session taken against it.
type Test struct {
	ID             int             `json:"id" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Marks          int             `json:"marks" validate:"required,min=1"`
	QuestionsCount int             `json:"questions_count" validate:"required,min=1"`
	Duration       int             `json:"duration" validate:"required,min=1"` // minutes
	Difficulty     DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
	Subject        string          `json:"subject"`
	ScheduledAt    string          `json:"scheduled_at"`
	Teacher        string          `json:"teacher"`
	DeptName       string          `json:"dept_name"`
}

// istOffset matches the upstream scheduler, which compares schedule times
// against Indian Standard Time rather than UTC.
const istOffset = 5*time.Hour + 30*time.Minute

// AvailableAt reports whether the test's scheduled time has passed at the
// given instant. Unparseable schedules make the test unavailable.
func (t Test) AvailableAt(now time.Time) bool {
	scheduled, err := time.Parse(time.RFC3339, t.ScheduledAt)
	if err != nil {
		return false
	}
	return !scheduled.After(now.UTC().Add(istOffset))
}
