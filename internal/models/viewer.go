package models

// RecentResult is one entry of a viewer's recent performance history as
// stored in the profile cache. It carries raw marks only; the denominator
// is fixed upstream (see results.Summarize).
type RecentResult struct {
	Name  string `json:"name"`
	Marks int    `json:"marks"`
}

// Viewer is the cached identity of the student using the service. It is
// constructed once per request path and passed explicitly into the session
// and reconstruction engines.
type Viewer struct {
	ID            string         `json:"id" validate:"required"`
	Name          string         `json:"name" validate:"required"`
	Email         string         `json:"email" validate:"required,email"`
	Department    string         `json:"department" validate:"required,department"`
	TestsDone     int            `json:"tests_done"`
	AverageScore  float64        `json:"average_score"`
	RecentResults []RecentResult `json:"recent_results"`
}

// SignupForm is the account registration payload. Validation is local only;
// an invalid form never reaches the collaborator.
type SignupForm struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Department string `json:"department" validate:"required,department"`
}
