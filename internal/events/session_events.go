package events

import (
	"time"
)

// EventType represents different kinds of session lifecycle events.
type EventType string

const (
	EventSessionStarted   EventType = "session.started"
	EventSessionSubmitted EventType = "session.submitted"
	EventSessionExpired   EventType = "session.expired"
	EventSessionAbandoned EventType = "session.abandoned"
)

// SessionEvent is the envelope for all session lifecycle events.
type SessionEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

// SessionStartedEvent marks the opening of a timed attempt.
type SessionStartedEvent struct {
	SessionID       string    `json:"session_id"`
	TestID          int       `json:"test_id"`
	TestName        string    `json:"test_name"`
	StudentEmail    string    `json:"student_email"`
	QuestionCount   int       `json:"question_count"`
	DurationSeconds int       `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
}

// SessionSubmittedEvent marks a completed submission, whether user-initiated
// or forced by timeout.
type SessionSubmittedEvent struct {
	SessionID     string    `json:"session_id"`
	TestID        int       `json:"test_id"`
	StudentEmail  string    `json:"student_email"`
	AnsweredCount int       `json:"answered_count"`
	QuestionCount int       `json:"question_count"`
	EndReason     string    `json:"end_reason"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// SessionAbandonedEvent marks a viewer leaving mid-session; nothing was
// submitted and the partial answers were discarded.
type SessionAbandonedEvent struct {
	SessionID    string    `json:"session_id"`
	TestID       int       `json:"test_id"`
	StudentEmail string    `json:"student_email"`
	AbandonedAt  time.Time `json:"abandoned_at"`
}
