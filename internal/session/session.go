package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AptiPro-2025/exam-session-service/internal/models"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

var (
	ErrSessionAlreadySubmitted = errors.New("session already submitted")
	ErrSessionClosed           = errors.New("session is closed")
	ErrNoQuestions             = errors.New("session has no questions")
)

// EndReason records what terminated a session.
type EndReason string

const (
	EndReasonUser      EndReason = "user"
	EndReasonTimeout   EndReason = "timeout"
	EndReasonAbandoned EndReason = "abandoned"
)

// State is the lifecycle state of a session.
type State string

const (
	StateRunning    State = "running"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
	StateClosed     State = "closed"
)

// Submitter hands a completed submission to the external grading
// collaborator.
type Submitter interface {
	SubmitTest(ctx context.Context, submission *models.Submission) error
}

// Session is one timed attempt at a single test, from open to
// submit/timeout. All state mutation is serialized behind one mutex, the Go
// rendition of a single UI event queue; the countdown tick is the only
// autonomous source of mutation and is cancelled the moment the session
// ends.
type Session struct {
	id        string
	viewer    models.Viewer
	test      models.Test
	questions []models.Question
	submitter Submitter
	logger    utils.Logger

	mu        sync.Mutex
	state     State
	tracker   *Tracker
	countdown *Countdown

	// onEnd runs after a successful submit or a close, outside the lock.
	onEnd func(s *Session, reason EndReason)
}

// Config carries everything a session needs at open time.
type Config struct {
	ID        string
	Viewer    models.Viewer
	Test      models.Test
	Questions []models.Question
	Submitter Submitter
	Logger    utils.Logger

	// OnEnd is invoked once when the session terminates (submitted, timed
	// out or abandoned). Optional.
	OnEnd func(s *Session, reason EndReason)
}

// New builds a session in the running state. The countdown starts ticking
// only on Start.
func New(cfg Config) (*Session, error) {
	if len(cfg.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	s := &Session{
		id:        cfg.ID,
		viewer:    cfg.Viewer,
		test:      cfg.Test,
		questions: cfg.Questions,
		submitter: cfg.Submitter,
		logger:    cfg.Logger,
		state:     StateRunning,
		tracker:   NewTracker(cfg.Questions),
		onEnd:     cfg.OnEnd,
	}
	countdown, err := NewCountdown(cfg.Test.Duration*60, s.expire)
	if err != nil {
		return nil, err
	}
	s.countdown = countdown
	return s, nil
}

// Start begins the countdown. Network calls elsewhere never suspend it; it
// keeps ticking until the session ends.
func (s *Session) Start(ctx context.Context) {
	s.countdown.Start(ctx)
}

func (s *Session) ID() string { return s.id }

func (s *Session) Viewer() models.Viewer { return s.viewer }

func (s *Session) Test() models.Test { return s.test }

// Select records an answer for a question. Fails once the session has ended.
func (s *Session) Select(questionID int, label models.OptionLabel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return s.endedErr()
	}
	s.tracker.Select(questionID, label)
	return nil
}

// Prev moves the question pointer back by one, clamped at the first
// question.
func (s *Session) Prev() error { return s.navigate(func(t *Tracker) { t.Prev() }) }

// Next moves the question pointer forward by one, clamped at the last
// question.
func (s *Session) Next() error { return s.navigate(func(t *Tracker) { t.Next() }) }

// JumpTo moves the pointer directly to index; out-of-range requests are
// silently ignored.
func (s *Session) JumpTo(index int) error {
	return s.navigate(func(t *Tracker) { t.JumpTo(index) })
}

func (s *Session) navigate(move func(*Tracker)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return s.endedErr()
	}
	move(s.tracker)
	return nil
}

// Snapshot is the observable state of a session at one instant.
type Snapshot struct {
	ID               string           `json:"id"`
	State            State            `json:"state"`
	CurrentIndex     int              `json:"current_index"`
	CurrentQuestion  *models.Question `json:"current_question,omitempty"`
	AnsweredCount    int              `json:"answered_count"`
	QuestionCount    int              `json:"question_count"`
	RemainingSeconds int              `json:"remaining_seconds"`
	RemainingDisplay string           `json:"remaining_display"`
	Expired          bool             `json:"expired"`
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	answered, total := s.tracker.Progress()
	idx := s.tracker.Index()
	snap := Snapshot{
		ID:               s.id,
		State:            s.state,
		CurrentIndex:     idx,
		AnsweredCount:    answered,
		QuestionCount:    total,
		RemainingSeconds: s.countdown.Remaining(),
		RemainingDisplay: s.countdown.FormatRemaining(),
		Expired:          s.countdown.Expired(),
	}
	if idx >= 0 && idx < len(s.questions) {
		q := s.questions[idx]
		snap.CurrentQuestion = &q
	}
	return snap
}

// Responses assembles one ResponseRecord per question, iterating the
// question set in its original order and attaching the recorded selection
// or null. Length and order always match the question set.
func (s *Session) Responses() []models.ResponseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildResponses()
}

func (s *Session) buildResponses() []models.ResponseRecord {
	responses := make([]models.ResponseRecord, len(s.questions))
	for i, q := range s.questions {
		record := models.ResponseRecord{Question: q}
		if label, ok := s.tracker.Answer(q.ID); ok {
			selected := label
			record.SelectedOption = &selected
		}
		responses[i] = record
	}
	return responses
}

// Submit assembles the submission and hands it to the grading collaborator.
// The first trigger wins; while a submission is in flight or after one
// succeeded, further calls return ErrSessionAlreadySubmitted. A collaborator
// failure reverts the guard and preserves all session state so the viewer
// can retry manually.
func (s *Session) Submit(ctx context.Context, reason EndReason) error {
	s.mu.Lock()
	switch s.state {
	case StateSubmitting, StateSubmitted:
		s.mu.Unlock()
		return ErrSessionAlreadySubmitted
	case StateClosed:
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.state = StateSubmitting
	submission := &models.Submission{
		User:      s.viewer,
		Test:      s.test,
		Responses: s.buildResponses(),
	}
	s.mu.Unlock()

	if err := s.submitter.SubmitTest(ctx, submission); err != nil {
		s.mu.Lock()
		if s.state == StateSubmitting {
			s.state = StateRunning
		}
		s.mu.Unlock()
		s.logger.Error("Test submission failed",
			"session_id", s.id,
			"test_id", s.test.ID,
			"reason", string(reason),
			"error", err)
		return fmt.Errorf("submit test: %w", err)
	}

	s.mu.Lock()
	s.state = StateSubmitted
	s.mu.Unlock()
	s.countdown.Stop()

	s.logger.Info("Test submitted",
		"session_id", s.id,
		"test_id", s.test.ID,
		"responses", len(submission.Responses),
		"reason", string(reason))

	if s.onEnd != nil {
		s.onEnd(s, reason)
	}
	return nil
}

// Close stops the countdown and discards the session without submitting.
// Partial answers are dropped. Idempotent; closing an ended session is a
// no-op.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	s.mu.Unlock()
	s.countdown.Stop()

	s.logger.Info("Session abandoned", "session_id", s.id, "test_id", s.test.ID)

	if s.onEnd != nil {
		s.onEnd(s, EndReasonAbandoned)
	}
}

// expire is the countdown's expiry callback: the answers recorded so far are
// submitted automatically, exactly once even when racing a user submit.
func (s *Session) expire() {
	err := s.Submit(context.Background(), EndReasonTimeout)
	if err != nil && !errors.Is(err, ErrSessionAlreadySubmitted) && !errors.Is(err, ErrSessionClosed) {
		s.logger.Error("Auto-submit on expiry failed", "session_id", s.id, "error", err)
	}
}

func (s *Session) endedErr() error {
	if s.state == StateClosed {
		return ErrSessionClosed
	}
	return ErrSessionAlreadySubmitted
}
