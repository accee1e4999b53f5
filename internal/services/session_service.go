package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AptiPro-2025/exam-session-service/internal/cache"
	"github.com/AptiPro-2025/exam-session-service/internal/collab"
	"github.com/AptiPro-2025/exam-session-service/internal/events"
	"github.com/AptiPro-2025/exam-session-service/internal/models"
	"github.com/AptiPro-2025/exam-session-service/internal/session"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

// NavigationAction selects a pointer movement on an open session.
type NavigationAction string

const (
	NavigatePrev NavigationAction = "prev"
	NavigateNext NavigationAction = "next"
	NavigateJump NavigationAction = "jump"
)

// SessionService owns all live test-taking sessions.
type SessionService interface {
	ListTests(ctx context.Context, department string) ([]models.Test, error)
	Open(ctx context.Context, email string, test models.Test) (session.Snapshot, error)
	Snapshot(ctx context.Context, sessionID string) (session.Snapshot, error)
	Select(ctx context.Context, sessionID string, questionID int, label models.OptionLabel) (session.Snapshot, error)
	Navigate(ctx context.Context, sessionID string, action NavigationAction, index int) (session.Snapshot, error)
	Submit(ctx context.Context, sessionID string) (session.Snapshot, error)
	Close(ctx context.Context, sessionID string) error
}

type sessionService struct {
	collab    collab.Client
	viewers   *cache.ViewerStore
	publisher events.EventPublisher
	logger    utils.Logger
	validator *utils.Validator

	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func NewSessionService(
	collabClient collab.Client,
	viewers *cache.ViewerStore,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
) SessionService {
	return &sessionService{
		collab:    collabClient,
		viewers:   viewers,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		sessions:  make(map[string]*session.Session),
	}
}

func (s *sessionService) ListTests(ctx context.Context, department string) ([]models.Test, error) {
	if department == "" {
		return nil, fmt.Errorf("%w: department missing", ErrBadRequest)
	}
	tests, err := s.collab.FetchTests(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("fetch tests: %w", err)
	}
	return tests, nil
}

// Open fetches the question set for a test and starts a timed session for
// the viewer. The collaborator payload is validated at this boundary; a
// malformed or empty question set never produces a live session.
func (s *sessionService) Open(ctx context.Context, email string, test models.Test) (session.Snapshot, error) {
	if err := s.validator.Validate(&test); err != nil {
		return session.Snapshot{}, err
	}

	viewer, err := s.viewers.Get(ctx, email)
	if err != nil {
		return session.Snapshot{}, ErrViewerNotFound
	}

	if !test.AvailableAt(time.Now()) {
		return session.Snapshot{}, ErrTestNotAvailable
	}

	questions, err := s.collab.FetchQuestions(ctx, test.Subject, test.Difficulty, test.QuestionsCount)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("fetch questions: %w", err)
	}
	if len(questions) == 0 {
		return session.Snapshot{}, ErrNoQuestionsFound
	}
	if len(questions) > test.QuestionsCount {
		questions = questions[:test.QuestionsCount]
	}

	sess, err := session.New(session.Config{
		ID:        uuid.NewString(),
		Viewer:    *viewer,
		Test:      test,
		Questions: questions,
		Submitter: s.collab,
		Logger:    s.logger,
		OnEnd:     s.onSessionEnd,
	})
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("create session: %w", err)
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	sess.Start(context.Background())

	s.logger.Info("Session opened",
		"session_id", sess.ID(),
		"test_id", test.ID,
		"student_email", viewer.Email,
		"questions", len(questions),
		"duration_minutes", test.Duration)

	s.publish(ctx, events.EventSessionStarted, events.SessionStartedEvent{
		SessionID:       sess.ID(),
		TestID:          test.ID,
		TestName:        test.Name,
		StudentEmail:    viewer.Email,
		QuestionCount:   len(questions),
		DurationSeconds: test.Duration * 60,
		StartedAt:       time.Now(),
	})

	return sess.Snapshot(), nil
}

func (s *sessionService) Snapshot(ctx context.Context, sessionID string) (session.Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) Select(ctx context.Context, sessionID string, questionID int, label models.OptionLabel) (session.Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.Select(questionID, label); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) Navigate(ctx context.Context, sessionID string, action NavigationAction, index int) (session.Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}

	switch action {
	case NavigatePrev:
		err = sess.Prev()
	case NavigateNext:
		err = sess.Next()
	case NavigateJump:
		err = sess.JumpTo(index)
	default:
		return session.Snapshot{}, fmt.Errorf("%w: unknown navigation action %q", ErrBadRequest, action)
	}
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Submit triggers the user-initiated submission path. A session that was
// already submitted (user double-click, or the countdown won the race)
// reports ErrSessionAlreadySubmitted; a collaborator failure leaves the
// session intact for a manual retry.
func (s *sessionService) Submit(ctx context.Context, sessionID string) (session.Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.Submit(ctx, session.EndReasonUser); err != nil {
		return sess.Snapshot(), err
	}
	return sess.Snapshot(), nil
}

// Close discards a session without submitting; the countdown stops and
// partial answers are dropped.
func (s *sessionService) Close(ctx context.Context, sessionID string) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}
	sess.Close()
	return nil
}

func (s *sessionService) get(sessionID string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// onSessionEnd runs once per session, after a successful submit or a close.
// It unregisters the session and publishes the matching lifecycle event.
func (s *sessionService) onSessionEnd(sess *session.Session, reason session.EndReason) {
	s.mu.Lock()
	delete(s.sessions, sess.ID())
	s.mu.Unlock()

	snap := sess.Snapshot()
	ctx := context.Background()

	switch reason {
	case session.EndReasonAbandoned:
		s.publish(ctx, events.EventSessionAbandoned, events.SessionAbandonedEvent{
			SessionID:    sess.ID(),
			TestID:       sess.Test().ID,
			StudentEmail: sess.Viewer().Email,
			AbandonedAt:  time.Now(),
		})
	default:
		eventType := events.EventSessionSubmitted
		if reason == session.EndReasonTimeout {
			eventType = events.EventSessionExpired
		}
		s.publish(ctx, eventType, events.SessionSubmittedEvent{
			SessionID:     sess.ID(),
			TestID:        sess.Test().ID,
			StudentEmail:  sess.Viewer().Email,
			AnsweredCount: snap.AnsweredCount,
			QuestionCount: snap.QuestionCount,
			EndReason:     string(reason),
			SubmittedAt:   time.Now(),
		})
	}
}

func (s *sessionService) publish(ctx context.Context, eventType events.EventType, data interface{}) {
	event := &events.SessionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "exam-session-service",
		Version:   "1.0",
		Data:      data,
	}
	if err := s.publisher.PublishSessionEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish session event", "event_type", eventType, "error", err)
	}
}
