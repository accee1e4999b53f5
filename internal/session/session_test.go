package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AptiPro-2025/exam-session-service/internal/models"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

// MockSubmitter is a mock implementation of Submitter
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) SubmitTest(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func sessionQuestions() []models.Question {
	return []models.Question{
		{ID: 1, Prompt: "first", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: models.OptionA},
		{ID: 2, Prompt: "second", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: models.OptionB},
		{ID: 3, Prompt: "third", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: models.OptionC},
	}
}

func newTestSession(t *testing.T, submitter Submitter, onEnd func(*Session, EndReason)) *Session {
	t.Helper()
	s, err := New(Config{
		ID: "sess-1",
		Viewer: models.Viewer{
			ID:    "stu-1",
			Name:  "Asha",
			Email: "asha@example.com",
		},
		Test: models.Test{
			ID:             7,
			Name:           "Aptitude Round 1",
			Marks:          3,
			QuestionsCount: 3,
			Duration:       30,
		},
		Questions: sessionQuestions(),
		Submitter: submitter,
		Logger:    utils.NewDevelopmentLogger(),
		OnEnd:     onEnd,
	})
	require.NoError(t, err)
	return s
}

func TestNew_RequiresQuestions(t *testing.T) {
	_, err := New(Config{
		Test:      models.Test{Duration: 30},
		Questions: nil,
		Logger:    utils.NewDevelopmentLogger(),
	})
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSession_SelectAndSnapshot(t *testing.T) {
	s := newTestSession(t, &MockSubmitter{}, nil)

	require.NoError(t, s.Select(1, models.OptionB))
	require.NoError(t, s.Next())

	snap := s.Snapshot()
	assert.Equal(t, "sess-1", snap.ID)
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 1, snap.CurrentIndex)
	require.NotNil(t, snap.CurrentQuestion)
	assert.Equal(t, 2, snap.CurrentQuestion.ID)
	assert.Equal(t, 1, snap.AnsweredCount)
	assert.Equal(t, 3, snap.QuestionCount)
	assert.Equal(t, 30*60, snap.RemainingSeconds)
	assert.Equal(t, "30:00", snap.RemainingDisplay)
	assert.False(t, snap.Expired)
}

func TestSession_ResponsesKeepQuestionOrder(t *testing.T) {
	s := newTestSession(t, &MockSubmitter{}, nil)

	require.NoError(t, s.Select(2, models.OptionD))

	responses := s.Responses()
	require.Len(t, responses, 3)

	assert.Equal(t, 1, responses[0].ID)
	assert.Nil(t, responses[0].SelectedOption)

	assert.Equal(t, 2, responses[1].ID)
	require.NotNil(t, responses[1].SelectedOption)
	assert.Equal(t, models.OptionD, *responses[1].SelectedOption)

	assert.Equal(t, 3, responses[2].ID)
	assert.Nil(t, responses[2].SelectedOption)
}

func TestSession_Submit_FirstTriggerWins(t *testing.T) {
	submitter := &MockSubmitter{}
	submitter.On("SubmitTest", mock.Anything, mock.Anything).Return(nil)

	var endCount int
	var endReason EndReason
	var endMu sync.Mutex
	s := newTestSession(t, submitter, func(_ *Session, reason EndReason) {
		endMu.Lock()
		endCount++
		endReason = reason
		endMu.Unlock()
	})

	const racers = 10
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Submit(context.Background(), EndReasonUser)
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSessionAlreadySubmitted)
		}
	}
	assert.Equal(t, 1, succeeded)

	submitter.AssertNumberOfCalls(t, "SubmitTest", 1)
	endMu.Lock()
	assert.Equal(t, 1, endCount)
	assert.Equal(t, EndReasonUser, endReason)
	endMu.Unlock()
}

func TestSession_SubmitFailurePreservesStateForRetry(t *testing.T) {
	submitter := &MockSubmitter{}
	submitter.On("SubmitTest", mock.Anything, mock.Anything).Return(errors.New("collaborator down")).Once()
	submitter.On("SubmitTest", mock.Anything, mock.Anything).Return(nil).Once()

	s := newTestSession(t, submitter, nil)
	require.NoError(t, s.Select(1, models.OptionA))

	err := s.Submit(context.Background(), EndReasonUser)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionAlreadySubmitted)

	// The session is intact: answers survive and new input still works
	snap := s.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 1, snap.AnsweredCount)
	require.NoError(t, s.Select(2, models.OptionB))

	// Manual retry succeeds
	require.NoError(t, s.Submit(context.Background(), EndReasonUser))
	assert.Equal(t, StateSubmitted, s.Snapshot().State)
	submitter.AssertNumberOfCalls(t, "SubmitTest", 2)
}

func TestSession_SubmissionIncludesAllResponses(t *testing.T) {
	submitter := &MockSubmitter{}
	var captured *models.Submission
	submitter.On("SubmitTest", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*models.Submission)
	}).Return(nil)

	s := newTestSession(t, submitter, nil)
	require.NoError(t, s.Select(1, models.OptionA))
	require.NoError(t, s.Select(3, models.OptionC))

	require.NoError(t, s.Submit(context.Background(), EndReasonUser))

	require.NotNil(t, captured)
	assert.Equal(t, "asha@example.com", captured.User.Email)
	assert.Equal(t, 7, captured.Test.ID)
	require.Len(t, captured.Responses, 3)
	assert.NotNil(t, captured.Responses[0].SelectedOption)
	assert.Nil(t, captured.Responses[1].SelectedOption)
	assert.NotNil(t, captured.Responses[2].SelectedOption)
}

func TestSession_ExpiryAutoSubmitsOnce(t *testing.T) {
	submitter := &MockSubmitter{}
	submitter.On("SubmitTest", mock.Anything, mock.Anything).Return(nil)

	var reasons []EndReason
	s := newTestSession(t, submitter, func(_ *Session, reason EndReason) {
		reasons = append(reasons, reason)
	})

	s.expire()

	assert.Equal(t, StateSubmitted, s.Snapshot().State)
	assert.Equal(t, []EndReason{EndReasonTimeout}, reasons)

	// A user submit after expiry loses the race cleanly
	err := s.Submit(context.Background(), EndReasonUser)
	assert.ErrorIs(t, err, ErrSessionAlreadySubmitted)
	submitter.AssertNumberOfCalls(t, "SubmitTest", 1)
}

func TestSession_CloseDiscardsWithoutSubmitting(t *testing.T) {
	submitter := &MockSubmitter{}

	var reasons []EndReason
	s := newTestSession(t, submitter, func(_ *Session, reason EndReason) {
		reasons = append(reasons, reason)
	})

	require.NoError(t, s.Select(1, models.OptionA))
	s.Close()

	assert.Equal(t, StateClosed, s.Snapshot().State)
	assert.Equal(t, []EndReason{EndReasonAbandoned}, reasons)

	// Nothing mutates a closed session
	assert.ErrorIs(t, s.Select(2, models.OptionB), ErrSessionClosed)
	assert.ErrorIs(t, s.Next(), ErrSessionClosed)
	assert.ErrorIs(t, s.Submit(context.Background(), EndReasonUser), ErrSessionClosed)
	submitter.AssertNumberOfCalls(t, "SubmitTest", 0)

	// Closing again is a no-op
	s.Close()
	assert.Len(t, reasons, 1)
}

func TestSession_InputRejectedAfterSubmit(t *testing.T) {
	submitter := &MockSubmitter{}
	submitter.On("SubmitTest", mock.Anything, mock.Anything).Return(nil)

	s := newTestSession(t, submitter, nil)
	require.NoError(t, s.Submit(context.Background(), EndReasonUser))

	assert.ErrorIs(t, s.Select(1, models.OptionA), ErrSessionAlreadySubmitted)
	assert.ErrorIs(t, s.JumpTo(2), ErrSessionAlreadySubmitted)
}
