package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AptiPro-2025/exam-session-service/internal/cache"
	"github.com/AptiPro-2025/exam-session-service/internal/events"
	"github.com/AptiPro-2025/exam-session-service/internal/models"
	"github.com/AptiPro-2025/exam-session-service/internal/session"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

// MockCollabClient is a mock implementation of collab.Client
type MockCollabClient struct {
	mock.Mock
}

func (m *MockCollabClient) FetchQuestions(ctx context.Context, subject string, difficulty models.DifficultyLevel, limit int) ([]models.Question, error) {
	args := m.Called(ctx, subject, difficulty, limit)
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockCollabClient) FetchTests(ctx context.Context, department string) ([]models.Test, error) {
	args := m.Called(ctx, department)
	return args.Get(0).([]models.Test), args.Error(1)
}

func (m *MockCollabClient) FetchResults(ctx context.Context, email string) ([]models.RawResult, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]models.RawResult), args.Error(1)
}

func (m *MockCollabClient) SubmitTest(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockCollabClient) Signup(ctx context.Context, form *models.SignupForm) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

// memoryCache is an in-process CacheService for tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = encoded
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	encoded, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(encoded, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
	return nil
}

func newTestViewerStore(t *testing.T, viewers ...models.Viewer) *cache.ViewerStore {
	t.Helper()
	store := cache.NewViewerStore(newMemoryCache())
	for i := range viewers {
		require.NoError(t, store.Save(context.Background(), &viewers[i]))
	}
	return store
}

func testViewer() models.Viewer {
	return models.Viewer{
		ID:         "stu-1",
		Name:       "Asha",
		Email:      "asha@example.com",
		Department: "Computer Science",
	}
}

func availableTest() models.Test {
	return models.Test{
		ID:             7,
		Name:           "Aptitude Round 1",
		Marks:          3,
		QuestionsCount: 3,
		Duration:       30,
		Difficulty:     models.DifficultyMedium,
		Subject:        "Quant",
		ScheduledAt:    "2020-01-01T09:00:00Z",
	}
}

func testQuestions(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:            i + 1,
			Prompt:        "question",
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectOption: models.OptionA,
		}
	}
	return questions
}

func newTestSessionService(t *testing.T, collabClient *MockCollabClient, publisher *events.MockEventPublisher) SessionService {
	t.Helper()
	logger := utils.NewDevelopmentLogger()
	return NewSessionService(
		collabClient,
		newTestViewerStore(t, testViewer()),
		publisher,
		logger,
		utils.NewValidator(),
	)
}

func TestSessionService_Open(t *testing.T) {
	collabClient := &MockCollabClient{}
	collabClient.On("FetchQuestions", mock.Anything, "Quant", models.DifficultyMedium, 3).
		Return(testQuestions(3), nil)
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(utils.NewDevelopmentLogger()))

	svc := newTestSessionService(t, collabClient, publisher)

	snap, err := svc.Open(context.Background(), "asha@example.com", availableTest())
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, session.StateRunning, snap.State)
	assert.Equal(t, 3, snap.QuestionCount)
	assert.Equal(t, 0, snap.AnsweredCount)
	assert.Equal(t, 30*60, snap.RemainingSeconds)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventSessionStarted, published[0].Type)
	assert.Equal(t, "exam-session-service", published[0].Source)
}

func TestSessionService_Open_UnknownViewer(t *testing.T) {
	collabClient := &MockCollabClient{}
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(utils.NewDevelopmentLogger()))
	svc := newTestSessionService(t, collabClient, publisher)

	_, err := svc.Open(context.Background(), "nobody@example.com", availableTest())
	assert.ErrorIs(t, err, ErrViewerNotFound)
	collabClient.AssertNotCalled(t, "FetchQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionService_Open_TestNotYetAvailable(t *testing.T) {
	collabClient := &MockCollabClient{}
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(utils.NewDevelopmentLogger()))
	svc := newTestSessionService(t, collabClient, publisher)

	test := availableTest()
	test.ScheduledAt = time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)

	_, err := svc.Open(context.Background(), "asha@example.com", test)
	assert.ErrorIs(t, err, ErrTestNotAvailable)
	collabClient.AssertNotCalled(t, "FetchQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionService_Open_NoQuestions(t *testing.T) {
	collabClient := &MockCollabClient{}
	collabClient.On("FetchQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]models.Question{}, nil)
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(utils.NewDevelopmentLogger()))
	svc := newTestSessionService(t, collabClient, publisher)

	_, err := svc.Open(context.Background(), "asha@example.com", availableTest())
	assert.ErrorIs(t, err, ErrNoQuestionsFound)
}

func TestSessionService_Open_TruncatesSurplusQuestions(t *testing.T) {
	collabClient := &MockCollabClient{}
	collabClient.On("FetchQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testQuestions(5), nil)
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(utils.NewDevelopmentLogger()))
	svc := newTestSessionService(t, collabClient, publisher)

	snap, err := svc.Open(context.Background(), "asha@example.com", availableTest())
	require.NoError(t, err)
	assert.Equal(t, 3, snap.QuestionCount)
}

func TestSessionService_FullFlow(t *testing.T) {
	collabClient := &MockCollabClient{}
	collabClient.On("FetchQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testQuestions(3), nil)
	collabClient.On("SubmitTest", mock.Anything, mock.Anything).Return(nil)
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(utils.NewDevelopmentLogger()))
	svc := newTestSessionService(t, collabClient, publisher)

	ctx := context.Background()
	snap, err := svc.Open(ctx, "asha@example.com", availableTest())
	require.NoError(t, err)
	id := snap.ID

	snap, err = svc.Select(ctx, id, 1, models.OptionB)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.AnsweredCount)

	snap, err = svc.Navigate(ctx, id, NavigateNext, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.CurrentIndex)

	snap, err = svc.Navigate(ctx, id, NavigateJump, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.CurrentIndex)

	snap, err = svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session.StateSubmitted, snap.State)
	collabClient.AssertNumberOfCalls(t, "SubmitTest", 1)

	// The ended session leaves the registry
	_, err = svc.Snapshot(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventSessionStarted, published[0].Type)
	assert.Equal(t, events.EventSessionSubmitted, published[1].Type)
}

func TestSessionService_Close(t *testing.T) {
	collabClient := &MockCollabClient{}
	collabClient.On("FetchQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testQuestions(3), nil)
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(utils.NewDevelopmentLogger()))
	svc := newTestSessionService(t, collabClient, publisher)

	ctx := context.Background()
	snap, err := svc.Open(ctx, "asha@example.com", availableTest())
	require.NoError(t, err)

	require.NoError(t, svc.Close(ctx, snap.ID))
	collabClient.AssertNotCalled(t, "SubmitTest", mock.Anything, mock.Anything)

	_, err = svc.Snapshot(ctx, snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventSessionAbandoned, published[1].Type)
}

func TestSessionService_Navigate_UnknownAction(t *testing.T) {
	collabClient := &MockCollabClient{}
	collabClient.On("FetchQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testQuestions(3), nil)
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(utils.NewDevelopmentLogger()))
	svc := newTestSessionService(t, collabClient, publisher)

	ctx := context.Background()
	snap, err := svc.Open(ctx, "asha@example.com", availableTest())
	require.NoError(t, err)

	_, err = svc.Navigate(ctx, snap.ID, NavigationAction("sideways"), 0)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestSessionService_ListTests_RequiresDepartment(t *testing.T) {
	collabClient := &MockCollabClient{}
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(utils.NewDevelopmentLogger()))
	svc := newTestSessionService(t, collabClient, publisher)

	_, err := svc.ListTests(context.Background(), "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestSessionService_UnknownSession(t *testing.T) {
	collabClient := &MockCollabClient{}
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(utils.NewDevelopmentLogger()))
	svc := newTestSessionService(t, collabClient, publisher)

	_, err := svc.Snapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Submit(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
