package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AptiPro-2025/exam-session-service/internal/cache"
	"github.com/AptiPro-2025/exam-session-service/internal/collab"
	"github.com/AptiPro-2025/exam-session-service/internal/models"
	"github.com/AptiPro-2025/exam-session-service/internal/results"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

// ResultView is a fully reconstructed result ready for review: the
// transformed question list plus the derived score figures.
type ResultView struct {
	Result     *models.TransformedResult `json:"result"`
	Percentage int                       `json:"percentage"`
	Band       results.Band              `json:"band"`
}

// ResultService serves completed-test listings and per-result review views.
type ResultService interface {
	List(ctx context.Context, email string) ([]models.RawResult, error)
	View(ctx context.Context, email string, raw models.RawResult) (*ResultView, error)
	Performance(ctx context.Context, email string) (*results.PerformanceSummary, error)
}

type resultService struct {
	collab  collab.Client
	viewers *cache.ViewerStore
	logger  utils.Logger
}

func NewResultService(collabClient collab.Client, viewers *cache.ViewerStore, logger utils.Logger) ResultService {
	return &resultService{
		collab:  collabClient,
		viewers: viewers,
		logger:  logger,
	}
}

func (s *resultService) List(ctx context.Context, email string) ([]models.RawResult, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	raw, err := s.collab.FetchResults(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("fetch results: %w", err)
	}
	// An empty list is a normal state: the viewer has not completed any
	// test yet.
	return raw, nil
}

// View rebuilds the full review state for one raw result. A result whose
// stored response data is malformed or empty still yields a view; it simply
// carries no questions.
func (s *resultService) View(ctx context.Context, email string, raw models.RawResult) (*ResultView, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	viewer, err := s.viewers.Get(ctx, email)
	if err != nil {
		return nil, ErrViewerNotFound
	}

	transformed := results.Reconstruct(raw, *viewer)
	if !transformed.HasQuestions() {
		s.logger.Warn("Result has no reviewable questions",
			"result_id", strconv.Itoa(raw.ID),
			"student_email", email)
	}

	percentage := results.Percentage(raw.Marks, raw.TotalMarks)
	return &ResultView{
		Result:     transformed,
		Percentage: percentage,
		Band:       results.BandFor(percentage),
	}, nil
}

// Performance aggregates the viewer's recent results into summary figures.
func (s *resultService) Performance(ctx context.Context, email string) (*results.PerformanceSummary, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	viewer, err := s.viewers.Get(ctx, email)
	if err != nil {
		return nil, ErrViewerNotFound
	}

	summary, ok := results.Summarize(viewer.RecentResults)
	if !ok {
		return nil, ErrNoRecentResults
	}
	return summary, nil
}
