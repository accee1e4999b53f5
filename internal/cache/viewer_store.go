package cache

import (
	"context"
	"time"

	"github.com/AptiPro-2025/exam-session-service/internal/models"
)

// viewerTTL keeps cached profiles around for a full study day.
const viewerTTL = 24 * time.Hour

// ViewerStore caches viewer profiles keyed by email. It is the service-side
// replacement for the browser-local identity object the web client keeps.
type ViewerStore struct {
	cache CacheService
}

func NewViewerStore(cache CacheService) *ViewerStore {
	return &ViewerStore{cache: cache}
}

func (s *ViewerStore) key(email string) string {
	return "aptipro:viewer:" + email
}

// Save stores or refreshes a viewer profile.
func (s *ViewerStore) Save(ctx context.Context, viewer *models.Viewer) error {
	return s.cache.Set(ctx, s.key(viewer.Email), viewer, viewerTTL)
}

// Get loads a viewer profile. Returns ErrCacheMiss when no profile is
// cached for the email.
func (s *ViewerStore) Get(ctx context.Context, email string) (*models.Viewer, error) {
	var viewer models.Viewer
	if err := s.cache.Get(ctx, s.key(email), &viewer); err != nil {
		return nil, err
	}
	return &viewer, nil
}

// Forget removes a cached profile (logout).
func (s *ViewerStore) Forget(ctx context.Context, email string) error {
	return s.cache.Delete(ctx, s.key(email))
}
