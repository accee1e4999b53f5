package services

import (
	"context"
	"fmt"

	"github.com/AptiPro-2025/exam-session-service/internal/cache"
	"github.com/AptiPro-2025/exam-session-service/internal/collab"
	"github.com/AptiPro-2025/exam-session-service/internal/models"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

// AccountService handles viewer registration and profile storage.
type AccountService interface {
	Signup(ctx context.Context, form *models.SignupForm) error
	Profile(ctx context.Context, email string) (*models.Viewer, error)
	SaveProfile(ctx context.Context, viewer *models.Viewer) error
}

type accountService struct {
	collab    collab.Client
	viewers   *cache.ViewerStore
	logger    utils.Logger
	validator *utils.Validator
}

func NewAccountService(collabClient collab.Client, viewers *cache.ViewerStore, logger utils.Logger, validator *utils.Validator) AccountService {
	return &accountService{
		collab:    collabClient,
		viewers:   viewers,
		logger:    logger,
		validator: validator,
	}
}

// Signup validates the form locally before anything crosses the network;
// an invalid form never reaches the collaborator.
func (s *accountService) Signup(ctx context.Context, form *models.SignupForm) error {
	if err := s.validator.Validate(form); err != nil {
		return err
	}

	if err := s.collab.Signup(ctx, form); err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	s.logger.Info("Viewer signed up", "email", form.Email, "department", form.Department)
	return nil
}

func (s *accountService) Profile(ctx context.Context, email string) (*models.Viewer, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	viewer, err := s.viewers.Get(ctx, email)
	if err != nil {
		return nil, ErrViewerNotFound
	}
	return viewer, nil
}

func (s *accountService) SaveProfile(ctx context.Context, viewer *models.Viewer) error {
	if err := s.validator.Validate(viewer); err != nil {
		return err
	}
	if err := s.viewers.Save(ctx, viewer); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
