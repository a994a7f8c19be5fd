package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobtracker-backend/internal/shared/validation"
)

var ErrInvalidInput = errors.New("invalid goals")

// ValidationError carries per-field issues for rejected goals.
type ValidationError struct {
	Issues []validation.FieldIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid goals: %d issue(s)", len(e.Issues))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

type Service struct {
	Repo     Repo
	validate *validator.Validate
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, validate: validation.New()}
}

// Get returns the user's goals, or the defaults when none are stored.
func (s *Service) Get(ctx context.Context, userID string) (Goals, error) {
	if s == nil || s.Repo == nil {
		return Goals{}, errors.New("goals service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Goals{}, errors.New("user id is required")
	}
	goals, err := s.Repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return DefaultGoals(), nil
	}
	return goals, err
}

// Save validates and stores goals.
func (s *Service) Save(ctx context.Context, userID string, goals Goals) (Goals, error) {
	if s == nil || s.Repo == nil {
		return Goals{}, errors.New("goals service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Goals{}, errors.New("user id is required")
	}
	if err := s.validate.Struct(goals); err != nil {
		return Goals{}, &ValidationError{Issues: validation.Issues(err)}
	}
	if err := s.Repo.Upsert(ctx, userID, goals); err != nil {
		return Goals{}, err
	}
	return s.Repo.Get(ctx, userID)
}
