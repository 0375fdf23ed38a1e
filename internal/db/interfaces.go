package db

import (
	"context"
	"errors"

	"dsb-backend-go/internal/models"
)

var (
	// ErrNotFound is returned by every lookup that matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidStatus is returned when an analysis status is not one of the known states.
	ErrInvalidStatus = errors.New("invalid analysis status")
	// ErrResultMismatch is returned when a status write would break the rule that
	// an analysis carries a result exactly when it is completed.
	ErrResultMismatch = errors.New("analysis result must be present if and only if status is completed")
)

// UserRepository defines user storage operations.
// Uniqueness of username and email is the caller's concern; the lookups
// below exist so callers can check it.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.NewUser) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProblemAnalysisRepository defines problem analysis storage operations.
type ProblemAnalysisRepository interface {
	// CreateProblemAnalysis stores a new analysis in the pending state with no result.
	CreateProblemAnalysis(ctx context.Context, analysis models.NewProblemAnalysis) (*models.ProblemAnalysis, error)
	GetProblemAnalysis(ctx context.Context, id string) (*models.ProblemAnalysis, error)
	GetProblemAnalysesByUserID(ctx context.Context, userID string) ([]*models.ProblemAnalysis, error)
	ListProblemAnalyses(ctx context.Context) ([]*models.ProblemAnalysis, error)
	// UpdateProblemAnalysisStatus is the only way an analysis changes after creation.
	// A nil result keeps the stored one when moving to completed and clears it otherwise.
	UpdateProblemAnalysisStatus(ctx context.Context, id string, status models.AnalysisStatus, result *models.AnalysisResult) (*models.ProblemAnalysis, error)
}

// SolutionRepository defines solution storage operations.
type SolutionRepository interface {
	CreateSolution(ctx context.Context, solution models.NewSolution) (*models.Solution, error)
	GetSolution(ctx context.Context, id string) (*models.Solution, error)
	GetSolutionsByProblemAnalysisID(ctx context.Context, problemAnalysisID string) ([]*models.Solution, error)
	// GetSolutionsByUserID resolves the user's analyses first and returns the
	// solutions linked to any of them.
	GetSolutionsByUserID(ctx context.Context, userID string) ([]*models.Solution, error)
}

// SubscriptionRepository defines subscription storage operations.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, subscription models.NewSubscription) (*models.Subscription, error)
	GetSubscriptionByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	// UpdateSubscriptionUsage overwrites the monthly generation counter of the
	// user's first subscription.
	UpdateSubscriptionUsage(ctx context.Context, userID string, generationsUsed int) (*models.Subscription, error)
}

// Store is the full entity store handed to the services at startup.
type Store interface {
	UserRepository
	ProblemAnalysisRepository
	SolutionRepository
	SubscriptionRepository
	Close() error
}

// nextAnalysisState applies a status write to the stored status/result pair,
// enforcing the completed-iff-result rule. Both store implementations share it.
func nextAnalysisState(current *models.AnalysisResult, status models.AnalysisStatus, result *models.AnalysisResult) (*models.AnalysisResult, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if status != models.StatusCompleted {
		if result != nil {
			return nil, ErrResultMismatch
		}
		return nil, nil
	}
	if result != nil {
		return result, nil
	}
	if current == nil {
		return nil, ErrResultMismatch
	}
	return current, nil
}
