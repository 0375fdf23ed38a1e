package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dsb-backend-go/internal/db"
	"dsb-backend-go/internal/models"
)

// subscriptionService implements the SubscriptionService interface.
type subscriptionService struct {
	subRepo db.SubscriptionRepository
	now     func() time.Time
}

// NewSubscriptionService creates a new SubscriptionService instance.
func NewSubscriptionService(subRepo db.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, now: time.Now}
}

func (s *subscriptionService) ListPlans() []models.Plan {
	out := make([]models.Plan, len(models.Plans))
	copy(out, models.Plans)
	return out
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	plan, ok := models.FindPlan(strings.TrimSpace(req.PlanType))
	if !ok {
		return nil, fmt.Errorf("%w: unknown plan type '%s'", ErrInvalidInput, req.PlanType)
	}
	if req.EndDate != nil && !req.EndDate.After(s.now()) {
		return nil, fmt.Errorf("%w: end date must be in the future", ErrInvalidInput)
	}

	sub, err := s.subRepo.CreateSubscription(ctx, models.NewSubscription{
		UserID:         &userID,
		PlanType:       plan.Type,
		Status:         models.SubscriptionActive,
		EndDate:        req.EndDate,
		MaxGenerations: plan.MaxGenerations,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

func (s *subscriptionService) GetUserSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	return s.subRepo.GetSubscriptionByUserID(ctx, userID)
}

func (s *subscriptionService) UpdateUsage(ctx context.Context, userID string, monthlyGenerations int) (*models.Subscription, error) {
	if monthlyGenerations < 0 {
		return nil, fmt.Errorf("%w: monthly generations cannot be negative", ErrInvalidInput)
	}
	return s.subRepo.UpdateSubscriptionUsage(ctx, userID, monthlyGenerations)
}

// RecordGeneration bumps the counter by one. The read and the write are
// separate store calls, so concurrent generations for one user may undercount.
func (s *subscriptionService) RecordGeneration(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.subRepo.GetSubscriptionByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.subRepo.UpdateSubscriptionUsage(ctx, userID, sub.MonthlyGenerations+1)
}
