package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dsb-backend-go/internal/models"
)

const (
	usersCollection         = "users"
	analysesCollection      = "problem_analyses"
	solutionsCollection     = "solutions"
	subscriptionsCollection = "subscriptions"

	// Firestore caps the number of values in an "in" filter.
	maxInFilterValues = 30
)

// FirestoreStore is the durable Store backed by Cloud Firestore.
// Document IDs are generated here (UUIDs) so both backends hand out the
// same kind of identifier.
type FirestoreStore struct {
	client *firestore.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewFirestoreStore wraps an initialised Firestore client.
func NewFirestoreStore(client *firestore.Client, logger *zap.Logger) (*FirestoreStore, error) {
	if client == nil {
		return nil, errors.New("firestore client is not initialized")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FirestoreStore{
		client: client,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// getDoc loads one document into dst, translating a missing document to ErrNotFound.
func (s *FirestoreStore) getDoc(ctx context.Context, collection, id string, dst interface{}) error {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%s '%s': %w", collection, id, ErrNotFound)
		}
		return fmt.Errorf("failed to get %s '%s': %w", collection, id, err)
	}
	if err := snap.DataTo(dst); err != nil {
		return fmt.Errorf("failed to decode %s '%s': %w", collection, id, err)
	}
	return nil
}

// --- Users ---

func (s *FirestoreStore) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		PasswordHash: in.PasswordHash,
		Email:        in.Email,
		Company:      optionalString(in.Company),
		Industry:     optionalString(in.Industry),
		CreatedAt:    s.now(),
	}
	if _, err := s.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *FirestoreStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.getDoc(ctx, usersCollection, id, &user); err != nil {
		return nil, err
	}
	user.ID = id
	return &user, nil
}

func (s *FirestoreStore) findUser(ctx context.Context, field, value string) (*models.User, error) {
	snaps, err := s.client.Collection(usersCollection).Where(field, "==", value).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query users by %s: %w", field, err)
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("user with %s '%s': %w", field, value, ErrNotFound)
	}
	var user models.User
	if err := snaps[0].DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	user.ID = snaps[0].Ref.ID
	return &user, nil
}

func (s *FirestoreStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findUser(ctx, "username", username)
}

func (s *FirestoreStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "email", email)
}

// --- Problem analyses ---

func (s *FirestoreStore) CreateProblemAnalysis(ctx context.Context, in models.NewProblemAnalysis) (*models.ProblemAnalysis, error) {
	analysis := &models.ProblemAnalysis{
		ID:                 uuid.NewString(),
		UserID:             optionalString(in.UserID),
		ProblemDescription: in.ProblemDescription,
		Industry:           in.Industry,
		AnnualRevenue:      optionalString(in.AnnualRevenue),
		CurrentCapacity:    cloneInt(in.CurrentCapacity),
		Facilities:         cloneInt(in.Facilities),
		Status:             models.StatusPending,
		CreatedAt:          s.now(),
	}
	if _, err := s.client.Collection(analysesCollection).Doc(analysis.ID).Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to create problem analysis: %w", err)
	}
	return analysis, nil
}

func (s *FirestoreStore) GetProblemAnalysis(ctx context.Context, id string) (*models.ProblemAnalysis, error) {
	var analysis models.ProblemAnalysis
	if err := s.getDoc(ctx, analysesCollection, id, &analysis); err != nil {
		return nil, err
	}
	analysis.ID = id
	return &analysis, nil
}

func (s *FirestoreStore) queryAnalyses(ctx context.Context, q firestore.Query) ([]*models.ProblemAnalysis, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query problem analyses: %w", err)
	}
	out := make([]*models.ProblemAnalysis, 0, len(snaps))
	for _, snap := range snaps {
		var a models.ProblemAnalysis
		if err := snap.DataTo(&a); err != nil {
			return nil, fmt.Errorf("failed to decode problem analysis '%s': %w", snap.Ref.ID, err)
		}
		a.ID = snap.Ref.ID
		out = append(out, &a)
	}
	// Sorted here instead of with OrderBy to avoid needing a composite index.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *FirestoreStore) GetProblemAnalysesByUserID(ctx context.Context, userID string) ([]*models.ProblemAnalysis, error) {
	return s.queryAnalyses(ctx, s.client.Collection(analysesCollection).Where("userId", "==", userID))
}

func (s *FirestoreStore) ListProblemAnalyses(ctx context.Context) ([]*models.ProblemAnalysis, error) {
	return s.queryAnalyses(ctx, s.client.Collection(analysesCollection).Query)
}

func (s *FirestoreStore) UpdateProblemAnalysisStatus(ctx context.Context, id string, st models.AnalysisStatus, result *models.AnalysisResult) (*models.ProblemAnalysis, error) {
	ref := s.client.Collection(analysesCollection).Doc(id)
	var updated models.ProblemAnalysis

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("problem analysis '%s': %w", id, ErrNotFound)
			}
			return err
		}
		var current models.ProblemAnalysis
		if err := snap.DataTo(&current); err != nil {
			return fmt.Errorf("failed to decode problem analysis '%s': %w", id, err)
		}
		next, err := nextAnalysisState(current.AnalysisResult, st, result)
		if err != nil {
			return fmt.Errorf("problem analysis '%s' to status '%s': %w", id, st, err)
		}
		current.Status = st
		current.AnalysisResult = next
		updated = current
		return tx.Set(ref, &current)
	})
	if err != nil {
		return nil, err
	}
	updated.ID = id
	return &updated, nil
}

// --- Solutions ---

func (s *FirestoreStore) CreateSolution(ctx context.Context, in models.NewSolution) (*models.Solution, error) {
	solution := &models.Solution{
		ID:                    uuid.NewString(),
		ProblemAnalysisID:     optionalString(in.ProblemAnalysisID),
		SolutionType:          in.SolutionType,
		CustomAlgorithms:      in.CustomAlgorithms,
		DashboardComponents:   in.DashboardComponents,
		ImplementationRoadmap: in.ImplementationRoadmap,
		ROIProjections:        in.ROIProjections,
		ExpectedResults:       in.ExpectedResults,
		CreatedAt:             s.now(),
	}
	if _, err := s.client.Collection(solutionsCollection).Doc(solution.ID).Create(ctx, solution); err != nil {
		return nil, fmt.Errorf("failed to create solution: %w", err)
	}
	return solution, nil
}

func (s *FirestoreStore) GetSolution(ctx context.Context, id string) (*models.Solution, error) {
	var solution models.Solution
	if err := s.getDoc(ctx, solutionsCollection, id, &solution); err != nil {
		return nil, err
	}
	solution.ID = id
	return &solution, nil
}

func (s *FirestoreStore) querySolutions(ctx context.Context, q firestore.Query) ([]*models.Solution, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query solutions: %w", err)
	}
	out := make([]*models.Solution, 0, len(snaps))
	for _, snap := range snaps {
		var sol models.Solution
		if err := snap.DataTo(&sol); err != nil {
			return nil, fmt.Errorf("failed to decode solution '%s': %w", snap.Ref.ID, err)
		}
		sol.ID = snap.Ref.ID
		out = append(out, &sol)
	}
	return out, nil
}

func (s *FirestoreStore) GetSolutionsByProblemAnalysisID(ctx context.Context, problemAnalysisID string) ([]*models.Solution, error) {
	out, err := s.querySolutions(ctx, s.client.Collection(solutionsCollection).Where("problemAnalysisId", "==", problemAnalysisID))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *FirestoreStore) GetSolutionsByUserID(ctx context.Context, userID string) ([]*models.Solution, error) {
	analyses, err := s.GetProblemAnalysesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(analyses))
	for _, a := range analyses {
		ids = append(ids, a.ID)
	}

	out := make([]*models.Solution, 0)
	for start := 0; start < len(ids); start += maxInFilterValues {
		end := start + maxInFilterValues
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := s.querySolutions(ctx, s.client.Collection(solutionsCollection).Where("problemAnalysisId", "in", ids[start:end]))
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// --- Subscriptions ---

func (s *FirestoreStore) CreateSubscription(ctx context.Context, in models.NewSubscription) (*models.Subscription, error) {
	st := in.Status
	if st == "" {
		st = models.SubscriptionActive
	}
	sub := &models.Subscription{
		ID:             uuid.NewString(),
		UserID:         optionalString(in.UserID),
		PlanType:       strings.TrimSpace(in.PlanType),
		Status:         st,
		StartDate:      s.now(),
		EndDate:        in.EndDate,
		MaxGenerations: cloneInt(in.MaxGenerations),
	}
	if _, err := s.client.Collection(subscriptionsCollection).Doc(sub.ID).Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

// firstSubscriptionRef returns the earliest subscription owned by userID.
func (s *FirestoreStore) firstSubscriptionRef(ctx context.Context, userID string) (*firestore.DocumentRef, *models.Subscription, error) {
	snaps, err := s.client.Collection(subscriptionsCollection).Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	var (
		ref   *firestore.DocumentRef
		first *models.Subscription
	)
	for _, snap := range snaps {
		var sub models.Subscription
		if err := snap.DataTo(&sub); err != nil {
			return nil, nil, fmt.Errorf("failed to decode subscription '%s': %w", snap.Ref.ID, err)
		}
		if first == nil || sub.StartDate.Before(first.StartDate) {
			sub.ID = snap.Ref.ID
			first, ref = &sub, snap.Ref
		}
	}
	if first == nil {
		return nil, nil, fmt.Errorf("subscription for user '%s': %w", userID, ErrNotFound)
	}
	return ref, first, nil
}

func (s *FirestoreStore) GetSubscriptionByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	_, sub, err := s.firstSubscriptionRef(ctx, userID)
	return sub, err
}

func (s *FirestoreStore) UpdateSubscriptionUsage(ctx context.Context, userID string, generationsUsed int) (*models.Subscription, error) {
	ref, sub, err := s.firstSubscriptionRef(ctx, userID)
	if err != nil {
		return nil, err
	}
	_, err = ref.Update(ctx, []firestore.Update{{Path: "monthlyGenerations", Value: generationsUsed}})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("subscription '%s': %w", sub.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update subscription usage: %w", err)
	}
	sub.MonthlyGenerations = generationsUsed
	return sub, nil
}

// Close closes the underlying Firestore client.
func (s *FirestoreStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

var _ Store = (*FirestoreStore)(nil)
