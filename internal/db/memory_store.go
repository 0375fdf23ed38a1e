package db

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dsb-backend-go/internal/models"
)

// collection keeps records by ID and remembers insertion order, so "first
// match" scans behave the same on every run.
type collection[T any] struct {
	items map[string]*T
	order []string
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]*T)}
}

func (c *collection[T]) insert(id string, item *T) {
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = item
}

func (c *collection[T]) each(fn func(item *T) bool) {
	for _, id := range c.order {
		if !fn(c.items[id]) {
			return
		}
	}
}

// MemoryStore is the process-lifetime in-memory Store.
//
// The mutex only keeps the maps memory-safe. It does not order competing
// writers: two concurrent status updates on one analysis both succeed and
// the later one wins.
type MemoryStore struct {
	mu            sync.RWMutex
	users         *collection[models.User]
	analyses      *collection[models.ProblemAnalysis]
	solutions     *collection[models.Solution]
	subscriptions *collection[models.Subscription]

	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		users:         newCollection[models.User](),
		analyses:      newCollection[models.ProblemAnalysis](),
		solutions:     newCollection[models.Solution](),
		subscriptions: newCollection[models.Subscription](),
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
		newID:         uuid.NewString,
	}
}

// optionalString treats blank strings as unset.
func optionalString(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return cloneString(s)
}

// --- Users ---

func (s *MemoryStore) CreateUser(_ context.Context, in models.NewUser) (*models.User, error) {
	user := &models.User{
		ID:           s.newID(),
		Username:     in.Username,
		PasswordHash: in.PasswordHash,
		Email:        in.Email,
		Company:      optionalString(in.Company),
		Industry:     optionalString(in.Industry),
		CreatedAt:    s.now(),
	}

	s.mu.Lock()
	s.users.insert(user.ID, user)
	s.mu.Unlock()

	s.logger.Debug("user created", zap.String("userId", user.ID))
	return cloneUser(user), nil
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users.items[id]
	if !ok {
		return nil, fmt.Errorf("user '%s': %w", id, ErrNotFound)
	}
	return cloneUser(user), nil
}

func (s *MemoryStore) findUser(match func(*models.User) bool) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *models.User
	s.users.each(func(u *models.User) bool {
		if match(u) {
			found = cloneUser(u)
			return false
		}
		return true
	})
	return found
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	user := s.findUser(func(u *models.User) bool { return u.Username == username })
	if user == nil {
		return nil, fmt.Errorf("user with username '%s': %w", username, ErrNotFound)
	}
	return user, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user := s.findUser(func(u *models.User) bool { return u.Email == email })
	if user == nil {
		return nil, fmt.Errorf("user with email '%s': %w", email, ErrNotFound)
	}
	return user, nil
}

// --- Problem analyses ---

func (s *MemoryStore) CreateProblemAnalysis(_ context.Context, in models.NewProblemAnalysis) (*models.ProblemAnalysis, error) {
	analysis := &models.ProblemAnalysis{
		ID:                 s.newID(),
		UserID:             optionalString(in.UserID),
		ProblemDescription: in.ProblemDescription,
		Industry:           in.Industry,
		AnnualRevenue:      optionalString(in.AnnualRevenue),
		CurrentCapacity:    cloneInt(in.CurrentCapacity),
		Facilities:         cloneInt(in.Facilities),
		Status:             models.StatusPending,
		CreatedAt:          s.now(),
	}

	s.mu.Lock()
	s.analyses.insert(analysis.ID, analysis)
	s.mu.Unlock()

	return cloneProblemAnalysis(analysis), nil
}

func (s *MemoryStore) GetProblemAnalysis(_ context.Context, id string) (*models.ProblemAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	analysis, ok := s.analyses.items[id]
	if !ok {
		return nil, fmt.Errorf("problem analysis '%s': %w", id, ErrNotFound)
	}
	return cloneProblemAnalysis(analysis), nil
}

func (s *MemoryStore) filterAnalyses(match func(*models.ProblemAnalysis) bool) []*models.ProblemAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ProblemAnalysis, 0)
	s.analyses.each(func(a *models.ProblemAnalysis) bool {
		if match(a) {
			out = append(out, cloneProblemAnalysis(a))
		}
		return true
	})
	return out
}

func (s *MemoryStore) GetProblemAnalysesByUserID(_ context.Context, userID string) ([]*models.ProblemAnalysis, error) {
	return s.filterAnalyses(func(a *models.ProblemAnalysis) bool {
		return a.UserID != nil && *a.UserID == userID
	}), nil
}

func (s *MemoryStore) ListProblemAnalyses(_ context.Context) ([]*models.ProblemAnalysis, error) {
	return s.filterAnalyses(func(*models.ProblemAnalysis) bool { return true }), nil
}

func (s *MemoryStore) UpdateProblemAnalysisStatus(_ context.Context, id string, status models.AnalysisStatus, result *models.AnalysisResult) (*models.ProblemAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	analysis, ok := s.analyses.items[id]
	if !ok {
		return nil, fmt.Errorf("problem analysis '%s': %w", id, ErrNotFound)
	}
	next, err := nextAnalysisState(analysis.AnalysisResult, status, cloneAnalysisResult(result))
	if err != nil {
		return nil, fmt.Errorf("problem analysis '%s' to status '%s': %w", id, status, err)
	}

	// Replace rather than mutate so clones already handed out stay untouched.
	updated := *analysis
	updated.Status = status
	updated.AnalysisResult = next
	s.analyses.items[id] = &updated

	return cloneProblemAnalysis(&updated), nil
}

// --- Solutions ---

func (s *MemoryStore) CreateSolution(_ context.Context, in models.NewSolution) (*models.Solution, error) {
	draft := &models.Solution{
		ProblemAnalysisID:     optionalString(in.ProblemAnalysisID),
		SolutionType:          in.SolutionType,
		CustomAlgorithms:      in.CustomAlgorithms,
		DashboardComponents:   in.DashboardComponents,
		ImplementationRoadmap: in.ImplementationRoadmap,
		ROIProjections:        in.ROIProjections,
		ExpectedResults:       in.ExpectedResults,
	}
	solution := cloneSolution(draft)
	solution.ID = s.newID()
	solution.CreatedAt = s.now()

	s.mu.Lock()
	s.solutions.insert(solution.ID, solution)
	s.mu.Unlock()

	return cloneSolution(solution), nil
}

func (s *MemoryStore) GetSolution(_ context.Context, id string) (*models.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	solution, ok := s.solutions.items[id]
	if !ok {
		return nil, fmt.Errorf("solution '%s': %w", id, ErrNotFound)
	}
	return cloneSolution(solution), nil
}

func (s *MemoryStore) filterSolutions(match func(*models.Solution) bool) []*models.Solution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Solution, 0)
	s.solutions.each(func(sol *models.Solution) bool {
		if match(sol) {
			out = append(out, cloneSolution(sol))
		}
		return true
	})
	return out
}

func (s *MemoryStore) GetSolutionsByProblemAnalysisID(_ context.Context, problemAnalysisID string) ([]*models.Solution, error) {
	return s.filterSolutions(func(sol *models.Solution) bool {
		return sol.ProblemAnalysisID != nil && *sol.ProblemAnalysisID == problemAnalysisID
	}), nil
}

func (s *MemoryStore) GetSolutionsByUserID(ctx context.Context, userID string) ([]*models.Solution, error) {
	analyses, err := s.GetProblemAnalysesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]struct{}, len(analyses))
	for _, a := range analyses {
		owned[a.ID] = struct{}{}
	}
	return s.filterSolutions(func(sol *models.Solution) bool {
		if sol.ProblemAnalysisID == nil {
			return false
		}
		_, ok := owned[*sol.ProblemAnalysisID]
		return ok
	}), nil
}

// --- Subscriptions ---

func (s *MemoryStore) CreateSubscription(_ context.Context, in models.NewSubscription) (*models.Subscription, error) {
	status := in.Status
	if status == "" {
		status = models.SubscriptionActive
	}
	sub := &models.Subscription{
		ID:             s.newID(),
		UserID:         optionalString(in.UserID),
		PlanType:       in.PlanType,
		Status:         status,
		StartDate:      s.now(),
		MaxGenerations: cloneInt(in.MaxGenerations),
	}
	if in.EndDate != nil {
		end := *in.EndDate
		sub.EndDate = &end
	}

	s.mu.Lock()
	s.subscriptions.insert(sub.ID, sub)
	s.mu.Unlock()

	return cloneSubscription(sub), nil
}

// firstSubscription must be called with s.mu held.
func (s *MemoryStore) firstSubscription(userID string) *models.Subscription {
	var found *models.Subscription
	s.subscriptions.each(func(sub *models.Subscription) bool {
		if sub.UserID != nil && *sub.UserID == userID {
			found = sub
			return false
		}
		return true
	})
	return found
}

func (s *MemoryStore) GetSubscriptionByUserID(_ context.Context, userID string) (*models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub := s.firstSubscription(userID)
	if sub == nil {
		return nil, fmt.Errorf("subscription for user '%s': %w", userID, ErrNotFound)
	}
	return cloneSubscription(sub), nil
}

func (s *MemoryStore) UpdateSubscriptionUsage(_ context.Context, userID string, generationsUsed int) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := s.firstSubscription(userID)
	if sub == nil {
		return nil, fmt.Errorf("subscription for user '%s': %w", userID, ErrNotFound)
	}
	updated := *sub
	updated.MonthlyGenerations = generationsUsed
	s.subscriptions.items[sub.ID] = &updated
	return cloneSubscription(&updated), nil
}

// Close is a no-op; the in-memory state simply goes away with the process.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
