package db

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"dsb-backend-go/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		ProblemCategories: []string{"Capacity Optimization"},
		RootCauses:        []string{"Manual scheduling"},
		Severity:          "high",
		IndustryPatterns:  []string{"Batch processing"},
		Urgency:           8,
		KeyIssues:         []models.KeyIssue{{Issue: "Idle lines", Impact: "high", Priority: 1}},
	}
}

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(zaptest.NewLogger(t))
}

func createAnalysis(t *testing.T, s *MemoryStore, userID *string) *models.ProblemAnalysis {
	t.Helper()
	a, err := s.CreateProblemAnalysis(context.Background(), models.NewProblemAnalysis{
		UserID: userID,
		ProblemInput: models.ProblemInput{
			ProblemDescription: "Capacity stuck at 45%",
			Industry:           "pharmaceutical",
		},
	})
	require.NoError(t, err)
	return a
}

func TestMemoryStore_UserRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateUser(ctx, models.NewUser{
		Username:     "rajesh",
		PasswordHash: "hash",
		Email:        "rajesh@example.com",
		Company:      strPtr("Acme Pharma"),
		Industry:     strPtr("  "),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.Industry, "blank optional fields are stored as absent")

	got, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	byName, err := s.GetUserByUsername(ctx, "rajesh")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestMemoryStore_GetUserByEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := s.CreateUser(ctx, models.NewUser{Username: "a", PasswordHash: "h", Email: "a@example.com"})
	require.NoError(t, err)

	got, err := s.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetProblemAnalysis(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetSolution(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetSubscriptionByUserID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdateProblemAnalysisStatus(ctx, "missing", models.StatusAnalyzing, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdateSubscriptionUsage(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CreateProblemAnalysisStartsPending(t *testing.T) {
	s := newTestStore(t)
	a := createAnalysis(t, s, strPtr("user-1"))

	assert.Equal(t, models.StatusPending, a.Status)
	assert.Nil(t, a.AnalysisResult)
	assert.Equal(t, "user-1", *a.UserID)
}

func TestMemoryStore_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := createAnalysis(t, s, nil)

	_, err := s.UpdateProblemAnalysisStatus(ctx, a.ID, models.StatusCompleted, sampleResult())
	require.NoError(t, err)

	first, err := s.GetProblemAnalysis(ctx, a.ID)
	require.NoError(t, err)
	first.Status = models.StatusFailed
	first.AnalysisResult.ProblemCategories[0] = "mutated"

	second, err := s.GetProblemAnalysis(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, second.Status)
	assert.Equal(t, "Capacity Optimization", second.AnalysisResult.ProblemCategories[0])
}

func TestMemoryStore_UpdateProblemAnalysisStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completed with result", func(t *testing.T) {
		s := newTestStore(t)
		a := createAnalysis(t, s, nil)

		updated, err := s.UpdateProblemAnalysisStatus(ctx, a.ID, models.StatusCompleted, sampleResult())
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, updated.Status)
		assert.Equal(t, sampleResult(), updated.AnalysisResult)
	})

	t.Run("completed without result is rejected", func(t *testing.T) {
		s := newTestStore(t)
		a := createAnalysis(t, s, nil)

		_, err := s.UpdateProblemAnalysisStatus(ctx, a.ID, models.StatusCompleted, nil)
		assert.ErrorIs(t, err, ErrResultMismatch)

		got, err := s.GetProblemAnalysis(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, got.Status)
	})

	t.Run("completed without result keeps the stored one", func(t *testing.T) {
		s := newTestStore(t)
		a := createAnalysis(t, s, nil)
		_, err := s.UpdateProblemAnalysisStatus(ctx, a.ID, models.StatusCompleted, sampleResult())
		require.NoError(t, err)

		updated, err := s.UpdateProblemAnalysisStatus(ctx, a.ID, models.StatusCompleted, nil)
		require.NoError(t, err)
		assert.NotNil(t, updated.AnalysisResult)
	})

	t.Run("failed clears the result", func(t *testing.T) {
		s := newTestStore(t)
		a := createAnalysis(t, s, nil)
		_, err := s.UpdateProblemAnalysisStatus(ctx, a.ID, models.StatusCompleted, sampleResult())
		require.NoError(t, err)

		updated, err := s.UpdateProblemAnalysisStatus(ctx, a.ID, models.StatusFailed, nil)
		require.NoError(t, err)
		assert.Equal(t, models.StatusFailed, updated.Status)
		assert.Nil(t, updated.AnalysisResult)
	})

	t.Run("result with non-completed status is rejected", func(t *testing.T) {
		s := newTestStore(t)
		a := createAnalysis(t, s, nil)

		_, err := s.UpdateProblemAnalysisStatus(ctx, a.ID, models.StatusAnalyzing, sampleResult())
		assert.ErrorIs(t, err, ErrResultMismatch)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		s := newTestStore(t)
		a := createAnalysis(t, s, nil)

		_, err := s.UpdateProblemAnalysisStatus(ctx, a.ID, models.AnalysisStatus("done"), nil)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestMemoryStore_ConcurrentStatusUpdates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := createAnalysis(t, s, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = s.UpdateProblemAnalysisStatus(ctx, a.ID, models.StatusCompleted, sampleResult())
			} else {
				_, _ = s.UpdateProblemAnalysisStatus(ctx, a.ID, models.StatusFailed, nil)
			}
		}(i)
	}
	wg.Wait()

	all, err := s.ListProblemAnalyses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	final := all[0]
	switch final.Status {
	case models.StatusCompleted:
		assert.NotNil(t, final.AnalysisResult)
	case models.StatusFailed:
		assert.Nil(t, final.AnalysisResult)
	default:
		t.Fatalf("unexpected final status %q", final.Status)
	}
}

func TestMemoryStore_SolutionsByUserID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.GetSolutionsByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	mine := createAnalysis(t, s, strPtr("user-1"))
	other := createAnalysis(t, s, strPtr("user-2"))
	anonymous := createAnalysis(t, s, nil)

	var want []string
	for i := 0; i < 2; i++ {
		sol, err := s.CreateSolution(ctx, models.NewSolution{
			ProblemAnalysisID: &mine.ID,
			SolutionType:      fmt.Sprintf("DSB %d", i),
		})
		require.NoError(t, err)
		want = append(want, sol.ID)
	}
	_, err = s.CreateSolution(ctx, models.NewSolution{ProblemAnalysisID: &other.ID, SolutionType: "other"})
	require.NoError(t, err)
	_, err = s.CreateSolution(ctx, models.NewSolution{ProblemAnalysisID: &anonymous.ID, SolutionType: "anon"})
	require.NoError(t, err)

	got, err := s.GetSolutionsByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0], got[0].ID)
	assert.Equal(t, want[1], got[1].ID)

	byAnalysis, err := s.GetSolutionsByProblemAnalysisID(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, byAnalysis, 1)
	assert.Equal(t, "other", byAnalysis[0].SolutionType)

	none, err := s.GetSolutionsByUserID(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_ProblemAnalysesByUserID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := createAnalysis(t, s, strPtr("user-1"))
	createAnalysis(t, s, strPtr("user-2"))
	second := createAnalysis(t, s, strPtr("user-1"))

	got, err := s.GetProblemAnalysesByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestMemoryStore_Subscriptions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.CreateSubscription(ctx, models.NewSubscription{
		UserID:         strPtr("user-1"),
		PlanType:       "basic",
		MaxGenerations: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, first.Status)
	assert.Equal(t, 0, first.MonthlyGenerations)

	_, err = s.CreateSubscription(ctx, models.NewSubscription{UserID: strPtr("user-1"), PlanType: "enterprise"})
	require.NoError(t, err)

	got, err := s.GetSubscriptionByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID, "the first subscription created wins")

	updated, err := s.UpdateSubscriptionUsage(ctx, "user-1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.MonthlyGenerations)
	assert.Equal(t, first.ID, updated.ID)

	got, err = s.GetSubscriptionByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.MonthlyGenerations, "usage is not capped by max generations")
}
