package core

import (
	"context"

	"dsb-backend-go/internal/models"
)

// AnalysisService turns a problem description into a structured analysis.
type AnalysisService interface {
	Analyze(ctx context.Context, input models.ProblemInput) (*models.AnalysisResult, error)
}

// SolutionService turns an analysis into a DSB solution and refines existing ones.
type SolutionService interface {
	Generate(ctx context.Context, analysis *models.AnalysisResult, input models.ProblemInput) (*models.DSBSolution, error)
	Optimize(ctx context.Context, solution *models.Solution, performanceData map[string]interface{}, feedback string) (map[string]interface{}, error)
}

// ProblemService orchestrates the analysis and solution flows against the store.
type ProblemService interface {
	// AnalyzeProblem runs the pending -> analyzing -> completed|failed state machine.
	AnalyzeProblem(ctx context.Context, req models.AnalyzeProblemRequest) (*models.ProblemAnalysis, *models.AnalysisResult, error)
	// GenerateSolution builds and stores a solution for a completed analysis.
	GenerateSolution(ctx context.Context, problemAnalysisID string) (*models.Solution, *models.DSBSolution, error)
	OptimizeSolution(ctx context.Context, solutionID string, req models.OptimizeSolutionRequest) (map[string]interface{}, error)

	GetAnalysis(ctx context.Context, analysisID string) (*models.ProblemAnalysis, error)
	ListUserAnalyses(ctx context.Context, userID string) ([]*models.ProblemAnalysis, error)
	GetSolution(ctx context.Context, solutionID string) (*models.Solution, error)
	ListUserSolutions(ctx context.Context, userID string) ([]*models.Solution, error)
	ListAnalysisSolutions(ctx context.Context, analysisID string) ([]*models.Solution, error)
}

// UserService handles account registration.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

// SubscriptionService manages plans, subscriptions and the monthly usage counter.
type SubscriptionService interface {
	ListPlans() []models.Plan
	CreateSubscription(ctx context.Context, req models.CreateSubscriptionRequest) (*models.Subscription, error)
	GetUserSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	UpdateUsage(ctx context.Context, userID string, monthlyGenerations int) (*models.Subscription, error)
	UsageRecorder
}

// UsageRecorder counts one generated solution against a user's subscription.
// The count is informational; nothing is refused when the plan cap is reached.
type UsageRecorder interface {
	RecordGeneration(ctx context.Context, userID string) (*models.Subscription, error)
}

// InsightsService aggregates analyses per industry.
type InsightsService interface {
	GetIndustryInsights(ctx context.Context, industry string) (*models.IndustryInsights, error)
}
