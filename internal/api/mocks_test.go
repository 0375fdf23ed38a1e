package api

import (
	"context"

	"dsb-backend-go/internal/models"
)

type MockProblemService struct {
	AnalyzeProblemFunc        func(ctx context.Context, req models.AnalyzeProblemRequest) (*models.ProblemAnalysis, *models.AnalysisResult, error)
	GenerateSolutionFunc      func(ctx context.Context, problemAnalysisID string) (*models.Solution, *models.DSBSolution, error)
	OptimizeSolutionFunc      func(ctx context.Context, solutionID string, req models.OptimizeSolutionRequest) (map[string]interface{}, error)
	GetAnalysisFunc           func(ctx context.Context, analysisID string) (*models.ProblemAnalysis, error)
	ListUserAnalysesFunc      func(ctx context.Context, userID string) ([]*models.ProblemAnalysis, error)
	GetSolutionFunc           func(ctx context.Context, solutionID string) (*models.Solution, error)
	ListUserSolutionsFunc     func(ctx context.Context, userID string) ([]*models.Solution, error)
	ListAnalysisSolutionsFunc func(ctx context.Context, analysisID string) ([]*models.Solution, error)
}

func (m *MockProblemService) AnalyzeProblem(ctx context.Context, req models.AnalyzeProblemRequest) (*models.ProblemAnalysis, *models.AnalysisResult, error) {
	return m.AnalyzeProblemFunc(ctx, req)
}

func (m *MockProblemService) GenerateSolution(ctx context.Context, problemAnalysisID string) (*models.Solution, *models.DSBSolution, error) {
	return m.GenerateSolutionFunc(ctx, problemAnalysisID)
}

func (m *MockProblemService) OptimizeSolution(ctx context.Context, solutionID string, req models.OptimizeSolutionRequest) (map[string]interface{}, error) {
	return m.OptimizeSolutionFunc(ctx, solutionID, req)
}

func (m *MockProblemService) GetAnalysis(ctx context.Context, analysisID string) (*models.ProblemAnalysis, error) {
	return m.GetAnalysisFunc(ctx, analysisID)
}

func (m *MockProblemService) ListUserAnalyses(ctx context.Context, userID string) ([]*models.ProblemAnalysis, error) {
	return m.ListUserAnalysesFunc(ctx, userID)
}

func (m *MockProblemService) GetSolution(ctx context.Context, solutionID string) (*models.Solution, error) {
	return m.GetSolutionFunc(ctx, solutionID)
}

func (m *MockProblemService) ListUserSolutions(ctx context.Context, userID string) ([]*models.Solution, error) {
	return m.ListUserSolutionsFunc(ctx, userID)
}

func (m *MockProblemService) ListAnalysisSolutions(ctx context.Context, analysisID string) ([]*models.Solution, error) {
	return m.ListAnalysisSolutionsFunc(ctx, analysisID)
}

type MockUserService struct {
	RegisterFunc func(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

func (m *MockUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return m.RegisterFunc(ctx, req)
}

type MockSubscriptionService struct {
	ListPlansFunc           func() []models.Plan
	CreateSubscriptionFunc  func(ctx context.Context, req models.CreateSubscriptionRequest) (*models.Subscription, error)
	GetUserSubscriptionFunc func(ctx context.Context, userID string) (*models.Subscription, error)
	UpdateUsageFunc         func(ctx context.Context, userID string, monthlyGenerations int) (*models.Subscription, error)
	RecordGenerationFunc    func(ctx context.Context, userID string) (*models.Subscription, error)
}

func (m *MockSubscriptionService) ListPlans() []models.Plan {
	return m.ListPlansFunc()
}

func (m *MockSubscriptionService) CreateSubscription(ctx context.Context, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	return m.CreateSubscriptionFunc(ctx, req)
}

func (m *MockSubscriptionService) GetUserSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	return m.GetUserSubscriptionFunc(ctx, userID)
}

func (m *MockSubscriptionService) UpdateUsage(ctx context.Context, userID string, monthlyGenerations int) (*models.Subscription, error) {
	return m.UpdateUsageFunc(ctx, userID, monthlyGenerations)
}

func (m *MockSubscriptionService) RecordGeneration(ctx context.Context, userID string) (*models.Subscription, error) {
	return m.RecordGenerationFunc(ctx, userID)
}

type MockInsightsService struct {
	GetIndustryInsightsFunc func(ctx context.Context, industry string) (*models.IndustryInsights, error)
}

func (m *MockInsightsService) GetIndustryInsights(ctx context.Context, industry string) (*models.IndustryInsights, error) {
	return m.GetIndustryInsightsFunc(ctx, industry)
}
