package core

import (
	"context"
	"sync"

	"dsb-backend-go/internal/models"
)

// MockAnalysisService is a func-field AnalysisService.
type MockAnalysisService struct {
	AnalyzeFunc func(ctx context.Context, input models.ProblemInput) (*models.AnalysisResult, error)
}

func (m *MockAnalysisService) Analyze(ctx context.Context, input models.ProblemInput) (*models.AnalysisResult, error) {
	return m.AnalyzeFunc(ctx, input)
}

// MockSolutionService is a func-field SolutionService.
type MockSolutionService struct {
	GenerateFunc func(ctx context.Context, analysis *models.AnalysisResult, input models.ProblemInput) (*models.DSBSolution, error)
	OptimizeFunc func(ctx context.Context, solution *models.Solution, performanceData map[string]interface{}, feedback string) (map[string]interface{}, error)
}

func (m *MockSolutionService) Generate(ctx context.Context, analysis *models.AnalysisResult, input models.ProblemInput) (*models.DSBSolution, error) {
	return m.GenerateFunc(ctx, analysis, input)
}

func (m *MockSolutionService) Optimize(ctx context.Context, solution *models.Solution, performanceData map[string]interface{}, feedback string) (map[string]interface{}, error) {
	return m.OptimizeFunc(ctx, solution, performanceData, feedback)
}

// MockMailer is a func-field mailer.Mailer.
type MockMailer struct {
	SendFunc func(ctx context.Context, recipient, subject, body string) error
}

func (m *MockMailer) Send(ctx context.Context, recipient, subject, body string) error {
	return m.SendFunc(ctx, recipient, subject, body)
}

// recordingPublisher keeps every published event type.
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	data   []map[string]interface{}
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, data map[string]interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	p.data = append(p.data, data)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func sampleAnalysisResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		ProblemCategories: []string{"capacity optimization", "scheduling"},
		RootCauses:        []string{"Manual scheduling"},
		Severity:          "high",
		IndustryPatterns:  []string{"Batch processing"},
		Urgency:           8,
		KeyIssues:         []models.KeyIssue{{Issue: "Idle lines", Impact: "high", Priority: 9}},
	}
}

func sampleDSBSolution() *models.DSBSolution {
	return &models.DSBSolution{
		SolutionType:     "Pharmaceutical CMO Optimization Solution",
		IndustrySpecific: true,
		CustomAlgorithms: []models.CustomAlgorithm{{Name: "Capacity Optimizer", Description: "d", Implementation: "i"}},
		DashboardComponents: []models.DashboardComponent{
			{Name: "Capacity View", Type: "optimization", RealTimeCapable: true},
		},
		ImplementationRoadmap: []models.RoadmapPhase{{Phase: "Foundation", Timeline: "3 weeks"}},
		ROIProjections:        models.ROIProjections{CapacityImprovement: "40% → 78%", FirstYearROI: "485%"},
		ExpectedResults: models.ExpectedResults{
			ShortTerm: []string{"25% more utilization"},
			Metrics:   []models.ResultMetric{{Metric: "Capacity Utilization", CurrentValue: "40%", TargetValue: "78%"}},
		},
	}
}
