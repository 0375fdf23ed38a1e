package models

import "time"

// ProblemInput is the problem description and metadata fed to the analysis.
type ProblemInput struct {
	ProblemDescription string  `json:"problemDescription" binding:"required"`
	Industry           string  `json:"industry" binding:"required"`
	AnnualRevenue      *string `json:"annualRevenue,omitempty"`
	CurrentCapacity    *int    `json:"currentCapacity,omitempty" binding:"omitempty,min=0,max=100"`
	Facilities         *int    `json:"facilities,omitempty" binding:"omitempty,min=0"`
}

// AnalyzeProblemRequest is the body of POST /api/analyze-problem.
type AnalyzeProblemRequest struct {
	ProblemInput
	UserID *string `json:"userId,omitempty"`
}

// GenerateSolutionRequest is the body of POST /api/generate-solution.
type GenerateSolutionRequest struct {
	ProblemAnalysisID string `json:"problemAnalysisId"`
}

// OptimizeSolutionRequest is the body of POST /api/solution/:solutionId/optimize.
type OptimizeSolutionRequest struct {
	PerformanceData map[string]interface{} `json:"performanceData"`
	Feedback        string                 `json:"feedback" binding:"required"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Company  *string `json:"company,omitempty"`
	Industry *string `json:"industry,omitempty"`
}

// CreateSubscriptionRequest is the body of POST /api/subscriptions.
type CreateSubscriptionRequest struct {
	UserID   string     `json:"userId" binding:"required"`
	PlanType string     `json:"planType" binding:"required"`
	EndDate  *time.Time `json:"endDate,omitempty"`
}

// UpdateUsageRequest is the body of PUT /api/user/:userId/subscription/usage.
type UpdateUsageRequest struct {
	MonthlyGenerations *int `json:"monthlyGenerations" binding:"required,min=0"`
}
