package api

import "dsb-backend-go/internal/models"

// ErrorResponse is the failure envelope returned by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func failure(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

// AnalyzeProblemResponse is returned by POST /api/analyze-problem.
type AnalyzeProblemResponse struct {
	Success  bool                    `json:"success"`
	Analysis *models.ProblemAnalysis `json:"analysis"`
	Result   *models.AnalysisResult  `json:"result"`
}

// GenerateSolutionResponse is returned by POST /api/generate-solution.
type GenerateSolutionResponse struct {
	Success     bool                `json:"success"`
	Solution    *models.Solution    `json:"solution"`
	DSBSolution *models.DSBSolution `json:"dsbSolution"`
}

// RegisterResponse is returned by POST /api/register. The password hash is
// never part of it.
type RegisterResponse struct {
	Success bool              `json:"success"`
	User    models.PublicUser `json:"user"`
}
