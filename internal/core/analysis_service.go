package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dsb-backend-go/internal/llm"
	"dsb-backend-go/internal/models"
)

// analysisService implements the AnalysisService interface.
type analysisService struct {
	llm    llm.Client
	logger *zap.Logger
}

// NewAnalysisService creates a new AnalysisService instance.
func NewAnalysisService(client llm.Client, logger *zap.Logger) AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analysisService{llm: client, logger: logger}
}

func validateProblemInput(input models.ProblemInput) error {
	if strings.TrimSpace(input.ProblemDescription) == "" {
		return fmt.Errorf("%w: problem description is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Industry) == "" {
		return fmt.Errorf("%w: industry is required", ErrInvalidInput)
	}
	if input.CurrentCapacity != nil && (*input.CurrentCapacity < 0 || *input.CurrentCapacity > 100) {
		return fmt.Errorf("%w: current capacity must be between 0 and 100", ErrInvalidInput)
	}
	if input.Facilities != nil && *input.Facilities < 0 {
		return fmt.Errorf("%w: facilities cannot be negative", ErrInvalidInput)
	}
	return nil
}

// Analyze makes exactly one provider call. Provider failures and malformed
// answers are both reported as ErrAnalysisGeneration.
func (s *analysisService) Analyze(ctx context.Context, input models.ProblemInput) (*models.AnalysisResult, error) {
	if err := validateProblemInput(input); err != nil {
		return nil, err
	}

	raw, err := s.llm.Complete(ctx, llm.Request{
		Task:        llm.TaskAnalysis,
		System:      analysisSystemPrompt,
		Prompt:      analysisPrompt(input),
		Temperature: analysisTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisGeneration, err)
	}

	result, err := ParseAnalysisResult(raw)
	if err != nil {
		s.logger.Warn("Rejected analysis payload", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAnalysisGeneration, err)
	}
	return result, nil
}
