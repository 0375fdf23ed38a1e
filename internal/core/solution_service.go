package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dsb-backend-go/internal/llm"
	"dsb-backend-go/internal/models"
)

// solutionService implements the SolutionService interface.
type solutionService struct {
	llm    llm.Client
	logger *zap.Logger
}

// NewSolutionService creates a new SolutionService instance.
func NewSolutionService(client llm.Client, logger *zap.Logger) SolutionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &solutionService{llm: client, logger: logger}
}

func (s *solutionService) Generate(ctx context.Context, analysis *models.AnalysisResult, input models.ProblemInput) (*models.DSBSolution, error) {
	if analysis == nil {
		return nil, fmt.Errorf("%w: analysis result is required", ErrInvalidInput)
	}

	raw, err := s.llm.Complete(ctx, llm.Request{
		Task:        llm.TaskSolution,
		System:      solutionSystemPrompt,
		Prompt:      solutionPrompt(analysis, input),
		Temperature: solutionTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolutionGeneration, err)
	}

	solution, err := ParseDSBSolution(raw)
	if err != nil {
		s.logger.Warn("Rejected solution payload", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSolutionGeneration, err)
	}
	return solution, nil
}

func (s *solutionService) Optimize(ctx context.Context, solution *models.Solution, performanceData map[string]interface{}, feedback string) (map[string]interface{}, error) {
	if solution == nil {
		return nil, errors.New("solution is required")
	}
	if strings.TrimSpace(feedback) == "" {
		return nil, fmt.Errorf("%w: feedback is required", ErrInvalidInput)
	}

	prompt, err := optimizationPrompt(solution, performanceData, feedback)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	raw, err := s.llm.Complete(ctx, llm.Request{
		Task:        llm.TaskOptimization,
		System:      optimizationSystemPrompt,
		Prompt:      prompt,
		Temperature: optimizationTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOptimization, err)
	}

	out, err := ParseOptimization(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOptimization, err)
	}
	return out, nil
}
