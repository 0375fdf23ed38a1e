package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"dsb-backend-go/internal/db"
	"dsb-backend-go/internal/models"
)

// DefaultGenerationTimeout bounds a single provider call when no timeout is configured.
const DefaultGenerationTimeout = 90 * time.Second

// problemStore is the part of db.Store the orchestration needs.
type problemStore interface {
	db.ProblemAnalysisRepository
	db.SolutionRepository
}

// problemService implements the ProblemService interface.
type problemService struct {
	store     problemStore
	analysis  AnalysisService
	solutions SolutionService
	usage     UsageRecorder
	events    EventPublisher
	timeout   time.Duration
	logger    *zap.Logger
}

// NewProblemService creates a new ProblemService instance. usage and events may be nil.
func NewProblemService(
	store problemStore,
	analysis AnalysisService,
	solutions SolutionService,
	usage UsageRecorder,
	events EventPublisher,
	timeout time.Duration,
	logger *zap.Logger,
) ProblemService {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &problemService{
		store:     store,
		analysis:  analysis,
		solutions: solutions,
		usage:     usage,
		events:    events,
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *problemService) AnalyzeProblem(ctx context.Context, req models.AnalyzeProblemRequest) (*models.ProblemAnalysis, *models.AnalysisResult, error) {
	if err := validateProblemInput(req.ProblemInput); err != nil {
		return nil, nil, err
	}

	analysis, err := s.store.CreateProblemAnalysis(ctx, models.NewProblemAnalysis{
		UserID:       req.UserID,
		ProblemInput: req.ProblemInput,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create problem analysis: %w", err)
	}
	log := s.logger.With(zap.String("analysisId", analysis.ID))

	// From here on the record must end in a terminal state even if the
	// client goes away, so store writes run on a context without cancellation.
	storeCtx := context.WithoutCancel(ctx)

	if _, err := s.store.UpdateProblemAnalysisStatus(storeCtx, analysis.ID, models.StatusAnalyzing, nil); err != nil {
		s.markFailed(storeCtx, log, analysis.ID, err)
		return nil, nil, fmt.Errorf("failed to start analysis: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	result, err := s.analysis.Analyze(callCtx, req.ProblemInput)
	cancel()
	if err != nil {
		s.markFailed(storeCtx, log, analysis.ID, err)
		return nil, nil, err
	}

	updated, err := s.store.UpdateProblemAnalysisStatus(storeCtx, analysis.ID, models.StatusCompleted, result)
	if err != nil {
		s.markFailed(storeCtx, log, analysis.ID, err)
		return nil, nil, fmt.Errorf("failed to store analysis result: %w", err)
	}

	log.Info("Problem analysis completed", zap.String("industry", analysis.Industry), zap.String("severity", result.Severity))
	publishEvent(ctx, s.events, log, EventAnalysisCompleted, map[string]interface{}{
		"analysisId": updated.ID,
		"userId":     updated.UserID,
		"industry":   updated.Industry,
		"severity":   result.Severity,
	})
	return updated, result, nil
}

// markFailed records the failed state before the triggering error is returned.
func (s *problemService) markFailed(ctx context.Context, log *zap.Logger, id string, cause error) {
	log.Warn("Problem analysis failed", zap.Error(cause))
	if _, err := s.store.UpdateProblemAnalysisStatus(ctx, id, models.StatusFailed, nil); err != nil {
		log.Error("Failed to mark problem analysis as failed", zap.Error(err))
		return
	}
	publishEvent(ctx, s.events, log, EventAnalysisFailed, map[string]interface{}{
		"analysisId": id,
		"error":      cause.Error(),
	})
}

func (s *problemService) GenerateSolution(ctx context.Context, problemAnalysisID string) (*models.Solution, *models.DSBSolution, error) {
	if strings.TrimSpace(problemAnalysisID) == "" {
		return nil, nil, fmt.Errorf("%w: problem analysis ID is required", ErrInvalidInput)
	}

	analysis, err := s.store.GetProblemAnalysis(ctx, problemAnalysisID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrAnalysisIncomplete, problemAnalysisID)
		}
		return nil, nil, fmt.Errorf("failed to get problem analysis '%s': %w", problemAnalysisID, err)
	}
	if analysis.AnalysisResult == nil {
		return nil, nil, fmt.Errorf("%w: %s is %s", ErrAnalysisIncomplete, problemAnalysisID, analysis.Status)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	dsb, err := s.solutions.Generate(callCtx, analysis.AnalysisResult, analysis.Input())
	cancel()
	if err != nil {
		return nil, nil, err
	}

	storeCtx := context.WithoutCancel(ctx)
	solution, err := s.store.CreateSolution(storeCtx, models.NewSolutionFromDSB(analysis.ID, dsb))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store solution: %w", err)
	}

	log := s.logger.With(zap.String("analysisId", analysis.ID), zap.String("solutionId", solution.ID))
	log.Info("DSB solution generated", zap.String("solutionType", solution.SolutionType))
	publishEvent(ctx, s.events, log, EventSolutionGenerated, map[string]interface{}{
		"solutionId": solution.ID,
		"analysisId": analysis.ID,
		"userId":     analysis.UserID,
	})

	if analysis.UserID != nil && s.usage != nil {
		if _, err := s.usage.RecordGeneration(storeCtx, *analysis.UserID); err != nil && !errors.Is(err, db.ErrNotFound) {
			log.Warn("Failed to record solution generation", zap.Error(err))
		}
	}
	return solution, dsb, nil
}

func (s *problemService) OptimizeSolution(ctx context.Context, solutionID string, req models.OptimizeSolutionRequest) (map[string]interface{}, error) {
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, fmt.Errorf("%w: feedback is required", ErrInvalidInput)
	}
	solution, err := s.store.GetSolution(ctx, solutionID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.solutions.Optimize(callCtx, solution, req.PerformanceData, req.Feedback)
}

func (s *problemService) GetAnalysis(ctx context.Context, analysisID string) (*models.ProblemAnalysis, error) {
	return s.store.GetProblemAnalysis(ctx, analysisID)
}

func (s *problemService) ListUserAnalyses(ctx context.Context, userID string) ([]*models.ProblemAnalysis, error) {
	return s.store.GetProblemAnalysesByUserID(ctx, userID)
}

func (s *problemService) GetSolution(ctx context.Context, solutionID string) (*models.Solution, error) {
	return s.store.GetSolution(ctx, solutionID)
}

func (s *problemService) ListUserSolutions(ctx context.Context, userID string) ([]*models.Solution, error) {
	return s.store.GetSolutionsByUserID(ctx, userID)
}

func (s *problemService) ListAnalysisSolutions(ctx context.Context, analysisID string) ([]*models.Solution, error) {
	if _, err := s.store.GetProblemAnalysis(ctx, analysisID); err != nil {
		return nil, err
	}
	return s.store.GetSolutionsByProblemAnalysisID(ctx, analysisID)
}
