package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dsb-backend-go/internal/core"
	"dsb-backend-go/internal/middleware"
	"dsb-backend-go/internal/models"
)

const analysisNotFound = "Problem analysis not found"

// ProblemHandler handles the analysis and solution generation endpoints.
type ProblemHandler struct {
	problemService core.ProblemService
	logger         *zap.Logger
}

// NewProblemHandler creates a new ProblemHandler.
func NewProblemHandler(ps core.ProblemService, logger *zap.Logger) *ProblemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProblemHandler{problemService: ps, logger: logger}
}

// AnalyzeProblem handles POST /api/analyze-problem
func (h *ProblemHandler) AnalyzeProblem(c *gin.Context) {
	var req models.AnalyzeProblemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID != nil {
		if err := authorizeUser(c, *req.UserID); err != nil {
			mapErrorToStatus(c, h.logger, err, analysisNotFound)
			return
		}
	} else if uid := c.GetString(middleware.ContextUserID); uid != "" {
		req.UserID = &uid
	}

	analysis, result, err := h.problemService.AnalyzeProblem(c.Request.Context(), req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, analysisNotFound)
		return
	}
	c.JSON(http.StatusOK, AnalyzeProblemResponse{Success: true, Analysis: analysis, Result: result})
}

// GenerateSolution handles POST /api/generate-solution
func (h *ProblemHandler) GenerateSolution(c *gin.Context) {
	var req models.GenerateSolutionRequest
	if !bindJSON(c, &req) {
		return
	}

	solution, dsb, err := h.problemService.GenerateSolution(c.Request.Context(), req.ProblemAnalysisID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, analysisNotFound)
		return
	}
	c.JSON(http.StatusOK, GenerateSolutionResponse{Success: true, Solution: solution, DSBSolution: dsb})
}

// GetAnalysis handles GET /api/analysis/:analysisId
func (h *ProblemHandler) GetAnalysis(c *gin.Context) {
	analysisID, ok := requiredParam(c, "analysisId")
	if !ok {
		return
	}
	analysis, err := h.problemService.GetAnalysis(c.Request.Context(), analysisID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, analysisNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

// ListAnalysisSolutions handles GET /api/analysis/:analysisId/solutions
func (h *ProblemHandler) ListAnalysisSolutions(c *gin.Context) {
	analysisID, ok := requiredParam(c, "analysisId")
	if !ok {
		return
	}
	solutions, err := h.problemService.ListAnalysisSolutions(c.Request.Context(), analysisID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, analysisNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "solutions": nonNil(solutions)})
}

// ListUserAnalyses handles GET /api/user/:userId/analyses
func (h *ProblemHandler) ListUserAnalyses(c *gin.Context) {
	userID, ok := requiredParam(c, "userId")
	if !ok {
		return
	}
	if err := authorizeUser(c, userID); err != nil {
		mapErrorToStatus(c, h.logger, err, "User not found")
		return
	}
	analyses, err := h.problemService.ListUserAnalyses(c.Request.Context(), userID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analyses": nonNil(analyses)})
}

// nonNil keeps empty lists as [] in JSON rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
