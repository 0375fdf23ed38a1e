package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dsb-backend-go/internal/core"
	"dsb-backend-go/internal/models"
)

const solutionNotFound = "Solution not found"

// SolutionHandler handles the stored-solution endpoints.
type SolutionHandler struct {
	problemService core.ProblemService
	logger         *zap.Logger
}

// NewSolutionHandler creates a new SolutionHandler.
func NewSolutionHandler(ps core.ProblemService, logger *zap.Logger) *SolutionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SolutionHandler{problemService: ps, logger: logger}
}

// GetSolution handles GET /api/solution/:solutionId
func (h *SolutionHandler) GetSolution(c *gin.Context) {
	solutionID, ok := requiredParam(c, "solutionId")
	if !ok {
		return
	}
	solution, err := h.problemService.GetSolution(c.Request.Context(), solutionID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, solutionNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "solution": solution})
}

// ListUserSolutions handles GET /api/user/:userId/solutions
func (h *SolutionHandler) ListUserSolutions(c *gin.Context) {
	userID, ok := requiredParam(c, "userId")
	if !ok {
		return
	}
	if err := authorizeUser(c, userID); err != nil {
		mapErrorToStatus(c, h.logger, err, "User not found")
		return
	}
	solutions, err := h.problemService.ListUserSolutions(c.Request.Context(), userID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "solutions": nonNil(solutions)})
}

// OptimizeSolution handles POST /api/solution/:solutionId/optimize
func (h *SolutionHandler) OptimizeSolution(c *gin.Context) {
	solutionID, ok := requiredParam(c, "solutionId")
	if !ok {
		return
	}
	var req models.OptimizeSolutionRequest
	if !bindJSON(c, &req) {
		return
	}

	optimization, err := h.problemService.OptimizeSolution(c.Request.Context(), solutionID, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, solutionNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "optimization": optimization})
}
