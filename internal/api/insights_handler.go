package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dsb-backend-go/internal/core"
)

// InsightsHandler serves per-industry aggregates.
type InsightsHandler struct {
	insightsService core.InsightsService
	logger          *zap.Logger
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(is core.InsightsService, logger *zap.Logger) *InsightsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsHandler{insightsService: is, logger: logger}
}

// GetIndustryInsights handles GET /api/industry-insights/:industry
func (h *InsightsHandler) GetIndustryInsights(c *gin.Context) {
	industry, ok := requiredParam(c, "industry")
	if !ok {
		return
	}
	insights, err := h.insightsService.GetIndustryInsights(c.Request.Context(), industry)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, "Industry not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "insights": insights})
}
