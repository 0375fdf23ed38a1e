package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dsb-backend-go/internal/core"
	"dsb-backend-go/internal/models"
)

const subscriptionNotFound = "Subscription not found"

// SubscriptionHandler handles plans, subscriptions and usage counters.
type SubscriptionHandler struct {
	subscriptionService core.SubscriptionService
	logger              *zap.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(ss core.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionHandler{subscriptionService: ss, logger: logger}
}

// ListPlans handles GET /api/plans
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "plans": h.subscriptionService.ListPlans()})
}

// CreateSubscription handles POST /api/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req models.CreateSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := authorizeUser(c, req.UserID); err != nil {
		mapErrorToStatus(c, h.logger, err, subscriptionNotFound)
		return
	}
	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, subscriptionNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "subscription": sub})
}

// GetUserSubscription handles GET /api/user/:userId/subscription
func (h *SubscriptionHandler) GetUserSubscription(c *gin.Context) {
	userID, ok := requiredParam(c, "userId")
	if !ok {
		return
	}
	if err := authorizeUser(c, userID); err != nil {
		mapErrorToStatus(c, h.logger, err, subscriptionNotFound)
		return
	}
	sub, err := h.subscriptionService.GetUserSubscription(c.Request.Context(), userID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, subscriptionNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "subscription": sub})
}

// UpdateUsage handles PUT /api/user/:userId/subscription/usage
func (h *SubscriptionHandler) UpdateUsage(c *gin.Context) {
	userID, ok := requiredParam(c, "userId")
	if !ok {
		return
	}
	if err := authorizeUser(c, userID); err != nil {
		mapErrorToStatus(c, h.logger, err, subscriptionNotFound)
		return
	}
	var req models.UpdateUsageRequest
	if !bindJSON(c, &req) {
		return
	}
	sub, err := h.subscriptionService.UpdateUsage(c.Request.Context(), userID, *req.MonthlyGenerations)
	if err != nil {
		mapErrorToStatus(c, h.logger, err, subscriptionNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "subscription": sub})
}
