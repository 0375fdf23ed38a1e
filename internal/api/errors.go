package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dsb-backend-go/internal/core"
	"dsb-backend-go/internal/db"
	"dsb-backend-go/internal/llm"
	"dsb-backend-go/internal/middleware"
)

// mapErrorToStatus writes the failure envelope for an error coming out of a
// core service. notFound is the message used when a record does not exist.
//
// The timeout check comes first: generation errors wrap llm.ErrTimeout.
func mapErrorToStatus(c *gin.Context, logger *zap.Logger, err error, notFound string) {
	var status int
	message := err.Error()

	switch {
	case errors.Is(err, llm.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, core.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrEmailTaken):
		status = http.StatusBadRequest
		message = core.ErrEmailTaken.Error()
	case errors.Is(err, core.ErrUsernameTaken):
		status = http.StatusBadRequest
		message = core.ErrUsernameTaken.Error()
	case errors.Is(err, core.ErrForbidden):
		status = http.StatusForbidden
		message = core.ErrForbidden.Error()
	case errors.Is(err, core.ErrAnalysisIncomplete):
		status = http.StatusNotFound
		message = core.ErrAnalysisIncomplete.Error()
	case errors.Is(err, db.ErrNotFound):
		status = http.StatusNotFound
		message = notFound
	case errors.Is(err, core.ErrAnalysisGeneration),
		errors.Is(err, core.ErrSolutionGeneration),
		errors.Is(err, core.ErrOptimization):
		status = http.StatusInternalServerError
	default:
		status = http.StatusInternalServerError
		message = "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, failure(message))
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, failure("Invalid request payload: "+err.Error()))
		return false
	}
	return true
}

// authorizeUser rejects a request naming a user other than the one
// authenticated by AuthMiddleware. Without authentication any user may be named.
func authorizeUser(c *gin.Context, userID string) error {
	uid := c.GetString(middleware.ContextUserID)
	if uid == "" || uid == userID {
		return nil
	}
	return fmt.Errorf("%w: %s requested %s", core.ErrForbidden, uid, userID)
}

// requiredParam reads a path parameter, answering 400 when it is blank.
func requiredParam(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if value == "" {
		c.JSON(http.StatusBadRequest, failure(name+" is required"))
		return "", false
	}
	return value, true
}
