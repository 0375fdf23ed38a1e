package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dsb-backend-go/internal/core"
	"dsb-backend-go/internal/middleware"
)

// SetupRoutes registers every endpoint on router. Global middleware (logging,
// recovery, CORS) is expected to be installed by the caller. When authMW is
// nil the API is open; otherwise everything except registration, the plan
// catalogue and the health check needs a Firebase ID token.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	problemService core.ProblemService,
	userService core.UserService,
	subscriptionService core.SubscriptionService,
	insightsService core.InsightsService,
	authMW *middleware.AuthMiddleware,
) {
	if logger == nil {
		logger = zap.NewNop()
	}

	problemHandler := NewProblemHandler(problemService, logger)
	solutionHandler := NewSolutionHandler(problemService, logger)
	userHandler := NewUserHandler(userService, logger)
	subscriptionHandler := NewSubscriptionHandler(subscriptionService, logger)
	insightsHandler := NewInsightsHandler(insightsService, logger)

	public := router.Group("/api")
	{
		public.POST("/register", userHandler.Register)
		public.GET("/plans", subscriptionHandler.ListPlans)
	}

	protected := router.Group("/api")
	if authMW != nil {
		protected.Use(authMW.VerifyToken())
	}
	{
		protected.POST("/analyze-problem", problemHandler.AnalyzeProblem)
		protected.POST("/generate-solution", problemHandler.GenerateSolution)
		protected.GET("/analysis/:analysisId", problemHandler.GetAnalysis)
		protected.GET("/analysis/:analysisId/solutions", problemHandler.ListAnalysisSolutions)

		protected.GET("/solution/:solutionId", solutionHandler.GetSolution)
		protected.POST("/solution/:solutionId/optimize", solutionHandler.OptimizeSolution)

		userGroup := protected.Group("/user/:userId")
		{
			userGroup.GET("/analyses", problemHandler.ListUserAnalyses)
			userGroup.GET("/solutions", solutionHandler.ListUserSolutions)
			userGroup.GET("/subscription", subscriptionHandler.GetUserSubscription)
			userGroup.PUT("/subscription/usage", subscriptionHandler.UpdateUsage)
		}

		protected.POST("/subscriptions", subscriptionHandler.CreateSubscription)
		protected.GET("/industry-insights/:industry", insightsHandler.GetIndustryInsights)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "DSB backend is healthy."})
	})

	logger.Info("API routes configured", zap.Bool("auth", authMW != nil))
}
