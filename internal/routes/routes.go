package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"health-ai-server/internal/config"
	"health-ai-server/internal/handlers"
	"health-ai-server/internal/inference"
	"health-ai-server/internal/middleware"
	"health-ai-server/internal/models"
	"health-ai-server/internal/store"
	"health-ai-server/internal/workflow"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Engine   *inference.Engine
	Stores   *store.Stores
	Notifier workflow.RiskNotifier
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, deps Deps) {
	directoryService := workflow.NewDirectoryService(deps.Stores.Directory)
	submissionService := workflow.NewSubmissionService(
		deps.Stores.Directory,
		deps.Stores.Submissions,
		deps.Notifier,
		deps.Logger,
	)
	feedbackService := workflow.NewFeedbackService(deps.Stores.Feedback, deps.Logger)

	assessmentHandler := handlers.NewAssessmentHandler(deps.Engine, deps.Stores.History, deps.Logger)
	providerHandler := handlers.NewProviderHandler(directoryService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, deps.Stores.History)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	reportHandler := handlers.NewReportHandler(deps.Stores.History)

	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(deps.Config))
	{
		assessmentRoutes := private.Group("/assessments")
		{
			assessmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), assessmentHandler.CreateAssessment)
			assessmentRoutes.GET("", middleware.RoleAuthMiddleware(models.RolePatient), assessmentHandler.GetHistory)
			assessmentRoutes.GET("/:id", middleware.RoleAuthMiddleware(models.RolePatient), assessmentHandler.GetAssessmentByID)
		}

		// Symptom taxonomy for the selection screen
		private.GET("/symptoms", assessmentHandler.ListSymptoms)

		// Provider directory search - accessible by all authenticated users
		private.GET("/providers", providerHandler.ListProviders)

		submissionRoutes := private.Group("/submissions")
		{
			submissionRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), submissionHandler.SendToProvider)
			submissionRoutes.GET("/inbox", middleware.RoleAuthMiddleware(models.RoleProvider, models.RoleAdmin), submissionHandler.Inbox)
		}

		feedbackRoutes := private.Group("/feedback")
		{
			feedbackRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleProvider, models.RoleAdmin), feedbackHandler.SaveFeedback)
			feedbackRoutes.GET("", middleware.RoleAuthMiddleware(models.RolePatient), feedbackHandler.ListFeedback)
		}

		reportRoutes := private.Group("/reports")
		reportRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			reportRoutes.GET("/assessments.csv", reportHandler.ExportCSV)
			reportRoutes.GET("/assessments.xlsx", reportHandler.ExportXLSX)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
