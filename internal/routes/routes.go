package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"health-bridge-server/internal/config"
	"health-bridge-server/internal/handlers"
	"health-bridge-server/internal/middleware"
	"health-bridge-server/internal/models"
	"health-bridge-server/internal/realtime"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, hub *realtime.Hub, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	workerHandler := handlers.NewWorkerHandler(db)
	workerAuthHandler := handlers.NewWorkerAuthHandler(db, cfg)
	workerProfileHandler := handlers.NewWorkerProfileHandler(db)
	caseHandler := handlers.NewCaseHandler(db, hub)
	medicineHandler := handlers.NewMedicineHandler(db, hub)
	emergencyHandler := handlers.NewEmergencyHandler(db, hub)
	campHandler := handlers.NewHealthCampHandler(db, hub)
	notificationHandler := handlers.NewNotificationHandler(db)
	uploadHandler := handlers.NewUploadHandler(cfg)

	api := router.Group("/api")

	// Public routes (no authentication required)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	}

	workerAuthRoutes := api.Group("/worker-auth")
	{
		workerAuthRoutes.POST("/request-otp", workerAuthHandler.RequestOTP)
		workerAuthRoutes.POST("/verify-otp", workerAuthHandler.VerifyOTP)
		workerAuthRoutes.GET("/me", middleware.WorkerAuthMiddleware(cfg), workerAuthHandler.Me)
	}

	// Routes authenticated with a doctor/government account token
	accountAuth := middleware.AuthMiddleware(cfg)
	doctorOnly := middleware.RoleAuthMiddleware(models.RoleDoctor)
	governmentOnly := middleware.RoleAuthMiddleware(models.RoleGovernment)

	workerRoutes := api.Group("/workers")
	workerRoutes.Use(accountAuth)
	{
		workerRoutes.POST("", doctorOnly, workerHandler.CreateWorker)
		workerRoutes.GET("", workerHandler.ListWorkers)
		workerRoutes.GET("/:uniqueId", workerHandler.GetWorkerByUniqueID)
		workerRoutes.GET("/:uniqueId/history", workerHandler.GetWorkerHistory)
	}

	caseRoutes := api.Group("/cases")
	caseRoutes.Use(accountAuth)
	{
		caseRoutes.POST("", doctorOnly, caseHandler.SubmitCase)
		caseRoutes.GET("/stats", caseHandler.GetStats)
		caseRoutes.GET("/heatmap", caseHandler.GetHeatmap)
		caseRoutes.GET("/trends", caseHandler.GetTrends)
	}

	medicineRoutes := api.Group("/medicine")
	medicineRoutes.Use(accountAuth)
	{
		medicineRoutes.POST("/request", doctorOnly, medicineHandler.SubmitRequest)
		medicineRoutes.GET("/requests", medicineHandler.ListRequests)
		medicineRoutes.PATCH("/request/:id", governmentOnly, medicineHandler.UpdateRequestStatus)
		medicineRoutes.GET("/demand", governmentOnly, medicineHandler.GetDemand)
	}

	// Emergency routes mix both token types: workers raise and list their
	// own requests, operators list and resolve all of them.
	emergencyRoutes := api.Group("/emergency")
	{
		emergencyRoutes.POST("", middleware.WorkerAuthMiddleware(cfg), emergencyHandler.CreateEmergency)
		emergencyRoutes.GET("/my-requests", middleware.WorkerAuthMiddleware(cfg), emergencyHandler.GetMyEmergencies)
		emergencyRoutes.GET("", accountAuth, emergencyHandler.ListEmergencies)
		emergencyRoutes.PUT("/:id", accountAuth, emergencyHandler.UpdateEmergencyStatus)
	}

	campRoutes := api.Group("/health-camps")
	{
		campRoutes.POST("", accountAuth, governmentOnly, campHandler.CreateCamp)
		campRoutes.GET("", campHandler.ListCamps)
		campRoutes.GET("/meta/types", campHandler.GetCampTypes)
		campRoutes.GET("/:id", campHandler.GetCamp)
	}

	workerProfileRoutes := api.Group("/worker-profile")
	workerProfileRoutes.Use(middleware.WorkerAuthMiddleware(cfg))
	{
		workerProfileRoutes.GET("/profile", workerProfileHandler.GetProfile)
		workerProfileRoutes.PUT("/profile", workerProfileHandler.UpdateProfile)
		workerProfileRoutes.GET("/prescriptions", workerProfileHandler.GetPrescriptions)
	}

	api.GET("/notifications", notificationHandler.ListNotifications)

	uploadRoutes := api.Group("/uploads")
	uploadRoutes.Use(accountAuth)
	{
		uploadRoutes.POST("/voice-note", doctorOnly, uploadHandler.UploadVoiceNote)
	}

	// WebSocket endpoint for the real-time fan-out
	router.GET("/ws", hub.HandleConnect)

	// Simple health check endpoint
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})
}
