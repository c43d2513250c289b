package routes

import (
	"github.com/edupulse/edupulse/internal/app/controllers"
	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	analyticsController *controllers.AnalyticsController,
	mentorshipController *controllers.MentorshipController,
	paymentController *controllers.PaymentController,
	chatController *controllers.ChatController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *middleware.RateLimiter,
) {
	router.GET("/health", healthController.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", loginLimiter.Middleware(), authController.Login)
		auth.POST("/signup", authController.Signup)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		authenticated.GET("/mentors", dashboardController.ListMentors)

		authenticated.POST("/predict", analyticsController.Predict)
		authenticated.POST("/sentiment", analyticsController.Sentiment)
		// Admin or the student themself; checked by the service
		authenticated.GET("/students/:studentId/risk", analyticsController.RiskHistory)

		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/admin", authMiddleware.RoleRequired(models.RoleAdmin), dashboardController.Admin)
			dashboard.GET("/student", authMiddleware.RoleRequired(models.RoleStudent), dashboardController.Student)
			dashboard.GET("/mentor", authMiddleware.RoleRequired(models.RoleMentor), dashboardController.Mentor)
		}

		mentor := authenticated.Group("/mentor")
		mentor.Use(authMiddleware.RoleRequired(models.RoleMentor))
		{
			mentor.PUT("/profile", authController.UpdateMentorProfile)
		}

		mentorship := authenticated.Group("/mentorship")
		{
			mentorship.POST("/request", authMiddleware.RoleRequired(models.RoleStudent), mentorshipController.Request)

			mentorOnly := mentorship.Group("")
			mentorOnly.Use(authMiddleware.RoleRequired(models.RoleMentor))
			{
				mentorOnly.POST("/accept", mentorshipController.Accept)
				mentorOnly.POST("/reject", mentorshipController.Reject)
				mentorOnly.POST("/complete", mentorshipController.Complete)
			}

			mentorship.GET("/sessions/:sessionId", mentorshipController.GetSession)
		}

		authenticated.POST("/payment/process", authMiddleware.RoleRequired(models.RoleStudent), paymentController.Process)

		// Session parties and admins; checked by the service
		chat := authenticated.Group("/chat/:room")
		{
			chat.GET("", chatController.GetRoom)
			chat.POST("/messages", middleware.ValidateRequest[dto.PostChatMessageRequest](), chatController.PostMessage)
			chat.GET("/ws", chatController.Connect)
		}

		authenticated.GET("/video/:sessionId", mentorshipController.VideoCall)
	}
}
