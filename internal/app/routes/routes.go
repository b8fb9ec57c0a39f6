package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/controllers"
	"github.com/gspavan07/StudentCodingDashboard/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	rankingController *controllers.RankingController,
	metaController *controllers.MetaController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	students := v1.Group("/students")
	{
		students.GET("", studentController.GetStudentsBySection)
		students.GET("/all", studentController.GetAllStudents)
		students.GET("/:rollNumber", studentController.GetStudent)
	}

	v1.GET("/rankings", rankingController.GetRankings)
	v1.GET("/developers", metaController.GetDevelopers)
	v1.POST("/feedback", metaController.SubmitFeedback)

	// --- Admin routes ---
	admin := v1.Group("/students")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.AdminRequired())
	{
		admin.POST("", studentController.CreateStudent)
		admin.POST("/import", studentController.ImportStudents)
		admin.PUT("/:id", studentController.UpdateStudent)
		admin.DELETE("/:rollNumber", studentController.DeleteStudent)
		admin.DELETE("/branch/:branch", studentController.DeleteBranch)
		admin.DELETE("/branch/:branch/section/:year", studentController.DeleteSection)
	}
}
