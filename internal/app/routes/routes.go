package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/odemir/studentbook/internal/app/controllers"
	"github.com/odemir/studentbook/internal/app/models/dto"
	"github.com/odemir/studentbook/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	consoleController *controllers.ConsoleController,
	gradeController *controllers.GradeController,
	lookupController *controllers.LookupController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Public graduate lookup ---
	// Restricted read-only view, no session required
	v1.GET("/graduates/:studentId", lookupController.LookupGraduate)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		// Console routes operate on the caller's session console
		console := authenticated.Group("/console")
		{
			console.GET("", consoleController.GetState)
			console.POST("/refresh", consoleController.RefreshRecords)
			console.POST("/records", consoleController.CreateRecord)
			console.GET("/records", consoleController.SearchRecords)
			console.POST("/records/:id/edit", consoleController.BeginEdit)
			console.DELETE("/records/:id", consoleController.DeleteRecord)
			console.PUT("/edit", consoleController.SubmitEdit)
			console.POST("/edit/cancel", consoleController.CancelEdit)
		}

		// Grade routes
		students := authenticated.Group("/students")
		{
			students.POST("/:id/grades", gradeController.AddGrade)
			students.GET("/:id/grades", gradeController.ListGrades)
		}
		grades := authenticated.Group("/grades")
		{
			grades.PUT("/:gradeId", gradeController.UpdateGrade)
			grades.DELETE("/:gradeId", gradeController.DeleteGrade)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
