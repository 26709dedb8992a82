package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/swe645/student-survey-api/controllers"
	"github.com/swe645/student-survey-api/middleware"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/healthz", controllers.HealthCheck)

	api := r.Group("/api")
	{
		surveys := api.Group("/surveys")
		{
			surveys.POST("", middleware.RateLimitSurveyCreate(), controllers.CreateSurvey(db))
			surveys.GET("", controllers.ListSurveys(db))
			surveys.GET("/:id", controllers.GetSurvey(db))
			surveys.PUT("/:id", controllers.UpdateSurvey(db))
			surveys.DELETE("/:id", controllers.DeleteSurvey(db))
		}
	}
}
