package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jobdesk/backend/internal/auth"
	"github.com/jobdesk/backend/internal/config"
	"github.com/jobdesk/backend/internal/middleware"
	"github.com/jobdesk/backend/internal/models"
	"github.com/jobdesk/backend/internal/services"
	"github.com/jobdesk/backend/internal/storage"
)

// NewRouter wires every route. Kept apart from main so router-level
// tests can run against the same wiring.
func NewRouter(cfg *config.Config, db *gorm.DB, resumes *storage.ResumeStore, log *zap.Logger) *gin.Engine {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	userService := services.NewUserService(db, tokens)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db)

	userHandler := NewUserHandler(userService, log)
	jobHandler := NewJobHandler(jobService, log)
	applicationHandler := NewApplicationHandler(applicationService, resumes, log)
	adminHandler := NewAdminHandler(userService, log)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authenticated := middleware.RequireAuth(db, tokens)
	employerOnly := middleware.RequireRoles(models.RoleEmployer)
	candidateOnly := middleware.RequireRoles(models.RoleCandidate)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)

		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("/me", authenticated, userHandler.GetMe)
			users.PUT("/me", authenticated, userHandler.UpdateMe)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.List)
			jobs.GET("/all", jobHandler.Search)
			// my-jobs must stay ahead of :id so it is not parsed as one.
			jobs.GET("/my-jobs", authenticated, employerOnly, jobHandler.MyJobs)
			jobs.GET("/:id", jobHandler.Get)
			jobs.POST("", authenticated, employerOnly, jobHandler.Post)
			jobs.PUT("/:id", authenticated, employerOnly, jobHandler.Update)
			jobs.DELETE("/:id", authenticated, employerOnly, jobHandler.Delete)
		}

		applications := api.Group("/applications")
		{
			applications.POST("", authenticated, candidateOnly, applicationHandler.Apply)
			applications.GET("/myapplications", authenticated, candidateOnly, applicationHandler.MyApplications)
			applications.GET("/job/:jobId", authenticated, employerOnly, applicationHandler.ForJob)
			applications.PUT("/:id/status", authenticated, employerOnly, applicationHandler.UpdateStatus)
		}

		admin := api.Group("/admin", authenticated, adminOnly)
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.PUT("/users/:id/role", adminHandler.UpdateRole)
		}
	}

	// Stored resumes are served as static files.
	r.Static("/uploads", cfg.UploadDir)

	return r
}
