package app

import (
	"jobsdoor_backend/docs"
	"jobsdoor_backend/internal/config"
	"jobsdoor_backend/internal/middleware"
	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerEmployerRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// job board is browsable without an account
		public.GET("/jobs", c.job.ListJobs)
		public.GET("/jobs/:id", c.job.GetJob)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.PUT("/users/me", c.user.UpdateProfile)
	rg.POST("/users/me/cv", c.user.UploadCV)
	rg.POST("/users/me/image", c.user.UploadImage)

	rg.POST("/applications", c.application.Apply)
	rg.GET("/applications/mine", c.application.MyApplications)
	rg.DELETE("/applications/:id", c.application.DeleteApplication)

	rg.GET("/assessments", c.assessment.ListAssessments)
	rg.GET("/assessments/:id", c.assessment.GetAssessment)
	rg.POST("/assessments/:id/start", c.assessment.StartAssessment)
	rg.POST("/attempts/:id/answers", c.assessment.SubmitAnswer)
	rg.POST("/attempts/:id/submit", c.assessment.SubmitAssessment)
	rg.GET("/attempts/mine", c.assessment.MyAttempts)
	rg.GET("/attempts/:id", c.assessment.GetAttempt)
}

func (a *App) registerEmployerRoutes(rg *gin.RouterGroup, c *controllers) {
	employer := rg.Group("")
	employer.Use(middleware.RoleMiddleware(model.Employer))
	{
		employer.POST("/users/me/company-logo", c.user.UploadCompanyLogo)
		employer.POST("/jobs", c.job.CreateJob)
		employer.PUT("/jobs/:id", c.job.UpdateJob)
		employer.DELETE("/jobs/:id", c.job.DeleteJob)
		employer.GET("/jobs/mine", c.job.MyJobs)
		employer.GET("/jobs/:id/applications", c.application.ListForJob)
		employer.GET("/applications/company", c.application.ListForCompany)
		employer.PUT("/applications/:id/status", c.application.UpdateStatus)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin, model.MasterAdmin))
	{
		admin.GET("/dashboard", c.dashboard.Stats)

		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/stats", c.user.UserStats)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id/role", c.user.UpdateRole)
		admin.DELETE("/users/:id", c.user.DeleteUser)
		admin.GET("/leads", c.user.ListLeads)
		admin.GET("/consultancy", c.user.ListConsultancyRemarks)
		admin.POST("/consultancy", c.user.AddConsultancyRemark)

		admin.GET("/jobs", c.job.ListAllJobs)
		admin.GET("/jobs/stats", c.job.JobStats)
		admin.GET("/applications/stats", c.application.ApplicationStats)

		admin.GET("/assessments", c.assessment.ListAssessmentsAdmin)
		admin.POST("/assessments", c.assessment.CreateAssessment)
		admin.GET("/assessments/:id", c.assessment.GetAssessmentAdmin)
		admin.PUT("/assessments/:id", c.assessment.UpdateAssessment)
		admin.DELETE("/assessments/:id", c.assessment.DeleteAssessment)
	}
}
