package app

import (
	"workshop_hub_backend/docs"
	"workshop_hub_backend/internal/config"
	"workshop_hub_backend/internal/middleware"
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// 学员/通用 授权接口
		a.registerLearnerRoutes(authGroup, c)

		// 导师相关接口
		a.registerMentorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/signup", c.auth.Signup)
		public.POST("/auth", c.auth.Login)

		// 工作坊目录对游客开放
		public.GET("/workshops", c.workshop.List)
		public.GET("/workshops/:workshopId", c.workshop.Get)
		public.GET("/workshops/activities/:activityId", c.workshop.GetActivity)
	}
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/users/preferences", c.user.UpdatePreferences)
	rg.POST("/users/avatar", c.user.UploadAvatar)

	enroll := rg.Group("/learners")
	enroll.Use(middleware.CapabilityMiddleware(model.CapEnroll))
	{
		enroll.POST("/enroll", c.learner.Enroll)
		enroll.GET("/enrolled", c.learner.ListEnrolled)
	}
}

func (a *App) registerMentorRoutes(rg *gin.RouterGroup, c *controllers) {
	manage := rg.Group("/workshops")
	manage.Use(middleware.CapabilityMiddleware(model.CapManageWorkshops))
	{
		manage.POST("", c.workshop.Create)
		manage.POST("/activities", c.workshop.AddActivity)
		manage.PUT("/activities/:activityId", c.workshop.UpdateActivity)
		manage.DELETE("/activities/:activityId", c.workshop.DeleteActivity)
	}

	confirm := rg.Group("/learners")
	confirm.Use(middleware.CapabilityMiddleware(model.CapConfirmEnrollment))
	{
		confirm.POST("/confirm-enrollment", c.learner.ConfirmEnrollment)
	}
}
