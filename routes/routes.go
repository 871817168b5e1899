package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"techlib/config"
	"techlib/handles"
	"techlib/middleware"
	"techlib/services"
)

// SetupRoutes 设置路由
func SetupRoutes(r *gin.Engine) {
	db := config.GetDB()
	cfg := config.AppConfig
	logger := config.GetLogger()

	// 组装服务
	facetService := services.NewFacetService(db)
	tagService := services.NewTagService(db, logger)
	categoryService := services.NewCategoryService(db, logger)
	sessionService := services.NewSessionService(db, cfg.Admin.Password, cfg.Session.TTLHours, logger)

	var durationFetcher services.DurationFetcher
	if cfg.Duration.Endpoint != "" {
		durationFetcher = services.NewHTTPDurationFetcher(
			cfg.Duration.Endpoint,
			time.Duration(cfg.Duration.TimeoutSeconds)*time.Second,
		)
	}
	videoService := services.NewVideoService(db, facetService, durationFetcher, logger)

	// 创建处理器实例
	videoHandler := handles.NewVideoHandler(videoService)
	tagHandler := handles.NewTagHandler(tagService, facetService)
	categoryHandler := handles.NewCategoryHandler(categoryService)
	authHandler := handles.NewAuthHandler(sessionService)
	thumbnailHandler := handles.NewThumbnailHandler(videoService)

	// ============ 公开API（无需认证）============
	public := r.Group("/api")
	{
		// 健康检查
		public.GET("/health", healthCheck)

		// 登录（登录本身不能要求已登录）
		public.POST("/login", authHandler.Login)

		// 视频相关路由（只读）
		public.GET("/videos", videoHandler.GetVideos)
		public.GET("/videos/:id", videoHandler.GetVideo)
		public.GET("/videos/:id/thumbnail", thumbnailHandler.GetThumbnail)

		// 标签和分类（只读）
		public.GET("/tags", tagHandler.GetTags)
		public.GET("/tags/available", tagHandler.GetAvailableTags)
		public.GET("/categories", categoryHandler.GetCategories)
	}

	// ============ 管理员API（需要认证）============
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuth(sessionService))
	{
		admin.POST("/logout", authHandler.Logout)

		// 【视频管理】
		admin.POST("/videos", videoHandler.CreateVideo)
		admin.PUT("/videos/:id", videoHandler.UpdateVideo)
		admin.DELETE("/videos/:id", videoHandler.DeleteVideo)

		// 【标签管理】
		admin.POST("/tags", tagHandler.CreateTag)
		admin.PUT("/tags/:id", tagHandler.RenameTag)
		admin.PUT("/tags/:id/category", tagHandler.RecategorizeTag)
		admin.DELETE("/tags/:id", tagHandler.DeleteTag)

		// 【分类管理】
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.RenameCategory)
		admin.PUT("/categories/:id/move", categoryHandler.MoveCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
	})
}
