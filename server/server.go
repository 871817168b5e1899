package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techlib/config"
	"techlib/middleware"
	"techlib/routes"
	"techlib/services"
)

type Server struct {
	Port   int
	router *gin.Engine
}

// NewServer 创建服务器实例
func NewServer(port int) *Server {
	// 设置 Gin 模式 (release/debug)
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()
	router.Use(middleware.CORS())

	return &Server{
		Port:   port,
		router: router,
	}
}

// Start 启动服务器
func (s *Server) Start() error {
	logger := config.GetLogger()

	// 后台定期清理过期会话（纯粹是垃圾回收，有效性判定不靠它）
	sessionService := services.NewSessionService(
		config.GetDB(),
		config.AppConfig.Admin.Password,
		config.AppConfig.Session.TTLHours,
		logger,
	)
	go cleanupLoop(sessionService, logger)

	// 设置路由
	routes.SetupRoutes(s.router)

	logger.Info("服务器启动",
		zap.Int("port", s.Port),
		zap.String("url", fmt.Sprintf("http://localhost:%d", s.Port)))

	if err := s.router.Run(fmt.Sprintf(":%d", s.Port)); err != nil {
		return fmt.Errorf("服务器启动失败: %w", err)
	}

	return nil
}

// cleanupLoop 每小时清理一次过期会话
func cleanupLoop(sessions *services.SessionService, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := sessions.CleanupExpired(); err != nil {
			logger.Warn("清理过期会话失败", zap.Error(err))
		}
	}
}
