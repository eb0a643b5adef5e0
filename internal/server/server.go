package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"onedocs/internal/config"
	"onedocs/internal/handler"
	"onedocs/internal/server/middleware"
	"onedocs/internal/service"
)

// Server 本地 HTTP 桥接服务
// 桌面端前端通过它调用文档分析，替代进程内的命令调用
type Server struct {
	cfg        *config.Config
	engine     *gin.Engine
	analyzeSvc *service.AnalyzeService
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	return NewWithService(cfg, service.NewAnalyzeService(&cfg.AI))
}

// NewWithService 使用指定分析服务创建服务器（用于测试）
func NewWithService(cfg *config.Config, analyzeSvc *service.AnalyzeService) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.AI.APIKey == "" {
		log.Warn().Msg("AI API key not configured, every request must carry api_key")
	}

	srv := &Server{
		cfg:        cfg,
		engine:     gin.New(),
		analyzeSvc: analyzeSvc,
	}

	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.cfg.AI.APIKey != "")
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		analyzeHdl := handler.NewAnalyzeHandler(s.analyzeSvc)
		v1.POST("/analyze", analyzeHdl.Analyze)
		v1.POST("/analyze/test", analyzeHdl.TestConnection)
		v1.GET("/providers", analyzeHdl.ListProviders)
	}
}

// Run 启动服务器，ctx 取消后优雅退出
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
