package server

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crm2grid/internal/app"
	"crm2grid/internal/job"
)

// HTTPServer 封装 HTTP 服务运行所需的依赖。
type HTTPServer struct {
	Engine  *gin.Engine
	Logger  *zap.Logger
	Config  app.Config
	Service *app.Service
	Jobs    *job.Jobs
}

// NewHTTPServer 构建 HTTPServer。
func NewHTTPServer(engine *gin.Engine, logger *zap.Logger, cfg app.Config, svc *app.Service, jobs *job.Jobs) *HTTPServer {
	return &HTTPServer{
		Engine:  engine,
		Logger:  logger,
		Config:  cfg,
		Service: svc,
		Jobs:    jobs,
	}
}

// Run 启动 HTTP 服务及相关后台任务。
func (s *HTTPServer) Run(ctx context.Context) error {
	listen := strings.TrimSpace(s.Config.HTTP.Listen)
	if listen == "" {
		listen = ":8080"
	}

	cancelJobs := func() {}
	if s.Jobs != nil {
		cancelJobs = s.Jobs.Start(ctx)
		defer cancelJobs()
	}

	if s.Service != nil {
		s.Service.Warm(ctx)
	}

	if s.Logger != nil {
		s.Logger.Info("http server starting", zap.String("listen", listen))
	}
	return s.Engine.Run(listen)
}

// Shutdown 释放资源。
func (s *HTTPServer) Shutdown(ctx context.Context) {
	if s.Service != nil {
		if err := s.Service.Close(ctx); err != nil && s.Logger != nil {
			s.Logger.Warn("close app service failed", zap.Error(err))
		}
	}
	if s.Logger != nil {
		_ = s.Logger.Sync()
	}
}
