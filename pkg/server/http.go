package server

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"netbox2prom/internal/app"
	"netbox2prom/internal/discovery"
)

// HTTPServer 封装 HTTP 服务运行所需的依赖。
type HTTPServer struct {
	Engine  *gin.Engine
	Logger  *zap.Logger
	Config  app.Config
	Service *app.Service
}

// NewHTTPServer 构建 HTTPServer。
func NewHTTPServer(engine *gin.Engine, logger *zap.Logger, cfg app.Config, svc *app.Service) *HTTPServer {
	return &HTTPServer{
		Engine:  engine,
		Logger:  logger,
		Config:  cfg,
		Service: svc,
	}
}

// Run 启动 HTTP 服务；按配置决定是否先写一次发现文档。
func (s *HTTPServer) Run(ctx context.Context) error {
	listen := strings.TrimSpace(s.Config.HTTP.Listen)
	if listen == "" {
		listen = ":8080"
	}

	if s.Config.Discovery.RunOnStart && s.Service != nil {
		if err := s.runOnce(ctx); err != nil {
			if s.Logger != nil {
				s.Logger.Error("initial discovery failed", zap.Error(err))
			}
		} else if s.Logger != nil {
			s.Logger.Info("initial discovery completed")
		}
	} else if s.Logger != nil {
		s.Logger.Info("initial discovery skipped by configuration")
	}

	if s.Logger != nil {
		s.Logger.Info("http server starting", zap.String("listen", listen))
	}
	return s.Engine.Run(listen)
}

func (s *HTTPServer) runOnce(ctx context.Context) error {
	mode, err := discovery.ParseMode(s.Config.Discovery.Mode)
	if err != nil {
		return err
	}
	return s.Service.Discover(ctx, mode)
}

// Shutdown 释放资源。
func (s *HTTPServer) Shutdown(context.Context) {
	if s.Service != nil {
		s.Service.Close()
	}
	if s.Logger != nil {
		_ = s.Logger.Sync()
	}
}
