package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"netbox2prom/internal/app"
	"netbox2prom/internal/discovery"
	"netbox2prom/internal/sink"
)

// TargetsHandler 负责按需执行发现并返回 file_sd 文档的 HTTP 请求。
type TargetsHandler struct {
	svc    *app.Service
	logger *zap.Logger
}

// NewTargetsHandler 构建一个新的 TargetsHandler。
func NewTargetsHandler(svc *app.Service, logger *zap.Logger) *TargetsHandler {
	return &TargetsHandler{svc: svc, logger: logger}
}

// RegisterRoutes 将发现路由注册到给定的路由组。
func (h *TargetsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:mode", h.handleTargets)
}

// handleTargets 每次请求现拉现算，文档直接写响应体，不经过文件暂存。
func (h *TargetsHandler) handleTargets(c *gin.Context) {
	mode, err := discovery.ParseMode(c.Param("mode"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/json")
	flow := &app.DiscoverFlow{
		Engine: h.svc.Engine,
		Sink:   &sink.WriterSink{W: c.Writer},
		Logger: h.logger,
	}
	if err := flow.Run(c.Request.Context(), mode); err != nil {
		if h.logger != nil {
			h.logger.Error("on-demand discovery failed", zap.Error(err))
		}
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}
}
