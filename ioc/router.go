package ioc

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"netbox2prom/internal/app"
	"netbox2prom/internal/metrics"
	"netbox2prom/internal/router"
)

// InitTargetsHandler 构建发现 HTTP 处理器。
func InitTargetsHandler(svc *app.Service, logger *zap.Logger) *router.TargetsHandler {
	return router.NewTargetsHandler(svc, logger)
}

// InitGinEngine 构建 gin 引擎并注册自监控指标。
func InitGinEngine(targetsHandler *router.TargetsHandler) *gin.Engine {
	metrics.MustRegister(prometheus.DefaultRegisterer)
	return router.NewEngine(targetsHandler)
}
