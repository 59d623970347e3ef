package ioc

import (
	"go.uber.org/zap"

	"netbox2prom/internal/app"
	"netbox2prom/internal/netbox"
)

// InitAppService 构建发现服务，cleanup 负责回收 logger 等资源。
func InitAppService(cfg app.Config, inv netbox.Inventory, logger *zap.Logger) (*app.Service, func(), error) {
	svc, err := app.NewService(cfg, inv, logger)
	if err != nil {
		return nil, nil, err
	}
	return svc, func() { svc.Close() }, nil
}
