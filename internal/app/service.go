package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"netbox2prom/internal/discovery"
	"netbox2prom/internal/netbox"
	"netbox2prom/internal/sink"
)

// Service 负责装配发现引擎与输出端，提供统一入口。
type Service struct {
	cfg    Config
	inv    netbox.Inventory
	Engine *discovery.Engine
	Flow   *DiscoverFlow
	logger *zap.Logger
}

// NewService 根据配置构建 Service。
func NewService(cfg Config, inv netbox.Inventory, logger *zap.Logger) (*Service, error) {
	if inv == nil {
		return nil, fmt.Errorf("必须提供 netbox client")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()

	engine := discovery.NewEngine(inv, discovery.Options{
		Port:        cfg.Discovery.Port,
		CustomField: cfg.Discovery.CustomField,
	}, logger)

	flow := &DiscoverFlow{
		Engine: engine,
		Sink:   sink.New(cfg.Output.Path),
		Logger: logger,
	}

	return &Service{
		cfg:    cfg,
		inv:    inv,
		Engine: engine,
		Flow:   flow,
		logger: logger,
	}, nil
}

// Discover 执行一次指定模式的发现并写出文档。
func (s *Service) Discover(ctx context.Context, mode discovery.Mode) error {
	if s.Flow == nil {
		return fmt.Errorf("未初始化 discover flow")
	}
	return s.Flow.Run(ctx, mode)
}

// Close 释放资源。
func (s *Service) Close() {
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}
