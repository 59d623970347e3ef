package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"netbox2prom/internal/discovery"
	"netbox2prom/internal/metrics"
	"netbox2prom/internal/sink"
	"netbox2prom/pkg/util"
)

// DiscoverFlow 负责一次完整的批处理：拉清单 -> 解析目标 -> 渲染 -> 原子落盘。
type DiscoverFlow struct {
	Engine *discovery.Engine
	Sink   sink.Sink
	Logger *zap.Logger
}

func (f *DiscoverFlow) Run(ctx context.Context, mode discovery.Mode) error {
	if f == nil {
		return fmt.Errorf("discover flow 未初始化")
	}
	if f.Engine == nil || f.Sink == nil {
		return fmt.Errorf("discover flow 依赖未注入完整")
	}

	start := time.Now()
	groups, err := f.Engine.Run(ctx, mode)
	if err != nil {
		metrics.DiscoveryErrors.WithLabelValues(string(mode)).Inc()
		return fmt.Errorf("执行发现失败: %w", err)
	}

	doc, err := sink.Render(groups)
	if err != nil {
		metrics.DiscoveryErrors.WithLabelValues(string(mode)).Inc()
		return err
	}

	if err := f.Sink.Write(doc); err != nil {
		metrics.DiscoveryErrors.WithLabelValues(string(mode)).Inc()
		return fmt.Errorf("写出发现文档失败: %w", err)
	}

	elapsed := time.Since(start)
	metrics.DiscoveryDuration.WithLabelValues(string(mode)).Observe(elapsed.Seconds())
	metrics.TargetGroups.WithLabelValues(string(mode)).Set(float64(len(groups)))

	if f.Logger != nil {
		f.Logger.Info("发现完成",
			zap.String("mode", string(mode)),
			zap.Int("target_groups", len(groups)),
			zap.String("doc_sha256", util.HashBytes(doc)),
			zap.Duration("duration", elapsed))
	}
	return nil
}
