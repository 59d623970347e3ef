package ioc

import (
	"fmt"
	"strings"
	"time"

	"netbox2prom/internal/app"
	"netbox2prom/internal/netbox"
	"netbox2prom/internal/util"
)

// InitInventoryClient 构建 NetBox 数据源客户端。
func InitInventoryClient(cfg app.Config) (netbox.Inventory, error) {
	baseURL := strings.TrimSpace(cfg.NetBox.URL)
	if baseURL == "" {
		return nil, fmt.Errorf("netbox.url 不能为空")
	}
	return netbox.NewHTTPClient(netbox.HTTPConfig{
		BaseURL:  baseURL,
		Token:    cfg.NetBox.Token,
		Timeout:  time.Duration(cfg.NetBox.TimeoutSecond) * time.Second,
		PageSize: cfg.NetBox.PageSize,
		Retry: util.RetryConfig{
			Attempts: cfg.Retry.Attempts,
			Backoff:  time.Duration(cfg.Retry.BackoffSeconds) * time.Second,
		},
	})
}
