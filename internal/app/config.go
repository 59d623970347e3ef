package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 默认值与 CLI 侧保持一致。
const (
	DefaultPort        = 10000
	DefaultCustomField = "prom_labels"
	DefaultMode        = "device"
)

type NetBox struct {
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	TimeoutSecond int    `yaml:"timeout_second"`
	PageSize      int    `yaml:"page_size"`
}

type Discovery struct {
	Mode        string `yaml:"mode"`
	Port        int    `yaml:"port"`
	CustomField string `yaml:"custom_field"`
	RunOnStart  bool   `yaml:"run_on_start"`
}

type Output struct {
	Path string `yaml:"path"`
}

type HTTP struct {
	Listen string `yaml:"listen"`
}

type Retry struct {
	Attempts       int `yaml:"attempts"`
	BackoffSeconds int `yaml:"backoff_seconds"`
}

type Config struct {
	NetBox    NetBox    `yaml:"netbox"`
	Discovery Discovery `yaml:"discovery"`
	Output    Output    `yaml:"output"`
	HTTP      HTTP      `yaml:"http"`
	Retry     Retry     `yaml:"retry"`
}

// LoadConfig 从文件加载配置并填充默认值。
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults 填充缺省的发现参数。
func (c *Config) ApplyDefaults() {
	if c.Discovery.Port <= 0 {
		c.Discovery.Port = DefaultPort
	}
	if c.Discovery.CustomField == "" {
		c.Discovery.CustomField = DefaultCustomField
	}
	if c.Discovery.Mode == "" {
		c.Discovery.Mode = DefaultMode
	}
}
