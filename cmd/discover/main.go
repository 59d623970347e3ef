package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"netbox2prom/internal/app"
	"netbox2prom/internal/discovery"
	"netbox2prom/internal/logging"
	"netbox2prom/internal/netbox"
	"netbox2prom/internal/util"
)

func main() {
	var (
		port        int
		customField string
		modeFlag    string
		configPath  string
	)
	flag.IntVar(&port, "port", app.DefaultPort, "默认抓取端口，可被 __port__ 标签覆盖")
	flag.StringVar(&customField, "custom-field", app.DefaultCustomField, "携带目标标签的 NetBox custom field")
	flag.StringVar(&modeFlag, "discovery", app.DefaultMode, "发现模式: device|vm|circuit")
	flag.StringVar(&configPath, "config", "", "可选配置文件，提供超时/分页/重试等参数")
	flag.Parse()

	if flag.NArg() != 3 {
		usage()
		os.Exit(2)
	}

	mode, err := discovery.ParseMode(modeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		usage()
		os.Exit(2)
	}

	var cfg app.Config
	if configPath != "" {
		cfg, err = app.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
			os.Exit(2)
		}
	}
	// 位置参数与命令行选项始终优先于配置文件。
	cfg.NetBox.URL = flag.Arg(0)
	cfg.NetBox.Token = flag.Arg(1)
	cfg.Output.Path = flag.Arg(2)
	cfg.Discovery.Mode = string(mode)
	cfg.Discovery.Port = port
	cfg.Discovery.CustomField = customField

	logger, err := logging.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化 logger 失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	client, err := netbox.NewHTTPClient(netbox.HTTPConfig{
		BaseURL:  cfg.NetBox.URL,
		Token:    cfg.NetBox.Token,
		Timeout:  time.Duration(cfg.NetBox.TimeoutSecond) * time.Second,
		PageSize: cfg.NetBox.PageSize,
		Retry: util.RetryConfig{
			Attempts: cfg.Retry.Attempts,
			Backoff:  time.Duration(cfg.Retry.BackoffSeconds) * time.Second,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "构建 netbox client 失败: %v\n", err)
		os.Exit(1)
	}

	svc, err := app.NewService(cfg, client, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "构建服务失败: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	if err := svc.Discover(context.Background(), mode); err != nil {
		fmt.Fprintf(os.Stderr, "discover 执行失败: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "用法: discover [-port 10000] [-custom-field prom_labels] [-discovery device|vm|circuit] [-config path] <netbox-url> <token> <output|->")
}
