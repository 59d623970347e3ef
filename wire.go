//go:build wireinject

package main

import (
	"github.com/google/wire"

	"netbox2prom/ioc"
	"netbox2prom/pkg/server"
)

func InitApp() (*server.HTTPServer, func(), error) {
	panic(wire.Build(
		ioc.InitConfig,
		ioc.InitLogger,
		ioc.InitInventoryClient,
		ioc.InitAppService,
		ioc.InitTargetsHandler,
		ioc.InitGinEngine,
		server.NewHTTPServer,
	))
}
