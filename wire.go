//go:build wireinject

package main

import (
	"context"

	"crm2grid/ioc"
	"crm2grid/pkg/server"
	"github.com/google/wire"
)

func InitApp(ctx context.Context) (*server.HTTPServer, func(), error) {
	panic(wire.Build(
		ioc.InitConfig,
		ioc.InitLogger,
		ioc.InitPlatformClient,
		ioc.InitNavigator,
		ioc.InitAppService,
		ioc.InitListHandler,
		ioc.InitGinEngine,
		ioc.InitJobs,
		server.NewHTTPServer,
	))
}
