package ioc

import (
	"go.uber.org/zap"

	"crm2grid/internal/app"
	"crm2grid/internal/grid"
	"crm2grid/internal/platform"
)

// InitAppService 构建相关列表视图服务。
func InitAppService(cfg app.Config, client platform.Client, navigator grid.Navigator, logger *zap.Logger) (*app.Service, error) {
	return app.NewService(cfg, client, navigator, logger)
}
