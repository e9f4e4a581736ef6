package ioc

import (
	"fmt"
	"time"

	"crm2grid/internal/app"
	"crm2grid/internal/grid"
	"crm2grid/internal/nav"
)

// InitNavigator 按配置构建导航服务实现。
func InitNavigator(cfg app.Config) (grid.Navigator, error) {
	switch cfg.Nav.Mode {
	case "", "template":
		return nav.NewTemplateNavigator(cfg.Nav.BaseURL), nil
	case "http":
		return nav.NewHTTPNavigator(cfg.Nav.Endpoint, time.Duration(cfg.Nav.TimeoutSecond)*time.Second)
	default:
		return nil, fmt.Errorf("不支持的导航模式 %q", cfg.Nav.Mode)
	}
}
