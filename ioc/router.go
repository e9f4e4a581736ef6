package ioc

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"crm2grid/internal/app"
	"crm2grid/internal/metrics"
	"crm2grid/internal/router"
)

// InitListHandler 构建相关列表 HTTP 处理器。
func InitListHandler(svc *app.Service, logger *zap.Logger) *router.ListHandler {
	return router.NewListHandler(svc, logger)
}

// InitGinEngine 构建 gin 引擎并注册运行指标。
func InitGinEngine(listHandler *router.ListHandler) *gin.Engine {
	metricsOnce.Do(func() {
		metrics.MustRegister(prometheus.DefaultRegisterer)
	})
	return router.NewEngine(listHandler)
}

var metricsOnce sync.Once
