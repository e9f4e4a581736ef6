package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ProjectionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "grid_projection_duration_seconds",
		Help:    "单批行投影耗时",
		Buckets: prometheus.DefBuckets,
	})

	LinkErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "grid_link_errors_total",
		Help: "行内链接生成失败次数",
	})

	FetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grid_fetch_errors_total",
		Help: "平台数据源拉取失败次数",
	}, []string{"source"})

	RefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grid_component_refresh_total",
		Help: "组件刷新次数",
	}, []string{"kind", "result"})

	StaleDrops = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "grid_stale_commit_drops_total",
		Help: "因代际过期被丢弃的刷新结果数",
	})
)

// MustRegister 注册指标，可在 main 中调用。
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(ProjectionDuration, LinkErrors, FetchErrors, RefreshTotal, StaleDrops)
}
