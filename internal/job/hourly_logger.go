package job

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StatsSource 提供心跳日志需要的运行规模数字。
type StatsSource interface {
	Stats() (instances, cachedSummaries, cachedMetadata int)
}

// StatsLogger 每小时输出一条运行规模日志，兼当存活探针。
type StatsLogger struct {
	source StatsSource
	logger *zap.Logger
	cron   *cron.Cron
}

func NewStatsLogger(source StatsSource, logger *zap.Logger) *StatsLogger {
	return &StatsLogger{source: source, logger: logger}
}

// Start 启动按小时执行的心跳任务，返回停止函数。
func (h *StatsLogger) Start(parent context.Context) context.CancelFunc {
	if h == nil {
		return func() {}
	}
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		if h.logger == nil {
			return
		}
		if h.source == nil {
			h.logger.Info("hourly heartbeat")
			return
		}
		instances, summaries, metadata := h.source.Stats()
		h.logger.Info("hourly heartbeat",
			zap.Int("instances", instances),
			zap.Int("cachedSummaries", summaries),
			zap.Int("cachedMetadata", metadata))
	})
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to register hourly job", zap.Error(err))
		}
		return func() {}
	}
	h.cron = c
	c.Start()
	if h.logger != nil {
		h.logger.Info("hourly heartbeat started")
	}

	stop := func() {
		ctx := h.cron.Stop()
		<-ctx.Done()
		if h.logger != nil {
			h.logger.Info("hourly heartbeat stopped")
		}
	}

	go func() {
		<-parent.Done()
		stop()
	}()

	return stop
}
