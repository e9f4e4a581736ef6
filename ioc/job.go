package ioc

import (
	"go.uber.org/zap"

	"crm2grid/internal/app"
	"crm2grid/internal/job"
)

// InitJobs 构建随服务启动的后台任务集合。
func InitJobs(cfg app.Config, svc *app.Service, logger *zap.Logger) *job.Jobs {
	jobs := &job.Jobs{
		Heartbeat: job.NewStatsLogger(svc, logger),
	}
	if svc != nil {
		jobs.SummaryRefresher = job.NewScheduler("summary-refresh", cfg.Cache.RefreshCron, svc.RefreshSummaries, logger)
		jobs.InstanceSweeper = job.NewScheduler("instance-sweep", cfg.Components.SweepCron, svc.SweepInstances, logger)
	}
	return jobs
}
