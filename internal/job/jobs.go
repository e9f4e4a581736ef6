package job

import "context"

// Jobs 聚合随服务一起启动的全部后台任务。
type Jobs struct {
	SummaryRefresher *Scheduler
	InstanceSweeper  *Scheduler
	Heartbeat        *StatsLogger
}

// Start 启动所有任务，返回合并后的停止函数。
func (j *Jobs) Start(parent context.Context) context.CancelFunc {
	if j == nil {
		return func() {}
	}
	stops := []context.CancelFunc{
		j.SummaryRefresher.Start(parent),
		j.InstanceSweeper.Start(parent),
		j.Heartbeat.Start(parent),
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}
