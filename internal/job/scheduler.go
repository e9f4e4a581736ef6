package job

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler 按 cron 表达式执行一个命名后台任务。
// 上一轮还没跑完时跳过本轮，不会并发执行同一任务。
type Scheduler struct {
	name     string
	cronExpr string
	logger   *zap.Logger
	cron     *cron.Cron
	fn       func(context.Context) error
	parent   context.Context
	mu       sync.Mutex
	running  bool
}

// NewScheduler 构建调度器，cron 表达式为空时任务不会被注册。
func NewScheduler(name, cronExpr string, fn func(context.Context) error, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		name:     name,
		cronExpr: strings.TrimSpace(cronExpr),
		logger:   logger,
		fn:       fn,
	}
}

// Start 启动调度器，返回用于停止任务的函数。
func (s *Scheduler) Start(parent context.Context) context.CancelFunc {
	if s == nil || s.cronExpr == "" {
		return func() {}
	}
	s.parent = parent
	c := cron.New()
	id, err := c.AddFunc(s.cronExpr, s.runOnce)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to register cron job",
				zap.String("job", s.name),
				zap.String("cron", s.cronExpr),
				zap.Error(err))
		}
		return func() {}
	}
	s.cron = c
	c.Start()
	if s.logger != nil {
		entry := c.Entry(id)
		s.logger.Info("job scheduler started",
			zap.String("job", s.name),
			zap.String("cron", s.cronExpr),
			zap.Time("next", entry.Next))
	}

	var once sync.Once
	stop := func() {
		once.Do(func() {
			ctx := s.cron.Stop()
			<-ctx.Done()
			if s.logger != nil {
				s.logger.Info("job scheduler stopped", zap.String("job", s.name))
			}
		})
	}

	go func() {
		<-parent.Done()
		stop()
	}()

	return stop
}

func (s *Scheduler) runOnce() {
	if s.fn == nil {
		if s.logger != nil {
			s.logger.Warn("job function not configured", zap.String("job", s.name))
		}
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Warn("previous run still in progress, skip current schedule",
				zap.String("job", s.name))
		}
		return
	}
	s.running = true
	s.mu.Unlock()

	start := time.Now()
	runCtx := context.Background()
	if s.parent != nil {
		select {
		case <-s.parent.Done():
			if s.logger != nil {
				s.logger.Info("scheduler context cancelled, skip run", zap.String("job", s.name))
			}
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		default:
		}
		runCtx = s.parent
	}
	err := s.fn(runCtx)
	elapsed := time.Since(start)
	if s.logger != nil {
		if err != nil {
			s.logger.Error("scheduled job failed",
				zap.String("job", s.name),
				zap.Duration("duration", elapsed),
				zap.Error(err))
		} else {
			s.logger.Info("scheduled job completed",
				zap.String("job", s.name),
				zap.Duration("duration", elapsed))
		}
	}
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}
