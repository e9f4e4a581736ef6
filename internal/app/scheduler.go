package app

import (
	"context"
	"sync"
)

// effectScheduler 用单个工作协程执行刷新效果。
// 执行中再次触发只记一个待办标记，收尾后合并成一次补跑，不会并发执行。
type effectScheduler struct {
	run func(context.Context)

	mu      sync.Mutex
	running bool
	pending bool
	done    chan struct{}
}

func newEffectScheduler(run func(context.Context)) *effectScheduler {
	return &effectScheduler{run: run}
}

// Trigger 请求一次刷新。空闲时立即起协程执行，忙碌时标记待办。
func (s *effectScheduler) Trigger(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.pending = true
		s.mu.Unlock()
		return
	}
	s.running = true
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go s.loop(ctx, done)
}

func (s *effectScheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		s.run(ctx)
		s.mu.Lock()
		if !s.pending || ctx.Err() != nil {
			s.running = false
			s.mu.Unlock()
			return
		}
		s.pending = false
		s.mu.Unlock()
	}
}

// Wait 阻塞到当前这轮执行（含补跑）收尾，没有在跑时立即返回。
func (s *effectScheduler) Wait() {
	s.mu.Lock()
	done := s.done
	running := s.running
	s.mu.Unlock()
	if !running || done == nil {
		return
	}
	<-done
}
