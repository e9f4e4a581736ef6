package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ComponentKind 标识组件变体。
type ComponentKind string

const (
	KindRelatedList ComponentKind = "related-list"
	KindSiblingList ComponentKind = "sibling-list"
)

// Component 是两种组件变体共同暴露的能力。
type Component interface {
	View() ViewModel
	Refresh(ctx context.Context)
	Wait()
}

// Instance 把组件实例与标识、最近访问时间绑在一起。
type Instance struct {
	ID        string
	Kind      ComponentKind
	Component Component
	CreatedAt time.Time

	lastTouch atomic.Int64
}

// Touch 记下一次访问。
func (i *Instance) Touch() {
	i.lastTouch.Store(time.Now().UnixNano())
}

// LastTouched 返回最近一次访问时间。
func (i *Instance) LastTouched() time.Time {
	return time.Unix(0, i.lastTouch.Load())
}

// Registry 管理有状态组件实例的生命周期，闲置过久的实例由清扫任务回收。
type Registry struct {
	mu     sync.RWMutex
	items  map[string]*Instance
	idle   time.Duration
	logger *zap.Logger
}

// NewRegistry 构建实例注册表，idle 不大于零时清扫不回收任何实例。
func NewRegistry(idle time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		items:  make(map[string]*Instance),
		idle:   idle,
		logger: logger,
	}
}

// Add 注册一个组件实例并分配标识。
func (r *Registry) Add(kind ComponentKind, comp Component) *Instance {
	inst := &Instance{
		ID:        uuid.NewString(),
		Kind:      kind,
		Component: comp,
		CreatedAt: time.Now(),
	}
	inst.Touch()
	r.mu.Lock()
	r.items[inst.ID] = inst
	r.mu.Unlock()
	return inst
}

// Get 按标识取实例并刷新访问时间。
func (r *Registry) Get(id string) (*Instance, bool) {
	r.mu.RLock()
	inst, ok := r.items[id]
	r.mu.RUnlock()
	if ok {
		inst.Touch()
	}
	return inst, ok
}

// Remove 注销实例，存在时返回 true。
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	return true
}

// Len 返回当前实例数。
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Sweep 回收闲置超时的实例，返回回收数量。
func (r *Registry) Sweep(_ context.Context) int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-r.idle)

	r.mu.Lock()
	var evicted []string
	for id, inst := range r.items {
		if inst.LastTouched().Before(cutoff) {
			evicted = append(evicted, id)
			delete(r.items, id)
		}
	}
	remaining := len(r.items)
	r.mu.Unlock()

	if len(evicted) > 0 && r.logger != nil {
		r.logger.Info("swept idle component instances",
			zap.Int("evicted", len(evicted)),
			zap.Int("remaining", remaining))
	}
	return len(evicted)
}
