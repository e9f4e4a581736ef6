package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"crm2grid/internal/grid"
	"crm2grid/internal/platform"
)

// Service 装配平台客户端、投影器与组件注册表，提供统一入口。
type Service struct {
	cfg       Config
	client    platform.Client
	cache     *platform.CachingClient
	nav       grid.Navigator
	projector *grid.Projector
	registry  *Registry
	logger    *zap.Logger
}

// NewService 根据配置构建 Service。
func NewService(cfg Config, client platform.Client, navigator grid.Navigator, logger *zap.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("必须提供平台客户端")
	}
	if navigator == nil {
		return nil, fmt.Errorf("必须提供导航服务")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cache := platform.NewCachingClient(client, time.Duration(cfg.Cache.SummaryTTLSecond)*time.Second)
	projector := &grid.Projector{
		Nav:      navigator,
		Logger:   logger,
		Parallel: cfg.Components.ParallelRows,
	}
	registry := NewRegistry(time.Duration(cfg.Components.IdleTimeoutSecond)*time.Second, logger)

	return &Service{
		cfg:       cfg,
		client:    cache,
		cache:     cache,
		nav:       navigator,
		projector: projector,
		registry:  registry,
		logger:    logger,
	}, nil
}

// NewDirect 构建一个不注册的直接变体组件。
func (s *Service) NewDirect(p Params) *RelatedListComponent {
	return NewRelatedListComponent(s.client, s.projector, s.logger, p)
}

// NewSibling 构建一个不注册的同父变体组件。
func (s *Service) NewSibling(p SiblingParams) *SiblingListComponent {
	return NewSiblingListComponent(s.client, s.projector, s.nav, s.logger, p)
}

// QueryDirect 用一次性组件同步跑完整个管线，返回视图快照。
func (s *Service) QueryDirect(ctx context.Context, p Params) (ViewModel, error) {
	if err := p.Validate(); err != nil {
		return ViewModel{}, err
	}
	comp := s.NewDirect(p)
	comp.RefreshNow(ctx)
	return comp.View(), nil
}

// QuerySibling 一次性跑完同父变体管线，返回视图快照。
func (s *Service) QuerySibling(ctx context.Context, p SiblingParams) (ViewModel, error) {
	if err := p.Validate(); err != nil {
		return ViewModel{}, err
	}
	comp := s.NewSibling(p)
	comp.RefreshNow(ctx)
	return comp.View(), nil
}

// CreateDirect 注册一个有状态直接变体实例并触发首次加载。
func (s *Service) CreateDirect(ctx context.Context, p Params) (*Instance, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	comp := s.NewDirect(p)
	inst := s.registry.Add(KindRelatedList, comp)
	comp.Refresh(ctx)
	return inst, nil
}

// CreateSibling 注册一个有状态同父变体实例并触发首次加载。
func (s *Service) CreateSibling(ctx context.Context, p SiblingParams) (*Instance, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	comp := s.NewSibling(p)
	inst := s.registry.Add(KindSiblingList, comp)
	comp.Refresh(ctx)
	return inst, nil
}

// Registry 暴露实例注册表。
func (s *Service) Registry() *Registry {
	return s.registry
}

// Warm 预拉配置里列出的对象汇总，失败只记日志不阻断启动。
func (s *Service) Warm(ctx context.Context) {
	if !s.cfg.Cache.WarmOnStart || len(s.cfg.Cache.WarmObjects) == 0 {
		return
	}
	if err := s.cache.RefreshSummaries(ctx, s.cfg.Cache.WarmObjects); err != nil {
		s.logger.Warn("warm summary cache failed", zap.Error(err))
		return
	}
	s.logger.Info("summary cache warmed", zap.Strings("objects", s.cfg.Cache.WarmObjects))
}

// RefreshSummaries 回源刷新汇总缓存，定时任务入口。
func (s *Service) RefreshSummaries(ctx context.Context) error {
	objects := s.cfg.Cache.WarmObjects
	if len(objects) == 0 {
		return nil
	}
	if err := s.cache.RefreshSummaries(ctx, objects); err != nil {
		return fmt.Errorf("刷新汇总缓存失败: %w", err)
	}
	s.logger.Info("summary cache refreshed", zap.Int("objects", len(objects)))
	return nil
}

// SweepInstances 回收闲置组件实例，定时任务入口。
func (s *Service) SweepInstances(ctx context.Context) error {
	s.registry.Sweep(ctx)
	return nil
}

// Stats 返回运行规模，供心跳日志输出。
func (s *Service) Stats() (instances, cachedSummaries, cachedMetadata int) {
	summaries, metadata := s.cache.Stats()
	return s.registry.Len(), summaries, metadata
}

// Close 释放资源。
func (s *Service) Close(context.Context) error {
	if s.logger != nil {
		_ = s.logger.Sync()
	}
	return nil
}
