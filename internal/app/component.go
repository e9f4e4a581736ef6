package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"crm2grid/internal/domain"
	"crm2grid/internal/grid"
	"crm2grid/internal/metrics"
	"crm2grid/internal/platform"
	"crm2grid/pkg/util"
)

// Params 是直接子记录相关列表组件的输入参数。
type Params struct {
	RecordID         string `json:"recordId" yaml:"recordId"`
	ObjectAPIName    string `json:"objectApiName" yaml:"objectApiName"`
	RelationshipName string `json:"relationshipName" yaml:"relationshipName"`
	RecordTypeID     string `json:"recordTypeId,omitempty" yaml:"recordTypeId"`
}

// Validate 检查必填参数。
func (p Params) Validate() error {
	if p.RecordID == "" {
		return errors.New("recordId 不能为空")
	}
	if p.ObjectAPIName == "" {
		return errors.New("objectApiName 不能为空")
	}
	if p.RelationshipName == "" {
		return errors.New("relationshipName 不能为空")
	}
	return nil
}

// RelatedListComponent 维护一份直接子记录相关列表的展示工作集。
// 工作集归组件实例独享，实例之间不共享任何数据。
type RelatedListComponent struct {
	client    platform.Client
	projector *grid.Projector
	logger    *zap.Logger

	// gen 是刷新代际。每次参数变更或手动刷新都递增，
	// 慢批次带着旧代际回来时结果直接丢弃，避免旧数据盖掉新数据。
	gen   atomic.Uint64
	sched *effectScheduler

	mu         sync.Mutex
	params     Params
	paramsHash string
	metaHash   string
	state      StateSet
	summary    *platform.RelatedListSummary
	columns    []domain.ColumnDescriptor
	rows       []domain.DisplayRow
	count      int
}

// NewRelatedListComponent 构建组件并记下初始参数，不触发加载。
func NewRelatedListComponent(client platform.Client, projector *grid.Projector, logger *zap.Logger, params Params) *RelatedListComponent {
	c := &RelatedListComponent{
		client:    client,
		projector: projector,
		logger:    logger,
		params:    params,
		state:     directInitialState(),
	}
	c.paramsHash = util.HashJSON(params)
	c.sched = newEffectScheduler(c.runRefresh)
	return c
}

// 直接变体没有父记录间接寻址，record 数据源视为天然就绪。
func directInitialState() StateSet {
	s := NewStateSet()
	s.Record = StateLoaded
	return s
}

// SetParams 更新输入参数。内容没变时不动作，变了就作废在途刷新并重新加载。
func (c *RelatedListComponent) SetParams(ctx context.Context, p Params) {
	h := util.HashJSON(p)
	c.mu.Lock()
	if h == c.paramsHash {
		c.mu.Unlock()
		return
	}
	c.params = p
	c.paramsHash = h
	c.state = directInitialState()
	c.mu.Unlock()

	c.gen.Add(1)
	c.sched.Trigger(ctx)
}

// Refresh 让当前参数重新走一遍完整加载。
func (c *RelatedListComponent) Refresh(ctx context.Context) {
	c.gen.Add(1)
	c.sched.Trigger(ctx)
}

// RefreshNow 同步执行一次完整加载，一次性查询与测试使用。
func (c *RelatedListComponent) RefreshNow(ctx context.Context) {
	c.gen.Add(1)
	c.runRefresh(ctx)
}

// Wait 阻塞到在途刷新收尾。
func (c *RelatedListComponent) Wait() {
	c.sched.Wait()
}

// View 返回当前视图快照。
func (c *RelatedListComponent) View() ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return buildViewModel(c.state, c.summary, c.params.RelationshipName,
		c.columns, c.rows, c.count, "", c.gen.Load())
}

func (c *RelatedListComponent) runRefresh(ctx context.Context) {
	gen := c.gen.Load()
	p := c.snapshotParams()
	if err := p.Validate(); err != nil {
		// 参数不齐时清空工作集等待补全，不算失败。
		c.commit(gen, func() {
			c.state = StateSet{Record: StateLoaded, Summary: StateLoaded, Metadata: StateLoaded, Records: StateLoaded}
			c.summary = nil
			c.columns = []domain.ColumnDescriptor{}
			c.rows = []domain.DisplayRow{}
			c.count = 0
		})
		return
	}

	c.loadSummary(ctx, gen, p)

	cols, ok := c.loadColumns(ctx, gen, p)
	if !ok {
		metrics.RefreshTotal.WithLabelValues(string(KindRelatedList), "error").Inc()
		return
	}
	if len(cols) == 0 {
		c.commit(gen, func() {
			c.columns = cols
			c.rows = []domain.DisplayRow{}
			c.count = 0
			c.state.Records = StateLoaded
		})
		metrics.RefreshTotal.WithLabelValues(string(KindRelatedList), "ok").Inc()
		return
	}

	page, err := c.client.GetRelatedListRecords(ctx, p.RecordID, p.RelationshipName, grid.FieldList(cols))
	if err != nil {
		metrics.FetchErrors.WithLabelValues("records").Inc()
		c.logger.Warn("fetch related records failed",
			zap.String("record", p.RecordID),
			zap.String("relationship", p.RelationshipName),
			zap.Error(err))
		c.commit(gen, func() { c.state.Records = StateError })
		metrics.RefreshTotal.WithLabelValues(string(KindRelatedList), "error").Inc()
		return
	}

	rows := c.projector.ProjectRows(ctx, page.Records, cols)
	committed := c.commit(gen, func() {
		c.rows = rows
		c.count = pageCount(page)
		c.state.Records = StateLoaded
	})
	if committed {
		metrics.RefreshTotal.WithLabelValues(string(KindRelatedList), "ok").Inc()
	}
}

func (c *RelatedListComponent) loadSummary(ctx context.Context, gen uint64, p Params) {
	lists, err := c.client.ListRelatedListSummaries(ctx, p.ObjectAPIName, p.RecordTypeID)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("summary").Inc()
		c.logger.Warn("fetch related list summaries failed",
			zap.String("object", p.ObjectAPIName),
			zap.Error(err))
		c.commit(gen, func() {
			c.summary = nil
			c.state.Summary = StateError
		})
		return
	}
	s := grid.SelectSummary(lists, p.RelationshipName)
	c.commit(gen, func() {
		c.summary = s
		c.state.Summary = StateLoaded
	})
}

func (c *RelatedListComponent) loadColumns(ctx context.Context, gen uint64, p Params) ([]domain.ColumnDescriptor, bool) {
	meta, err := c.client.GetRelatedListMetadata(ctx, p.ObjectAPIName, p.RelationshipName, p.RecordTypeID)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("metadata").Inc()
		c.logger.Warn("fetch related list metadata failed",
			zap.String("object", p.ObjectAPIName),
			zap.String("relationship", p.RelationshipName),
			zap.Error(err))
		c.commit(gen, func() {
			// 没有列定义就拉不了记录，两个数据源一起收尾。
			c.state.Metadata = StateError
			c.state.Records = StateError
		})
		return nil, false
	}

	hash := util.HashJSON(meta)
	c.mu.Lock()
	unchanged := hash == c.metaHash && c.columns != nil
	cached := c.columns
	c.mu.Unlock()

	cols := cached
	if !unchanged {
		cols = grid.BuildColumns(meta)
	}
	c.commit(gen, func() {
		c.metaHash = hash
		c.columns = cols
		c.state.Metadata = StateLoaded
	})
	return cols, true
}

func (c *RelatedListComponent) snapshotParams() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// commit 在代际未过期时原子应用一段状态变更，过期则丢弃并计数。
func (c *RelatedListComponent) commit(gen uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen.Load() != gen {
		metrics.StaleDrops.Inc()
		return false
	}
	fn()
	return true
}

func pageCount(page platform.RecordPage) int {
	if page.Count > 0 {
		return page.Count
	}
	return len(page.Records)
}
