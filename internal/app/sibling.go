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

// SiblingParams 是同父记录相关列表组件的输入参数。
// 列表挂在父对象下，先从当前记录读出父记录标识再取数。
type SiblingParams struct {
	Params              `yaml:",inline"`
	ParentObjectAPIName string `json:"parentObjectApiName" yaml:"parentObjectApiName"`
	ParentFieldName     string `json:"parentFieldName" yaml:"parentFieldName"`
}

// Validate 检查必填参数。
func (p SiblingParams) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.ParentObjectAPIName == "" {
		return errors.New("parentObjectApiName 不能为空")
	}
	if p.ParentFieldName == "" {
		return errors.New("parentFieldName 不能为空")
	}
	return nil
}

// SiblingListComponent 展示与当前记录同父的兄弟记录列表。
// 与直接变体各自维护独立工作集，即使看的是同一份数据也互不影响。
type SiblingListComponent struct {
	client    platform.Client
	projector *grid.Projector
	nav       grid.Navigator
	logger    *zap.Logger

	// RecordFilter 在投影前筛选子记录，nil 表示全部保留。
	RecordFilter func([]platform.RawRecord) []platform.RawRecord

	gen   atomic.Uint64
	sched *effectScheduler

	mu         sync.Mutex
	params     SiblingParams
	paramsHash string
	metaHash   string
	state      StateSet
	summary    *platform.RelatedListSummary
	columns    []domain.ColumnDescriptor
	rows       []domain.DisplayRow
	count      int
	viewAllURL string
}

// NewSiblingListComponent 构建组件并记下初始参数，不触发加载。
func NewSiblingListComponent(client platform.Client, projector *grid.Projector, nav grid.Navigator, logger *zap.Logger, params SiblingParams) *SiblingListComponent {
	c := &SiblingListComponent{
		client:    client,
		projector: projector,
		nav:       nav,
		logger:    logger,
		params:    params,
		state:     NewStateSet(),
	}
	c.paramsHash = util.HashJSON(params)
	c.sched = newEffectScheduler(c.runRefresh)
	return c
}

// SetParams 更新输入参数。内容没变时不动作，变了就作废在途刷新并重新加载。
func (c *SiblingListComponent) SetParams(ctx context.Context, p SiblingParams) {
	h := util.HashJSON(p)
	c.mu.Lock()
	if h == c.paramsHash {
		c.mu.Unlock()
		return
	}
	c.params = p
	c.paramsHash = h
	c.state = NewStateSet()
	c.mu.Unlock()

	c.gen.Add(1)
	c.sched.Trigger(ctx)
}

// Refresh 让当前参数重新走一遍完整加载。
func (c *SiblingListComponent) Refresh(ctx context.Context) {
	c.gen.Add(1)
	c.sched.Trigger(ctx)
}

// RefreshNow 同步执行一次完整加载，一次性查询与测试使用。
func (c *SiblingListComponent) RefreshNow(ctx context.Context) {
	c.gen.Add(1)
	c.runRefresh(ctx)
}

// Wait 阻塞到在途刷新收尾。
func (c *SiblingListComponent) Wait() {
	c.sched.Wait()
}

// View 返回当前视图快照。
func (c *SiblingListComponent) View() ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return buildViewModel(c.state, c.summary, c.params.RelationshipName,
		c.columns, c.rows, c.count, c.viewAllURL, c.gen.Load())
}

func (c *SiblingListComponent) runRefresh(ctx context.Context) {
	gen := c.gen.Load()
	p := c.snapshotParams()
	if err := p.Validate(); err != nil {
		c.commit(gen, func() {
			c.state = StateSet{Record: StateLoaded, Summary: StateLoaded, Metadata: StateLoaded, Records: StateLoaded}
			c.summary = nil
			c.columns = []domain.ColumnDescriptor{}
			c.rows = []domain.DisplayRow{}
			c.count = 0
			c.viewAllURL = ""
		})
		return
	}

	parentID, ok := c.loadParentID(ctx, gen, p)
	if !ok {
		metrics.RefreshTotal.WithLabelValues(string(KindSiblingList), "error").Inc()
		return
	}
	if parentID == "" {
		// 当前记录没挂在父对象下，按无数据静默渲染。
		c.logger.Info("record has no parent, rendering empty sibling list",
			zap.String("record", p.RecordID),
			zap.String("parentField", p.ParentFieldName))
		c.commit(gen, func() {
			c.state = StateSet{Record: StateLoaded, Summary: StateLoaded, Metadata: StateLoaded, Records: StateLoaded}
			c.summary = nil
			c.columns = []domain.ColumnDescriptor{}
			c.rows = []domain.DisplayRow{}
			c.count = 0
			c.viewAllURL = ""
		})
		metrics.RefreshTotal.WithLabelValues(string(KindSiblingList), "ok").Inc()
		return
	}

	c.loadSummary(ctx, gen, p)

	cols, ok := c.loadColumns(ctx, gen, p)
	if !ok {
		metrics.RefreshTotal.WithLabelValues(string(KindSiblingList), "error").Inc()
		return
	}

	viewAll := grid.ViewAllURL(ctx, c.nav, c.logger, parentID, p.ParentObjectAPIName, p.RelationshipName)
	c.commit(gen, func() { c.viewAllURL = viewAll })

	if len(cols) == 0 {
		c.commit(gen, func() {
			c.columns = cols
			c.rows = []domain.DisplayRow{}
			c.count = 0
			c.state.Records = StateLoaded
		})
		metrics.RefreshTotal.WithLabelValues(string(KindSiblingList), "ok").Inc()
		return
	}

	page, err := c.client.GetRelatedListRecords(ctx, parentID, p.RelationshipName, grid.FieldList(cols))
	if err != nil {
		metrics.FetchErrors.WithLabelValues("records").Inc()
		c.logger.Warn("fetch sibling records failed",
			zap.String("parent", parentID),
			zap.String("relationship", p.RelationshipName),
			zap.Error(err))
		c.commit(gen, func() { c.state.Records = StateError })
		metrics.RefreshTotal.WithLabelValues(string(KindSiblingList), "error").Inc()
		return
	}

	records := page.Records
	if c.RecordFilter != nil {
		records = c.RecordFilter(records)
	}
	rows := c.projector.ProjectRows(ctx, records, cols)
	committed := c.commit(gen, func() {
		c.rows = rows
		c.count = pageCount(page)
		c.state.Records = StateLoaded
	})
	if committed {
		metrics.RefreshTotal.WithLabelValues(string(KindSiblingList), "ok").Inc()
	}
}

// loadParentID 取当前记录并读出父记录标识。
// 拉取失败返回 ok=false 并把所有数据源收尾为 error；
// 记录没有父字段值时返回空标识，由调用方按无数据降级。
func (c *SiblingListComponent) loadParentID(ctx context.Context, gen uint64, p SiblingParams) (string, bool) {
	fieldPath := domain.APIPath(p.ObjectAPIName, p.ParentFieldName)
	rec, err := c.client.GetRecord(ctx, p.RecordID, []string{fieldPath})
	if err != nil {
		metrics.FetchErrors.WithLabelValues("record").Inc()
		c.logger.Warn("fetch viewed record failed",
			zap.String("record", p.RecordID),
			zap.Error(err))
		c.commit(gen, func() {
			c.state = StateSet{Record: StateError, Summary: StateError, Metadata: StateError, Records: StateError}
		})
		return "", false
	}
	fv, _ := rec.Field(p.ParentFieldName)
	parentID := fv.ScalarString()
	c.commit(gen, func() { c.state.Record = StateLoaded })
	return parentID, true
}

func (c *SiblingListComponent) loadSummary(ctx context.Context, gen uint64, p SiblingParams) {
	lists, err := c.client.ListRelatedListSummaries(ctx, p.ParentObjectAPIName, p.RecordTypeID)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("summary").Inc()
		c.logger.Warn("fetch related list summaries failed",
			zap.String("object", p.ParentObjectAPIName),
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

func (c *SiblingListComponent) loadColumns(ctx context.Context, gen uint64, p SiblingParams) ([]domain.ColumnDescriptor, bool) {
	meta, err := c.client.GetRelatedListMetadata(ctx, p.ParentObjectAPIName, p.RelationshipName, p.RecordTypeID)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("metadata").Inc()
		c.logger.Warn("fetch related list metadata failed",
			zap.String("object", p.ParentObjectAPIName),
			zap.String("relationship", p.RelationshipName),
			zap.Error(err))
		c.commit(gen, func() {
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

func (c *SiblingListComponent) snapshotParams() SiblingParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

func (c *SiblingListComponent) commit(gen uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen.Load() != gen {
		metrics.StaleDrops.Inc()
		return false
	}
	fn()
	return true
}
