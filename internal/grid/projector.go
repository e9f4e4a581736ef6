package grid

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"crm2grid/internal/domain"
	"crm2grid/internal/metrics"
	"crm2grid/internal/platform"
	"crm2grid/pkg/util"
)

// Projector 把原始记录按列描述符投影成展示行。
type Projector struct {
	Nav    Navigator
	Logger *zap.Logger
	// Parallel 大于 1 时按记录分批并发投影，默认逐条顺序执行。
	// 并发只改变执行方式，行内容与行序和顺序执行完全一致。
	Parallel int
}

// ProjectRows 为每条记录生成一行展示数据，行序与入参一致。
// 记录或列为空时返回空结果。单条记录内的失败只影响对应单元格。
func (p *Projector) ProjectRows(ctx context.Context, records []platform.RawRecord, cols []domain.ColumnDescriptor) []domain.DisplayRow {
	start := time.Now()
	defer func() {
		metrics.ProjectionDuration.Observe(time.Since(start).Seconds())
	}()

	if len(records) == 0 || len(cols) == 0 {
		return []domain.DisplayRow{}
	}

	rows := make([]domain.DisplayRow, len(records))
	if p.Parallel > 1 {
		p.projectParallel(ctx, records, cols, rows)
		return rows
	}
	for i := range records {
		rows[i] = p.projectOne(ctx, &records[i], cols)
	}
	return rows
}

// projectParallel 把记录下标分批交给固定数量的协程，按下标回填保证行序。
func (p *Projector) projectParallel(ctx context.Context, records []platform.RawRecord, cols []domain.ColumnDescriptor, rows []domain.DisplayRow) {
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	size := (len(idx) + p.Parallel - 1) / p.Parallel

	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range util.Batch(idx, size) {
		chunk := chunk
		g.Go(func() error {
			for _, i := range chunk {
				rows[i] = p.projectOne(gctx, &records[i], cols)
			}
			return nil
		})
	}
	// 投影只降级不失败，这里不会返回错误。
	_ = g.Wait()
}

func (p *Projector) projectOne(ctx context.Context, rec *platform.RawRecord, cols []domain.ColumnDescriptor) domain.DisplayRow {
	row := domain.DisplayRow{domain.RowKeyID: rec.ID}
	for i := range cols {
		col := &cols[i]
		fv, ok := fieldAt(rec, col.APIPath)
		row[col.FieldAPIName] = cellValue(col, fv, ok)
		if col.IsLookup() {
			row[domain.URLFieldName(col.FieldAPIName)] = p.lookupURL(ctx, rec, col)
		}
	}
	return row
}

// fieldAt 按限定路径读取字段包装，路径首段是对象名，读取时跳过。
func fieldAt(rec *platform.RawRecord, apiPath string) (platform.FieldValue, bool) {
	segs := domain.SplitPath(apiPath)
	if len(segs) < 2 {
		return rec.Field(apiPath)
	}
	cur := rec
	for i := 1; i < len(segs)-1; i++ {
		fv, ok := cur.Field(segs[i])
		if !ok {
			return platform.FieldValue{}, false
		}
		if cur = fv.Nested(); cur == nil {
			return platform.FieldValue{}, false
		}
	}
	return cur.Field(segs[len(segs)-1])
}

// cellValue 按列类型选择展示值或原始值。
// 文本类列缺值时补空串，其余列缺值时保持 nil，避免下游字符串操作踩到空指针。
func cellValue(col *domain.ColumnDescriptor, fv platform.FieldValue, ok bool) any {
	if col.UsesDisplayValue() {
		if !ok {
			return ""
		}
		if fv.DisplayValue != "" {
			return fv.DisplayValue
		}
		return fv.ScalarString()
	}
	if !ok {
		return nil
	}
	// 关系字段展开成嵌套记录时，原始值取目标记录标识。
	if nested := fv.Nested(); nested != nil {
		return nested.ID
	}
	return fv.Value
}

// lookupURL 为查找列生成行内链接，失败一律降级为 nil 并记日志。
func (p *Projector) lookupURL(ctx context.Context, rec *platform.RawRecord, col *domain.ColumnDescriptor) any {
	target, err := ResolveLookupTarget(rec, col.LookupTargetPath)
	if err != nil {
		p.logger().Debug("resolve lookup target failed",
			zap.String("record", rec.ID),
			zap.String("field", col.FieldAPIName),
			zap.String("path", col.LookupTargetPath),
			zap.Error(err))
		return nil
	}
	if target == "" || p.Nav == nil {
		return nil
	}
	url, err := p.Nav.GenerateURL(ctx, RecordPageReference(target))
	if err != nil {
		metrics.LinkErrors.Inc()
		p.logger().Warn("generate record url failed",
			zap.String("record", rec.ID),
			zap.String("target", target),
			zap.Error(err))
		return nil
	}
	if url == "" {
		return nil
	}
	return url
}

func (p *Projector) logger() *zap.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop()
}
