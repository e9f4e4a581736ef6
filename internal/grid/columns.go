package grid

import (
	"crm2grid/internal/domain"
	"crm2grid/internal/platform"
)

// BuildColumns 把相关列表元数据转成列描述符。
// 元数据缺对象名或没有列定义时返回空结果，不报错。
// 入参不会被修改，重复调用得到结构相同的结果。
func BuildColumns(meta platform.RelatedListMetadata) []domain.ColumnDescriptor {
	if len(meta.ObjectAPINames) == 0 || len(meta.DisplayColumns) == 0 {
		return []domain.ColumnDescriptor{}
	}
	objectAPIName := meta.ObjectAPINames[0]

	cols := make([]domain.ColumnDescriptor, 0, len(meta.DisplayColumns))
	for _, raw := range meta.DisplayColumns {
		col := domain.ColumnDescriptor{
			FieldAPIName:     raw.FieldAPIName,
			Label:            raw.Label,
			APIPath:          domain.APIPath(objectAPIName, raw.FieldAPIName),
			DataType:         domain.DataType(raw.DataType),
			LookupTargetPath: raw.LookupID,
			Sortable:         raw.Sortable,
		}
		col.ResolvedType = domain.ResolveDataType(col.DataType, col.IsLookup())
		col.DisplayFieldName = col.FieldAPIName
		if col.IsLookup() {
			col.DisplayFieldName = domain.URLFieldName(col.FieldAPIName)
		}
		cols = append(cols, col)
	}
	return cols
}

// FieldList 根据列描述符推导记录查询需要的限定字段列表，结果去重且顺序稳定。
// 查找列的目标路径也会带上，保证下钻时嵌套记录已展开。
func FieldList(cols []domain.ColumnDescriptor) []string {
	seen := make(map[string]struct{}, len(cols))
	fields := make([]string, 0, len(cols))
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		fields = append(fields, path)
	}

	for _, col := range cols {
		add(col.APIPath)
		if !col.IsLookup() || col.LookupTargetPath == domain.SelfLookupPath {
			continue
		}
		target := col.LookupTargetPath
		if domain.TrimIDSegment(target) == target {
			target += domain.IDSegment
		}
		// 限定前缀沿用该列自己的对象名。
		objectAPIName := domain.SplitPath(col.APIPath)[0]
		add(domain.APIPath(objectAPIName, target))
	}
	return fields
}
