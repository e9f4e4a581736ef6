package domain

// DisplayRow 是一行展示数据，键固定包含 RowKeyID，
// 每列按 FieldAPIName 存值，查找列额外带一个链接键。
type DisplayRow map[string]any

// ID 返回该行的记录标识。
func (r DisplayRow) ID() string {
	id, _ := r[RowKeyID].(string)
	return id
}

// WidgetColumn 是通用表格组件消费的列定义。
type WidgetColumn struct {
	Label     string   `json:"label"`
	FieldName string   `json:"fieldName"`
	Type      DataType `json:"type"`
	Sortable  bool     `json:"sortable,omitempty"`
	// TypeAttributes 控制 url 列如何展示链接文本。
	TypeAttributes map[string]any `json:"typeAttributes,omitempty"`
}

// BuildWidgetColumns 把列描述符转成表格组件列。
// url 列的链接文本与悬浮提示绑定到原字段的取值。
func BuildWidgetColumns(cols []ColumnDescriptor) []WidgetColumn {
	if len(cols) == 0 {
		return []WidgetColumn{}
	}
	out := make([]WidgetColumn, 0, len(cols))
	for _, c := range cols {
		wc := WidgetColumn{
			Label:     c.Label,
			FieldName: c.DisplayFieldName,
			Type:      c.ResolvedType,
			Sortable:  c.Sortable,
		}
		if c.IsLookup() {
			wc.TypeAttributes = map[string]any{
				"label":   map[string]string{"fieldName": c.FieldAPIName},
				"tooltip": map[string]string{"fieldName": c.FieldAPIName},
				"target":  "_self",
			}
		}
		out = append(out, wc)
	}
	return out
}
