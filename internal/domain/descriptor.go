package domain

// ColumnDescriptor 是一列展示数据的完整描述，由相关列表元数据推导而来。
type ColumnDescriptor struct {
	// FieldAPIName 是平台侧的字段名，如 Subject。
	FieldAPIName string `json:"fieldApiName"`
	// Label 是展示给用户的列标题。
	Label string `json:"label"`
	// APIPath 是限定字段路径，如 Case.Subject，用于在原始记录中取值。
	APIPath string `json:"apiPath"`
	// DataType 是平台元数据声明的原始类型。
	DataType DataType `json:"dataType"`
	// ResolvedType 是映射后交给渲染组件的类型。
	ResolvedType DataType `json:"resolvedType"`
	// DisplayFieldName 是行数据中该列取值的键，查找列会带链接后缀。
	DisplayFieldName string `json:"displayFieldName"`
	// LookupTargetPath 仅查找列携带，是目标记录标识的字段路径。
	LookupTargetPath string `json:"lookupTargetPath,omitempty"`
	Sortable         bool   `json:"sortable,omitempty"`
}

// IsLookup 报告该列是否为查找列。
func (c ColumnDescriptor) IsLookup() bool {
	return c.LookupTargetPath != ""
}

// UsesDisplayValue 报告该列在行内取展示值还是原始值。
func (c ColumnDescriptor) UsesDisplayValue() bool {
	return usesDisplayValue[c.ResolvedType]
}
