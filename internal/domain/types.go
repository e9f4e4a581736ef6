package domain

// DataType 是列的字段类型词汇，取值来自平台元数据与渲染组件约定。
type DataType string

const (
	TypeText     DataType = "text"
	TypeTextArea DataType = "textarea"
	TypeString   DataType = "string"
	TypeNumber   DataType = "number"
	TypeCurrency DataType = "currency"
	TypePercent  DataType = "percent"
	TypeBoolean  DataType = "boolean"
	TypePhone    DataType = "phone"
	TypeEmail    DataType = "email"
	TypeDate     DataType = "date"
	TypeDateTime DataType = "datetime"
	TypePicklist DataType = "picklist"
	TypeURL      DataType = "url"

	// TypeDateLocal 是渲染组件使用的本地日期类型，datetime 映射到它。
	TypeDateLocal DataType = "date-local"
)

// ResolveDataType 把平台字段类型映射为渲染组件的类型。
// 查找列一律映射为 url，其余按固定规则转换，未命中的原样透传。
func ResolveDataType(raw DataType, lookup bool) DataType {
	switch {
	case lookup:
		return TypeURL
	case raw == TypeDateTime:
		return TypeDateLocal
	case raw == TypePicklist:
		return TypeString
	default:
		return raw
	}
}

// usesDisplayValue 列出取展示值而非原始值的渲染类型。
var usesDisplayValue = map[DataType]bool{
	TypeString:    true,
	TypeDateLocal: true,
	TypeText:      true,
	TypeTextArea:  true,
}
