package domain

import "strings"

const (
	// RowKeyID 是每行展示数据固定携带的记录标识键。
	RowKeyID = "id"

	// ResourceURLSuffix 拼在查找列字段名后，作为行内链接值的键。
	ResourceURLSuffix = "-resourceUrl"

	// PathDelimiter 是字段路径与查找路径的分隔符。
	PathDelimiter = "."

	// SelfLookupPath 表示查找目标就是记录自身。
	SelfLookupPath = "Id"

	// IDSegment 是查找路径允许携带的末段后缀。
	IDSegment = ".Id"
)

// APIPath 拼出限定字段路径，如 Case.Subject。
func APIPath(objectAPIName, fieldAPIName string) string {
	if objectAPIName == "" {
		return fieldAPIName
	}
	return objectAPIName + PathDelimiter + fieldAPIName
}

// URLFieldName 返回查找列在行数据中的链接键名。
func URLFieldName(fieldAPIName string) string {
	return fieldAPIName + ResourceURLSuffix
}

// SplitPath 按分隔符拆开字段路径。分隔符是字面量点号，不支持转义。
func SplitPath(path string) []string {
	return strings.Split(path, PathDelimiter)
}

// TrimIDSegment 去掉查找路径末尾的 .Id 段。
func TrimIDSegment(path string) string {
	return strings.TrimSuffix(path, IDSegment)
}
