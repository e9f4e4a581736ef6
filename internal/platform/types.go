package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FieldValue 表示记录中单个字段的原始值与展示值。
// 关系字段展开时 Value 为 *RawRecord，其余情况为标量。
type FieldValue struct {
	Value        any
	DisplayValue string
}

type fieldValueWire struct {
	Value        json.RawMessage `json:"value"`
	DisplayValue *string         `json:"displayValue"`
}

// UnmarshalJSON 解析平台返回的 {value, displayValue} 包装，
// value 为对象时按嵌套记录处理。
func (f *FieldValue) UnmarshalJSON(data []byte) error {
	var wire fieldValueWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("解析字段包装失败: %w", err)
	}
	if wire.DisplayValue != nil {
		f.DisplayValue = *wire.DisplayValue
	} else {
		f.DisplayValue = ""
	}
	f.Value = nil

	raw := bytes.TrimSpace(wire.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '{' {
		var nested RawRecord
		if err := json.Unmarshal(raw, &nested); err != nil {
			return fmt.Errorf("解析嵌套记录失败: %w", err)
		}
		f.Value = &nested
		return nil
	}
	var scalar any
	if err := json.Unmarshal(raw, &scalar); err != nil {
		return fmt.Errorf("解析字段值失败: %w", err)
	}
	f.Value = scalar
	return nil
}

// MarshalJSON 输出与平台一致的 {value, displayValue} 包装。
func (f FieldValue) MarshalJSON() ([]byte, error) {
	wire := struct {
		Value        any    `json:"value"`
		DisplayValue string `json:"displayValue,omitempty"`
	}{Value: f.Value, DisplayValue: f.DisplayValue}
	return json.Marshal(wire)
}

// UnmarshalYAML 支持在场景文件中以同样的包装结构书写字段。
func (f *FieldValue) UnmarshalYAML(node *yaml.Node) error {
	var wire struct {
		Value        yaml.Node `yaml:"value"`
		DisplayValue string    `yaml:"displayValue"`
	}
	if err := node.Decode(&wire); err != nil {
		return fmt.Errorf("解析字段包装失败: %w", err)
	}
	f.DisplayValue = wire.DisplayValue
	f.Value = nil

	switch wire.Value.Kind {
	case 0:
		return nil
	case yaml.MappingNode:
		var nested RawRecord
		if err := wire.Value.Decode(&nested); err != nil {
			return fmt.Errorf("解析嵌套记录失败: %w", err)
		}
		f.Value = &nested
	default:
		var scalar any
		if err := wire.Value.Decode(&scalar); err != nil {
			return fmt.Errorf("解析字段值失败: %w", err)
		}
		f.Value = scalar
	}
	return nil
}

// Nested 返回关系字段展开出的子记录，非关系字段返回 nil。
func (f FieldValue) Nested() *RawRecord {
	rec, _ := f.Value.(*RawRecord)
	return rec
}

// ScalarString 把标量值转成字符串，空值返回空串。
func (f FieldValue) ScalarString() string {
	switch v := f.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// RawRecord 是平台记录接口返回的原始记录。
type RawRecord struct {
	ID      string                `json:"id" yaml:"id"`
	APIName string                `json:"apiName,omitempty" yaml:"apiName"`
	Fields  map[string]FieldValue `json:"fields" yaml:"fields"`
}

// Field 读取指定字段的包装，字段不存在时第二个返回值为 false。
func (r *RawRecord) Field(name string) (FieldValue, bool) {
	if r == nil || r.Fields == nil {
		return FieldValue{}, false
	}
	fv, ok := r.Fields[name]
	return fv, ok
}

// RelatedListColumn 是相关列表元数据中的单列定义。
type RelatedListColumn struct {
	FieldAPIName string `json:"fieldApiName" yaml:"fieldApiName"`
	Label        string `json:"label" yaml:"label"`
	DataType     string `json:"dataType" yaml:"dataType"`
	Sortable     bool   `json:"sortable,omitempty" yaml:"sortable"`
	// LookupID 仅查找列携带，指向目标记录标识的字段路径。
	LookupID string `json:"lookupId,omitempty" yaml:"lookupId"`
}

// RelatedListMetadata 描述一个相关列表的展示配置。
type RelatedListMetadata struct {
	Label          string              `json:"label,omitempty" yaml:"label"`
	ObjectAPINames []string            `json:"objectApiNames" yaml:"objectApiNames"`
	DisplayColumns []RelatedListColumn `json:"displayColumns" yaml:"displayColumns"`
}

// RelatedListSummary 是对象下单个相关列表的汇总条目。
type RelatedListSummary struct {
	RelatedListID string `json:"relatedListId" yaml:"relatedListId"`
	Label         string `json:"label" yaml:"label"`
	LabelPlural   string `json:"labelPlural,omitempty" yaml:"labelPlural"`
	IconName      string `json:"iconName,omitempty" yaml:"iconName"`
	IconColor     string `json:"iconColor,omitempty" yaml:"iconColor"`
	ObjectAPIName string `json:"objectApiName,omitempty" yaml:"objectApiName"`
}

// RecordPage 是相关列表记录接口的一页结果。
type RecordPage struct {
	Records       []RawRecord `json:"records" yaml:"records"`
	Count         int         `json:"count" yaml:"count"`
	NextPageToken *string     `json:"nextPageToken" yaml:"nextPageToken"`
}
