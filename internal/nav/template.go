package nav

import (
	"context"
	"fmt"
	"strings"

	"crm2grid/internal/grid"
)

const (
	tmplRecordPage      = "record_page.tmpl"
	tmplRelatedListPage = "related_list_page.tmpl"
)

// TemplateNavigator 用内置路径模板拼出跳转 URL，不依赖外部服务。
type TemplateNavigator struct {
	baseURL string
}

// NewTemplateNavigator 构建模板导航器，baseURL 形如 https://org.example.com。
func NewTemplateNavigator(baseURL string) *TemplateNavigator {
	return &TemplateNavigator{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// GenerateURL 按页面类型选择模板并渲染完整 URL。
func (n *TemplateNavigator) GenerateURL(_ context.Context, ref grid.PageReference) (string, error) {
	name, err := templateFor(ref.Type)
	if err != nil {
		return "", err
	}
	if err := validateRef(ref); err != nil {
		return "", err
	}
	path, err := renderPath(name, ref.Attributes)
	if err != nil {
		return "", err
	}
	return n.baseURL + path, nil
}

func templateFor(pageType string) (string, error) {
	switch pageType {
	case grid.PageTypeRecord:
		return tmplRecordPage, nil
	case grid.PageTypeRecordRelationship:
		return tmplRelatedListPage, nil
	default:
		return "", fmt.Errorf("不支持的页面类型 %q", pageType)
	}
}

func validateRef(ref grid.PageReference) error {
	switch ref.Type {
	case grid.PageTypeRecord:
		if ref.Attributes.RecordID == "" {
			return fmt.Errorf("页面类型 %s 缺少记录标识", ref.Type)
		}
	case grid.PageTypeRecordRelationship:
		if ref.Attributes.RecordID == "" || ref.Attributes.ObjectAPIName == "" || ref.Attributes.RelationshipAPIName == "" {
			return fmt.Errorf("页面类型 %s 需要记录标识、对象名与关系名", ref.Type)
		}
	}
	return nil
}
