package grid

import (
	"context"

	"go.uber.org/zap"
)

const (
	// PageTypeRecord 是单条记录详情页的页面类型。
	PageTypeRecord = "standard__recordPage"
	// PageTypeRecordRelationship 是相关列表完整视图的页面类型。
	PageTypeRecordRelationship = "standard__recordRelationshipPage"

	ActionView = "view"
)

// PageReference 描述一次页面跳转意图，交给导航服务换取 URL。
type PageReference struct {
	Type       string         `json:"type"`
	Attributes PageAttributes `json:"attributes"`
}

// PageAttributes 是页面意图的参数集合，不同页面类型使用其中一部分。
type PageAttributes struct {
	RecordID            string `json:"recordId,omitempty"`
	ObjectAPIName       string `json:"objectApiName,omitempty"`
	RelationshipAPIName string `json:"relationshipApiName,omitempty"`
	ActionName          string `json:"actionName,omitempty"`
}

// Navigator 把页面意图换成可跳转的 URL，由外部导航服务实现。
type Navigator interface {
	GenerateURL(ctx context.Context, ref PageReference) (string, error)
}

// RecordPageReference 构造记录详情页意图，对象名可为空，由平台按标识定位。
func RecordPageReference(recordID string) PageReference {
	return PageReference{
		Type: PageTypeRecord,
		Attributes: PageAttributes{
			RecordID:   recordID,
			ActionName: ActionView,
		},
	}
}

// RelatedListPageReference 构造父记录下某个关系完整视图的页面意图。
func RelatedListPageReference(parentRecordID, parentObjectAPIName, relationshipName string) PageReference {
	return PageReference{
		Type: PageTypeRecordRelationship,
		Attributes: PageAttributes{
			RecordID:            parentRecordID,
			ObjectAPIName:       parentObjectAPIName,
			RelationshipAPIName: relationshipName,
			ActionName:          ActionView,
		},
	}
}

// ViewAllURL 生成“查看全部”链接，任何失败都降级为空串并记日志。
func ViewAllURL(ctx context.Context, nav Navigator, logger *zap.Logger, parentRecordID, parentObjectAPIName, relationshipName string) string {
	if nav == nil || parentRecordID == "" {
		return ""
	}
	url, err := nav.GenerateURL(ctx, RelatedListPageReference(parentRecordID, parentObjectAPIName, relationshipName))
	if err != nil {
		if logger != nil {
			logger.Warn("generate view-all url failed",
				zap.String("relationship", relationshipName),
				zap.Error(err))
		}
		return ""
	}
	return url
}
