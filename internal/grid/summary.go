package grid

import (
	"strings"

	"crm2grid/internal/platform"
)

// SelectSummary 在汇总列表中按关系名挑出匹配条目，匹配不区分大小写。
// 没有命中时返回 nil，调用方按无图标无标题降级渲染。
func SelectSummary(summaries []platform.RelatedListSummary, relationshipName string) *platform.RelatedListSummary {
	if relationshipName == "" {
		return nil
	}
	for i := range summaries {
		if strings.EqualFold(summaries[i].RelatedListID, relationshipName) {
			s := summaries[i]
			return &s
		}
	}
	return nil
}
