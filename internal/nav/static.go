package nav

import (
	"context"
	"fmt"

	"crm2grid/internal/grid"
)

// StaticNavigator 返回预设链接，用于演示与测试。
type StaticNavigator struct {
	// URLs 以 页面类型:记录标识 为键。
	URLs map[string]string
	// Err 非空时所有调用直接失败，用于演练导航服务故障。
	Err error
}

func (n *StaticNavigator) GenerateURL(_ context.Context, ref grid.PageReference) (string, error) {
	if n.Err != nil {
		return "", n.Err
	}
	url, ok := n.URLs[StaticKey(ref.Type, ref.Attributes.RecordID)]
	if !ok {
		return "", fmt.Errorf("没有为 %s/%s 预设链接", ref.Type, ref.Attributes.RecordID)
	}
	return url, nil
}

// StaticKey 拼出 StaticNavigator 的查询键。
func StaticKey(pageType, recordID string) string {
	return pageType + ":" + recordID
}
