package grid

import (
	"fmt"

	"crm2grid/internal/domain"
	"crm2grid/internal/platform"
)

// PathError 描述一次查找路径解析失败的位置与原因。
type PathError struct {
	Path    string
	Segment string
	Reason  string
}

func (e *PathError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("解析查找路径 %q 失败: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("解析查找路径 %q 失败: 段 %q %s", e.Path, e.Segment, e.Reason)
}

// ResolveLookupTarget 按查找路径在记录的字段树中下钻，返回目标记录标识。
// 路径 Id 表示记录自身；末尾的 .Id 会被剥掉；其余按字面量点号逐段下钻，
// 每一段都要求字段存在且展开为嵌套记录。任何一步失败都返回 *PathError。
func ResolveLookupTarget(rec *platform.RawRecord, lookupPath string) (string, error) {
	if rec == nil {
		return "", &PathError{Path: lookupPath, Reason: "记录为空"}
	}
	if lookupPath == domain.SelfLookupPath {
		if rec.ID == "" {
			return "", &PathError{Path: lookupPath, Reason: "记录缺少标识"}
		}
		return rec.ID, nil
	}

	path := domain.TrimIDSegment(lookupPath)
	if path == "" {
		return "", &PathError{Path: lookupPath, Reason: "路径为空"}
	}

	cur := rec
	for _, seg := range domain.SplitPath(path) {
		fv, ok := cur.Field(seg)
		if !ok {
			return "", &PathError{Path: lookupPath, Segment: seg, Reason: "字段不存在"}
		}
		nested := fv.Nested()
		if nested == nil {
			return "", &PathError{Path: lookupPath, Segment: seg, Reason: "没有展开的嵌套记录"}
		}
		cur = nested
	}
	if cur.ID == "" {
		return "", &PathError{Path: lookupPath, Segment: path, Reason: "目标记录缺少标识"}
	}
	return cur.ID, nil
}
