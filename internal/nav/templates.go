package nav

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.tmpl
var files embed.FS

// 页面路径模板在进程启动时全部解析，写错直接 panic 暴露。
var pages = template.Must(template.New("pages").ParseFS(files, "*.tmpl"))

// renderPath 渲染指定页面模板得到相对路径。
func renderPath(name string, data any) (string, error) {
	tmpl := pages.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("页面模板 %s 不存在", name)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("渲染页面模板 %s 失败: %w", name, err)
	}
	return strings.TrimSpace(sb.String()), nil
}
