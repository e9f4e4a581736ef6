package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"crm2grid/internal/app"
)

// renderView 输出完整视图：标题行、行数据表格、查看全部链接。
func renderView(w io.Writer, vm app.ViewModel, format string) error {
	switch format {
	case "json":
		return renderJSON(w, vm)
	case "csv":
		return renderRowsCSV(w, vm)
	case "table":
		fmt.Fprintf(w, "%s (%d)\n", vm.Title, vm.Count)
		if vm.HasError {
			fmt.Fprintln(w, "部分数据源加载失败，以下为降级结果")
		}
		renderRowsTable(w, vm)
		if vm.ViewAllURL != "" {
			fmt.Fprintf(w, "查看全部: %s\n", vm.ViewAllURL)
		}
		return nil
	default:
		return fmt.Errorf("不支持的输出格式: %s", format)
	}
}

func renderColumns(w io.Writer, vm app.ViewModel, format string) error {
	switch format {
	case "json":
		return renderJSON(w, vm.Columns)
	case "csv":
		fmt.Fprintln(w, "label,fieldName,type,sortable")
		for _, col := range vm.Columns {
			cells := []string{col.Label, col.FieldName, string(col.Type), strconv.FormatBool(col.Sortable)}
			for i, c := range cells {
				cells[i] = escapeCSV(c)
			}
			fmt.Fprintln(w, strings.Join(cells, ","))
		}
		return nil
	case "table":
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Label", "Field Name", "Type", "Sortable"})
		for _, col := range vm.Columns {
			t.AppendRow(table.Row{col.Label, col.FieldName, col.Type, col.Sortable})
		}
		t.Render()
		fmt.Fprintf(w, "(%d columns)\n", len(vm.Columns))
		return nil
	default:
		return fmt.Errorf("不支持的输出格式: %s", format)
	}
}

func renderRows(w io.Writer, vm app.ViewModel, format string) error {
	switch format {
	case "json":
		return renderJSON(w, vm.Rows)
	case "csv":
		return renderRowsCSV(w, vm)
	case "table":
		renderRowsTable(w, vm)
		return nil
	default:
		return fmt.Errorf("不支持的输出格式: %s", format)
	}
}

func renderRowsTable(w io.Writer, vm app.ViewModel) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"Id"}
	for _, col := range vm.Columns {
		header = append(header, col.Label)
	}
	t.AppendHeader(header)

	for _, row := range vm.Rows {
		cells := table.Row{row.ID()}
		for _, col := range vm.Columns {
			cells = append(cells, formatCell(row[col.FieldName]))
		}
		t.AppendRow(cells)
	}
	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(vm.Rows))
}

func renderRowsCSV(w io.Writer, vm app.ViewModel) error {
	header := []string{"id"}
	for _, col := range vm.Columns {
		header = append(header, col.FieldName)
	}
	fmt.Fprintln(w, strings.Join(header, ","))

	for _, row := range vm.Rows {
		cells := []string{escapeCSV(row.ID())}
		for _, col := range vm.Columns {
			cells = append(cells, escapeCSV(formatCell(row[col.FieldName])))
		}
		fmt.Fprintln(w, strings.Join(cells, ","))
	}
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatCell 把投影单元格值转成展示文本，缺失值输出空串。
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
