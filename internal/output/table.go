package output

import (
	"fmt"
	"io"

	"github.com/rodaine/table"
)

// RenderTable renders rows as an aligned table. header styles the header cells.
func RenderTable(w io.Writer, columns []Column, rows []map[string]string, header func(string) string) {
	if len(rows) == 0 {
		return
	}

	headers := make([]interface{}, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}

	tbl := table.New(headers...).WithWriter(w)
	if header != nil {
		tbl.WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return header(fmt.Sprintf(format, vals...))
		})
	}

	for _, row := range rows {
		rowData := make([]interface{}, len(columns))
		for i, col := range columns {
			value := row[col.Key]
			if col.Width > 0 {
				value = TruncateString(value, col.Width)
			}
			rowData[i] = value
		}
		tbl.AddRow(rowData...)
	}

	tbl.Print()
}

// TruncateString truncates a string to maxLen runes and adds "..." if needed
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
