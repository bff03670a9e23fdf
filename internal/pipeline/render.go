package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sparkify/warehouse-etl/internal/warehouse"
)

// queryResult holds one fully fetched analytics result set.
type queryResult struct {
	Columns []string
	Rows    [][]string
}

// fetchAll executes a reporting query and drains its result set into
// formatted strings.
func (p *Pipeline) fetchAll(ctx context.Context, q warehouse.Query, start, end time.Time) (*queryResult, error) {
	rows, err := p.exec.Query(ctx, q.SQL, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &queryResult{}
	for _, fd := range rows.FieldDescriptions() {
		result.Columns = append(result.Columns, fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprint(val)
	}
}

// renderTable writes a column-aligned text table.
func renderTable(w io.Writer, columns []string, rows [][]string) {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	writeRow(columns)
	separators := make([]string, len(columns))
	for i := range columns {
		separators[i] = strings.Repeat("-", widths[i])
	}
	writeRow(separators)
	for _, row := range rows {
		writeRow(row)
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
	}
}
