package engine

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ScanRows преобразует результат SELECT main.* в []map[string]any,
// ключи — имена колонок корневой таблицы.
func ScanRows(rows pgx.Rows) ([]map[string]any, error) {
	if rows == nil {
		return nil, fmt.Errorf("rows is nil")
	}
	fields := rows.FieldDescriptions()
	out := make([]map[string]any, 0, 64)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			if i >= len(vals) {
				break
			}
			row[fd.Name] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
