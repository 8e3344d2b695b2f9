package engine

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// BuildSearchQuery собирает итоговый SELECT: FROM с алиасом main,
// накопленные LEFT JOIN-ы, предикат компилятора, сортировка с подстановкой
// алиасов и пагинация. DISTINCT включается, если сработала жадная загрузка
// или запрос тянет to-many связь.
func (e *SQLEngine) BuildSearchQuery(
	pred squirrel.Sqlizer,
	sorts []string, // ["price ASC", "supplier.name DESC"]
	offset, limit uint64,
) (squirrel.SelectBuilder, error) {
	sb := squirrel.SelectBuilder{}.PlaceholderFormat(squirrel.Dollar)
	sb = sb.From(fmt.Sprintf("%s AS main", e.model.Table))

	hasDistinct := e.distinct
	for _, join := range e.joins {
		onClause := join.On
		if join.Where != "" {
			onClause = fmt.Sprintf("(%s) AND (%s)", join.On, join.Where)
		}
		sb = sb.LeftJoin(fmt.Sprintf("%s AS %s ON %s", join.Table, join.Alias, onClause))
		if join.Distinct {
			hasDistinct = true
		}
	}

	if hasDistinct {
		pkFields := e.model.GetPrimaryKeys()
		if len(pkFields) == 1 {
			sb = sb.Distinct()
		} else {
			// Составной ключ — DISTINCT ON, в PostgreSQL он стоит сразу
			// после SELECT, перед списком колонок
			qualified := make([]string, len(pkFields))
			for i, pk := range pkFields {
				qualified[i] = "main." + pk
			}
			sb = sb.Options(fmt.Sprintf("DISTINCT ON (%s)", strings.Join(qualified, ", ")))
		}
	}
	sb = sb.Columns("main.*")

	if pred != nil {
		sb = sb.Where(pred)
	}

	for _, s := range sorts {
		expr, ok := e.resolveSort(s)
		if !ok {
			continue
		}
		sb = sb.OrderBy(expr)
	}

	if limit > 0 {
		sb = sb.Limit(limit)
	}
	if offset > 0 {
		sb = sb.Offset(offset)
	}

	return sb, nil
}

// resolveSort переводит "supplier.name DESC" в "t0.name DESC", подменяя
// префикс пути на алиас из карты. Путь без точки — колонка корня.
// Направление пропускается через allowlist, чтобы сортировка из запроса
// не стала каналом SQL-инъекции.
func (e *SQLEngine) resolveSort(s string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), " ", 2)
	fieldPath := parts[0]
	dir := ""
	if len(parts) > 1 {
		switch strings.ToUpper(strings.TrimSpace(parts[1])) {
		case "ASC":
			dir = "ASC"
		case "DESC":
			dir = "DESC"
		default:
			return "", false
		}
	}
	if fieldPath == "" || !identLike(fieldPath) {
		return "", false
	}

	var expr string
	if idx := strings.LastIndexByte(fieldPath, '.'); idx >= 0 {
		path := fieldPath[:idx]
		column := fieldPath[idx+1:]
		alias, ok := e.aliases.PathToAlias[path]
		if !ok {
			return "", false
		}
		expr = alias + "." + column
	} else {
		expr = "main." + fieldPath
	}
	if dir != "" {
		expr += " " + dir
	}
	return expr, true
}

// identLike допускает только имена из букв, цифр, '_' и '.'.
func identLike(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
