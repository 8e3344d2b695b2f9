package engine

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// BuildCountQuery собирает COUNT-запрос с теми же JOIN-ами и предикатом.
// При размножающих строках JOIN-ах считаем COUNT(DISTINCT main.<pk>).
func (e *SQLEngine) BuildCountQuery(pred squirrel.Sqlizer) (squirrel.SelectBuilder, error) {
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
		pk := e.model.GetPrimaryKeys()[0]
		sb = sb.Column(fmt.Sprintf("COUNT(DISTINCT main.%s)", pk))
	} else {
		sb = sb.Column("COUNT(*)")
	}

	if pred != nil {
		sb = sb.Where(pred)
	}
	return sb, nil
}
