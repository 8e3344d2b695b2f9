package engine

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"SearchQL/internal/criteria"
	"SearchQL/internal/graph"
)

// position — позиция обхода: модель, SQL-алиас и путь связей от корня.
type position struct {
	model *graph.Model
	alias string
	path  string
}

// SQLEngine реализует criteria.Engine поверх графа сущностей и squirrel.
// Экземпляр живёт одну сборку запроса: накапливает JOIN-ы и флаг distinct.
// Переходы НЕ дедуплицируются — это обязанность кэша обходов компилятора;
// повторный Traverse того же префикса честно породит второй JOIN.
type SQLEngine struct {
	model    *graph.Model
	aliases  *graph.AliasMap
	joins    []*graph.JoinSpec
	fetched  map[string]bool
	distinct bool
	extra    int // счётчик запасных алиасов для путей вне карты
}

func New(m *graph.Model, aliases *graph.AliasMap) *SQLEngine {
	return &SQLEngine{
		model:   m,
		aliases: aliases,
		fetched: map[string]bool{},
	}
}

func (e *SQLEngine) Root() criteria.Position {
	return position{model: e.model, alias: "main"}
}

func (e *SQLEngine) Traverse(from criteria.Position, relation string) (criteria.Position, error) {
	pos, ok := from.(position)
	if !ok {
		return nil, fmt.Errorf("engine: foreign position %T", from)
	}
	rel := pos.model.GetRelation(relation)
	if rel == nil || rel.GetModelRef() == nil {
		return nil, fmt.Errorf("engine: unknown relation '%s' on model '%s'", relation, pos.model.Name)
	}

	fullPath := relation
	if pos.path != "" {
		fullPath = pos.path + "." + relation
	}
	alias, ok := e.aliases.PathToAlias[fullPath]
	if !ok {
		// путь глубже карты алиасов — выдаём запасной алиас
		alias = fmt.Sprintf("x%d", e.extra)
		e.extra++
	}

	e.joins = append(e.joins, joinSpecFor(rel, pos.alias, alias))
	return position{model: rel.GetModelRef(), alias: alias, path: fullPath}, nil
}

func (e *SQLEngine) Column(at criteria.Position, name string) (criteria.Column, error) {
	pos, ok := at.(position)
	if !ok {
		return nil, fmt.Errorf("engine: foreign position %T", at)
	}
	if name == "" {
		return nil, fmt.Errorf("engine: empty column name on model '%s'", pos.model.Name)
	}
	return pos.alias + "." + name, nil
}

// Fetch добавляет жадный LEFT JOIN связи корня в отдельном пространстве
// алиасов f<n>. Повторная жадная загрузка той же связи — ошибка; она
// не фатальна для вызывающего (компилятор пропускает сбойные подсказки).
func (e *SQLEngine) Fetch(relation string) error {
	rel := e.model.GetRelation(relation)
	if rel == nil || rel.GetModelRef() == nil {
		return fmt.Errorf("engine: unknown relation '%s' on model '%s'", relation, e.model.Name)
	}
	if e.fetched[relation] {
		return fmt.Errorf("engine: relation '%s' already fetched", relation)
	}
	alias := fmt.Sprintf("f%d", len(e.fetched))
	e.fetched[relation] = true

	spec := joinSpecFor(rel, "main", alias)
	spec.Fetch = true
	e.joins = append(e.joins, spec)
	return nil
}

func (e *SQLEngine) Distinct() {
	e.distinct = true
}

func joinSpecFor(rel *graph.Relation, parentAlias, alias string) *graph.JoinSpec {
	var on string
	switch rel.Type {
	case "belongs_to":
		// parent.FK = alias.PK
		on = fmt.Sprintf("%s.%s = %s.%s", parentAlias, rel.FK, alias, rel.PK)
	default: // has_one, has_many
		// alias.FK = parent.PK
		on = fmt.Sprintf("%s.%s = %s.%s", alias, rel.FK, parentAlias, rel.PK)
	}
	return &graph.JoinSpec{
		Table:    rel.GetModelRef().Table,
		Alias:    alias,
		On:       on,
		JoinType: "LEFT JOIN",
		Where:    expandWhereAlias(rel.Where, alias),
		Distinct: rel.Type == "has_many",
	}
}

// expandWhereAlias подставляет алиас join-а в условие связи: колонки в
// конфиге пишутся с ведущей точкой (".deleted_at IS NULL" → "t0.deleted_at IS NULL").
func expandWhereAlias(where, alias string) string {
	if where == "" {
		return ""
	}
	return strings.ReplaceAll(where, ".", alias+".")
}

// --- конструкторы листовых выражений ---

func (e *SQLEngine) Equal(col criteria.Column, v any) squirrel.Sqlizer {
	return squirrel.Eq{colName(col): v}
}

// ContainsFold: ILIKE по уже приведённой к нижнему регистру подстроке,
// обёрнутой в wildcard с обеих сторон.
func (e *SQLEngine) ContainsFold(col criteria.Column, needle string) squirrel.Sqlizer {
	return squirrel.ILike{colName(col): "%" + needle + "%"}
}

func (e *SQLEngine) Between(col criteria.Column, from, to any) squirrel.Sqlizer {
	return squirrel.Expr(colName(col)+" BETWEEN ? AND ?", from, to)
}

func (e *SQLEngine) GreaterOrEqual(col criteria.Column, v any) squirrel.Sqlizer {
	return squirrel.GtOrEq{colName(col): v}
}

func (e *SQLEngine) LessOrEqual(col criteria.Column, v any) squirrel.Sqlizer {
	return squirrel.LtOrEq{colName(col): v}
}

// In: squirrel.Eq со срезом значений раскрывается в IN (...).
func (e *SQLEngine) In(col criteria.Column, values []any) squirrel.Sqlizer {
	return squirrel.Eq{colName(col): values}
}

func colName(col criteria.Column) string {
	s, _ := col.(string)
	return s
}
