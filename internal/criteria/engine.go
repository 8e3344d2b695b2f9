package criteria

import "github.com/Masterminds/squirrel"

// Position — непрозрачная позиция обхода в графе сущностей, принадлежит
// движку. Column — непрозрачная ссылка на терминальный атрибут.
type (
	Position any
	Column   any
)

// Engine — возможности внешнего движка запросов, которые нужны компилятору.
// Traverse идемпотентен на вызов и НЕ дедуплицирует переходы: за
// дедупликацию в пределах одной сборки отвечает кэш обходов компилятора.
// Выражения движка — squirrel.Sqlizer; конъюнкция и дизъюнкция собираются
// через squirrel.And/squirrel.Or на границе трансляции (builder.go).
type Engine interface {
	// Root возвращает корневую позицию (исходную сущность запроса).
	Root() Position
	// Traverse выполняет left-outer переход по именованной связи.
	// Несуществующая связь — ошибка, она пробрасывается без изменений.
	Traverse(from Position, relation string) (Position, error)
	// Column возвращает ссылку на терминальный атрибут позиции.
	Column(at Position, name string) (Column, error)

	// Fetch просит жадно загрузить связь корня. Ошибка не фатальна:
	// корректность фильтрации от жадной загрузки не зависит.
	Fetch(relation string) error
	// Distinct помечает результат как требующий дедупликации строк.
	Distinct()

	// Конструкторы листовых выражений.
	Equal(col Column, v any) squirrel.Sqlizer
	ContainsFold(col Column, needle string) squirrel.Sqlizer
	Between(col Column, from, to any) squirrel.Sqlizer
	GreaterOrEqual(col Column, v any) squirrel.Sqlizer
	LessOrEqual(col Column, v any) squirrel.Sqlizer
	In(col Column, values []any) squirrel.Sqlizer
}
