package criteria

import "github.com/Masterminds/squirrel"

// Промежуточное представление предиката: типизированное дерево листьев
// и комбинаторов. Компилятор строит его без обращения к конструкторам
// движка; в родные выражения движка дерево переводится один раз на
// границе композиции (translate в builder.go).
type pred interface {
	isPred()
}

type (
	truePred struct{}

	andPred struct{ kids []pred }
	orPred  struct{ kids []pred }

	equalPred struct {
		col Column
		val any
	}
	// containsPred — регистронезависимое вхождение; needle уже приведён
	// к нижнему регистру компилятором.
	containsPred struct {
		col    Column
		needle string
	}
	betweenPred struct {
		col      Column
		from, to any
	}
	gtePred struct {
		col Column
		val any
	}
	ltePred struct {
		col Column
		val any
	}
	inPred struct {
		col  Column
		vals []any
	}
)

func (truePred) isPred()     {}
func (andPred) isPred()      {}
func (orPred) isPred()       {}
func (equalPred) isPred()    {}
func (containsPred) isPred() {}
func (betweenPred) isPred()  {}
func (gtePred) isPred()      {}
func (ltePred) isPred()      {}
func (inPred) isPred()       {}

// alwaysTrue — нейтральный предикат: пустой дескриптор вырождается в
// нефильтрованный запрос, а не в ошибку или пустой результат.
var alwaysTrue = squirrel.Expr("TRUE")

// translate переводит IR в выражения движка.
func translate(eng Engine, p pred) squirrel.Sqlizer {
	switch n := p.(type) {
	case truePred:
		return alwaysTrue
	case andPred:
		conj := make(squirrel.And, 0, len(n.kids))
		for _, kid := range n.kids {
			conj = append(conj, translate(eng, kid))
		}
		return conj
	case orPred:
		disj := make(squirrel.Or, 0, len(n.kids))
		for _, kid := range n.kids {
			disj = append(disj, translate(eng, kid))
		}
		return disj
	case equalPred:
		return eng.Equal(n.col, n.val)
	case containsPred:
		return eng.ContainsFold(n.col, n.needle)
	case betweenPred:
		return eng.Between(n.col, n.from, n.to)
	case gtePred:
		return eng.GreaterOrEqual(n.col, n.val)
	case ltePred:
		return eng.LessOrEqual(n.col, n.val)
	case inPred:
		return eng.In(n.col, n.vals)
	}
	return alwaysTrue
}
