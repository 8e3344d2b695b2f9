package criteria

import (
	"github.com/Masterminds/squirrel"

	"SearchQL/internal/logger"
)

// Build — точка входа компилятора: превращает дескриптор в одно выражение
// движка. Порядок сборки: кэшированные записи формы → подсказки жадной
// загрузки → покомпонентная компиляция полей с общим кэшем обходов →
// свёртка в конъюнкцию. Кэш обходов и список предикатов создаются заново
// на каждый вызов и не разделяются между конкурентными сборками.
func Build(eng Engine, d Descriptor) (squirrel.Sqlizer, error) {
	fields, err := fieldsFor(d)
	if err != nil {
		return nil, err
	}

	// Жадная загрузка — до компиляции предикатов. Сбой применения не
	// фатален; если хоть одна подсказка применена, результат помечается
	// distinct: жадный join to-many связи размножает строки.
	applied := false
	for _, rel := range fetchRoots(fields, d) {
		if err := eng.Fetch(rel); err != nil {
			logger.Debug("criteria_fetch_skipped", map[string]any{
				"relation": rel,
				"error":    err.Error(),
			})
			continue
		}
		applied = true
	}
	if applied {
		eng.Distinct()
	}

	tr := newTraversals(eng)
	var preds []pred
	for _, f := range fields {
		value, err := fieldValue(f, d)
		if err != nil {
			return nil, err
		}
		if isNil(value) {
			continue
		}
		p, err := compileField(f, value, tr)
		if err != nil {
			return nil, err
		}
		if p != nil {
			preds = append(preds, p)
		}
	}

	switch len(preds) {
	case 0:
		return translate(eng, truePred{}), nil
	case 1:
		return translate(eng, preds[0]), nil
	default:
		return translate(eng, andPred{kids: preds}), nil
	}
}
