package criteria

import (
	"reflect"
	"strings"

	"SearchQL/internal/logger"
)

// compileField строит IR-предикат для одного поля по таблице намерений.
// Возвращает nil без ошибки, если поле не вносит вклада (пустой терм,
// диапазон без границ, пустая коллекция).
func compileField(f Field, value any, tr *traversals) (pred, error) {
	switch f.Kind {
	case KindTerm:
		return compileTerm(f, value, tr)
	case KindRange:
		return compileRange(f, value, tr)
	default:
		return compilePath(f, value, tr)
	}
}

// compileTerm: непустой текст → по одному листу на каждый путь, OR между
// ними. OpLike даёт регистронезависимое вхождение, OpEqual — равенство.
func compileTerm(f Field, value any, tr *traversals) (pred, error) {
	term, ok := value.(string)
	if !ok || strings.TrimSpace(term) == "" {
		return nil, nil
	}
	needle := strings.ToLower(term)

	leaves := make([]pred, 0, len(f.Paths))
	for _, path := range f.Paths {
		col, err := tr.resolve(path)
		if err != nil {
			return nil, err
		}
		if f.Op == OpLike {
			leaves = append(leaves, containsPred{col: col, needle: needle})
		} else {
			leaves = append(leaves, equalPred{col: col, val: term})
		}
	}
	if len(leaves) == 1 {
		return leaves[0], nil
	}
	return orPred{kids: leaves}, nil
}

// compileRange: обе границы → between, одна граница → одностороннее
// сравнение, без границ — вклада нет. Приведение типов не выполняется:
// границы и домен атрибута должны совпадать заранее.
func compileRange(f Field, value any, tr *traversals) (pred, error) {
	var r Range
	switch v := value.(type) {
	case *Range:
		r = *v
	case Range:
		r = v
	default:
		return nil, nil
	}
	hasFrom := !isNil(r.From)
	hasTo := !isNil(r.To)
	if !hasFrom && !hasTo {
		return nil, nil
	}

	col, err := tr.resolve(f.Paths[0])
	if err != nil {
		return nil, err
	}
	switch {
	case hasFrom && hasTo:
		return betweenPred{col: col, from: r.From, to: r.To}, nil
	case hasFrom:
		return gtePred{col: col, val: r.From}, nil
	default:
		return ltePred{col: col, val: r.To}, nil
	}
}

// compilePath: срез → членство (пустой срез вклада не даёт); текст с
// OpLike → вхождение; иначе равенство. Запрошенный OpLike на нетекстовом
// значении понижается до равенства — с предупреждением в лог, чтобы
// расхождение операции и типа не пряталось молча.
func compilePath(f Field, value any, tr *traversals) (pred, error) {
	if items, isList := asList(value); isList {
		if len(items) == 0 {
			return nil, nil
		}
		col, err := tr.resolve(f.Paths[0])
		if err != nil {
			return nil, err
		}
		return inPred{col: col, vals: items}, nil
	}

	col, err := tr.resolve(f.Paths[0])
	if err != nil {
		return nil, err
	}
	if f.Op == OpLike {
		if s, ok := value.(string); ok {
			return containsPred{col: col, needle: strings.ToLower(s)}, nil
		}
		logger.Warn("criteria_like_downgraded", map[string]any{
			"field": f.Name,
			"type":  reflect.TypeOf(value).String(),
		})
	}
	return equalPred{col: col, val: value}, nil
}

// asList разворачивает срезы и массивы в []any. Строки и []byte срезами
// не считаются.
func asList(v any) ([]any, bool) {
	if _, ok := v.(string); ok {
		return nil, false
	}
	if _, ok := v.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
