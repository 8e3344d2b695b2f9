package criteria

import (
	"fmt"
	"reflect"
	"sync"
)

// Кэш форм дескрипторов: ключ — идентичность типа, значение — уже
// нормализованные записи полей. Заполняется лениво и монотонно, записи
// не вытесняются и не изменяются; живёт до конца процесса.
var shapes = struct {
	mu sync.Mutex
	m  map[reflect.Type][]Field
}{m: make(map[reflect.Type][]Field)}

// fieldsFor возвращает записи намерений для формы дескриптора.
// Извлечение (вызов SearchFields + нормализация) выполняется не более
// одного раза на тип: вычисление идёт под мьютексом кэша, поэтому
// конкурентные первые обращения к одной форме не плодят расходящихся
// списков — все вызывающие видят один и тот же результат.
func fieldsFor(d Descriptor) ([]Field, error) {
	t := reflect.TypeOf(d)
	shapes.mu.Lock()
	defer shapes.mu.Unlock()
	if fields, ok := shapes.m[t]; ok {
		return fields, nil
	}
	fields, err := normalizeFields(t, d.SearchFields())
	if err != nil {
		return nil, err
	}
	shapes.m[t] = fields
	return fields, nil
}

// normalizeFields применяет ветку по умолчанию и проверяет инварианты
// объявления. Ошибка здесь — дефект разметки дескриптора, не данных.
func normalizeFields(t reflect.Type, declared []Field) ([]Field, error) {
	fields := make([]Field, len(declared))
	for i, f := range declared {
		if f.Name == "" {
			return nil, fmt.Errorf("criteria: %s: field %d has no name", t, i)
		}
		if f.Get == nil {
			return nil, fmt.Errorf("criteria: %s: field %q has no accessor", t, f.Name)
		}
		// Поле без намерения — одиночный путь по собственному имени, равенство.
		if f.Kind == KindNone {
			f.Kind = KindPath
			f.Paths = []string{f.Name}
			f.Op = OpEqual
		}
		if len(f.Paths) == 0 {
			return nil, fmt.Errorf("criteria: %s: field %q declares no paths", t, f.Name)
		}
		for _, p := range f.Paths {
			if p == "" {
				return nil, fmt.Errorf("criteria: %s: field %q declares an empty path", t, f.Name)
			}
		}
		if f.Kind != KindTerm && len(f.Paths) > 1 {
			return nil, fmt.Errorf("criteria: %s: field %q: multiple paths are only valid for Term", t, f.Name)
		}
		fields[i] = f
	}
	return fields, nil
}

// fieldValue читает значение поля, переводя панику аксессора (обычно
// неверный type assertion) в ошибку с именем поля. Сбой доступа — дефект
// разметки, сборка предиката прерывается целиком.
func fieldValue(f Field, d Descriptor) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("criteria: read field %q: %v", f.Name, r)
		}
	}()
	return f.Get(d), nil
}

// isNil распознаёт как нетипизированный nil, так и nil внутри интерфейса
// (нулевой указатель, nil-срез или nil-map из аксессора).
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}
