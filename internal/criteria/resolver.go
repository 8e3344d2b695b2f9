package criteria

import "strings"

// traversals — кэш обходов одной сборки: накопленный префикс пути связей →
// уже материализованная позиция. Не переживает сборку и не разделяется
// между конкурентными сборками.
type traversals struct {
	eng   Engine
	root  Position
	cache map[string]Position
}

func newTraversals(eng Engine) *traversals {
	return &traversals{
		eng:   eng,
		root:  eng.Root(),
		cache: make(map[string]Position),
	}
}

// resolve разбирает путь вида "supplier.address.city": все сегменты, кроме
// последнего, — переходы по связям, последний — терминальный атрибут.
// Каждый префикс материализуется не более одного раза на сборку: второй
// запрос того же префикса обслуживается из кэша, поэтому несколько полей,
// фильтрующих через одну связь, порождают ровно один переход по ней.
func (t *traversals) resolve(path string) (Column, error) {
	segments := strings.Split(path, ".")
	current := t.root
	prefix := ""
	for _, seg := range segments[:len(segments)-1] {
		if prefix == "" {
			prefix = seg
		} else {
			prefix += "." + seg
		}
		if pos, ok := t.cache[prefix]; ok {
			current = pos
			continue
		}
		pos, err := t.eng.Traverse(current, seg)
		if err != nil {
			return nil, err
		}
		t.cache[prefix] = pos
		current = pos
	}
	return t.eng.Column(current, segments[len(segments)-1])
}
