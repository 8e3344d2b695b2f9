package graph

import (
	"fmt"
	"sort"
)

// maxAliasDepth ограничивает глубину обхода графа при построении карты:
// пути фильтров глубже практически не встречаются, а циклы связей
// (employee → department → manager → …) иначе раскручивались бы бесконечно.
const maxAliasDepth = 4

// BuildAliasMap строит карту алиасов для модели: каждому пути связей
// относительно корня назначается стабильный алиас t0, t1, … Обход
// детерминирован (имена связей сортируются), поэтому карта одинакова от
// запуска к запуску и её можно разделять между процессами через Redis.
// Повторный вход в модель, уже лежащую на текущей цепочке, получает алиас,
// но глубже не раскрывается.
func BuildAliasMap(model *Model) (*AliasMap, error) {
	aliasToPath := map[string]string{}
	pathToAlias := map[string]string{}
	aliasCounter := 0

	var walk func(m *Model, fullPath string, chain []string, depth int) error
	walk = func(m *Model, fullPath string, chain []string, depth int) error {
		if depth > maxAliasDepth {
			return nil
		}
		names := make([]string, 0, len(m.Relations))
		for name := range m.Relations {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			rel := m.Relations[name]
			if rel._ModelRef == nil {
				return fmt.Errorf("relation '%s.%s' is not linked", m.Name, name)
			}

			nextPath := name
			if fullPath != "" {
				nextPath = fullPath + "." + name
			}

			alias := fmt.Sprintf("t%d", aliasCounter)
			aliasCounter++
			aliasToPath[alias] = nextPath
			pathToAlias[nextPath] = alias

			// Ре-энтри в модель на текущей цепочке не раскрываем
			if onChain(chain, rel.Model) {
				continue
			}
			if len(rel._ModelRef.Relations) > 0 {
				if err := walk(rel._ModelRef, nextPath, append(chain, rel.Model), depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(model, "", []string{model.Name}, 0); err != nil {
		return nil, err
	}

	return &AliasMap{
		AliasToPath: aliasToPath,
		PathToAlias: pathToAlias,
	}, nil
}

func onChain(chain []string, model string) bool {
	for _, m := range chain {
		if m == model {
			return true
		}
	}
	return false
}
