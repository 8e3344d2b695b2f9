package criteria

import "strings"

// fetchRoots собирает подсказки жадной загрузки: корневые сегменты всех
// многосегментных путей полей с непустыми значениями. Путь без точки
// подсказки не даёт. Порядок — порядок объявления полей, без дублей,
// чтобы порядок применения был детерминированным.
func fetchRoots(fields []Field, d Descriptor) []string {
	var roots []string
	seen := make(map[string]struct{})

	add := func(path string) {
		i := strings.IndexByte(path, '.')
		if i <= 0 {
			return
		}
		root := path[:i]
		if _, ok := seen[root]; ok {
			return
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}

	for _, f := range fields {
		// Сбой доступа здесь не фатален: подсказки влияют только на
		// эффективность, ошибку поднимет компиляция этого же поля.
		v, err := fieldValue(f, d)
		if err != nil || isNil(v) {
			continue
		}
		if f.Kind == KindTerm {
			s, ok := v.(string)
			if !ok || strings.TrimSpace(s) == "" {
				continue
			}
		}
		for _, p := range f.Paths {
			add(p)
		}
	}
	return roots
}
