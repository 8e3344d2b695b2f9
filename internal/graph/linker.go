package graph

import (
	"fmt"
	"unicode"
)

func LinkRelations() error {
	for modelName, model := range Registry {
		for relName, rel := range model.Relations {
			targetModel, ok := Registry[rel.Model]
			if !ok {
				return fmt.Errorf("invalid relation: model '%s' not found in '%s.%s'", rel.Model, modelName, relName)
			}
			rel._ModelRef = targetModel

			if rel.Type != "has_many" && rel.Type != "has_one" && rel.Type != "belongs_to" {
				return fmt.Errorf("relation '%s.%s' must have valid Type (has_many, has_one, belongs_to), got '%s'", modelName, relName, rel.Type)
			}

			// Присваиваем FK по умолчанию, если не задан
			if rel.FK == "" {
				switch rel.Type {
				case "belongs_to":
					// FK в текущей модели, указывает на связанную
					rel.FK = relName + "_id"
				case "has_one", "has_many":
					// FK в связанной модели, указывает на текущую
					rel.FK = toSnakeCase(modelName) + "_id"
				}
			}

			// Присваиваем PK по умолчанию, если не задан
			if rel.PK == "" {
				rel.PK = "id"
			}

			model.Relations[relName] = rel
		}
	}
	return nil
}

func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}
