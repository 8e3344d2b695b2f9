package graph

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Разрешённые ключи для объектов
var allowedModelKeys = map[string]bool{
	"table":        true,
	"relations":    true,
	"primary_keys": true,
}

var allowedRelationKeys = map[string]bool{
	"model": true,
	"type":  true,
	"fk":    true,
	"pk":    true,
	"where": true,
}

var allowedRelationTypeValues = map[string]bool{
	"belongs_to": true,
	"has_one":    true,
	"has_many":   true,
}

func validateYAMLNode(node *yaml.Node, context string) error {
	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			if err := validateYAMLNode(child, "model"); err != nil {
				return err
			}
		}

	case yaml.MappingNode:
		var allowedKeys map[string]bool
		switch context {
		case "model":
			allowedKeys = allowedModelKeys
		case "relation":
			allowedKeys = allowedRelationKeys
		default:
			allowedKeys = nil // свободная форма
		}

		for i := 0; i < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			valNode := node.Content[i+1]
			key := keyNode.Value

			if allowedKeys != nil && !allowedKeys[key] {
				return fmt.Errorf("unknown key '%s' in %s", key, context)
			}

			if context == "relation" && key == "type" {
				if !allowedRelationTypeValues[valNode.Value] {
					return fmt.Errorf("unknown relation type '%s'", valNode.Value)
				}
			}

			// Определяем новый контекст
			nextContext := context
			if context == "model" && key == "relations" {
				nextContext = "relations-map"
			} else if context == "relations-map" {
				nextContext = "relation"
			}

			if err := validateYAMLNode(valNode, nextContext); err != nil {
				return err
			}
		}

	case yaml.SequenceNode:
		for _, item := range node.Content {
			if err := validateYAMLNode(item, context); err != nil {
				return err
			}
		}

	case yaml.ScalarNode:
		// скаляры не валидируем — ключи уже проверены при разборе MappingNode
	}

	return nil
}
