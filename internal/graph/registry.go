package graph

import "fmt"

var Registry = map[string]*Model{}

func InitRegistry(dir string) error {
	if err := LoadModelsFromDir(dir); err != nil {
		return fmt.Errorf("load error: %w", err)
	}
	if err := LinkRelations(); err != nil {
		return fmt.Errorf("link error: %w", err)
	}
	return nil
}
