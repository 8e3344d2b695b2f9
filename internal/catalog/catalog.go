package catalog

import "SearchQL/internal/criteria"

// Search связывает имя поиска из API с корневой моделью графа и
// конструктором дескриптора, в который десериализуются критерии запроса.
type Search struct {
	Model string
	New   func() criteria.Descriptor
}

var Searches = map[string]Search{
	"products":  {Model: "product", New: func() criteria.Descriptor { return &ProductSearch{} }},
	"employees": {Model: "employee", New: func() criteria.Descriptor { return &EmployeeSearch{} }},
}
