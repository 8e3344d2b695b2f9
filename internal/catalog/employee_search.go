package catalog

import "SearchQL/internal/criteria"

// EmployeeSearch — критерии поиска по сотрудникам. Пути manager_name и
// manager_id разделяют префикс department.manager: обе связи на пути
// материализуются в запросе по одному разу.
type EmployeeSearch struct {
	Term          string          `json:"term"`
	HiredRange    *criteria.Range `json:"hired_range"`
	ManagerName   string          `json:"manager_name"`
	ManagerID     *int64          `json:"manager_id"`
	DepartmentIDs []int64         `json:"department_ids"`
}

func (*EmployeeSearch) SearchFields() []criteria.Field {
	return []criteria.Field{
		criteria.Term("term", []string{"name", "department.name"}, func(d criteria.Descriptor) any {
			return d.(*EmployeeSearch).Term
		}),
		criteria.Ranged("hired_range", "hired_on", func(d criteria.Descriptor) any {
			return d.(*EmployeeSearch).HiredRange
		}),
		criteria.PathLike("manager_name", "department.manager.name", func(d criteria.Descriptor) any {
			if s := d.(*EmployeeSearch).ManagerName; s != "" {
				return s
			}
			return nil
		}),
		criteria.Path("manager_id", "department.manager.id", func(d criteria.Descriptor) any {
			if p := d.(*EmployeeSearch).ManagerID; p != nil {
				return *p
			}
			return nil
		}),
		criteria.Path("department_ids", "department_id", func(d criteria.Descriptor) any {
			return d.(*EmployeeSearch).DepartmentIDs
		}),
	}
}
