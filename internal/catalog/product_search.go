package catalog

import "SearchQL/internal/criteria"

// ProductSearch — критерии поиска по каталогу товаров.
type ProductSearch struct {
	Term         string          `json:"term"`
	PriceRange   *criteria.Range `json:"price_range"`
	StatusList   []string        `json:"status_list"`
	CategoryID   *int64          `json:"category_id"`
	SupplierCity string          `json:"supplier_city"`
}

func (*ProductSearch) SearchFields() []criteria.Field {
	return []criteria.Field{
		criteria.Term("term", []string{"name", "description"}, func(d criteria.Descriptor) any {
			return d.(*ProductSearch).Term
		}),
		criteria.Ranged("price_range", "price", func(d criteria.Descriptor) any {
			return d.(*ProductSearch).PriceRange
		}),
		criteria.Path("status_list", "status", func(d criteria.Descriptor) any {
			return d.(*ProductSearch).StatusList
		}),
		criteria.Plain("category_id", func(d criteria.Descriptor) any {
			if p := d.(*ProductSearch).CategoryID; p != nil {
				return *p
			}
			return nil
		}),
		criteria.PathLike("supplier_city", "supplier.address.city", func(d criteria.Descriptor) any {
			if s := d.(*ProductSearch).SupplierCity; s != "" {
				return s
			}
			return nil
		}),
	}
}
