package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"SearchQL/internal/graph"
)

// Реестр из трёх моделей, слинкованных вручную — без YAML и без Postgres.
func seedRegistry(t *testing.T) {
	t.Helper()
	old := graph.Registry

	address := &graph.Model{Name: "address", Table: "addresses"}
	supplier := &graph.Model{
		Name:  "supplier",
		Table: "suppliers",
		Relations: map[string]*graph.Relation{
			"address": {Type: "belongs_to", Model: "address", FK: "address_id", PK: "id"},
		},
	}
	supplier.Relations["address"].SetModelRef(address)
	category := &graph.Model{Name: "category", Table: "categories"}
	product := &graph.Model{
		Name:  "product",
		Table: "products",
		Relations: map[string]*graph.Relation{
			"category": {Type: "belongs_to", Model: "category", FK: "category_id", PK: "id"},
			"supplier": {Type: "belongs_to", Model: "supplier", FK: "supplier_id", PK: "id"},
		},
	}
	product.Relations["category"].SetModelRef(category)
	product.Relations["supplier"].SetModelRef(supplier)

	graph.Registry = map[string]*graph.Model{
		"address":  address,
		"supplier": supplier,
		"category": category,
		"product":  product,
	}
	graph.FlushAliasMaps()
	t.Cleanup(func() {
		graph.Registry = old
		graph.FlushAliasMaps()
	})
}

func TestPrepareBuildsPredicateFromCriteria(t *testing.T) {
	seedRegistry(t)

	eng, pred, err := prepare(context.Background(), "products",
		[]byte(`{"term":"phone","supplier_city":"Paris"}`))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	sb, err := eng.BuildSearchQuery(pred, nil, 0, 0)
	if err != nil {
		t.Fatalf("BuildSearchQuery: %v", err)
	}
	sql, args, err := sb.ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	for _, frag := range []string{
		"FROM products AS main",
		"LEFT JOIN suppliers AS",
		"LEFT JOIN addresses AS",
		"main.name ILIKE",
		".city ILIKE",
	} {
		if !strings.Contains(sql, frag) {
			t.Errorf("SQL %q missing %q", sql, frag)
		}
	}
	// подстроки приводятся к нижнему регистру до параметризации
	for _, a := range args {
		s, ok := a.(string)
		if !ok {
			continue
		}
		if strings.ToLower(s) != s {
			t.Errorf("arg %q not lowercased", s)
		}
	}
}

func TestPrepareUnknownSearch(t *testing.T) {
	seedRegistry(t)
	_, _, err := prepare(context.Background(), "invoices", nil)
	if err == nil || !strings.Contains(err.Error(), "unknown search") {
		t.Fatalf("expected unknown search error, got %v", err)
	}
}

func TestPrepareRejectsMalformedCriteria(t *testing.T) {
	seedRegistry(t)
	_, _, err := prepare(context.Background(), "products", []byte(`{"price":`))
	if err == nil || !strings.Contains(err.Error(), "invalid criteria") {
		t.Fatalf("expected invalid criteria error, got %v", err)
	}
}

func TestSearchHandlerMethodGuard(t *testing.T) {
	rec := httptest.NewRecorder()
	SearchHandler(rec, httptest.NewRequest("GET", "/api/search", nil))
	if rec.Code != 405 {
		t.Errorf("GET status: got %d, want 405", rec.Code)
	}
}

func TestSearchHandlerInvalidJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/search", strings.NewReader("{"))
	SearchHandler(rec, req)
	if rec.Code != 400 {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestSearchHandlerUnknownSearch(t *testing.T) {
	seedRegistry(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/search", strings.NewReader(`{"search":"nope"}`))
	SearchHandler(rec, req)
	if rec.Code != 400 {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown search") {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestCountHandlerMethodGuard(t *testing.T) {
	rec := httptest.NewRecorder()
	CountHandler(rec, httptest.NewRequest("GET", "/api/count", nil))
	if rec.Code != 405 {
		t.Errorf("GET status: got %d, want 405", rec.Code)
	}
}
