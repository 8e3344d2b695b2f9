package graph

import (
	"strings"
	"testing"
)

// swapRegistry подменяет глобальный реестр на время теста.
func swapRegistry(t *testing.T, models map[string]*Model) {
	t.Helper()
	old := Registry
	Registry = models
	for name, m := range models {
		m.Name = name
	}
	FlushAliasMaps()
	t.Cleanup(func() {
		Registry = old
		FlushAliasMaps()
	})
}

func TestLinkRelationsDefaults(t *testing.T) {
	swapRegistry(t, map[string]*Model{
		"order": {
			Table: "orders",
			Relations: map[string]*Relation{
				"customer": {Type: "belongs_to", Model: "customer"},
				"items":    {Type: "has_many", Model: "order_item"},
				"invoice":  {Type: "has_one", Model: "invoice", FK: "order_ref", PK: "number"},
			},
		},
		"customer":   {Table: "customers"},
		"order_item": {Table: "order_items"},
		"invoice":    {Table: "invoices"},
	})

	if err := LinkRelations(); err != nil {
		t.Fatalf("LinkRelations: %v", err)
	}

	order := Registry["order"]
	if got := order.Relations["customer"].FK; got != "customer_id" {
		t.Errorf("belongs_to FK default: got %q, want customer_id", got)
	}
	if got := order.Relations["items"].FK; got != "order_id" {
		t.Errorf("has_many FK default: got %q, want order_id", got)
	}
	// Явно заданные fk/pk линкер не перетирает
	if got := order.Relations["invoice"].FK; got != "order_ref" {
		t.Errorf("explicit FK overwritten: got %q", got)
	}
	if got := order.Relations["invoice"].PK; got != "number" {
		t.Errorf("explicit PK overwritten: got %q", got)
	}
	if got := order.Relations["customer"].PK; got != "id" {
		t.Errorf("PK default: got %q, want id", got)
	}
	if order.Relations["customer"].GetModelRef() != Registry["customer"] {
		t.Error("customer relation not linked to target model")
	}
}

func TestLinkRelationsSnakeCasesModelName(t *testing.T) {
	swapRegistry(t, map[string]*Model{
		"orderItem": {
			Table: "order_items",
			Relations: map[string]*Relation{
				"adjustments": {Type: "has_many", Model: "adjustment"},
			},
		},
		"adjustment": {Table: "adjustments"},
	})

	if err := LinkRelations(); err != nil {
		t.Fatalf("LinkRelations: %v", err)
	}
	if got := Registry["orderItem"].Relations["adjustments"].FK; got != "order_item_id" {
		t.Errorf("FK: got %q, want order_item_id", got)
	}
}

func TestLinkRelationsUnknownModel(t *testing.T) {
	swapRegistry(t, map[string]*Model{
		"order": {
			Table: "orders",
			Relations: map[string]*Relation{
				"ghost": {Type: "belongs_to", Model: "nowhere"},
			},
		},
	})

	err := LinkRelations()
	if err == nil {
		t.Fatal("expected error for relation to unknown model")
	}
	if !strings.Contains(err.Error(), "'nowhere' not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLinkRelationsInvalidType(t *testing.T) {
	swapRegistry(t, map[string]*Model{
		"order": {
			Table: "orders",
			Relations: map[string]*Relation{
				"customer": {Type: "owned_by", Model: "customer"},
			},
		},
		"customer": {Table: "customers"},
	})

	err := LinkRelations()
	if err == nil {
		t.Fatal("expected error for invalid relation type")
	}
	if !strings.Contains(err.Error(), "owned_by") {
		t.Fatalf("unexpected error: %v", err)
	}
}
