package itests

import (
	"encoding/json"
	"net/http"
	"testing"
)

// Подсчет всех товаров без фильтров: пустые критерии вырождаются в TRUE.
func Test_Count_Products_All(t *testing.T) {
	status, body := postJSON(t, "/api/count", map[string]any{
		"search":   "products",
		"criteria": map[string]any{},
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d. body=%s", status, string(body))
	}

	var out map[string]int
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid JSON response: %v; body=%s", err, string(body))
	}
	if out["count"] != 3 {
		t.Fatalf("wrong count: got %d, want 3", out["count"])
	}
}

// Подсчет с фильтром через связь: join не должен задваивать строки.
func Test_Count_Products_Filtered(t *testing.T) {
	status, body := postJSON(t, "/api/count", map[string]any{
		"search":   "products",
		"criteria": map[string]any{"supplier_city": "berlin"},
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d. body=%s", status, string(body))
	}

	var out map[string]int
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid JSON response: %v; body=%s", err, string(body))
	}
	if out["count"] != 1 {
		t.Fatalf("wrong count: got %d, want 1", out["count"])
	}
}
