package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"SearchQL/internal/catalog"
	"SearchQL/internal/criteria"
	"SearchQL/internal/db"
	"SearchQL/internal/engine"
	"SearchQL/internal/graph"
	"SearchQL/internal/logger"
)

type SearchRequest struct {
	Search   string          `json:"search"`
	Criteria json.RawMessage `json:"criteria"`
	Sorts    []string        `json:"sorts"`
	Offset   uint64          `json:"offset"`
	Limit    uint64          `json:"limit"`
}

// prepare разворачивает именованный поиск: находит модель, строит карту
// алиасов, десериализует критерии в свежий дескриптор и компилирует
// предикат. Возвращённый движок несёт накопленные JOIN-ы запроса.
func prepare(ctx context.Context, name string, rawCriteria json.RawMessage) (*engine.SQLEngine, squirrel.Sqlizer, error) {
	search, ok := catalog.Searches[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown search: %s", name)
	}
	model, ok := graph.Registry[search.Model]
	if !ok {
		return nil, nil, fmt.Errorf("model %s not found for search %s", search.Model, name)
	}

	aliasMap, err := graph.AliasMapFromRedisOrBuild(ctx, model)
	if err != nil {
		return nil, nil, fmt.Errorf("alias map error: %w", err)
	}

	desc := search.New()
	if len(rawCriteria) > 0 {
		if err := json.Unmarshal(rawCriteria, desc); err != nil {
			return nil, nil, fmt.Errorf("invalid criteria: %w", err)
		}
	}

	eng := engine.New(model, aliasMap)
	pred, err := criteria.Build(eng, desc)
	if err != nil {
		return nil, nil, fmt.Errorf("predicate build failed: %w", err)
	}
	return eng, pred, nil
}

// SearchHandler обрабатывает POST /api/search: именованный поиск,
// критерии, сортировка и пагинация в JSON-теле.
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	if r.Method != http.MethodPost {
		logger.Warn("method_not_allowed", map[string]any{
			"endpoint": "/api/search",
			"method":   r.Method,
		})
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid_json", map[string]any{
			"endpoint":   "/api/search",
			"request_id": reqID,
			"error":      err.Error(),
		})
		http.Error(w, "Invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	eng, pred, err := prepare(r.Context(), req.Search, req.Criteria)
	if err != nil {
		logger.Warn("search_prepare_failed", map[string]any{
			"endpoint":   "/api/search",
			"request_id": reqID,
			"search":     req.Search,
			"error":      err.Error(),
		})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sb, err := eng.BuildSearchQuery(pred, req.Sorts, req.Offset, req.Limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Query error: %v", err), http.StatusInternalServerError)
		return
	}
	sqlStr, args, err := sb.ToSql()
	if err != nil {
		http.Error(w, fmt.Sprintf("SQL error: %v", err), http.StatusInternalServerError)
		return
	}
	logger.Debug("sql", map[string]any{
		"endpoint":   "/api/search",
		"request_id": reqID,
		"sql":        sqlStr,
		"args":       args,
	})

	rows, err := db.Pool.Query(r.Context(), sqlStr, args...)
	if err != nil {
		logger.Error("db_query_failed", map[string]any{
			"endpoint":   "/api/search",
			"request_id": reqID,
			"error":      err.Error(),
		})
		http.Error(w, fmt.Sprintf("DB error: %v", err), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	items, err := engine.ScanRows(rows)
	if err != nil {
		http.Error(w, fmt.Sprintf("Scan error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		logger.Error("write_response_failed", map[string]any{
			"endpoint":   "/api/search",
			"request_id": reqID,
			"error":      err.Error(),
		})
	}
}
