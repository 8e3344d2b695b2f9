package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"SearchQL/internal/db"
	"SearchQL/internal/logger"
)

type CountRequest struct {
	Search   string          `json:"search"`
	Criteria json.RawMessage `json:"criteria"`
}

// CountHandler обрабатывает POST /api/count: возвращает количество записей,
// попадающих под те же критерии, что и /api/search.
func CountHandler(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	eng, pred, err := prepare(r.Context(), req.Search, req.Criteria)
	if err != nil {
		logger.Warn("count_prepare_failed", map[string]any{
			"endpoint":   "/api/count",
			"request_id": reqID,
			"search":     req.Search,
			"error":      err.Error(),
		})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sb, err := eng.BuildCountQuery(pred)
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
		"endpoint":   "/api/count",
		"request_id": reqID,
		"sql":        sqlStr,
		"args":       args,
	})

	var count int
	if err := db.Pool.QueryRow(r.Context(), sqlStr, args...).Scan(&count); err != nil {
		http.Error(w, fmt.Sprintf("DB error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"count": count})
}
