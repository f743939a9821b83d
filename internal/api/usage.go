package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/domain"
	"github.com/shopspring/decimal"
)

func (h *Handler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActionType   string          `json:"actionType"`
		ModelUsed    string          `json:"modelUsed"`
		TokensUsed   *int            `json:"tokensUsed"`
		APICost      *float64        `json:"apiCost"`
		ProcessingMs *int64          `json:"processingTime"`
		ProjectID    *int64          `json:"projectId"`
		SessionID    *int64          `json:"sessionId"`
		Successful   *bool           `json:"isSuccessful"`
		ErrorMessage string          `json:"errorMessage"`
		RequestID    string          `json:"requestId"`
		Metadata     json.RawMessage `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid JSON body"))
		return
	}

	e := &domain.UsageEntry{
		UserID:       userID(r),
		ActionType:   domain.ActionType(req.ActionType),
		ModelUsed:    req.ModelUsed,
		TokensUsed:   req.TokensUsed,
		ProcessingMs: req.ProcessingMs,
		ProjectID:    req.ProjectID,
		SessionID:    req.SessionID,
		IsSuccessful: true,
		ErrorMessage: req.ErrorMessage,
		RequestID:    req.RequestID,
		Metadata:     req.Metadata,
	}
	if req.Successful != nil {
		e.IsSuccessful = *req.Successful
	}
	if req.APICost != nil {
		cost := decimal.NewFromFloat(*req.APICost)
		e.APICost = &cost
	}

	if err := h.usage.Record(r.Context(), e); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) ListUsage(w http.ResponseWriter, r *http.Request) {
	limit := config.DefaultUsageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, domain.NewValidation("limit must be an integer", "limit"))
			return
		}
		limit = n
	}

	entries, err := h.usage.ListRecent(r.Context(), userID(r), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.UsageEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
