package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/draftforge/draftforge/internal/domain"
)

type errorBody struct {
	Kind    domain.Kind `json:"kind"`
	Message string      `json:"message"`
	Fields  []string    `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Kind: domain.KindOf(err), Message: err.Error()}
	var de *domain.Error
	if errors.As(err, &de) {
		body.Message = de.Message
		body.Fields = de.Fields
	}
	if body.Kind == domain.KindStorage {
		slog.Error("request failed", "error", err)
		body.Message = "storage unavailable"
	}
	writeJSON(w, statusFor(body.Kind), map[string]errorBody{"error": body})
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuthorization:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidState, domain.KindOperationFailed:
		return http.StatusConflict
	case domain.KindStorage:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
