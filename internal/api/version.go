package api

import (
	"encoding/json"
	"net/http"

	"github.com/draftforge/draftforge/internal/domain"
	"github.com/draftforge/draftforge/internal/service"
)

func (h *Handler) RecordVersion(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid session id", "id"))
		return
	}

	var req struct {
		Content       string `json:"content"`
		Model         string `json:"model"`
		PromptVariant string `json:"promptVariant"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid JSON body"))
		return
	}

	// The session read inside Get doubles as the ownership check
	// before the append touches another user's session.
	if _, err := h.sessions.Get(r.Context(), userID(r), sessionID); err != nil {
		writeError(w, err)
		return
	}

	v, err := h.versions.Record(r.Context(), sessionID, service.RecordVersionInput{
		Content:       req.Content,
		Model:         req.Model,
		PromptVariant: req.PromptVariant,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) ListVersions(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid session id", "id"))
		return
	}
	versions, err := h.versions.List(r.Context(), userID(r), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if versions == nil {
		versions = []domain.ContentVersion{}
	}
	writeJSON(w, http.StatusOK, versions)
}

func (h *Handler) SelectVersion(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid session id", "id"))
		return
	}
	versionID, ok := pathID(r, "versionID")
	if !ok {
		writeError(w, domain.NewValidation("invalid version id", "versionID"))
		return
	}

	sess, err := h.versions.Select(r.Context(), userID(r), sessionID, versionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
