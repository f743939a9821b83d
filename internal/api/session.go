package api

import (
	"encoding/json"
	"net/http"

	"github.com/draftforge/draftforge/internal/domain"
	"github.com/draftforge/draftforge/internal/service"
)

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid project id", "id"))
		return
	}

	var req struct {
		PostIdea          string `json:"postIdea"`
		AdditionalContext string `json:"additionalContext"`
		TargetContentType string `json:"targetContentType"`
		SelectedModel     string `json:"selectedModel"`
		CustomPrompt      string `json:"customPrompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid JSON body"))
		return
	}

	sess, err := h.sessions.Create(r.Context(), userID(r), projectID, service.CreateSessionInput{
		PostIdea:          req.PostIdea,
		AdditionalContext: req.AdditionalContext,
		ContentType:       domain.ContentType(req.TargetContentType),
		SelectedModel:     req.SelectedModel,
		CustomPrompt:      req.CustomPrompt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid project id", "id"))
		return
	}
	sessions, err := h.sessions.List(r.Context(), userID(r), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid session id", "id"))
		return
	}
	sess, err := h.sessions.Get(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid session id", "id"))
		return
	}
	if err := h.sessions.Delete(r.Context(), userID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) BeginSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid session id", "id"))
		return
	}
	sess, err := h.sessions.BeginSelection(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) GenerateVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid session id", "id"))
		return
	}

	var req struct {
		Count int `json:"count"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.NewValidation("invalid JSON body"))
			return
		}
	}

	versions, err := h.generate.Generate(r.Context(), userID(r), id, req.Count)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, versions)
}
