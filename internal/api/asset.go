package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/domain"
	"github.com/draftforge/draftforge/internal/service"
	"github.com/shopspring/decimal"
)

func (h *Handler) RecordAsset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid session id", "id"))
		return
	}

	var req struct {
		AssetType      string  `json:"assetType"`
		FileName       string  `json:"fileName"`
		FileURL        string  `json:"fileUrl"`
		FileSize       *int64  `json:"fileSize"`
		Prompt         string  `json:"prompt"`
		Model          string  `json:"model"`
		Style          string  `json:"style"`
		Dimensions     string  `json:"dimensions"`
		GenerationMs   int64   `json:"generationTime"`
		GenerationCost float64 `json:"generationCost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid JSON body"))
		return
	}

	a, err := h.assets.Record(r.Context(), userID(r), sessionID, service.RecordAssetInput{
		AssetType:      domain.AssetType(req.AssetType),
		FileName:       req.FileName,
		FileURL:        req.FileURL,
		FileSize:       req.FileSize,
		Prompt:         req.Prompt,
		Model:          req.Model,
		Style:          req.Style,
		Dimensions:     req.Dimensions,
		GenerationMs:   req.GenerationMs,
		GenerationCost: decimal.NewFromFloat(req.GenerationCost),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid session id", "id"))
		return
	}
	assets, err := h.assets.List(r.Context(), userID(r), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if assets == nil {
		assets = []domain.GeneratedAsset{}
	}
	writeJSON(w, http.StatusOK, assets)
}

// UploadAsset accepts a multipart upload, stores the bytes in the blob
// store and records the asset with the presigned URL as its fileUrl.
// Ownership and field checks run before the upload so a rejected
// request never leaves an orphaned object in the bucket.
func (h *Handler) UploadAsset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(r, "id")
	if !ok {
		writeError(w, domain.NewValidation("invalid session id", "id"))
		return
	}

	sess, err := h.sessions.Get(r.Context(), userID(r), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !sess.NeedsAsset {
		writeError(w, domain.NewInvalidState("session has no asset-generation step"))
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		writeError(w, domain.NewValidation("invalid multipart form", "file"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, domain.NewValidation("file part is required", "file"))
		return
	}
	defer file.Close()

	assetType := domain.AssetType(r.FormValue("assetType"))
	prompt := r.FormValue("prompt")
	var fields []string
	if !assetType.Valid() {
		fields = append(fields, "assetType")
	}
	if strings.TrimSpace(prompt) == "" {
		fields = append(fields, "prompt")
	}
	if len(fields) > 0 {
		writeError(w, domain.NewValidation("invalid asset input", fields...))
		return
	}

	if h.blob == nil {
		writeError(w, domain.NewInvalidState("blob storage is not configured"))
		return
	}

	_, url, err := h.blob.Upload(r.Context(), sessionID, header.Filename, file, header.Size)
	if err != nil {
		writeError(w, domain.NewStorage(err))
		return
	}

	genMs, _ := strconv.ParseInt(r.FormValue("generationTime"), 10, 64)
	cost := decimal.Zero
	if raw := r.FormValue("generationCost"); raw != "" {
		if c, err := decimal.NewFromString(raw); err == nil {
			cost = c
		}
	}
	size := header.Size

	a, err := h.assets.Record(r.Context(), userID(r), sessionID, service.RecordAssetInput{
		AssetType:      assetType,
		FileName:       header.Filename,
		FileURL:        url,
		FileSize:       &size,
		Prompt:         prompt,
		Model:          r.FormValue("model"),
		Style:          r.FormValue("style"),
		Dimensions:     r.FormValue("dimensions"),
		GenerationMs:   genMs,
		GenerationCost: cost,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}
