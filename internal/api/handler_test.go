package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/domain"
	"github.com/draftforge/draftforge/internal/service"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, _ ai.Request) (*ai.Result, error) {
	return &ai.Result{Content: "generated draft", PromptTokens: 10, CompletionTokens: 20, TotalCost: 0.001}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := service.NewFakeStore()
	usage := service.NewUsageService(store, nil)
	versions := service.NewVersionService(store)

	h := New(Deps{
		Projects: service.NewProjectService(store),
		Sessions: service.NewSessionService(store),
		Versions: versions,
		Assets:   service.NewAssetService(store),
		Usage:    usage,
		Generate: service.NewGenerationService(store, stubGenerator{}, usage, versions),
	})

	r := mux.NewRouter()
	h.Register(r, nil)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, userID int64, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func TestIdentityRequired(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, srv, "GET", "/api/v1/projects", 0, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "authorization")
}

func TestIdentityRejectsGarbage(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest("GET", srv.URL+"/api/v1/projects", nil)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", "abc")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProjectEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, srv, "POST", "/api/v1/projects", 1, map[string]string{
		"name": "content pipeline",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var project domain.Project
	require.NoError(t, json.Unmarshal(body, &project))
	assert.NotZero(t, project.ID)

	resp, body = doJSON(t, srv, "GET", "/api/v1/projects", 1, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []domain.Project
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	// Another user's listing is empty, and the project itself is hidden.
	resp, body = doJSON(t, srv, "GET", "/api/v1/projects", 2, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))

	resp, _ = doJSON(t, srv, "GET", fmt.Sprintf("/api/v1/projects/%d", project.ID), 2, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, srv, "POST", "/api/v1/projects", 1, map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, srv, "GET", "/api/v1/projects/not-a-number", 1, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionWorkflow(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, srv, "POST", "/api/v1/projects", 1, map[string]string{"name": "p"})
	var project domain.Project
	require.NoError(t, json.Unmarshal(body, &project))

	resp, body := doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/projects/%d/sessions", project.ID), 1, map[string]string{
		"postIdea":      "announcing the beta",
		"selectedModel": "test-model",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var sess domain.Session
	require.NoError(t, json.Unmarshal(body, &sess))
	assert.Equal(t, domain.StatusIdeation, sess.Status)

	// The session listing is invisible to other users.
	resp, _ = doJSON(t, srv, "GET", fmt.Sprintf("/api/v1/projects/%d/sessions", project.ID), 2, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Generate two candidates through the stub backend.
	resp, body = doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/sessions/%d/generate", sess.ID), 1, map[string]int{"count": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var versions []domain.ContentVersion
	require.NoError(t, json.Unmarshal(body, &versions))
	require.Len(t, versions, 2)

	// Pick the second candidate; the session completes.
	resp, body = doJSON(t, srv, "POST",
		fmt.Sprintf("/api/v1/sessions/%d/versions/%d/select", sess.ID, versions[1].ID), 1, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var done domain.Session
	require.NoError(t, json.Unmarshal(body, &done))
	assert.True(t, done.IsCompleted)
	assert.Equal(t, domain.StatusCompleted, done.Status)

	// The generation run was metered.
	resp, body = doJSON(t, srv, "GET", "/api/v1/usage", 1, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []domain.UsageEntry
	require.NoError(t, json.Unmarshal(body, &entries))
	assert.Len(t, entries, 2)
}

func TestVersionEndpoints(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, srv, "POST", "/api/v1/projects", 1, map[string]string{"name": "p"})
	var project domain.Project
	require.NoError(t, json.Unmarshal(body, &project))
	_, body = doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/projects/%d/sessions", project.ID), 1, map[string]string{
		"postIdea":      "idea",
		"selectedModel": "test-model",
	})
	var sess domain.Session
	require.NoError(t, json.Unmarshal(body, &sess))

	resp, body := doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/sessions/%d/versions", sess.ID), 1, map[string]string{
		"content": "<p>hand-written draft</p>",
		"model":   "manual",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	// Foreign users cannot append versions.
	resp, _ = doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/sessions/%d/versions", sess.ID), 2, map[string]string{
		"content": "intruder draft",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, srv, "GET", fmt.Sprintf("/api/v1/sessions/%d/versions", sess.ID), 1, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var versions []domain.ContentVersion
	require.NoError(t, json.Unmarshal(body, &versions))
	require.Len(t, versions, 1)
	assert.Equal(t, "hand-written draft", versions[0].Excerpt)
}

func TestUsageEndpoints(t *testing.T) {
	srv := newTestServer(t)

	cost := 0.002
	resp, body := doJSON(t, srv, "POST", "/api/v1/usage", 1, map[string]any{
		"actionType": "image_generation",
		"modelUsed":  "image-model",
		"apiCost":    cost,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var entry domain.UsageEntry
	require.NoError(t, json.Unmarshal(body, &entry))
	assert.True(t, entry.IsSuccessful, "successful defaults to true")
	assert.NotEmpty(t, entry.RequestID)

	resp, _ = doJSON(t, srv, "GET", "/api/v1/usage?limit=101", 1, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, srv, "GET", "/api/v1/usage?limit=abc", 1, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, srv, "GET", "/api/v1/usage?limit=1", 1, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []domain.UsageEntry
	require.NoError(t, json.Unmarshal(body, &entries))
	assert.Len(t, entries, 1)
}

func doMultipart(t *testing.T, srv *httptest.Server, path string, userID int64, fields map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestAssetEndpoints(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, srv, "POST", "/api/v1/projects", 1, map[string]string{"name": "p"})
	var project domain.Project
	require.NoError(t, json.Unmarshal(body, &project))
	_, body = doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/projects/%d/sessions", project.ID), 1, map[string]string{
		"postIdea":          "carousel idea",
		"selectedModel":     "test-model",
		"targetContentType": "carousel",
	})
	var sess domain.Session
	require.NoError(t, json.Unmarshal(body, &sess))
	require.True(t, sess.NeedsAsset)

	resp, body := doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/sessions/%d/assets", sess.ID), 1, map[string]any{
		"assetType": "image",
		"fileName":  "cover.png",
		"fileUrl":   "https://blob.example.com/assets/cover.png",
		"prompt":    "a cover image",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = doJSON(t, srv, "GET", fmt.Sprintf("/api/v1/sessions/%d/assets", sess.ID), 1, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var assets []domain.GeneratedAsset
	require.NoError(t, json.Unmarshal(body, &assets))
	assert.Len(t, assets, 1)

	// Upload is rejected when no blob store is configured.
	resp, _ = doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/sessions/%d/assets/upload", sess.ID), 1, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUploadAssetGuardsRunBeforeUpload(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, srv, "POST", "/api/v1/projects", 1, map[string]string{"name": "p"})
	var project domain.Project
	require.NoError(t, json.Unmarshal(body, &project))
	_, body = doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/projects/%d/sessions", project.ID), 1, map[string]string{
		"postIdea":          "carousel idea",
		"selectedModel":     "test-model",
		"targetContentType": "carousel",
	})
	var sess domain.Session
	require.NoError(t, json.Unmarshal(body, &sess))
	uploadPath := fmt.Sprintf("/api/v1/sessions/%d/assets/upload", sess.ID)
	goodFields := map[string]string{"assetType": "image", "prompt": "a cover image"}

	// A foreign user is turned away before anything touches the blob
	// store: with no store configured, reaching it would be a 409.
	resp := doMultipart(t, srv, uploadPath, 2, goodFields)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Field validation also runs first.
	resp = doMultipart(t, srv, uploadPath, 1, map[string]string{"assetType": "hologram", "prompt": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Sessions without an asset step reject the upload outright.
	_, body = doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/projects/%d/sessions", project.ID), 1, map[string]string{
		"postIdea":      "plain post",
		"selectedModel": "test-model",
	})
	var textSess domain.Session
	require.NoError(t, json.Unmarshal(body, &textSess))
	resp = doMultipart(t, srv, fmt.Sprintf("/api/v1/sessions/%d/assets/upload", textSess.ID), 1, goodFields)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// A well-formed owner request passes every guard and only then
	// stops at the unconfigured blob store.
	resp = doMultipart(t, srv, uploadPath, 1, goodFields)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Nothing was recorded along the way.
	resp, body = doJSON(t, srv, "GET", fmt.Sprintf("/api/v1/sessions/%d/assets", sess.ID), 1, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))
}
