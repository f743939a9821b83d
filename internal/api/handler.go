package api

import (
	"net/http"
	"strconv"

	"github.com/draftforge/draftforge/internal/alert"
	"github.com/draftforge/draftforge/internal/blob"
	"github.com/draftforge/draftforge/internal/service"
	"github.com/gorilla/mux"
)

type Handler struct {
	projects *service.ProjectService
	sessions *service.SessionService
	versions *service.VersionService
	assets   *service.AssetService
	usage    *service.UsageService
	generate *service.GenerationService
	blob     *blob.Store
}

type Deps struct {
	Projects *service.ProjectService
	Sessions *service.SessionService
	Versions *service.VersionService
	Assets   *service.AssetService
	Usage    *service.UsageService
	Generate *service.GenerationService
	Blob     *blob.Store
}

func New(deps Deps) *Handler {
	return &Handler{
		projects: deps.Projects,
		sessions: deps.Sessions,
		versions: deps.Versions,
		assets:   deps.Assets,
		usage:    deps.Usage,
		generate: deps.Generate,
		blob:     deps.Blob,
	}
}

// Register mounts the versioned API. Identity runs on every route:
// this core has no anonymous operations.
func (h *Handler) Register(r *mux.Router, alerts *alert.Notifier) {
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Recover(alerts), Logging, Identity)

	api.HandleFunc("/projects", h.CreateProject).Methods("POST")
	api.HandleFunc("/projects", h.ListProjects).Methods("GET")
	api.HandleFunc("/projects/{id}", h.GetProject).Methods("GET")
	api.HandleFunc("/projects/{id}", h.DeleteProject).Methods("DELETE")
	api.HandleFunc("/projects/{id}/stats", h.ProjectStats).Methods("GET")
	api.HandleFunc("/projects/{id}/sessions", h.CreateSession).Methods("POST")
	api.HandleFunc("/projects/{id}/sessions", h.ListSessions).Methods("GET")

	api.HandleFunc("/sessions/{id}", h.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", h.DeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/generate", h.GenerateVersions).Methods("POST")
	api.HandleFunc("/sessions/{id}/select", h.BeginSelection).Methods("POST")
	api.HandleFunc("/sessions/{id}/versions", h.RecordVersion).Methods("POST")
	api.HandleFunc("/sessions/{id}/versions", h.ListVersions).Methods("GET")
	api.HandleFunc("/sessions/{id}/versions/{versionID}/select", h.SelectVersion).Methods("POST")
	api.HandleFunc("/sessions/{id}/assets", h.RecordAsset).Methods("POST")
	api.HandleFunc("/sessions/{id}/assets", h.ListAssets).Methods("GET")
	api.HandleFunc("/sessions/{id}/assets/upload", h.UploadAsset).Methods("POST")

	api.HandleFunc("/usage", h.RecordUsage).Methods("POST")
	api.HandleFunc("/usage", h.ListUsage).Methods("GET")
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}
