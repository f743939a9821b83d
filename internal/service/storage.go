package service

import (
	"context"

	"github.com/draftforge/draftforge/internal/domain"
)

// Storage ports implemented by internal/repository for Postgres and by
// the in-memory fakes for tests. Implementations map "row missing" to
// the matching domain not-found sentinel; every other failure is
// returned wrapped so it surfaces as a storage error at the boundary.

type ProjectStore interface {
	CreateProject(ctx context.Context, p *domain.Project) error
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjectsByUser(ctx context.Context, userID int64) ([]domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

type SessionStore interface {
	// CreateSession inserts s only if its parent project exists and is
	// owned by s.UserID, as a single guarded statement; returns
	// domain.ErrProjectNotFound otherwise.
	CreateSession(ctx context.Context, s *domain.Session) error
	GetSession(ctx context.Context, id int64) (*domain.Session, error)
	// ListSessionsByProject orders by creation time descending.
	ListSessionsByProject(ctx context.Context, projectID int64) ([]domain.Session, error)
	CountSessionsByProject(ctx context.Context, projectID int64) (int64, error)
	// UpdateSessionState persists status, current step and the
	// workflow flags of an existing session.
	UpdateSessionState(ctx context.Context, s *domain.Session) error
	// DeleteSession removes the session and its child records.
	DeleteSession(ctx context.Context, id int64) error
	SessionStatusCounts(ctx context.Context, projectID int64) (map[domain.Status]int64, error)
}

type VersionStore interface {
	CreateVersion(ctx context.Context, v *domain.ContentVersion) error
	GetVersion(ctx context.Context, id int64) (*domain.ContentVersion, error)
	// ListVersionsBySession orders by creation time ascending.
	ListVersionsBySession(ctx context.Context, sessionID int64) ([]domain.ContentVersion, error)
	CountVersionsBySession(ctx context.Context, sessionID int64) (int64, error)
	// SelectVersion atomically clears any previous selection in the
	// session, selects versionID and completes the session. The
	// ownership check runs inside the same transaction as the writes.
	SelectVersion(ctx context.Context, userID, sessionID, versionID int64) error
}

type AssetStore interface {
	// CreateAsset inserts a and flips the owning session's
	// asset_generated flag (advancing an asset_pending step to
	// reviewing) in one transaction.
	CreateAsset(ctx context.Context, a *domain.GeneratedAsset) error
	// ListAssetsBySession orders by creation time ascending.
	ListAssetsBySession(ctx context.Context, sessionID int64) ([]domain.GeneratedAsset, error)
}

type UsageStore interface {
	AppendUsage(ctx context.Context, e *domain.UsageEntry) error
	// ListRecentUsage orders by creation time descending.
	ListRecentUsage(ctx context.Context, userID int64, limit int) ([]domain.UsageEntry, error)
}

type Store interface {
	ProjectStore
	SessionStore
	VersionStore
	AssetStore
	UsageStore
}
