package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/domain"
)

type RecordVersionInput struct {
	Content       string
	Model         string
	PromptVariant string
}

type VersionService struct {
	store Store
}

func NewVersionService(store Store) *VersionService {
	return &VersionService{store: store}
}

// Record appends a candidate version. The first candidate moves the
// session out of generation: into reviewing, or into the asset_pending
// step when the session still owes a visual asset.
func (s *VersionService) Record(ctx context.Context, sessionID int64, in RecordVersionInput) (*domain.ContentVersion, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.NewValidation("version content is required", "content")
	}

	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.CountVersionsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	v := &domain.ContentVersion{
		SessionID:     sessionID,
		Content:       in.Content,
		Model:         in.Model,
		PromptVariant: in.PromptVariant,
	}
	if err := s.store.CreateVersion(ctx, v); err != nil {
		return nil, err
	}

	if existing == 0 {
		if sess.Status == domain.StatusIdeation {
			sess.Status = domain.StatusGenerating
		}
		if sess.Status == domain.StatusGenerating {
			sess.Status = domain.StatusReviewing
		}
		if sess.NeedsAsset && !sess.AssetGenerated {
			sess.CurrentStep = domain.StepAssetPending
		} else {
			sess.CurrentStep = domain.StepReviewing
		}
		if err := s.store.UpdateSessionState(ctx, sess); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// List returns the session's candidates in creation order, each with a
// plain-text excerpt for listings.
func (s *VersionService) List(ctx context.Context, userID, sessionID int64) ([]domain.ContentVersion, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	versions, err := s.store.ListVersionsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range versions {
		versions[i].Excerpt = Excerpt(versions[i].Content, config.ExcerptMaxLen)
	}
	return versions, nil
}

// Select marks one candidate as the chosen output and completes the
// session. The deselect+select+complete writes are one atomic store
// operation; re-selecting the already-selected version is a no-op.
func (s *VersionService) Select(ctx context.Context, userID, sessionID, versionID int64) (*domain.Session, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	v, err := s.store.GetVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if v.SessionID != sessionID {
		return nil, domain.ErrVersionNotFound
	}

	// Idempotent re-selection.
	if v.IsSelected && sess.IsCompleted {
		return sess, nil
	}

	switch sess.Status {
	case domain.StatusReviewing, domain.StatusSelecting, domain.StatusCompleted:
	default:
		return nil, domain.NewInvalidState(fmt.Sprintf("cannot select a version while session is %s", sess.Status))
	}

	if err := s.store.SelectVersion(ctx, userID, sessionID, versionID); err != nil {
		return nil, err
	}

	sess.Status = domain.StatusCompleted
	sess.CurrentStep = domain.StepCompleted
	sess.IsCompleted = true
	return sess, nil
}
