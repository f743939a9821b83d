package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/draftforge/draftforge/internal/domain"
)

type CreateSessionInput struct {
	PostIdea          string
	AdditionalContext string
	ContentType       domain.ContentType
	SelectedModel     string
	CustomPrompt      string
}

type SessionService struct {
	store Store
}

func NewSessionService(store Store) *SessionService {
	return &SessionService{store: store}
}

// Create validates the input, verifies project ownership and inserts a
// new session in the ideation state. Session creation itself emits no
// usage entry; usage is recorded by the generation step.
func (s *SessionService) Create(ctx context.Context, userID, projectID int64, in CreateSessionInput) (*domain.Session, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}

	var fields []string
	if strings.TrimSpace(in.PostIdea) == "" {
		fields = append(fields, "postIdea")
	}
	if strings.TrimSpace(in.SelectedModel) == "" {
		fields = append(fields, "selectedModel")
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = domain.ContentTypeTextPost
	}
	if !contentType.Valid() {
		fields = append(fields, "targetContentType")
	}
	if len(fields) > 0 {
		return nil, domain.NewValidation("invalid session input", fields...)
	}

	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, domain.ErrProjectNotFound
	}

	sess := &domain.Session{
		ProjectID:         projectID,
		UserID:            userID,
		PostIdea:          in.PostIdea,
		AdditionalContext: in.AdditionalContext,
		ContentType:       contentType,
		SelectedModel:     in.SelectedModel,
		CustomPrompt:      in.CustomPrompt,
		Status:            domain.StatusIdeation,
		CurrentStep:       domain.StepIdeation,
		NeedsAsset:        contentType.RequiresAsset(),
	}
	// The store re-checks ownership in the insert itself, so a project
	// deleted between the check above and the write still fails clean.
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// List returns the project's sessions, newest first. An empty project
// yields an empty slice, not an error.
func (s *SessionService) List(ctx context.Context, userID, projectID int64) ([]domain.Session, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, domain.ErrProjectNotFound
	}
	return s.store.ListSessionsByProject(ctx, projectID)
}

func (s *SessionService) Get(ctx context.Context, userID, sessionID int64) (*domain.Session, error) {
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
	return sess, nil
}

// Delete is the only way a session goes away: explicit, owner-checked.
func (s *SessionService) Delete(ctx context.Context, userID, sessionID int64) error {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.UserID != userID {
		return domain.ErrNotOwner
	}
	return s.store.DeleteSession(ctx, sessionID)
}

// MarkGenerating moves an ideation session into generating. Invoked by
// the generation step before the backend call.
func (s *SessionService) MarkGenerating(ctx context.Context, userID, sessionID int64) (*domain.Session, error) {
	return s.advance(ctx, userID, sessionID, domain.StatusGenerating, domain.StepGenerating)
}

// BeginSelection marks that the user is choosing between candidates.
func (s *SessionService) BeginSelection(ctx context.Context, userID, sessionID int64) (*domain.Session, error) {
	return s.advance(ctx, userID, sessionID, domain.StatusSelecting, domain.StepSelecting)
}

func (s *SessionService) advance(ctx context.Context, userID, sessionID int64, to domain.Status, step domain.Step) (*domain.Session, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	if !sess.Status.CanTransition(to) {
		return nil, domain.NewInvalidState(fmt.Sprintf("cannot move session from %s to %s", sess.Status, to))
	}
	sess.Status = to
	sess.CurrentStep = step
	if err := s.store.UpdateSessionState(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
