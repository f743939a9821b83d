package service

import (
	"context"
	"strings"

	"github.com/draftforge/draftforge/internal/domain"
)

type ProjectService struct {
	store Store
}

func NewProjectService(store Store) *ProjectService {
	return &ProjectService{store: store}
}

func (s *ProjectService) Create(ctx context.Context, userID int64, name, description string) (*domain.Project, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidation("project name is required", "name")
	}

	p := &domain.Project{
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := s.store.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the project only to its owner. An ownership miss reads
// the same as a missing project so existence is never revealed.
func (s *ProjectService) Get(ctx context.Context, userID, projectID int64) (*domain.Project, error) {
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
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, userID int64) ([]domain.Project, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	return s.store.ListProjectsByUser(ctx, userID)
}

// Delete removes an empty project. A project that still has sessions
// is never deleted: the core must not orphan a session.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID int64) error {
	if _, err := s.Get(ctx, userID, projectID); err != nil {
		return err
	}
	count, err := s.store.CountSessionsByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewInvalidState("project still has sessions; remove them first")
	}
	return s.store.DeleteProject(ctx, projectID)
}

// Stats is a read-only projection over the project's sessions.
func (s *ProjectService) Stats(ctx context.Context, userID, projectID int64) (*domain.ProjectStats, error) {
	if _, err := s.Get(ctx, userID, projectID); err != nil {
		return nil, err
	}
	counts, err := s.store.SessionStatusCounts(ctx, projectID)
	if err != nil {
		return nil, err
	}
	stats := &domain.ProjectStats{ProjectID: projectID, ByStatus: counts}
	for _, n := range counts {
		stats.TotalSessions += n
	}
	return stats, nil
}
