package service

import (
	"context"
	"testing"

	"github.com/draftforge/draftforge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(NewFakeStore())

	p, err := svc.Create(ctx, 1, "LinkedIn pipeline", "weekly posts")
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, int64(1), p.UserID)
	assert.Equal(t, "LinkedIn pipeline", p.Name)

	_, err = svc.Create(ctx, 1, "   ", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.Create(ctx, 0, "no user", "")
	assert.ErrorIs(t, err, domain.ErrMissingUser)
}

func TestProjectGetHidesForeignProjects(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(NewFakeStore())

	p, err := svc.Create(ctx, 1, "mine", "")
	require.NoError(t, err)

	got, err := svc.Get(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	// Another user sees not-found, not forbidden.
	_, err = svc.Get(ctx, 2, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	_, err = svc.Get(ctx, 1, 999)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectDeleteRefusesNonEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewFakeStore()
	projects := NewProjectService(store)
	sessions := NewSessionService(store)

	p, err := projects.Create(ctx, 1, "busy", "")
	require.NoError(t, err)
	_, err = sessions.Create(ctx, 1, p.ID, CreateSessionInput{
		PostIdea:      "launch post",
		SelectedModel: "test-model",
	})
	require.NoError(t, err)

	err = projects.Delete(ctx, 1, p.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))

	// Still there.
	_, err = projects.Get(ctx, 1, p.ID)
	assert.NoError(t, err)
}

func TestProjectDeleteEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(NewFakeStore())

	p, err := svc.Create(ctx, 1, "empty", "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 1, p.ID))

	_, err = svc.Get(ctx, 1, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectStats(t *testing.T) {
	ctx := context.Background()
	store := NewFakeStore()
	projects := NewProjectService(store)
	sessions := NewSessionService(store)

	p, err := projects.Create(ctx, 1, "stats", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = sessions.Create(ctx, 1, p.ID, CreateSessionInput{
			PostIdea:      "idea",
			SelectedModel: "test-model",
		})
		require.NoError(t, err)
	}

	stats, err := projects.Stats(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalSessions)
	assert.Equal(t, int64(3), stats.ByStatus[domain.StatusIdeation])

	_, err = projects.Stats(ctx, 2, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
