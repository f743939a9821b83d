package service

import (
	"context"
	"errors"
	"testing"

	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls    int
	failWith error
	requests []ai.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req ai.Request) (*ai.Result, error) {
	f.calls++
	f.requests = append(f.requests, req)
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &ai.Result{
		Content:          "generated draft",
		PromptTokens:     120,
		CompletionTokens: 300,
		TotalCost:        0.0021,
	}, nil
}

func newGenerationHarness(t *testing.T, backend ai.Generator) (*FakeStore, *GenerationService, *domain.Session) {
	t.Helper()
	store := NewFakeStore()
	sess := seedSession(t, store, 1, domain.ContentTypeTextPost)
	usage := NewUsageService(store, nil)
	versions := NewVersionService(store)
	return store, NewGenerationService(store, backend, usage, versions), sess
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	backend := &fakeGenerator{}
	store, svc, sess := newGenerationHarness(t, backend)

	out, err := svc.Generate(ctx, 1, sess.ID, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2, backend.calls)
	assert.Equal(t, "variant-1", out[0].PromptVariant)
	assert.Equal(t, "variant-2", out[1].PromptVariant)

	// One metered ledger entry per backend call.
	entries, err := store.ListRecentUsage(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, domain.ActionContentGeneration, e.ActionType)
		assert.True(t, e.IsSuccessful)
		require.NotNil(t, e.TokensUsed)
		assert.Equal(t, 420, *e.TokensUsed)
		require.NotNil(t, e.APICost)
	}

	got, err := store.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReviewing, got.Status)
}

func TestGenerateDefaultsCount(t *testing.T) {
	ctx := context.Background()
	backend := &fakeGenerator{}
	_, svc, sess := newGenerationHarness(t, backend)

	out, err := svc.Generate(ctx, 1, sess.ID, 0)
	require.NoError(t, err)
	assert.Len(t, out, config.DefaultVersionCount)

	_, err = svc.Generate(ctx, 1, sess.ID, config.MaxVersionCount+1)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestGenerateRegenerationAction(t *testing.T) {
	ctx := context.Background()
	backend := &fakeGenerator{}
	store, svc, sess := newGenerationHarness(t, backend)

	_, err := svc.Generate(ctx, 1, sess.ID, 1)
	require.NoError(t, err)
	out, err := svc.Generate(ctx, 1, sess.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "variant-2", out[0].PromptVariant)

	entries, err := store.ListRecentUsage(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first: the second run is a regeneration.
	assert.Equal(t, domain.ActionContentRegeneration, entries[0].ActionType)
	assert.Equal(t, domain.ActionContentGeneration, entries[1].ActionType)
}

func TestGenerateBackendFailureIsMetered(t *testing.T) {
	ctx := context.Background()
	backend := &fakeGenerator{failWith: errors.New("model overloaded")}
	store, svc, sess := newGenerationHarness(t, backend)

	_, err := svc.Generate(ctx, 1, sess.ID, 2)
	require.Error(t, err)
	assert.Equal(t, domain.KindOperationFailed, domain.KindOf(err))

	// The failed call still produced a ledger entry, and the loop
	// stopped after it.
	entries, err := store.ListRecentUsage(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsSuccessful)
	assert.Equal(t, "model overloaded", entries[0].ErrorMessage)
	assert.Nil(t, entries[0].TokensUsed)

	versions, err := store.ListVersionsBySession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestGenerateLedgerFailureAborts(t *testing.T) {
	ctx := context.Background()
	backend := &fakeGenerator{}
	store, svc, sess := newGenerationHarness(t, backend)
	store.usageErr = errors.New("ledger down")

	_, err := svc.Generate(ctx, 1, sess.ID, 1)
	require.Error(t, err)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))

	versions, err := store.ListVersionsBySession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, versions, "no version without a billing record")
}

func TestGenerateGuards(t *testing.T) {
	ctx := context.Background()
	backend := &fakeGenerator{}
	store, svc, sess := newGenerationHarness(t, backend)

	_, err := svc.Generate(ctx, 2, sess.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	// Completed sessions never regenerate.
	versions := NewVersionService(store)
	v, err := versions.Record(ctx, sess.ID, RecordVersionInput{Content: "draft"})
	require.NoError(t, err)
	_, err = versions.Select(ctx, 1, sess.ID, v.ID)
	require.NoError(t, err)

	_, err = svc.Generate(ctx, 1, sess.ID, 1)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
	assert.Zero(t, backend.calls)
}

func TestGeneratePrompts(t *testing.T) {
	ctx := context.Background()
	backend := &fakeGenerator{}
	store := NewFakeStore()
	p := seedProject(t, store, 1)
	sess, err := NewSessionService(store).Create(ctx, 1, p.ID, CreateSessionInput{
		PostIdea:          "launch announcement",
		AdditionalContext: "B2B audience",
		SelectedModel:     "test-model",
		CustomPrompt:      "Write like a pirate.",
	})
	require.NoError(t, err)
	svc := NewGenerationService(store, backend, NewUsageService(store, nil), NewVersionService(store))

	_, err = svc.Generate(ctx, 1, sess.ID, 1)
	require.NoError(t, err)
	require.Len(t, backend.requests, 1)
	req := backend.requests[0]
	assert.Equal(t, "Write like a pirate.", req.System)
	assert.Contains(t, req.Prompt, "launch announcement")
	assert.Contains(t, req.Prompt, "B2B audience")
	assert.Equal(t, "test-model", req.Model)
}
