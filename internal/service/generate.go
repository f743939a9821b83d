package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerationService drives the ideation → generating → reviewing leg
// of the session workflow: it calls the generation backend, appends a
// usage entry per invocation attempt, and records the produced
// candidates as content versions.
type GenerationService struct {
	store    Store
	backend  ai.Generator
	usage    *UsageService
	versions *VersionService
}

func NewGenerationService(store Store, backend ai.Generator, usage *UsageService, versions *VersionService) *GenerationService {
	return &GenerationService{store: store, backend: backend, usage: usage, versions: versions}
}

// Generate produces count candidate versions for the session. Every
// backend call is metered, success or failure; a failed ledger append
// aborts before the failure can go unbilled.
func (g *GenerationService) Generate(ctx context.Context, userID, sessionID int64, count int) ([]domain.ContentVersion, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	if count <= 0 {
		count = config.DefaultVersionCount
	}
	if count > config.MaxVersionCount {
		return nil, domain.NewValidation(
			fmt.Sprintf("count must be at most %d", config.MaxVersionCount), "count")
	}

	sess, err := g.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	if sess.IsCompleted {
		return nil, domain.NewInvalidState("session is already completed")
	}

	action := domain.ActionContentGeneration
	existing, err := g.store.CountVersionsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		action = domain.ActionContentRegeneration
	}

	if sess.Status == domain.StatusIdeation {
		sess.Status = domain.StatusGenerating
		sess.CurrentStep = domain.StepGenerating
		if err := g.store.UpdateSessionState(ctx, sess); err != nil {
			return nil, err
		}
	}

	model := sess.SelectedModel
	if model == "" {
		model = config.DefaultModel
	}

	out := make([]domain.ContentVersion, 0, count)
	for i := 0; i < count; i++ {
		variant := fmt.Sprintf("variant-%d", int(existing)+i+1)
		start := time.Now()
		res, genErr := g.backend.Generate(ctx, ai.Request{
			Model:  model,
			System: systemPrompt(sess),
			Prompt: userPrompt(sess),
		})
		elapsed := time.Since(start).Milliseconds()

		entry := &domain.UsageEntry{
			UserID:       userID,
			ActionType:   action,
			ModelUsed:    model,
			ProcessingMs: &elapsed,
			ProjectID:    &sess.ProjectID,
			SessionID:    &sess.ID,
			IsSuccessful: genErr == nil,
		}
		if genErr != nil {
			entry.ErrorMessage = genErr.Error()
		} else {
			tokens := res.TotalTokens()
			cost := decimal.NewFromFloat(res.TotalCost)
			entry.TokensUsed = &tokens
			entry.APICost = &cost
		}
		if err := g.usage.Record(ctx, entry); err != nil {
			return nil, err
		}
		if genErr != nil {
			return nil, domain.NewOperationFailed("generation backend call failed", genErr)
		}

		v, err := g.versions.Record(ctx, sessionID, RecordVersionInput{
			Content:       res.Content,
			Model:         model,
			PromptVariant: variant,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func systemPrompt(sess *domain.Session) string {
	if sess.CustomPrompt != "" {
		return sess.CustomPrompt
	}
	return fmt.Sprintf("You are a social content writer. Produce one %s draft. Return only the draft.", sess.ContentType)
}

func userPrompt(sess *domain.Session) string {
	var b strings.Builder
	b.WriteString("Post idea: ")
	b.WriteString(sess.PostIdea)
	if sess.AdditionalContext != "" {
		b.WriteString("\n\nAdditional context: ")
		b.WriteString(sess.AdditionalContext)
	}
	return b.String()
}
