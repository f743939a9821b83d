package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/draftforge/draftforge/internal/alert"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/domain"
	"github.com/google/uuid"
)

type UsageService struct {
	store  UsageStore
	alerts *alert.Notifier
}

func NewUsageService(store UsageStore, alerts *alert.Notifier) *UsageService {
	return &UsageService{store: store, alerts: alerts}
}

// Record appends one ledger entry for an AI invocation attempt. A
// failed append is fatal for the request and pushed to the operator
// channel: a billing record lost silently is unacceptable.
func (s *UsageService) Record(ctx context.Context, e *domain.UsageEntry) error {
	if e.UserID <= 0 {
		return domain.ErrMissingUser
	}
	var fields []string
	if !e.ActionType.Valid() {
		fields = append(fields, "actionType")
	}
	if strings.TrimSpace(e.ModelUsed) == "" {
		fields = append(fields, "modelUsed")
	}
	if len(fields) > 0 {
		return domain.NewValidation("invalid usage entry", fields...)
	}
	if e.RequestID == "" {
		e.RequestID = uuid.NewString()
	}

	if err := s.store.AppendUsage(ctx, e); err != nil {
		serr := domain.NewStorage(fmt.Errorf("append usage entry: %w", err))
		slog.Error("usage ledger append failed",
			"user_id", e.UserID,
			"action", e.ActionType,
			"request_id", e.RequestID,
			"error", err,
		)
		s.alerts.Error(serr, "usage ledger append")
		return serr
	}
	return nil
}

// ListRecent returns the user's newest entries. The limit is a closed
// range: out-of-range values are rejected, never clamped.
func (s *UsageService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.UsageEntry, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	if limit < 1 || limit > config.MaxUsageLimit {
		return nil, domain.NewValidation(
			fmt.Sprintf("limit must be between 1 and %d", config.MaxUsageLimit), "limit")
	}
	return s.store.ListRecentUsage(ctx, userID, limit)
}
