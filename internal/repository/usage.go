package repository

import (
	"context"
	"fmt"

	"github.com/draftforge/draftforge/internal/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) AppendUsage(ctx context.Context, e *domain.UsageEntry) error {
	var cost *string
	if e.APICost != nil {
		v := e.APICost.String()
		cost = &v
	}
	var metadata []byte
	if len(e.Metadata) > 0 {
		metadata = e.Metadata
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO usage_log (user_id, action_type, model_used, tokens_used, api_cost,
			processing_ms, project_id, session_id, is_successful, error_message, request_id, metadata)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`,
		e.UserID, e.ActionType, e.ModelUsed, e.TokensUsed, cost,
		e.ProcessingMs, e.ProjectID, e.SessionID, e.IsSuccessful, e.ErrorMessage, e.RequestID, metadata,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert usage entry: %w", err)
	}
	return nil
}

func (s *Store) ListRecentUsage(ctx context.Context, userID int64, limit int) ([]domain.UsageEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, action_type, model_used, tokens_used, api_cost::text,
			processing_ms, project_id, session_id, is_successful, error_message, request_id,
			metadata, created_at
		FROM usage_log
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list usage: %w", err)
	}
	defer rows.Close()

	var out []domain.UsageEntry
	for rows.Next() {
		var e domain.UsageEntry
		var cost *string
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActionType, &e.ModelUsed, &e.TokensUsed, &cost,
			&e.ProcessingMs, &e.ProjectID, &e.SessionID, &e.IsSuccessful, &e.ErrorMessage,
			&e.RequestID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usage entry: %w", err)
		}
		if cost != nil {
			d, err := decimal.NewFromString(*cost)
			if err != nil {
				return nil, fmt.Errorf("parse usage cost: %w", err)
			}
			e.APICost = &d
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
