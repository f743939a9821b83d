package repository

import (
	"context"
	"fmt"

	"github.com/draftforge/draftforge/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateAsset inserts the asset and flips the owning session's
// asset_generated flag in the same transaction, advancing an
// asset_pending step to reviewing.
func (s *Store) CreateAsset(ctx context.Context, a *domain.GeneratedAsset) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO generated_assets (session_id, asset_type, file_name, file_url, file_size,
			prompt, model, style, dimensions, generation_ms, generation_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::numeric)
		RETURNING id, created_at`,
		a.SessionID, a.AssetType, a.FileName, a.FileURL, a.FileSize,
		a.Prompt, a.Model, a.Style, a.Dimensions, a.GenerationMs, a.GenerationCost.String(),
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE sessions
		SET asset_generated = TRUE,
			current_step = CASE WHEN current_step = 'asset_pending' THEN 'reviewing' ELSE current_step END,
			updated_at = now()
		WHERE id = $1`, a.SessionID)
	if err != nil {
		return fmt.Errorf("mark asset generated: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) ListAssetsBySession(ctx context.Context, sessionID int64) ([]domain.GeneratedAsset, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, asset_type, file_name, file_url, file_size,
			prompt, model, style, dimensions, generation_ms, generation_cost::text, created_at
		FROM generated_assets
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []domain.GeneratedAsset
	for rows.Next() {
		var a domain.GeneratedAsset
		var cost string
		if err := rows.Scan(&a.ID, &a.SessionID, &a.AssetType, &a.FileName, &a.FileURL, &a.FileSize,
			&a.Prompt, &a.Model, &a.Style, &a.Dimensions, &a.GenerationMs, &cost, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		if a.GenerationCost, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("parse asset cost: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
