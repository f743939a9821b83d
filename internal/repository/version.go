package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/draftforge/draftforge/internal/domain"
	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateVersion(ctx context.Context, v *domain.ContentVersion) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO content_versions (session_id, content, model, prompt_variant)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		v.SessionID, v.Content, v.Model, v.PromptVariant,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	return nil
}

func (s *Store) GetVersion(ctx context.Context, id int64) (*domain.ContentVersion, error) {
	var v domain.ContentVersion
	err := s.pool.QueryRow(ctx, `
		SELECT id, session_id, content, model, prompt_variant, is_selected, created_at
		FROM content_versions WHERE id = $1`, id,
	).Scan(&v.ID, &v.SessionID, &v.Content, &v.Model, &v.PromptVariant, &v.IsSelected, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVersionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	return &v, nil
}

func (s *Store) ListVersionsBySession(ctx context.Context, sessionID int64) ([]domain.ContentVersion, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, content, model, prompt_variant, is_selected, created_at
		FROM content_versions
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var out []domain.ContentVersion
	for rows.Next() {
		var v domain.ContentVersion
		if err := rows.Scan(&v.ID, &v.SessionID, &v.Content, &v.Model, &v.PromptVariant, &v.IsSelected, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) CountVersionsBySession(ctx context.Context, sessionID int64) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM content_versions WHERE session_id = $1`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count versions: %w", err)
	}
	return n, nil
}

// SelectVersion runs the deselect+select+complete writes in one
// transaction. The session row is locked first and ownership verified
// under that lock, so a concurrent reassignment or deletion cannot
// slip between check and write.
func (s *Store) SelectVersion(ctx context.Context, userID, sessionID, versionID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID int64
	err = tx.QueryRow(ctx,
		`SELECT user_id FROM sessions WHERE id = $1 FOR UPDATE`, sessionID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("lock session: %w", err)
	}
	if ownerID != userID {
		return domain.ErrNotOwner
	}

	if _, err := tx.Exec(ctx,
		`UPDATE content_versions SET is_selected = FALSE WHERE session_id = $1 AND is_selected`,
		sessionID); err != nil {
		return fmt.Errorf("clear selection: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE content_versions SET is_selected = TRUE WHERE id = $1 AND session_id = $2`,
		versionID, sessionID)
	if err != nil {
		return fmt.Errorf("set selection: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return domain.NewOperationFailed("selection could not be applied", nil)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE sessions
		SET is_completed = TRUE, status = 'completed', current_step = 'completed', updated_at = now()
		WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("complete session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
