package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/draftforge/draftforge/internal/domain"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, project_id, user_id, post_idea, additional_context, content_type,
	selected_model, custom_prompt, status, current_step, needs_asset, asset_generated,
	is_completed, created_at, updated_at`

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.ID, &s.ProjectID, &s.UserID, &s.PostIdea, &s.AdditionalContext, &s.ContentType,
		&s.SelectedModel, &s.CustomPrompt, &s.Status, &s.CurrentStep, &s.NeedsAsset,
		&s.AssetGenerated, &s.IsCompleted, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSession inserts through a guarded select on the parent project
// so ownership is checked and the row written in one statement.
func (s *Store) CreateSession(ctx context.Context, sess *domain.Session) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO sessions (project_id, user_id, post_idea, additional_context, content_type,
			selected_model, custom_prompt, status, current_step, needs_asset)
		SELECT p.id, p.user_id, $3, $4, $5, $6, $7, $8, $9, $10
		FROM projects p
		WHERE p.id = $1 AND p.user_id = $2
		RETURNING id, created_at, updated_at`,
		sess.ProjectID, sess.UserID, sess.PostIdea, sess.AdditionalContext, sess.ContentType,
		sess.SelectedModel, sess.CustomPrompt, sess.Status, sess.CurrentStep, sess.NeedsAsset,
	).Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id int64) (*domain.Session, error) {
	sess, err := scanSession(s.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

func (s *Store) ListSessionsByProject(ctx context.Context, projectID int64) ([]domain.Session, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE project_id = $1
		ORDER BY created_at DESC, id DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, *sess)
	}
	return out, rows.Err()
}

func (s *Store) CountSessionsByProject(ctx context.Context, projectID int64) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions WHERE project_id = $1`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (s *Store) UpdateSessionState(ctx context.Context, sess *domain.Session) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE sessions
		SET status = $2, current_step = $3, needs_asset = $4, asset_generated = $5,
			is_completed = $6, updated_at = now()
		WHERE id = $1`,
		sess.ID, sess.Status, sess.CurrentStep, sess.NeedsAsset, sess.AssetGenerated, sess.IsCompleted)
	if err != nil {
		return fmt.Errorf("update session state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DeleteSession removes the session together with its candidate
// versions and assets so no child record is ever orphaned.
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM content_versions WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("delete versions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM generated_assets WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("delete assets: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) SessionStatusCounts(ctx context.Context, projectID int64) (map[domain.Status]int64, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM sessions
		WHERE project_id = $1
		GROUP BY status`, projectID)
	if err != nil {
		return nil, fmt.Errorf("count session statuses: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Status]int64)
	for rows.Next() {
		var status domain.Status
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
