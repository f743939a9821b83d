package domain

import "time"

// ContentVersion is one candidate output generated for a session.
// Versions are append-only: nothing mutates after creation except the
// IsSelected flag, and at most one version per session carries it.
type ContentVersion struct {
	ID            int64     `json:"id"`
	SessionID     int64     `json:"sessionId"`
	Content       string    `json:"content"`
	Model         string    `json:"model,omitempty"`
	PromptVariant string    `json:"promptVariant,omitempty"`
	IsSelected    bool      `json:"isSelected"`
	CreatedAt     time.Time `json:"createdAt"`

	// Excerpt is a plain-text preview derived from Content on read.
	// It is never persisted.
	Excerpt string `json:"excerpt,omitempty"`
}
