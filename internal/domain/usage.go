package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ActionType classifies an AI-backend invocation.
type ActionType string

const (
	ActionContentGeneration   ActionType = "content_generation"
	ActionContentRegeneration ActionType = "content_regeneration"
	ActionImageGeneration     ActionType = "image_generation"
	ActionContentRefinement   ActionType = "content_refinement"
	ActionAssetCreation       ActionType = "asset_creation"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionContentGeneration, ActionContentRegeneration,
		ActionImageGeneration, ActionContentRefinement, ActionAssetCreation:
		return true
	}
	return false
}

// UsageEntry is one immutable record of an AI-backend invocation.
// Failed invocations still carry cost and time when the backend
// charged for partial work.
type UsageEntry struct {
	ID           int64            `json:"id"`
	UserID       int64            `json:"userId"`
	ActionType   ActionType       `json:"actionType"`
	ModelUsed    string           `json:"modelUsed"`
	TokensUsed   *int             `json:"tokensUsed,omitempty"`
	APICost      *decimal.Decimal `json:"apiCost,omitempty"`
	ProcessingMs *int64           `json:"processingTime,omitempty"`
	ProjectID    *int64           `json:"projectId,omitempty"`
	SessionID    *int64           `json:"sessionId,omitempty"`
	IsSuccessful bool             `json:"isSuccessful"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
	RequestID    string           `json:"requestId,omitempty"`
	Metadata     json.RawMessage  `json:"metadata,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}
