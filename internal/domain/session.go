package domain

import "time"

// Status is the coarse workflow state of a session.
type Status string

const (
	StatusIdeation   Status = "ideation"
	StatusGenerating Status = "generating"
	StatusReviewing  Status = "reviewing"
	StatusSelecting  Status = "selecting"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusIdeation, StatusGenerating, StatusReviewing, StatusSelecting, StatusCompleted:
		return true
	}
	return false
}

var statusTransitions = map[Status][]Status{
	StatusIdeation:   {StatusGenerating},
	StatusGenerating: {StatusReviewing},
	StatusReviewing:  {StatusSelecting, StatusCompleted},
	StatusSelecting:  {StatusCompleted},
	StatusCompleted:  {},
}

// CanTransition reports whether moving to the target status is legal.
func (s Status) CanTransition(to Status) bool {
	for _, next := range statusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Step refines Status with workflow granularity. It carries the same
// values plus asset_pending, which sits between generating and
// reviewing when the session needs a visual asset.
type Step string

const (
	StepIdeation     Step = "ideation"
	StepGenerating   Step = "generating"
	StepAssetPending Step = "asset_pending"
	StepReviewing    Step = "reviewing"
	StepSelecting    Step = "selecting"
	StepCompleted    Step = "completed"
)

// ContentType is the target format of the generated content.
type ContentType string

const (
	ContentTypeTextPost     ContentType = "text-post"
	ContentTypeCarousel     ContentType = "carousel"
	ContentTypeVideoScript  ContentType = "video-script"
	ContentTypePoll         ContentType = "poll"
	ContentTypeArticle      ContentType = "article"
	ContentTypeStory        ContentType = "story"
	ContentTypeAnnouncement ContentType = "announcement"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeTextPost, ContentTypeCarousel, ContentTypeVideoScript,
		ContentTypePoll, ContentTypeArticle, ContentTypeStory, ContentTypeAnnouncement:
		return true
	}
	return false
}

// RequiresAsset reports whether this format includes a visual
// asset-generation step.
func (c ContentType) RequiresAsset() bool {
	return c == ContentTypeCarousel || c == ContentTypeStory
}

// Session is one unit of idea-to-published-content work. UserID is
// denormalized from the parent project so ownership checks never need
// a join; it is written once at creation and never changes.
type Session struct {
	ID                int64       `json:"id"`
	ProjectID         int64       `json:"projectId"`
	UserID            int64       `json:"userId"`
	PostIdea          string      `json:"postIdea"`
	AdditionalContext string      `json:"additionalContext,omitempty"`
	ContentType       ContentType `json:"targetContentType"`
	SelectedModel     string      `json:"selectedModel"`
	CustomPrompt      string      `json:"customPrompt,omitempty"`
	Status            Status      `json:"status"`
	CurrentStep       Step        `json:"currentStep"`
	NeedsAsset        bool        `json:"needsAsset"`
	AssetGenerated    bool        `json:"assetGenerated"`
	IsCompleted       bool        `json:"isCompleted"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}
