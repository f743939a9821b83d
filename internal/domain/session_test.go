package domain

import "testing"

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusIdeation, StatusGenerating, true},
		{StatusIdeation, StatusReviewing, false},
		{StatusIdeation, StatusCompleted, false},
		{StatusGenerating, StatusReviewing, true},
		{StatusGenerating, StatusSelecting, false},
		{StatusReviewing, StatusSelecting, true},
		{StatusReviewing, StatusCompleted, true},
		{StatusReviewing, StatusGenerating, false},
		{StatusSelecting, StatusCompleted, true},
		{StatusSelecting, StatusReviewing, false},
		{StatusCompleted, StatusIdeation, false},
		{StatusCompleted, StatusCompleted, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusIdeation, StatusGenerating, StatusReviewing, StatusSelecting, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("archived").Valid() {
		t.Error("archived should not be valid")
	}
}

func TestContentTypeRequiresAsset(t *testing.T) {
	tests := []struct {
		ct   ContentType
		want bool
	}{
		{ContentTypeTextPost, false},
		{ContentTypeCarousel, true},
		{ContentTypeVideoScript, false},
		{ContentTypePoll, false},
		{ContentTypeArticle, false},
		{ContentTypeStory, true},
		{ContentTypeAnnouncement, false},
	}
	for _, tt := range tests {
		if got := tt.ct.RequiresAsset(); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.ct, got, tt.want)
		}
	}
}

func TestContentTypeValid(t *testing.T) {
	if !ContentTypeTextPost.Valid() {
		t.Error("text-post should be valid")
	}
	if ContentType("newsletter").Valid() {
		t.Error("newsletter should not be valid")
	}
	if ContentType("").Valid() {
		t.Error("empty content type should not be valid")
	}
}

func TestActionTypeValid(t *testing.T) {
	for _, a := range []ActionType{
		ActionContentGeneration, ActionContentRegeneration,
		ActionImageGeneration, ActionContentRefinement, ActionAssetCreation,
	} {
		if !a.Valid() {
			t.Errorf("%s should be valid", a)
		}
	}
	if ActionType("billing").Valid() {
		t.Error("billing should not be valid")
	}
}
