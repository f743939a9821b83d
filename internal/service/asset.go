package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/draftforge/draftforge/internal/domain"
	"github.com/shopspring/decimal"
)

type RecordAssetInput struct {
	AssetType      domain.AssetType
	FileName       string
	FileURL        string
	FileSize       *int64
	Prompt         string
	Model          string
	Style          string
	Dimensions     string
	GenerationMs   int64
	GenerationCost decimal.Decimal
}

type AssetService struct {
	store Store
}

func NewAssetService(store Store) *AssetService {
	return &AssetService{store: store}
}

// Record attaches a generated visual artifact to the session and flips
// its assetGenerated flag. The needsAsset flag was decided at session
// creation from the content type and is never touched here.
func (s *AssetService) Record(ctx context.Context, userID, sessionID int64, in RecordAssetInput) (*domain.GeneratedAsset, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}

	var fields []string
	if !in.AssetType.Valid() {
		fields = append(fields, "assetType")
	}
	if strings.TrimSpace(in.FileName) == "" {
		fields = append(fields, "fileName")
	}
	if !validFileURL(in.FileURL) {
		fields = append(fields, "fileUrl")
	}
	if strings.TrimSpace(in.Prompt) == "" {
		fields = append(fields, "prompt")
	}
	if len(fields) > 0 {
		return nil, domain.NewValidation("invalid asset input", fields...)
	}

	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	if !sess.NeedsAsset {
		return nil, domain.NewInvalidState("session has no asset-generation step")
	}

	a := &domain.GeneratedAsset{
		SessionID:      sessionID,
		AssetType:      in.AssetType,
		FileName:       in.FileName,
		FileURL:        in.FileURL,
		FileSize:       in.FileSize,
		Prompt:         in.Prompt,
		Model:          in.Model,
		Style:          in.Style,
		Dimensions:     in.Dimensions,
		GenerationMs:   in.GenerationMs,
		GenerationCost: in.GenerationCost,
	}
	if err := s.store.CreateAsset(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns the session's assets in creation order.
func (s *AssetService) List(ctx context.Context, userID, sessionID int64) ([]domain.GeneratedAsset, error) {
	if userID <= 0 {
		return nil, domain.ErrMissingUser
	}
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	return s.store.ListAssetsBySession(ctx, sessionID)
}

func validFileURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
