package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType is the kind of generated visual artifact.
type AssetType string

const (
	AssetTypeImage       AssetType = "image"
	AssetTypeCarousel    AssetType = "carousel"
	AssetTypeInfographic AssetType = "infographic"
	AssetTypeBanner      AssetType = "banner"
	AssetTypeThumbnail   AssetType = "thumbnail"
	AssetTypeLogo        AssetType = "logo"
	AssetTypeChart       AssetType = "chart"
)

func (a AssetType) Valid() bool {
	switch a {
	case AssetTypeImage, AssetTypeCarousel, AssetTypeInfographic,
		AssetTypeBanner, AssetTypeThumbnail, AssetTypeLogo, AssetTypeChart:
		return true
	}
	return false
}

// GeneratedAsset is one generated visual artifact attached to a
// session. Immutable once recorded.
type GeneratedAsset struct {
	ID             int64           `json:"id"`
	SessionID      int64           `json:"sessionId"`
	AssetType      AssetType       `json:"assetType"`
	FileName       string          `json:"fileName"`
	FileURL        string          `json:"fileUrl"`
	FileSize       *int64          `json:"fileSize,omitempty"`
	Prompt         string          `json:"prompt"`
	Model          string          `json:"model,omitempty"`
	Style          string          `json:"style,omitempty"`
	Dimensions     string          `json:"dimensions,omitempty"`
	GenerationMs   int64           `json:"generationTime"`
	GenerationCost decimal.Decimal `json:"generationCost"`
	CreatedAt      time.Time       `json:"createdAt"`
}
