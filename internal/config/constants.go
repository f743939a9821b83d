package config

import "time"

const (
	// Usage listing limits
	DefaultUsageLimit = 50
	MaxUsageLimit     = 100

	// Postgres pool sizing; selection transactions hold row locks only
	// briefly, so a modest pool is enough
	DBMaxConns = 20
	DBMinConns = 5

	// Candidate versions produced per generation request
	DefaultVersionCount = 2
	MaxVersionCount     = 5

	// AI request timeout
	RequestTimeout = 90 * time.Second

	// Version listing excerpt length (runes)
	ExcerptMaxLen = 280

	// Presigned asset URL lifetime
	AssetURLExpiry = 72 * time.Hour

	// Asset upload cap (bytes)
	MaxUploadBytes = 10 << 20

	// Default generation model when a session does not override it
	DefaultModel = "z-ai/glm-4.5-air:free"
)
