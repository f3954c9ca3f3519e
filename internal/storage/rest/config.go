package rest

import (
	"time"

	"github.com/DjordjeVuckovic/word-importer/internal/domain"
)

const (
	DefaultPathPrefix = "/rest/v1"
	DefaultTable      = "danish_words"
	DefaultTimeout    = 60 * time.Second
)

type ClientConfig struct {
	// BaseURL is the project URL, e.g. https://<project>.supabase.co.
	BaseURL    string
	PathPrefix string
	// APIKey is sent both as apikey and as bearer token.
	APIKey         string
	Table          string
	ConflictColumn string
	Resolution     domain.ConflictResolution
	Timeout        time.Duration
}
