package analyzer

import (
	"context"
	"errors"

	"github.com/jd3600/sonar/internal/types"
)

var (
	ErrNoAPIKey      = errors.New("no Gemini API key configured")
	ErrEmptyResponse = errors.New("empty response from Gemini")
	ErrFileTooLarge  = errors.New("media file exceeds inline upload limit")
)

// Analyzer sends a media file to the model and returns its free-form
// analysis text.
type Analyzer interface {
	Analyze(ctx context.Context, path string, kind types.MediaKind) (string, error)
}
