package analyzer

import (
	"context"
	"sync"
	"time"

	"github.com/jd3600/sonar/internal/logger"
	"github.com/jd3600/sonar/internal/types"
	"google.golang.org/genai"
)

// Options configures the Gemini analyzer.
type Options struct {
	APIKeys        []string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	MaxInlineBytes int64
	Prompts        map[types.MediaKind]string
}

type generateFunc func(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error)

type implAnalyzer struct {
	apiKeys        []string
	model          string
	timeout        time.Duration
	maxRetries     int
	maxInlineBytes int64
	prompts        map[types.MediaKind]string
	logger         logger.Logger

	mu         sync.Mutex
	currentKey int
	clients    map[string]*genai.Client

	generate        generateFunc
	initialInterval time.Duration
}

// New creates an Analyzer that rotates through the supplied Gemini API keys.
func New(opts Options, log logger.Logger) (Analyzer, error) {
	if len(opts.APIKeys) == 0 {
		return nil, ErrNoAPIKey
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}

	prompts := map[types.MediaKind]string{
		types.Audio: DefaultPrompt(types.Audio),
		types.Video: DefaultPrompt(types.Video),
	}
	for k, p := range opts.Prompts {
		if p != "" {
			prompts[k] = p
		}
	}

	a := &implAnalyzer{
		apiKeys:         opts.APIKeys,
		model:           opts.Model,
		timeout:         opts.Timeout,
		maxRetries:      opts.MaxRetries,
		maxInlineBytes:  opts.MaxInlineBytes,
		prompts:         prompts,
		logger:          log,
		clients:         make(map[string]*genai.Client),
		initialInterval: 2 * time.Second,
	}
	a.generate = a.callGemini
	return a, nil
}
