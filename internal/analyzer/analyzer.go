package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jd3600/sonar/internal/types"
	"google.golang.org/genai"
)

// Analyze uploads the media inline with the prompt of its kind.
// Rate-limit and unavailable errors rotate the key and retry with
// exponential backoff; any other error is returned at once.
func (a *implAnalyzer) Analyze(ctx context.Context, path string, kind types.MediaKind) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat media: %w", err)
	}
	if a.maxInlineBytes > 0 && info.Size() > a.maxInlineBytes {
		return "", fmt.Errorf("%s is %d bytes: %w", filepath.Base(path), info.Size(), ErrFileTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read media: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, MIMEType(path, kind)),
			genai.NewPartFromText(a.prompts[kind]),
		}, genai.RoleUser),
	}

	a.logger.Info(ctx, "[Gemini] Analyzing %s (%s, %d bytes)", filepath.Base(path), kind, len(data))

	var text string
	op := func() error {
		key, idx := a.key()
		out, err := a.generate(ctx, key, a.model, contents)
		if err != nil {
			if isRetryable(err) {
				a.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				a.rotateKey(idx)
				return err
			}
			return backoff.Permanent(fmt.Errorf("generate content: %w", err))
		}
		if strings.TrimSpace(out) == "" {
			return backoff.Permanent(ErrEmptyResponse)
		}
		text = out
		return nil
	}

	if err := backoff.RetryNotify(op, a.policy(ctx), func(err error, wait time.Duration) {
		a.logger.Debug(ctx, "Retrying Gemini call in %s: %v", wait, err)
	}); err != nil {
		return "", fmt.Errorf("analyze %s: %w", filepath.Base(path), err)
	}
	return text, nil
}

// policy allows every key one attempt, or max_retries retries when larger.
func (a *implAnalyzer) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = a.initialInterval
	b.MaxElapsedTime = 0

	retries := a.maxRetries
	if n := len(a.apiKeys) - 1; n > retries {
		retries = n
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

func (a *implAnalyzer) callGemini(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error) {
	client, err := a.client(ctx, apiKey)
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}
	return "", nil
}

func (a *implAnalyzer) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.clients[apiKey]; ok {
		return c, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	a.clients[apiKey] = c
	return c, nil
}

func (a *implAnalyzer) key() (string, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.apiKeys[a.currentKey], a.currentKey
}

// rotateKey advances past idx. Concurrent callers that failed on the same
// key rotate only once.
func (a *implAnalyzer) rotateKey(idx int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.currentKey == idx {
		a.currentKey = (a.currentKey + 1) % len(a.apiKeys)
	}
}

func isRetryable(err error) bool {
	msg := err.Error()
	for _, s := range []string{"429", "quota", "RESOURCE_EXHAUSTED", "503", "UNAVAILABLE"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
