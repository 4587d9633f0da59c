package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Backlog processes media files already present in the input folder.
// Individual failures are logged.
func (p *implProcessor) Backlog(ctx context.Context) error {
	files, err := p.discover()
	if err != nil {
		return fmt.Errorf("discover media files: %w", err)
	}
	if len(files) == 0 {
		return nil
	}

	p.logger.Info(ctx, "Found %d media files waiting in %s", len(files), p.pipeline.Input)

	// Process holds the limiter, so at most its capacity run at once
	var wg sync.WaitGroup
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			if err := p.Process(ctx, path); err != nil && ctx.Err() == nil {
				p.logger.Error(ctx, "Failed to process %s: %v", path, err)
			}
		}(f)
	}
	wg.Wait()

	return ctx.Err()
}

func (p *implProcessor) discover() ([]string, error) {
	entries, err := os.ReadDir(p.pipeline.Input)
	if err != nil {
		return nil, err
	}

	exts := make(map[string]bool, len(p.pipeline.Extensions))
	for _, e := range p.pipeline.Extensions {
		exts[strings.ToLower(e)] = true
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(p.pipeline.Input, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
