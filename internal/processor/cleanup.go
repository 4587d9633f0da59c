package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// moveToProcessed moves the media file into the processed folder. An
// existing file with the same name is kept and the new one gets a suffix.
func (p *implProcessor) moveToProcessed(ctx context.Context, mediaPath string) error {
	if p.pipeline.Processed == "" {
		return nil
	}
	if err := os.MkdirAll(p.pipeline.Processed, 0755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}

	destPath := p.freeName(filepath.Join(p.pipeline.Processed, filepath.Base(mediaPath)))

	p.logger.Info(ctx, "Moving to processed folder: %s -> %s", mediaPath, destPath)

	if err := os.Rename(mediaPath, destPath); err != nil {
		return fmt.Errorf("move to processed: %w", err)
	}
	return nil
}

func (p *implProcessor) freeName(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%d%s", base, p.now().UnixMilli(), ext)
}
