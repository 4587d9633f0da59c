package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jd3600/sonar/internal/template"
	"github.com/jd3600/sonar/internal/types"
)

// Process orchestrates the pipeline of one media file, waiting for a
// limiter slot first. On error the file stays in the input folder.
func (p *implProcessor) Process(ctx context.Context, mediaPath string) error {
	if err := p.limiter.Acquire(ctx); err != nil {
		return err
	}
	defer p.limiter.Release()

	startTime := p.now()
	filename := filepath.Base(mediaPath)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting %s analysis: %s", p.kind, mediaPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Probe duration
	duration := p.probeDuration(ctx, mediaPath)

	// Step 2: Ask the model
	analysis, err := p.analyzer.Analyze(ctx, mediaPath, p.kind)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	// Step 3: Keep the raw answer
	if p.journal != nil {
		entry := types.JournalEntry{Timestamp: p.now().UTC(), Source: filename, Analysis: analysis}
		if err := p.journal.Append(ctx, entry); err != nil {
			p.logger.Warn(ctx, "Failed to append journal entry: %v", err)
		}
	}

	// Step 4: Extract the structured record
	rec, err := p.assembler.Assemble(ctx, template.Input{
		Filename:        filename,
		Text:            analysis,
		DurationSeconds: duration,
	})
	if err != nil {
		return fmt.Errorf("assemble record: %w", err)
	}

	// Step 5: Publish to the shared collection
	if p.autoCollect && p.collector != nil {
		res, err := p.collector.Collect(ctx)
		if err != nil {
			p.logger.Warn(ctx, "Auto-collect failed: %v", err)
		} else {
			p.logger.Info(ctx, "Auto-collect: %d added, %d duplicates, %d failed", res.Added, res.Duplicates, res.Failed)
		}
	}

	// Step 6: Render the report
	reportPath := ""
	if p.reporter != nil {
		if reportPath, err = p.reporter.Write(ctx, rec, analysis); err != nil {
			p.logger.Warn(ctx, "Failed to write report: %v", err)
		}
	}

	// Step 7: Move the media file out of the input folder
	if err := p.moveToProcessed(ctx, mediaPath); err != nil {
		p.logger.Warn(ctx, "Failed to move %s to processed folder: %v", filename, err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Analysis completed: %s (record %d)", filename, rec.ID)
	p.logger.Info(ctx, "Speakers: %d, topics: %v", len(rec.Speakers), rec.Topics)
	if reportPath != "" {
		p.logger.Info(ctx, "Report: %s", reportPath)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")

	return nil
}
