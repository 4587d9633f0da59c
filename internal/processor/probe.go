package processor

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// probeDuration asks ffprobe for the container duration in whole seconds,
// falling back to the profile default.
func (p *implProcessor) probeDuration(ctx context.Context, mediaPath string) int {
	if p.executor == nil || p.probeBinary == "" {
		return p.defaultDuration
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		mediaPath,
	}

	out, err := p.executor.Execute(ctx, p.probeBinary, args...)
	if err != nil {
		p.logger.Warn(ctx, "ffprobe failed, using default duration %ds: %v", p.defaultDuration, err)
		return p.defaultDuration
	}

	seconds, err := parseDuration(out)
	if err != nil {
		p.logger.Warn(ctx, "Unreadable ffprobe output, using default duration %ds: %v", p.defaultDuration, err)
		return p.defaultDuration
	}

	p.logger.Debug(ctx, "Probed duration: %ds", seconds)
	return seconds
}

func parseDuration(out string) (int, error) {
	s := strings.TrimSpace(out)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return int(math.Round(f)), nil
}
