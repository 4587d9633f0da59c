package processor

import (
	"fmt"
	"time"

	"github.com/jd3600/sonar/internal/analyzer"
	"github.com/jd3600/sonar/internal/config"
	"github.com/jd3600/sonar/internal/extract"
	"github.com/jd3600/sonar/internal/logger"
	"github.com/jd3600/sonar/internal/report"
	"github.com/jd3600/sonar/internal/template"
	"github.com/jd3600/sonar/internal/types"
	"github.com/jd3600/sonar/pkg/executor"
)

// Deps are the collaborators of a Processor. Journal, Collector and
// Reporter are optional. Without a Limiter the processor gets its own,
// sized by performance.max_concurrent.
type Deps struct {
	Executor  executor.Executor
	Analyzer  analyzer.Analyzer
	Assembler template.Assembler
	Journal   Journal
	Collector Collector
	Reporter  report.Reporter
	Limiter   *Limiter
}

type implProcessor struct {
	kind        types.MediaKind
	pipeline    config.PipelineConfig
	probeBinary string
	autoCollect bool
	// defaultDuration is used when probing fails
	defaultDuration int

	executor  executor.Executor
	analyzer  analyzer.Analyzer
	assembler template.Assembler
	journal   Journal
	collector Collector
	reporter  report.Reporter
	limiter   *Limiter
	logger    logger.Logger
	now       func() time.Time
}

// New creates the Processor of one media kind.
func New(cfg *config.Config, kind types.MediaKind, deps Deps, log logger.Logger) (Processor, error) {
	profile, err := extract.ProfileFor(kind)
	if err != nil {
		return nil, fmt.Errorf("create processor: %w", err)
	}

	limiter := deps.Limiter
	if limiter == nil {
		limiter = NewLimiter(cfg.Performance.MaxConcurrent)
	}

	return &implProcessor{
		kind:            kind,
		pipeline:        cfg.Pipeline(kind),
		probeBinary:     cfg.Probe.BinaryPath,
		autoCollect:     cfg.Collector.AutoCollect,
		defaultDuration: profile.DefaultDuration,
		executor:        deps.Executor,
		analyzer:        deps.Analyzer,
		assembler:       deps.Assembler,
		journal:         deps.Journal,
		collector:       deps.Collector,
		reporter:        deps.Reporter,
		limiter:         limiter,
		logger:          log.With(map[string]interface{}{"pipeline": string(kind)}),
		now:             time.Now,
	}, nil
}
