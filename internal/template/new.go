package template

import (
	"time"

	"github.com/jd3600/sonar/internal/extract"
	"github.com/jd3600/sonar/internal/logger"
)

type implAssembler struct {
	extractor extract.Extractor
	sink      Sink
	ids       IDGenerator
	now       func() time.Time
	logger    logger.Logger
}

// Option configures an Assembler.
type Option func(*implAssembler)

// WithIDs replaces the default identifier strategy.
func WithIDs(ids IDGenerator) Option {
	return func(a *implAssembler) { a.ids = ids }
}

// WithClock sets the clock used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *implAssembler) { a.now = now }
}

// New creates an Assembler writing to sink. A nil sink makes Assemble
// behave like Build.
func New(ext extract.Extractor, sink Sink, log logger.Logger, opts ...Option) Assembler {
	a := &implAssembler{
		extractor: ext,
		sink:      sink,
		now:       time.Now,
		logger:    log,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.ids == nil {
		a.ids = NewMillisIDs(a.now)
	}
	return a
}
