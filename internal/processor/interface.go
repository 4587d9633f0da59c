package processor

import (
	"context"

	"github.com/jd3600/sonar/internal/store"
	"github.com/jd3600/sonar/internal/types"
)

// Processor runs one media file through analysis and extraction.
type Processor interface {
	Process(ctx context.Context, mediaPath string) error
	// Backlog processes files already sitting in the input folder.
	Backlog(ctx context.Context) error
}

// Journal keeps the raw model answers.
type Journal interface {
	Append(ctx context.Context, entry types.JournalEntry) error
}

// Collector merges pending records into the shared collection.
type Collector interface {
	Collect(ctx context.Context) (store.CollectResult, error)
}
