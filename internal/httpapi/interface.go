package httpapi

import (
	"context"

	"github.com/jd3600/sonar/internal/store"
	"github.com/jd3600/sonar/internal/types"
)

// Collector is the part of the store the API drives.
type Collector interface {
	Collect(ctx context.Context) (store.CollectResult, error)
	Status(ctx context.Context) ([]store.StatusEntry, error)
}

// Records loads the shared collection.
type Records interface {
	Load() ([]types.Record, error)
}

// Journal lists raw analyses.
type Journal interface {
	Entries() ([]types.JournalEntry, error)
}
