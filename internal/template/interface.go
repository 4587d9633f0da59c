package template

import (
	"context"

	"github.com/jd3600/sonar/internal/types"
)

// Assembler combines extraction results into an analysis record.
type Assembler interface {
	// Build assembles a record without persisting it.
	Build(in Input) *types.Record
	// Assemble builds a record and hands it to the sink. Sink errors are
	// returned unchanged in meaning; the record is still returned.
	Assemble(ctx context.Context, in Input) (*types.Record, error)
}

// Input is what the caller knows about one analysed media file.
type Input struct {
	Filename        string
	Text            string
	DurationSeconds int
}

// Sink persists freshly built records.
type Sink interface {
	Put(ctx context.Context, rec *types.Record) (string, error)
}

// IDGenerator hands out record identifiers.
type IDGenerator interface {
	Next() int64
}
