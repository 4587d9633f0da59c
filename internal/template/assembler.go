package template

import (
	"context"
	"fmt"

	"github.com/jd3600/sonar/internal/types"
)

func (a *implAssembler) Build(in Input) *types.Record {
	return &types.Record{
		ID:              a.ids.Next(),
		MediaKind:       a.extractor.Profile().Kind,
		Filename:        in.Filename,
		Timestamp:       a.now().UTC(),
		DurationSeconds: in.DurationSeconds,
		Speakers:        a.extractor.Speakers(in.Text),
		Topics:          a.extractor.Topics(in.Text),
		Summary:         a.extractor.Summary(in.Text),
		Complete:        true,
	}
}

func (a *implAssembler) Assemble(ctx context.Context, in Input) (*types.Record, error) {
	rec := a.Build(in)
	if a.sink == nil {
		return rec, nil
	}

	path, err := a.sink.Put(ctx, rec)
	if err != nil {
		return rec, fmt.Errorf("write pending record: %w", err)
	}

	a.logger.Info(ctx, "Record %d generated for %s: %d speakers, topics %v -> %s",
		rec.ID, rec.Filename, len(rec.Speakers), rec.Topics, path)
	return rec, nil
}
