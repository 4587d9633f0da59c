package report

import (
	"context"

	"github.com/jd3600/sonar/internal/types"
)

// Reporter renders one record, with the raw analysis it came from, into a
// document and returns the written path.
type Reporter interface {
	Write(ctx context.Context, rec *types.Record, analysis string) (string, error)
}
