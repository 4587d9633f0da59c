package archive

import (
	"context"
	"time"

	"github.com/jd3600/sonar/internal/types"
)

// Archive is a queryable copy of the collected records.
type Archive interface {
	Index(ctx context.Context, recs []types.Record) error
	AffiliationStats(ctx context.Context, kind types.MediaKind) ([]AffiliationStat, error)
	Appearances(ctx context.Context, name string) ([]Appearance, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// AffiliationStat aggregates speaker appearances of one camp. Kind may be
// empty to aggregate both pipelines.
type AffiliationStat struct {
	Affiliation types.Affiliation `json:"camp"`
	Speakers    int               `json:"speakers"`
	Appearances int               `json:"appearances"`
	SpeechTime  int               `json:"speech_time"`
}

// Appearance is one speaker occurrence in one record.
type Appearance struct {
	RecordID       int64             `json:"record_id"`
	MediaKind      types.MediaKind   `json:"type"`
	Filename       string            `json:"filename"`
	Timestamp      time.Time         `json:"timestamp"`
	Name           string            `json:"name"`
	Affiliation    types.Affiliation `json:"camp"`
	AffiliationRaw string            `json:"camp_raw,omitempty"`
	SpeechTime     int               `json:"speech_time"`
}
