package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jd3600/sonar/internal/logger"
	"github.com/jd3600/sonar/internal/types"
)

// Indexer receives records once they are part of the collection.
type Indexer interface {
	Index(ctx context.Context, recs []types.Record) error
}

// Collector moves pending records into the shared collection.
type Collector struct {
	pending    *Pending
	collection *Collection
	indexer    Indexer
	logger     logger.Logger

	// mu serializes whole collect and reset passes
	mu sync.Mutex
}

// CollectResult summarizes one Collect pass.
type CollectResult struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Failed     int `json:"failed"`
}

// StatusEntry describes one pending record.
type StatusEntry struct {
	Path      string          `json:"path"`
	ID        int64           `json:"id,omitempty"`
	MediaKind types.MediaKind `json:"type,omitempty"`
	Filename  string          `json:"filename,omitempty"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
	Speakers  int             `json:"speakers"`
	Topics    []string        `json:"topics,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// NewCollector wires pending and collection together; indexer may be nil.
func NewCollector(p *Pending, c *Collection, idx Indexer, log logger.Logger) *Collector {
	return &Collector{pending: p, collection: c, indexer: idx, logger: log}
}

func (c *Collector) Collection() *Collection {
	return c.collection
}

// Collect merges every decodable pending record (deduplicated by id) and
// removes the merged artifacts. Corrupt artifacts are left in place.
func (c *Collector) Collect(ctx context.Context) (CollectResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res CollectResult

	files, err := c.pending.List()
	if err != nil {
		return res, err
	}

	var recs []types.Record
	var merged []string
	for _, f := range files {
		if f.Err != nil {
			c.logger.Warn(ctx, "Skipping unreadable pending record %s: %v", f.Path, f.Err)
			res.Failed++
			continue
		}
		recs = append(recs, *f.Record)
		merged = append(merged, f.Path)
	}
	if len(recs) == 0 {
		return res, nil
	}

	added, err := c.collection.Merge(recs)
	if err != nil {
		return res, fmt.Errorf("merge pending records: %w", err)
	}
	res.Added = len(added)
	res.Duplicates = len(recs) - len(added)

	for _, path := range merged {
		if err := c.pending.Remove(path); err != nil {
			c.logger.Warn(ctx, "Failed to remove collected record %s: %v", path, err)
		}
	}

	if c.indexer != nil && len(added) > 0 {
		if err := c.indexer.Index(ctx, added); err != nil {
			c.logger.Warn(ctx, "Failed to index %d collected records: %v", len(added), err)
		}
	}

	c.logger.Info(ctx, "Collected %d records (%d duplicates, %d unreadable) into %s",
		res.Added, res.Duplicates, res.Failed, c.collection.Path())
	return res, nil
}

// Status lists the pending records.
func (c *Collector) Status(ctx context.Context) ([]StatusEntry, error) {
	files, err := c.pending.List()
	if err != nil {
		return nil, err
	}

	out := make([]StatusEntry, 0, len(files))
	for _, f := range files {
		if f.Err != nil {
			out = append(out, StatusEntry{Path: f.Path, Error: f.Err.Error()})
			continue
		}
		out = append(out, StatusEntry{
			Path:      f.Path,
			ID:        f.Record.ID,
			MediaKind: f.Record.MediaKind,
			Filename:  f.Record.Filename,
			Timestamp: f.Record.Timestamp,
			Speakers:  len(f.Record.Speakers),
			Topics:    f.Record.Topics,
		})
	}
	return out, nil
}

// Reset discards every pending artifact, readable or not.
func (c *Collector) Reset(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	files, err := c.pending.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		if err := c.pending.Remove(f.Path); err != nil {
			return removed, err
		}
		removed++
	}
	c.logger.Info(ctx, "Discarded %d pending records", removed)
	return removed, nil
}
