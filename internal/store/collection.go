package store

import (
	"fmt"
	"sync"

	"github.com/jd3600/sonar/internal/types"
)

// Collection is the shared JSON array served to the dashboard.
type Collection struct {
	path string
	mu   sync.Mutex
}

func NewCollection(path string) *Collection {
	return &Collection{path: path}
}

func (c *Collection) Path() string {
	return c.path
}

// Load returns every record; a missing file is an empty collection.
func (c *Collection) Load() ([]types.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Collection) load() ([]types.Record, error) {
	var recs []types.Record
	if _, err := ReadJSON(c.path, &recs); err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if recs == nil {
		recs = []types.Record{}
	}
	return recs, nil
}

// Merge appends the records whose id is not yet present and returns them.
func (c *Collection) Merge(recs []types.Record) ([]types.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, err := c.load()
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(existing))
	for _, r := range existing {
		seen[r.ID] = true
	}

	var added []types.Record
	for _, r := range recs {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		existing = append(existing, r)
		added = append(added, r)
	}
	if len(added) == 0 {
		return nil, nil
	}

	if err := WriteJSON(c.path, existing); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}
	return added, nil
}
