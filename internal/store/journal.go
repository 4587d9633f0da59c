package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jd3600/sonar/internal/types"
)

// Journal keeps every raw analysis returned by the model.
type Journal struct {
	path string
	mu   sync.Mutex
}

func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) Append(ctx context.Context, entry types.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	var entries []types.JournalEntry
	if _, err := ReadJSON(j.path, &entries); err != nil {
		return fmt.Errorf("load journal: %w", err)
	}
	entries = append(entries, entry)
	if err := WriteJSON(j.path, entries); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	return nil
}

// Entries returns the journal, oldest first.
func (j *Journal) Entries() ([]types.JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries := []types.JournalEntry{}
	if _, err := ReadJSON(j.path, &entries); err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	return entries, nil
}
