package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jd3600/sonar/internal/types"
)

// Pending keeps freshly generated records until they are collected. Each
// record gets its own file named after its kind and id, so concurrent
// analyses never overwrite each other.
type Pending struct {
	dir string
}

// PendingFile is one artifact found in the pending directory. Err is set
// when the file could not be decoded.
type PendingFile struct {
	Path   string
	Record *types.Record
	Err    error
}

func NewPending(dir string) *Pending {
	return &Pending{dir: dir}
}

func (p *Pending) Dir() string {
	return p.dir
}

// PathFor returns the artifact path of rec.
func (p *Pending) PathFor(rec *types.Record) string {
	return filepath.Join(p.dir, fmt.Sprintf("%s-%d.json", rec.MediaKind, rec.ID))
}

// Put writes rec to its own artifact.
func (p *Pending) Put(ctx context.Context, rec *types.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := p.PathFor(rec)
	if err := WriteJSON(path, rec); err != nil {
		return "", err
	}
	return path, nil
}

// List returns the pending artifacts ordered by record id. Undecodable
// files are listed with Err set and sort last.
func (p *Pending) List() ([]PendingFile, error) {
	entries, err := os.ReadDir(p.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read pending dir: %w", err)
	}

	var files []PendingFile
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(p.dir, e.Name())
		var rec types.Record
		found, err := ReadJSON(path, &rec)
		if err != nil {
			files = append(files, PendingFile{Path: path, Err: err})
			continue
		}
		if !found {
			// removed since ReadDir, or still empty
			continue
		}
		files = append(files, PendingFile{Path: path, Record: &rec})
	}

	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i].Record, files[j].Record
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.ID < b.ID
	})
	return files, nil
}

// Remove deletes one artifact.
func (p *Pending) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove pending record: %w", err)
	}
	return nil
}
