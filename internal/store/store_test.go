package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jd3600/sonar/internal/logger"
	"github.com/jd3600/sonar/internal/types"
)

func testRecord(id int64, kind types.MediaKind) *types.Record {
	return &types.Record{
		ID:        id,
		MediaKind: kind,
		Filename:  "clip.mp3",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Speakers:  []types.Speaker{{Name: "Paul Néaoutyine", Affiliation: types.Independentist, SpeechTime: 120}},
		Topics:    []string{"Politique"},
		Summary:   "Résumé.",
		Complete:  true,
	}
}

func newTestCollector(t *testing.T) (*Collector, *Pending, *Collection) {
	t.Helper()
	dir := t.TempDir()
	p := NewPending(filepath.Join(dir, "pending"))
	c := NewCollection(filepath.Join(dir, "public", "resultats_sonar.json"))
	return NewCollector(p, c, nil, logger.NewNop()), p, c
}

func TestPendingPutDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	p := NewPending(t.TempDir())

	a, err := p.Put(ctx, testRecord(1, types.Audio))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	b, err := p.Put(ctx, testRecord(2, types.Audio))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if a == b {
		t.Fatalf("Put() reused path %s", a)
	}

	files, err := p.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(files) != 2 || files[0].Record.ID != 1 || files[1].Record.ID != 2 {
		t.Errorf("List() = %+v, want records 1 and 2 in order", files)
	}
}

func TestPendingPutConcurrent(t *testing.T) {
	ctx := context.Background()
	p := NewPending(t.TempDir())

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if _, err := p.Put(ctx, testRecord(id, types.Video)); err != nil {
				t.Errorf("Put(%d) error = %v", id, err)
			}
		}(int64(i))
	}
	wg.Wait()

	files, err := p.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(files) != 20 {
		t.Errorf("List() returned %d files, want 20", len(files))
	}
}

func TestCollect(t *testing.T) {
	ctx := context.Background()
	col, p, c := newTestCollector(t)

	for _, id := range []int64{10, 11} {
		if _, err := p.Put(ctx, testRecord(id, types.Audio)); err != nil {
			t.Fatal(err)
		}
	}
	res, err := col.Collect(ctx)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if res.Added != 2 || res.Duplicates != 0 {
		t.Errorf("Collect() = %+v, want 2 added", res)
	}

	// a record already in the collection is dropped, not duplicated
	if _, err := p.Put(ctx, testRecord(11, types.Audio)); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Put(ctx, testRecord(12, types.Video)); err != nil {
		t.Fatal(err)
	}
	res, err = col.Collect(ctx)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if res.Added != 1 || res.Duplicates != 1 {
		t.Errorf("Collect() = %+v, want 1 added and 1 duplicate", res)
	}

	recs, err := c.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Load() returned %d records, want 3", len(recs))
	}
	if recs[0].Speakers[0].Affiliation != types.Independentist {
		t.Errorf("round trip lost affiliation: %+v", recs[0].Speakers[0])
	}

	files, _ := p.List()
	if len(files) != 0 {
		t.Errorf("pending has %d files after collect, want 0", len(files))
	}
}

func TestCollectSkipsCorruptArtifacts(t *testing.T) {
	ctx := context.Background()
	col, p, _ := newTestCollector(t)

	if _, err := p.Put(ctx, testRecord(1, types.Audio)); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(p.Dir(), "audio-broken.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := col.Collect(ctx)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if res.Added != 1 || res.Failed != 1 {
		t.Errorf("Collect() = %+v, want 1 added and 1 failed", res)
	}
	if _, err := os.Stat(bad); err != nil {
		t.Errorf("corrupt artifact should stay in place: %v", err)
	}
}

func TestCollectCorruptCollection(t *testing.T) {
	ctx := context.Background()
	col, p, c := newTestCollector(t)

	if err := os.MkdirAll(filepath.Dir(c.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.Path(), []byte("[{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Put(ctx, testRecord(1, types.Audio)); err != nil {
		t.Fatal(err)
	}

	if _, err := col.Collect(ctx); err == nil {
		t.Fatal("Collect() should fail on a corrupt collection")
	}
	files, _ := p.List()
	if len(files) != 1 {
		t.Errorf("pending record should survive a failed collect, got %d files", len(files))
	}
}

type recordingIndexer struct {
	got []types.Record
}

func (r *recordingIndexer) Index(ctx context.Context, recs []types.Record) error {
	r.got = append(r.got, recs...)
	return nil
}

func TestCollectIndexesAdded(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p := NewPending(filepath.Join(dir, "pending"))
	idx := &recordingIndexer{}
	col := NewCollector(p, NewCollection(filepath.Join(dir, "out.json")), idx, logger.NewNop())

	if _, err := p.Put(ctx, testRecord(5, types.Video)); err != nil {
		t.Fatal(err)
	}
	if _, err := col.Collect(ctx); err != nil {
		t.Fatal(err)
	}
	if len(idx.got) != 1 || idx.got[0].ID != 5 {
		t.Errorf("indexer got %+v, want record 5", idx.got)
	}
}

func TestStatusAndReset(t *testing.T) {
	ctx := context.Background()
	col, p, _ := newTestCollector(t)

	if _, err := p.Put(ctx, testRecord(3, types.Video)); err != nil {
		t.Fatal(err)
	}
	status, err := col.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if len(status) != 1 || status[0].ID != 3 || status[0].Speakers != 1 || status[0].MediaKind != types.Video {
		t.Errorf("Status() = %+v, want one video record with id 3", status)
	}

	n, err := col.Reset(ctx)
	if err != nil || n != 1 {
		t.Errorf("Reset() = %d, %v, want 1, nil", n, err)
	}
	status, _ = col.Status(ctx)
	if len(status) != 0 {
		t.Errorf("Status() after reset = %+v, want empty", status)
	}
}

func TestJournal(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(filepath.Join(t.TempDir(), "dashboard_data.json"))

	entries, err := j.Entries()
	if err != nil || len(entries) != 0 {
		t.Fatalf("Entries() on missing file = %v, %v, want empty", entries, err)
	}

	for _, src := range []string{"a.mp3", "b.mp3"} {
		if err := j.Append(ctx, types.JournalEntry{Timestamp: time.Now().UTC(), Source: src, Analysis: "texte"}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	entries, err = j.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 2 || entries[1].Source != "b.mp3" {
		t.Errorf("Entries() = %+v, want a.mp3 then b.mp3", entries)
	}
}

func TestPutHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewPending(t.TempDir()).Put(ctx, testRecord(1, types.Audio)); !errors.Is(err, context.Canceled) {
		t.Errorf("Put() error = %v, want context.Canceled", err)
	}
}
