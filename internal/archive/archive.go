package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jd3600/sonar/internal/types"
)

// Index stores records and their speakers. Records already archived are
// left untouched.
func (a *implArchive) Index(ctx context.Context, recs []types.Record) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin index: %w", err)
	}
	defer tx.Rollback()

	for _, r := range recs {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO records (id, kind, filename, timestamp, duration, topics, summary)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, string(r.MediaKind), r.Filename, r.Timestamp.UTC().Format(time.RFC3339Nano),
			r.DurationSeconds, strings.Join(r.Topics, ","), r.Summary)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", r.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			continue
		}

		for i, s := range r.Speakers {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO speakers (record_id, position, name, affiliation, affiliation_raw, speech_time)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, i, s.Name, string(s.Affiliation), s.AffiliationRaw, s.SpeechTime); err != nil {
				return fmt.Errorf("insert speaker %q of record %d: %w", s.Name, r.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

func (a *implArchive) AffiliationStats(ctx context.Context, kind types.MediaKind) ([]AffiliationStat, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT s.affiliation, COUNT(DISTINCT s.name), COUNT(*), COALESCE(SUM(s.speech_time), 0)
		 FROM speakers s JOIN records r ON r.id = s.record_id
		 WHERE ? = '' OR r.kind = ?
		 GROUP BY s.affiliation
		 ORDER BY 4 DESC, s.affiliation`,
		string(kind), string(kind))
	if err != nil {
		return nil, fmt.Errorf("query affiliation stats: %w", err)
	}
	defer rows.Close()

	out := []AffiliationStat{}
	for rows.Next() {
		var st AffiliationStat
		var aff string
		if err := rows.Scan(&aff, &st.Speakers, &st.Appearances, &st.SpeechTime); err != nil {
			return nil, fmt.Errorf("scan affiliation stats: %w", err)
		}
		st.Affiliation = types.Affiliation(aff)
		out = append(out, st)
	}
	return out, rows.Err()
}

// Appearances lists records where a speaker whose name contains name
// (case-insensitive) appears, oldest first.
func (a *implArchive) Appearances(ctx context.Context, name string) ([]Appearance, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT r.id, r.kind, r.filename, r.timestamp, s.name, s.affiliation, s.affiliation_raw, s.speech_time
		 FROM speakers s JOIN records r ON r.id = s.record_id
		 WHERE s.name LIKE '%' || ? || '%'
		 ORDER BY r.timestamp, r.id, s.position`,
		name)
	if err != nil {
		return nil, fmt.Errorf("query appearances: %w", err)
	}
	defer rows.Close()

	out := []Appearance{}
	for rows.Next() {
		var ap Appearance
		var kind, ts, aff string
		if err := rows.Scan(&ap.RecordID, &kind, &ap.Filename, &ts, &ap.Name, &aff, &ap.AffiliationRaw, &ap.SpeechTime); err != nil {
			return nil, fmt.Errorf("scan appearance: %w", err)
		}
		ap.MediaKind = types.MediaKind(kind)
		ap.Affiliation = types.Affiliation(aff)
		if ap.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse timestamp of record %d: %w", ap.RecordID, err)
		}
		out = append(out, ap)
	}
	return out, rows.Err()
}

func (a *implArchive) Count(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
