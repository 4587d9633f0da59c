package report

import (
	"fmt"
	"strings"

	"github.com/jd3600/sonar/internal/types"
	"github.com/xuri/excelize/v2"
)

const (
	recordsSheet  = "Records"
	speakersSheet = "Speakers"
)

var (
	recordsHeader  = []interface{}{"ID", "Type", "Filename", "Timestamp", "Duration (s)", "Speakers", "Topics", "Summary"}
	speakersHeader = []interface{}{"Record ID", "Filename", "Name", "Camp", "Speech time (s)"}
)

// ExportXLSX writes the collection to a workbook with one row per record
// and one row per speaker appearance.
func ExportXLSX(recs []types.Record, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(speakersSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := setRow(f, recordsSheet, 1, recordsHeader); err != nil {
		return err
	}
	if err := setRow(f, speakersSheet, 1, speakersHeader); err != nil {
		return err
	}

	speakerRow := 2
	for i, rec := range recs {
		row := []interface{}{
			rec.ID,
			string(rec.MediaKind),
			rec.Filename,
			rec.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			rec.DurationSeconds,
			len(rec.Speakers),
			strings.Join(rec.Topics, ", "),
			rec.Summary,
		}
		if err := setRow(f, recordsSheet, i+2, row); err != nil {
			return err
		}

		for _, s := range rec.Speakers {
			if err := setRow(f, speakersSheet, speakerRow, []interface{}{rec.ID, rec.Filename, s.Name, s.Label(), s.SpeechTime}); err != nil {
				return err
			}
			speakerRow++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
