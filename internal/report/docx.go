package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/jd3600/sonar/internal/types"
)

// Path returns where the report of rec is written.
func Path(dir string, rec *types.Record) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%d.docx", rec.MediaKind, rec.ID))
}

func (r *implReporter) Write(ctx context.Context, rec *types.Record, analysis string) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), "SONAR - "+rec.Filename, true, 16)
	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Type : %s", rec.MediaKind), false, fontSize)
	addStyledRun(doc.AddParagraph(""), "Date : "+rec.Timestamp.UTC().Format("2006-01-02 15:04"), false, fontSize)
	if rec.DurationSeconds > 0 {
		addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Durée : %d s", rec.DurationSeconds), false, fontSize)
	}

	addStyledRun(doc.AddParagraph(""), "Intervenants", true, headingSize(2))
	for _, s := range rec.Speakers {
		p := doc.AddParagraph("")
		addRichText(p, fmt.Sprintf("• **%s** (%s) - %d s", s.Name, s.Label(), s.SpeechTime))
	}

	addStyledRun(doc.AddParagraph(""), "Thèmes", true, headingSize(2))
	addStyledRun(doc.AddParagraph(""), strings.Join(rec.Topics, ", "), false, fontSize)

	addStyledRun(doc.AddParagraph(""), "Synthèse", true, headingSize(2))
	addStyledRun(doc.AddParagraph(""), rec.Summary, false, fontSize)

	if strings.TrimSpace(analysis) != "" {
		addStyledRun(doc.AddParagraph(""), "Analyse complète", true, headingSize(2))
		appendMarkdown(doc, analysis)
	}

	path := Path(r.dir, rec)
	if err := doc.SaveTo(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}

	r.logger.Info(ctx, "Report written: %s", path)
	return path, nil
}
