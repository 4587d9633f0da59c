package report

import (
	"github.com/jd3600/sonar/internal/logger"
)

type implReporter struct {
	dir    string
	logger logger.Logger
}

// New creates a Reporter writing .docx files into dir.
func New(dir string, log logger.Logger) Reporter {
	return &implReporter{
		dir:    dir,
		logger: log,
	}
}
