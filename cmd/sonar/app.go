package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jd3600/sonar/internal/archive"
	"github.com/jd3600/sonar/internal/config"
	"github.com/jd3600/sonar/internal/extract"
	"github.com/jd3600/sonar/internal/logger"
	"github.com/jd3600/sonar/internal/store"
	"github.com/jd3600/sonar/internal/template"
	"github.com/jd3600/sonar/internal/types"
)

// app holds the components shared by every command.
type app struct {
	cfg        *config.Config
	log        logger.Logger
	pending    *store.Pending
	collection *store.Collection
	journal    *store.Journal
	archive    archive.Archive
	collector  *store.Collector
	assemblers map[types.MediaKind]template.Assembler
}

func newApp(flags *rootFlags, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: logOut,
	})

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	arc, err := archive.Open(cfg.Paths.Archive)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:        cfg,
		log:        log,
		pending:    store.NewPending(cfg.Paths.Pending),
		collection: store.NewCollection(cfg.Paths.Collection),
		journal:    store.NewJournal(cfg.Paths.Journal),
		archive:    arc,
		assemblers: make(map[types.MediaKind]template.Assembler),
	}
	a.collector = store.NewCollector(a.pending, a.collection, arc, log)

	// one id generator so audio and video records never share an id
	ids := template.NewMillisIDs(nil)
	for _, kind := range a.enabledKinds() {
		ext, err := extract.New(kind)
		if err != nil {
			arc.Close()
			return nil, err
		}
		a.assemblers[kind] = template.New(ext, a.pending, log, template.WithIDs(ids))
	}

	return a, nil
}

func (a *app) enabledKinds() []types.MediaKind {
	var kinds []types.MediaKind
	if a.cfg.Pipelines.Audio.Enabled {
		kinds = append(kinds, types.Audio)
	}
	if a.cfg.Pipelines.Video.Enabled {
		kinds = append(kinds, types.Video)
	}
	return kinds
}

func (a *app) Close() error {
	return a.archive.Close()
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Pending,
		cfg.Paths.Reports,
	}
	for _, p := range []config.PipelineConfig{cfg.Pipelines.Audio, cfg.Pipelines.Video} {
		if p.Enabled {
			dirs = append(dirs, p.Input, p.Processed)
		}
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
