package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jd3600/sonar/internal/logger"
)

type implWatcher struct {
	inputDir      string
	extensions    map[string]bool
	settleDelay   time.Duration
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]bool
}

// Start begins monitoring the input directory for new media files.
// It blocks until ctx is cancelled, then waits for in-flight handlers.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(w.formats(), ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// CREATE covers both new files and files moved into the folder
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !w.isMediaFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}
			if !w.claim(event.Name) {
				continue
			}

			w.logger.Info(ctx, "New media detected: %s", event.Name)
			w.wg.Add(1)
			go w.handle(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) handle(ctx context.Context, filePath string) {
	defer w.wg.Done()
	defer w.release(filePath)

	if err := w.waitStable(ctx, filePath); err != nil {
		if ctx.Err() == nil {
			w.logger.Warn(ctx, "Skipping %s: %v", filePath, err)
		}
		return
	}

	// Acquire semaphore slot (blocks if max concurrent reached)
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return
	}
	defer func() { <-w.semaphore }()

	if err := w.handler(ctx, filePath); err != nil {
		w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
	}
}

// waitStable returns once the file size is unchanged across one settle period.
func (w *implWatcher) waitStable(ctx context.Context, path string) error {
	if w.settleDelay <= 0 {
		return nil
	}

	last := int64(-1)
	for {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat file: %w", err)
		}
		if info.Size() == last {
			return nil
		}
		last = info.Size()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.settleDelay):
		}
	}
}

func (w *implWatcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight[path] {
		return false
	}
	w.inFlight[path] = true
	return true
}

func (w *implWatcher) release(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, path)
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isMediaFile checks if the file has one of the configured extensions
func (w *implWatcher) isMediaFile(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

func (w *implWatcher) formats() []string {
	out := make([]string, 0, len(w.extensions))
	for e := range w.extensions {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
