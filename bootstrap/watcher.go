package bootstrap

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/modelgate/modelgate/adapters/metrics"
	"github.com/modelgate/modelgate/core/compiler"
)

// Watcher rebuilds the pipeline whenever a model definition changes.
// Each rebuild constructs a fresh registry, seals it, and compiles, so the
// one-way sealing contract holds per registry instance.
type Watcher struct {
	mu       sync.RWMutex
	artifact *compiler.Artifact

	dir      string
	logger   zerolog.Logger
	metrics  *metrics.Collector
	watcher  *fsnotify.Watcher
	onChange []func(*compiler.Artifact)
	stopCh   chan struct{}
}

// NewWatcher creates a watcher over the model directory, seeded with the
// given artifact.
func NewWatcher(dir string, artifact *compiler.Artifact, logger zerolog.Logger, m *metrics.Collector) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	return &Watcher{
		artifact: artifact,
		dir:      abs,
		logger:   logger,
		metrics:  m,
		stopCh:   make(chan struct{}),
	}, nil
}

// Artifact returns the latest successfully compiled artifact (thread-safe).
func (w *Watcher) Artifact() *compiler.Artifact {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.artifact
}

// OnChange registers a callback invoked after each successful rebuild.
func (w *Watcher) OnChange(fn func(*compiler.Artifact)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Start begins watching the model directory. Changes trigger a rebuild;
// a failed rebuild keeps the previous artifact.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w.watcher = watcher

	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go w.watchLoop()

	w.logger.Info().Str("dir", w.dir).Msg("watching model definitions for changes")
	return nil
}

// Stop stops watching for file changes.
func (w *Watcher) Stop() {
	close(w.stopCh)
	if w.watcher != nil {
		w.watcher.Close()
	}
}

// Rebuild runs one pipeline cycle and swaps in the new artifact on success.
func (w *Watcher) Rebuild() error {
	_, artifact, err := Build(w.dir, w.logger, w.metrics)
	if err != nil {
		w.logger.Error().Err(err).Msg("rebuild failed, keeping previous artifact")
		return err
	}

	w.mu.Lock()
	w.artifact = artifact
	callbacks := w.onChange
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn(artifact)
	}

	return nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !isModelFile(event.Name) {
				continue
			}

			// Write, create, remove and rename all change the model set
			// (atomic editor saves show up as create+rename).
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("model definition changed")

				if err := w.Rebuild(); err != nil {
					continue
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("file watcher error")

		case <-w.stopCh:
			return
		}
	}
}

func isModelFile(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
