package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docstats/internal/docs"
	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
	"git.home.luguber.info/inful/docstats/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before regenerating.
const DefaultDebounce = 2 * time.Second

// Watcher regenerates the artifact when Markdown files below root change.
type Watcher struct {
	root       string
	debounce   time.Duration
	regenerate func(ctx context.Context)

	fsw     *fsnotify.Watcher
	trigger chan struct{}
	runMu   sync.Mutex

	// only touched by the event loop
	dirs   map[string]struct{}
	ignore map[string]struct{}
}

// NewWatcher creates a watcher for root. regenerate is never run concurrently
// with itself.
func NewWatcher(root string, debounce time.Duration, regenerate func(ctx context.Context)) (*Watcher, error) {
	if regenerate == nil {
		return nil, errors.ValidationError("regenerate callback is required").Build()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve content root").
			WithContext("path", root).
			Build()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	return &Watcher{
		root:       abs,
		debounce:   debounce,
		regenerate: regenerate,
		fsw:        fsw,
		trigger:    make(chan struct{}, 1),
		dirs:       make(map[string]struct{}),
		ignore:     make(map[string]struct{}),
	}, nil
}

// Ignore excludes files from change detection, such as the artifact when it
// is written below the content root. Call before Run.
func (w *Watcher) Ignore(paths ...string) {
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			w.ignore[abs] = struct{}{}
		}
	}
}

// Regenerate runs the callback, waiting for any run in progress to finish.
func (w *Watcher) Regenerate(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	w.regenerate(ctx)
}

// Run watches until ctx is done. It returns after the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			slog.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	slog.Info("Watching content for changes", logfields.Path(w.root), slog.Duration("debounce", w.debounce))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.debounceLoop(ctx)
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if docs.IsHidden(name) {
		return
	}
	if _, skip := w.ignore[filepath.Clean(event.Name)]; skip {
		return
	}
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
			w.poke()
			return
		}
	}
	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		if w.dropTree(event.Name) {
			// a removed directory can take Markdown files with it
			w.poke()
			return
		}
	}
	if !docs.IsMarkdown(name) {
		return
	}
	if event.Op.Has(fsnotify.Chmod) && !event.Op.Has(fsnotify.Write) {
		return
	}
	slog.Debug("Content change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
	w.poke()
}

// dropTree forgets dir and everything below it. It reports whether dir was watched.
func (w *Watcher) dropTree(dir string) bool {
	dir = filepath.Clean(dir)
	if _, ok := w.dirs[dir]; !ok {
		return false
	}
	prefix := dir + string(filepath.Separator)
	for d := range w.dirs {
		if d == dir || strings.HasPrefix(d, prefix) {
			delete(w.dirs, d)
		}
	}
	return true
}

func (w *Watcher) poke() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-w.trigger:
			timer.Reset(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			slog.Info("Content changed, regenerating stats")
			w.Regenerate(ctx)
		}
	}
}

// addTree watches dir and every non-hidden directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to walk content root").
				WithContext("path", p).
				Build()
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && docs.IsHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
				WithContext("path", p).
				Build()
		}
		w.dirs[filepath.Clean(p)] = struct{}{}
		return nil
	})
}
