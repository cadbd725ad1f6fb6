package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/logger"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher regenerates when Go sources in a set of directories change.
type Watcher struct {
	// Debounce is the quiet period after the last event before Run fires.
	Debounce time.Duration
	// Match selects the files that trigger a run; nil means non-test .go files.
	Match func(path string) bool

	watcher *fsnotify.Watcher
	output  string
	run     func(context.Context) error

	mu    sync.Mutex
	timer *time.Timer
	fire  chan struct{}
}

// NewWatcher watches dirs and calls run after changes settle. Events on the
// output file name are ignored so that writing it does not loop.
func NewWatcher(dirs []string, output string, run func(context.Context) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return &Watcher{
		Debounce: DefaultDebounce,
		watcher:  fw,
		output:   output,
		run:      run,
		fire:     make(chan struct{}, 1),
	}, nil
}

// Run processes events until ctx is done, then closes the watcher. Runs never
// overlap; a failed run is logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debugw("watcher detected change", logger.FieldFile, event.Name, "op", event.Op.String())
			w.schedule()

		case <-w.fire:
			if err := w.run(ctx); err != nil {
				logger.Errorw("regeneration failed", logger.FieldError, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Base(event.Name) == w.output {
		return false
	}
	if w.Match != nil {
		return w.Match(event.Name)
	}
	return IsSource(event.Name)
}

// IsSource reports whether path is a non-test Go file.
func IsSource(path string) bool {
	return strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go")
}

// schedule debounces rapid changes into one run.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Debounce, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.watcher.Close()
}

// PackageDirs returns the directories of outs, for watching.
func PackageDirs(outs []*Output) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, out := range outs {
		dir := out.Package.Dir
		if _, err := os.Stat(dir); err != nil || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}
