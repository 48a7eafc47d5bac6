// Package watch reruns a job whenever its input or configuration changes.
package watch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/logger"
)

// OutputEnv names the variable carrying the run's output paths to the
// on_change hook, joined with the OS path list separator.
const OutputEnv = "STOICH_OUTPUT"

// RunFunc does one unit of work and reports the files it wrote.
type RunFunc func(ctx context.Context) (outputs []string, err error)

// Watcher reruns a RunFunc on file changes, debounced.
type Watcher struct {
	targets  map[string]bool // absolute paths that trigger a rerun
	dirs     []string
	debounce time.Duration
	run      RunFunc
	hook     []string
	logger   *zap.SugaredLogger
}

// Options configures a Watcher.
type Options struct {
	Paths    []string      // files to watch; empty entries are ignored
	Debounce time.Duration // quiet period before rerunning
	OnChange string        // command line run after each successful run
	Logger   *zap.SugaredLogger
}

// New validates opts and prepares a Watcher. Nothing is watched until Run.
func New(run RunFunc, opts Options) (*Watcher, error) {
	w := &Watcher{
		targets:  make(map[string]bool),
		debounce: opts.Debounce,
		run:      run,
		logger:   opts.Logger,
	}
	if w.logger == nil {
		w.logger = logger.Logger
	}
	if w.debounce <= 0 {
		w.debounce = 500 * time.Millisecond
	}

	seenDir := make(map[string]bool)
	for _, p := range opts.Paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.targets[abs] = true
		// Watch the directory: atomic saves replace the file and drop a
		// watch placed on the file itself.
		if dir := filepath.Dir(abs); !seenDir[dir] {
			seenDir[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.targets) == 0 {
		return nil, errors.NewInvalidRequestError("nothing to watch")
	}

	if strings.TrimSpace(opts.OnChange) != "" {
		hook, err := shellquote.Split(opts.OnChange)
		if err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrInvalidRequest, "watch.on_change: %v", err),
				"quote arguments the way a POSIX shell would")
		}
		w.hook = hook
	}
	return w, nil
}

// Run performs an initial run, then reruns after every debounced change
// until ctx is cancelled. Failed runs are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}

	w.runOnce(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debugw("Watched file changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)

		case <-timer.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.targets[abs]
}

func (w *Watcher) runOnce(ctx context.Context) {
	start := time.Now()
	outputs, err := w.run(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Errorw("Run failed", logger.FieldError, err)
		}
		return
	}
	w.logger.Infow("Run finished",
		logger.FieldCount, len(outputs),
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	if len(w.hook) > 0 {
		if err := w.runHook(ctx, outputs); err != nil {
			w.logger.Warnw("on_change hook failed", logger.FieldError, err)
		}
	}
}

func (w *Watcher) runHook(ctx context.Context, outputs []string) error {
	cmd := exec.CommandContext(ctx, w.hook[0], w.hook[1:]...)
	cmd.Env = append(os.Environ(), OutputEnv+"="+strings.Join(outputs, string(os.PathListSeparator)))
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		w.logger.Debugw("on_change hook output", "output", strings.TrimSpace(string(out)))
	}
	if err != nil {
		return errors.Wrapf(err, "running %s", shellquote.Join(w.hook...))
	}
	return nil
}
