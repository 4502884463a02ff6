// Package watcher reports file system changes to survey inputs using fsnotify.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/logger"
)

// Verify interface compliance.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// DefaultDebounce is the quiet period before a batch is reported.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches files and directories.
// Files are watched through their parent directory so editors that replace
// the file on save are still seen.
type Watcher struct {
	debounce time.Duration
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// target is one watched directory. Unless all is set, only entries listed
// in names or starting with one of prefixes matter.
type target struct {
	all      bool
	names    map[string]bool
	prefixes []string
}

func (t *target) accepts(base string) bool {
	if t.all || t.names[base] {
		return true
	}
	for _, p := range t.prefixes {
		if strings.HasPrefix(base, p) {
			return true
		}
	}
	return false
}

// Watch starts watching paths.
func (w *Watcher) Watch(ctx context.Context, paths []string) (<-chan []string, error) {
	targets, err := resolve(paths)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	for dir := range targets {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("watching %s", dir)
	}

	out := make(chan []string)
	go w.loop(ctx, fsw, targets, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, targets map[string]*target, out chan<- []string) {
	defer close(out)
	defer fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			name, ok := handleFsEvent(targets, event)
			if !ok {
				continue
			}
			pending[name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch: %v", err)
		case <-fire:
			fire = nil
			batch := make([]string, 0, len(pending))
			for name := range pending {
				batch = append(batch, name)
			}
			sort.Strings(batch)
			pending = make(map[string]bool)
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleFsEvent returns the changed path if the event concerns a watched
// entry. Chmod events and hidden files are ignored.
func handleFsEvent(targets map[string]*target, event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return "", false
	}
	t, ok := targets[filepath.Dir(event.Name)]
	if !ok {
		return "", false
	}
	if !t.accepts(base) {
		return "", false
	}
	return event.Name, true
}

// resolve groups paths by the directory that must be watched. A path that
// does not exist inside an existing directory is a file name prefix, as in
// a cadence location of the form dates/lsst_.
func resolve(paths []string) (map[string]*target, error) {
	targets := make(map[string]*target)
	get := func(dir string) *target {
		t := targets[dir]
		if t == nil {
			t = &target{names: make(map[string]bool)}
			targets[dir] = t
		}
		return t
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		switch {
		case err == nil && info.IsDir():
			get(p).all = true
		case err == nil:
			get(filepath.Dir(p)).names[filepath.Base(p)] = true
		case errors.Is(err, fs.ErrNotExist) && isDir(filepath.Dir(p)):
			t := get(filepath.Dir(p))
			t.prefixes = append(t.prefixes, filepath.Base(p))
		default:
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
	}
	if len(targets) == 0 {
		return nil, errors.New("watch: no paths")
	}
	return targets, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
