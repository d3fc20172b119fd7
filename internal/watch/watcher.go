// SPDX-License-Identifier: MPL-2.0

// Package watch provides file-watching with debounced repackaging.
//
// It monitors the configured input directories for changes to process XML
// files and invokes a callback after a configurable debounce period. Events
// within the debounce window are coalesced so the callback fires once with
// the full set of changed paths.
package watch

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const (
	// DefaultDebounce is the delay before firing the onChange callback after
	// the last filesystem event. This allows rapid successive events (e.g.,
	// an editor writing then renaming a temp file) to coalesce into a single
	// repackaging run.
	DefaultDebounce = 500 * time.Millisecond

	// DefaultPattern selects the files that trigger repackaging when no
	// explicit patterns are configured.
	DefaultPattern = "**/*.xml"
)

// defaultIgnores lists path patterns that never trigger repackaging,
// regardless of user-supplied ignore patterns. These cover VCS metadata,
// build output, editor swap files, and OS metadata files that generate
// high-frequency noise.
var defaultIgnores = []string{
	"**/.git/**",
	"**/target/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dirs are the input directories to watch. At least one is required.
		// Each directory is walked recursively.
		Dirs []string

		// Patterns are doublestar-compatible glob patterns that select which
		// files trigger repackaging, resolved relative to the directory the
		// event occurred under. An empty slice defaults to DefaultPattern.
		Patterns []string

		// Ignore are additional doublestar-compatible glob patterns for paths
		// that should never trigger repackaging. These are merged with the
		// built-in default ignores.
		Ignore []string

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative values fall back to
		// DefaultDebounce.
		Debounce time.Duration

		// ClearScreen controls whether the terminal is cleared before each
		// callback invocation by writing ANSI escape sequences to Stdout.
		// No terminal detection is performed; callers should ensure Stdout
		// is a real terminal when enabling this option.
		ClearScreen bool

		// OnChange is called after the debounce window closes with the
		// deduplicated list of changed file paths (relative to the watched
		// directory they occurred under). A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Stdout and Stderr are the output writers for informational and
		// error messages respectively. nil values default to
		// os.Stdout / os.Stderr.
		Stdout io.Writer
		Stderr io.Writer
	}

	// Watcher monitors the input directories and fires a debounced callback
	// when matching files change. Run must be called exactly once; calling it
	// a second time returns an error.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		roots    []string
		patterns []string
		ignores  []string
		stdout   io.Writer
		stderr   io.Writer
		debounce time.Duration
		started  atomic.Bool
	}
)

// New creates a Watcher from the given Config. It resolves every directory to
// an absolute path, initialises the underlying fsnotify watcher, and
// registers all non-ignored directories below each root for monitoring.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Dirs) == 0 {
		return nil, fmt.Errorf("watch: no directories to watch")
	}

	roots := make([]string, 0, len(cfg.Dirs))
	for _, dir := range cfg.Dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve directory %q: %w", dir, err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("watch: %q is not a watchable directory", dir)
		}
		roots = append(roots, abs)
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	// Validate all patterns eagerly so invalid globs fail at construction
	// time rather than silently failing to match at runtime.
	if err := validatePatterns(patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		roots:    roots,
		patterns: patterns,
		ignores:  ignores,
		stdout:   stdout,
		stderr:   stderr,
		debounce: debounce,
	}

	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			fmt.Fprintf(stderr, "watch: close after init failure: %v\n", closeErr)
		}
		return nil, err
	}

	return w, nil
}

// Run blocks until ctx is cancelled, processing filesystem events and
// dispatching debounced callbacks. It returns nil on clean context
// cancellation and propagates any fatal watcher errors. Run must be called
// exactly once; a second call returns an error immediately.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire drains the pending set and invokes the OnChange callback. It may
	// be scheduled by time.AfterFunc after the context is cancelled, so check
	// ctx.Err() as a best-effort guard; the callback receives ctx and should
	// check it for cancellation-sensitive work. Uses an atomic skip-if-busy
	// guard to prevent concurrent repackaging runs when packaging takes
	// longer than the debounce period.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			fmt.Fprintf(w.stderr, "watch: skipping repackaging (previous run still in progress)\n")
			// Schedule a retry so pending events are not permanently lost.
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Collect(maps.Keys(pending))
		clear(pending)
		mu.Unlock()
		slices.Sort(changed)

		if w.cfg.ClearScreen {
			// ANSI escape: clear screen and move cursor to top-left.
			fmt.Fprint(w.stdout, "\033[2J\033[H")
		}

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				fmt.Fprintf(w.stderr, "watch: repackaging error: %v\n", err)
			}
		}
	}

	// Ensure the timer channel is drained on exit. The timer is accessed
	// under mu because it is written by the event loop under the same lock.
	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil && !localTimer.Stop() {
			select {
			case <-localTimer.C:
			default:
			}
		}
		if closeErr := w.fsw.Close(); closeErr != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}

			rel, ok := w.relToRoot(evt.Name)
			if !ok || w.isIgnored(rel) {
				continue
			}

			// Auto-add newly created directories so recursive watches extend
			// to directories created after startup.
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			if !w.matchesPatterns(rel) {
				continue
			}

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			// Resource exhaustion (inotify limit, file descriptor limits)
			// means the watcher is fundamentally broken.
			// isFatalFsnotifyError is platform-specific (see watcher_fatal_*.go).
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: fsnotify error: %v\n", err)
		}
	}
}

// relToRoot resolves path against the watched root that contains it and
// returns the root-relative path in slash form. Paths outside every root are
// reported as not found.
func (w *Watcher) relToRoot(path string) (string, bool) {
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}

// addDirectories walks every root and adds each non-ignored directory to the
// fsnotify watcher. All directories are registered regardless of watch
// patterns; pattern filtering is applied when events arrive.
func (w *Watcher) addDirectories() error {
	for _, root := range w.roots {
		walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, walkDirErr error) error {
			if walkDirErr != nil {
				// Skip directories we cannot access rather than aborting the
				// entire walk. Log to stderr so users know which paths are
				// not being watched.
				fmt.Fprintf(w.stderr, "watch: skipping inaccessible path %q: %v\n", path, walkDirErr)
				return nil //nolint:nilerr // intentional skip of inaccessible paths
			}
			if !d.IsDir() {
				return nil
			}

			if path != root {
				rel, ok := w.relToRoot(path)
				if !ok {
					return nil
				}
				// Skip ignored directories entirely to avoid descending into
				// them.
				if w.isIgnored(rel) || w.isIgnored(rel+"/") {
					return filepath.SkipDir
				}
			}

			if addErr := w.fsw.Add(path); addErr != nil {
				return fmt.Errorf("watch: add directory %q: %w", path, addErr)
			}
			return nil
		})
		if walkErr != nil {
			return fmt.Errorf("watch: walk directory tree: %w", walkErr)
		}
	}
	return nil
}

// maybeAddDir adds path to the fsnotify watcher if it is a directory and is
// not ignored. This enables automatic monitoring of directories created after
// the initial walk.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	rel, ok := w.relToRoot(path)
	if !ok || w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}

	if addErr := w.fsw.Add(path); addErr != nil {
		fmt.Fprintf(w.stderr, "watch: add new directory %q: %v\n", path, addErr)
	}
}

// isIgnored reports whether the root-relative path matches any ignore
// pattern.
func (w *Watcher) isIgnored(rel string) bool {
	for _, pat := range w.ignores {
		if matched, matchErr := doublestar.Match(pat, rel); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// matchesPatterns reports whether the root-relative path matches at least one
// of the configured watch patterns.
func (w *Watcher) matchesPatterns(rel string) bool {
	for _, pat := range w.patterns {
		if matched, matchErr := doublestar.Match(pat, rel); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	out := make([]string, len(defaultIgnores))
	copy(out, defaultIgnores)
	return out
}

// validatePatterns checks that every pattern in the slice is a valid
// doublestar glob. The label (e.g., "watch" or "ignore") is used in error
// messages.
func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if _, err := doublestar.Match(pat, ""); err != nil {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, err)
		}
	}
	return nil
}
