// Package filesystem scans a local directory for supported documents and
// watches it for changes with fsnotify.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/logger"
)

// DefaultDebounce is how long a path must be quiet before a change is emitted.
// Editors and copies often produce several writes for one save.
const DefaultDebounce = 300 * time.Millisecond

// ChangeType describes what happened to a watched file.
type ChangeType string

// Change types.
const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
)

// Change is a file event that should be (re)ingested.
type Change struct {
	Type ChangeType
	Path string
}

// Option configures a Connector.
type Option func(*Connector)

// WithSupports restricts files to those whose lower-cased extension passes f.
func WithSupports(f func(ext string) bool) Option {
	return func(c *Connector) {
		if f != nil {
			c.supports = f
		}
	}
}

// WithDebounce sets the quiet period before a change is emitted.
func WithDebounce(d time.Duration) Option {
	return func(c *Connector) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// Connector reads documents from a directory tree.
type Connector struct {
	rootPath string
	supports func(ext string) bool
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a connector rooted at rootPath.
func New(rootPath string, opts ...Option) *Connector {
	c := &Connector{
		rootPath: rootPath,
		supports: func(string) bool { return true },
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RootPath returns the scanned directory.
func (c *Connector) RootPath() string {
	return c.rootPath
}

// FullSync walks the directory and emits every supported, non-hidden file.
// Both channels are closed when the walk finishes.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawFile, <-chan error) {
	files := make(chan domain.RawFile)
	errs := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errs)

		info, err := os.Stat(c.rootPath)
		if err != nil {
			if os.IsNotExist(err) {
				errs <- fmt.Errorf("directory %s does not exist", c.rootPath)
				return
			}
			errs <- fmt.Errorf("stat %s: %w", c.rootPath, err)
			return
		}
		if !info.IsDir() {
			errs <- fmt.Errorf("%s is not a directory", c.rootPath)
			return
		}

		err = filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				logger.Warn("walk directory", "path", path, "error", walkErr)
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if path != c.rootPath && isHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !c.accepts(path) {
				return nil
			}

			file, err := c.Read(path)
			if err != nil {
				logger.Warn("read file", "path", path, "error", err)
				return nil
			}
			select {
			case files <- file:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errs <- err
		}
	}()

	return files, errs
}

// Read loads a single file as a RawFile.
func (c *Connector) Read(path string) (domain.RawFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.RawFile{}, err
	}
	return domain.RawFile{
		Name:      filepath.Base(path),
		Path:      path,
		Extension: strings.ToLower(filepath.Ext(path)),
		Content:   content,
	}, nil
}

// Watch emits debounced create and write events for supported files under
// the root directory. New subdirectories are watched as they appear.
// The channel is closed when ctx is cancelled or Close is called.
func (c *Connector) Watch(ctx context.Context) (<-chan Change, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, errors.New("connector is closed")
	}
	if c.watcher != nil {
		return nil, errors.New("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := c.addTree(watcher, c.rootPath); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	c.watcher = watcher

	changes := make(chan Change)
	go c.loop(ctx, watcher, changes)
	return changes, nil
}

func (c *Connector) loop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- Change) {
	defer close(out)

	pending := make(map[string]ChangeType)
	timers := make(map[string]*time.Timer)
	ready := make(chan string)
	done := make(chan struct{})
	defer close(done)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !isHidden(filepath.Base(event.Name)) {
					if err := c.addTree(watcher, event.Name); err != nil {
						logger.Warn("watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			change := c.handleFsEvent(event)
			if change == nil {
				continue
			}
			// A create followed by writes is still a create.
			if prev, seen := pending[change.Path]; !seen || prev != ChangeCreated {
				pending[change.Path] = change.Type
			}
			if t, ok := timers[change.Path]; ok {
				t.Stop()
			}
			path := change.Path
			timers[path] = time.AfterFunc(c.debounce, func() {
				select {
				case ready <- path:
				case <-done:
				}
			})

		case path := <-ready:
			typ, ok := pending[path]
			if !ok {
				continue
			}
			delete(pending, path)
			delete(timers, path)
			select {
			case out <- Change{Type: typ, Path: path}:
			case <-ctx.Done():
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// handleFsEvent converts an fsnotify event into a Change.
// Returns nil for events that should not trigger ingestion.
func (c *Connector) handleFsEvent(event fsnotify.Event) *Change {
	if isHidden(filepath.Base(event.Name)) || !c.accepts(event.Name) {
		return nil
	}

	var typ ChangeType
	switch {
	case event.Has(fsnotify.Create):
		typ = ChangeCreated
	case event.Has(fsnotify.Write):
		typ = ChangeUpdated
	default:
		// Removals and renames leave the corpus untouched; it only grows.
		return nil
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return nil
	}
	return &Change{Type: typ, Path: event.Name}
}

func (c *Connector) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (c *Connector) accepts(path string) bool {
	return c.supports(strings.ToLower(filepath.Ext(path)))
}

// Close stops watching. It is safe to call more than once.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Close()
	c.watcher = nil
	return err
}

// isHidden reports whether a file or directory name starts with a dot.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
