package levels

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// AllLevels is the Level of a change that any level may depend on.
const AllLevels = -1

// settle is how long a file must stay untouched before its change is
// reported. Editors often write a file several times per save.
const settle = 100 * time.Millisecond

// Change is a level spec or script edited on disk.
type Change struct {
	Path string
	// Level is the number of the levelN.yaml spec that changed, or
	// AllLevels for a script.
	Level int
}

// Affects reports whether level must be replayed to pick up the change.
func (c Change) Affects(level int) bool {
	return c.Level == AllLevels || c.Level == level
}

// ChangeOf classifies path. Files that are neither level specs nor scripts
// are not changes.
func ChangeOf(path string) (Change, bool) {
	if isScriptFile(path) {
		return Change{Path: path, Level: AllLevels}, true
	}
	if !isSpecFile(path) {
		return Change{}, false
	}
	var n int
	name := strings.ToLower(filepath.Base(path))
	if _, err := fmt.Sscanf(name, "level%d.", &n); err != nil || n <= 0 {
		return Change{}, false
	}
	return Change{Path: path, Level: n}, true
}

// Watcher reports level changes once the files involved have settled.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, fmt.Errorf("levels: watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fs:      fs,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
	})
	return err
}

// Poll returns the next settled change without blocking.
func (w *Watcher) Poll() (Change, bool) {
	select {
	case c := <-w.Changes:
		return c, true
	default:
		return Change{}, false
	}
}

// run collects changes per path and flushes them in arrival order when
// nothing was written for the settle period.
func (w *Watcher) run() {
	var order []string
	pending := make(map[string]Change)
	quiet := time.NewTimer(settle)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			c, ok := ChangeOf(event.Name)
			if !ok {
				continue
			}
			if _, seen := pending[c.Path]; !seen {
				order = append(order, c.Path)
			}
			pending[c.Path] = c
			quiet.Reset(settle)
		case <-quiet.C:
			for _, path := range order {
				select {
				case w.Changes <- pending[path]:
				case <-w.closeCh:
					return
				}
			}
			order = order[:0]
			clear(pending)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
