// Package media keeps named game resources. Lookups of unknown names fail
// soft: they log and return the zero value so a missing asset never stops a
// level from playing.
package media

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// Sound is anything that can be played once.
type Sound interface {
	Play()
}

// Library maps resource names to resources of one kind.
type Library[T any] struct {
	kind  string
	mu    sync.RWMutex
	items map[string]T
}

func NewLibrary[T any](kind string) *Library[T] {
	return &Library[T]{kind: kind, items: make(map[string]T)}
}

// Register stores v under name, replacing any previous entry.
func (l *Library[T]) Register(name string, v T) {
	if l == nil || name == "" {
		return
	}
	l.mu.Lock()
	l.items[name] = v
	l.mu.Unlock()
}

// Get returns the resource for name. Unknown names are logged and yield the
// zero value.
func (l *Library[T]) Get(name string) T {
	v, ok := l.Lookup(name)
	if !ok && name != "" {
		log.Error("media: unknown resource", "kind", l.kindName(), "name", name)
	}
	return v
}

// Lookup returns the resource for name without logging.
func (l *Library[T]) Lookup(name string) (T, bool) {
	var zero T
	if l == nil {
		return zero, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.items[name]
	return v, ok
}

// Names returns the registered names in sorted order.
func (l *Library[T]) Names() []string {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	out := make([]string, 0, len(l.items))
	for k := range l.items {
		out = append(out, k)
	}
	l.mu.RUnlock()
	sort.Strings(out)
	return out
}

func (l *Library[T]) kindName() string {
	if l == nil {
		return ""
	}
	return l.kind
}

// Play plays s if it is non-nil.
func Play(s Sound) {
	if s == nil {
		return
	}
	s.Play()
}
