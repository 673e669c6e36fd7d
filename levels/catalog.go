package levels

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/milk9111/lol/lol"
	"github.com/milk9111/lol/script"
)

// Catalog configures levels from spec files. Triggers go to the script of
// the level being played, or to the fallback when it has none.
type Catalog struct {
	lol.Triggers

	source   Source
	fallback lol.Triggers

	mu    sync.Mutex
	specs map[int]*Spec
	built *Built
}

var _ lol.Author = (*Catalog)(nil)

// NewCatalog reads specs from src. A nil fallback ignores triggers no script
// handles.
func NewCatalog(src Source, fallback lol.Triggers) *Catalog {
	if fallback == nil {
		fallback = lol.NopTriggers{}
	}
	return &Catalog{
		Triggers: fallback,
		source:   src,
		fallback: fallback,
		specs:    make(map[int]*Spec),
	}
}

// Spec returns the parsed spec of level n, reading it on first use.
func (c *Catalog) Spec(n int) (*Spec, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if spec, ok := c.specs[n]; ok {
		return spec, nil
	}
	spec, err := c.source.LoadSpec(n)
	if err != nil {
		return nil, err
	}
	c.specs[n] = spec
	return spec, nil
}

// Count returns how many consecutive levels starting at 1 have a spec.
func (c *Catalog) Count() int {
	n := 0
	for {
		if _, err := c.source.Load(FileName(n + 1)); err != nil {
			return n
		}
		n++
	}
}

// ConfigureLevel builds level which into l. A level that fails to load is
// left empty and the error is logged.
func (c *Catalog) ConfigureLevel(which int, l *lol.Level) {
	c.Triggers = c.fallback
	c.built = nil

	spec, err := c.Spec(which)
	if err != nil {
		log.Error("levels: configure", "level", which, "err", err)
		return
	}
	if spec.Script != "" {
		t, err := c.compile(spec.Script)
		if err != nil {
			log.Error("levels: script", "level", which, "script", spec.Script, "err", err)
		} else {
			t.Bind(l)
			c.Triggers = t
		}
	}

	built, err := Build(spec, l)
	if err != nil {
		log.Error("levels: build", "level", which, "err", err)
		return
	}
	c.built = built
}

func (c *Catalog) compile(name string) (*script.Triggers, error) {
	src, err := c.source.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("levels: load script %s: %w", name, err)
	}
	return script.Compile(name, src, c.fallback)
}

// Built returns what the last ConfigureLevel created.
func (c *Catalog) Built() *Built { return c.built }

// Invalidate drops the cached specs ch may affect.
func (c *Catalog) Invalidate(ch Change) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ch.Level == AllLevels {
		c.specs = make(map[int]*Spec)
	} else {
		delete(c.specs, ch.Level)
	}
}
