// Package assets loads images and sounds by name. Files under the loader's
// directory win over the embedded defaults.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed images/*.png sounds/*.wav
var assetsFS embed.FS

const SampleRate = 44100

// Loader resolves asset names. Images are cached; a name that fails to load
// is remembered so the error is logged once.
type Loader struct {
	dir   string
	audio *audio.Context

	mu     sync.Mutex
	images map[string]*ebiten.Image
	failed map[string]bool
}

// NewLoader reads from dir before the embedded files. ctx may be nil when
// no sound is needed.
func NewLoader(dir string, ctx *audio.Context) *Loader {
	return &Loader{
		dir:    dir,
		audio:  ctx,
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]bool),
	}
}

// LoadFile returns the bytes of path, relative to the assets root.
func (l *Loader) LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if l != nil && l.dir != "" {
		if b, err := os.ReadFile(filepath.Join(l.dir, filepath.FromSlash(clean))); err == nil {
			return b, nil
		}
	}
	return assetsFS.ReadFile(clean)
}

// Image returns the image called name under images/, or nil.
func (l *Loader) Image(name string) *ebiten.Image {
	if l == nil || name == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if img, ok := l.images[name]; ok {
		return img
	}
	if l.failed[name] {
		return nil
	}
	img, err := l.loadImage(name)
	if err != nil {
		log.Warn("assets: image", "name", name, "err", err)
		l.failed[name] = true
		return nil
	}
	l.images[name] = img
	return img
}

func (l *Loader) loadImage(name string) (*ebiten.Image, error) {
	b, err := l.LoadFile(imagePath(name))
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(b)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// DecodeImage decodes png bytes.
func DecodeImage(b []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(b))
	return img, err
}

// LoadAudioPlayer creates a player for the sound called name under sounds/.
func (l *Loader) LoadAudioPlayer(name string) (*audio.Player, error) {
	if l == nil || l.audio == nil {
		return nil, fmt.Errorf("assets: no audio context")
	}
	b, err := l.LoadFile(soundPath(name))
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(l.audio.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", name, err)
	}
	return l.audio.NewPlayer(stream)
}

// LoadLoopPlayer creates a player that repeats the sound called name.
func (l *Loader) LoadLoopPlayer(name string) (*audio.Player, error) {
	if l == nil || l.audio == nil {
		return nil, fmt.Errorf("assets: no audio context")
	}
	b, err := l.LoadFile(soundPath(name))
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(l.audio.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", name, err)
	}
	return l.audio.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
}

// SoundNames lists the sounds available on disk and embedded, without
// extension.
func (l *Loader) SoundNames() []string {
	seen := map[string]bool{}
	add := func(name string) {
		if strings.EqualFold(filepath.Ext(name), ".wav") {
			seen[strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))] = true
		}
	}
	if entries, err := fs.ReadDir(assetsFS, "sounds"); err == nil {
		for _, e := range entries {
			add(e.Name())
		}
	}
	if l != nil && l.dir != "" {
		if entries, err := os.ReadDir(filepath.Join(l.dir, "sounds")); err == nil {
			for _, e := range entries {
				add(e.Name())
			}
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func imagePath(name string) string {
	s := cleanAssetPath(name)
	s = strings.TrimPrefix(s, "images/")
	if filepath.Ext(s) == "" {
		s += ".png"
	}
	return "images/" + s
}

func soundPath(name string) string {
	s := cleanAssetPath(name)
	s = strings.TrimPrefix(s, "sounds/")
	if filepath.Ext(s) == "" {
		s += ".wav"
	}
	return "sounds/" + s
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
