package host

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/lol/assets"
	"github.com/milk9111/lol/media"
)

// playerSound plays an ebiten audio player from the start.
type playerSound struct {
	player *audio.Player
}

func (s playerSound) Play() {
	if s.player == nil {
		return
	}
	if err := s.player.Rewind(); err != nil {
		log.Warn("host: rewind sound", "err", err)
		return
	}
	s.player.Play()
}

// registerSounds loads every sound the loader knows into lib.
func registerSounds(loader *assets.Loader, lib *media.Library[media.Sound]) {
	for _, name := range loader.SoundNames() {
		p, err := loader.LoadAudioPlayer(name)
		if err != nil {
			log.Warn("host: load sound", "name", name, "err", err)
			continue
		}
		lib.Register(name, playerSound{player: p})
	}
}

// music keeps the level soundtrack playing across ticks.
type music struct {
	loader  *assets.Loader
	name    string
	player  *audio.Player
	stopped bool
}

// play switches to name. An empty name stops the music.
func (m *music) play(name string) {
	if name == m.name && !m.stopped {
		return
	}
	m.stop()
	m.name = name
	m.stopped = false
	if name == "" {
		return
	}
	p, err := m.loader.LoadLoopPlayer(name)
	if err != nil {
		log.Warn("host: load music", "name", name, "err", err)
		return
	}
	m.player = p
	p.Play()
}

func (m *music) stop() {
	if m.player != nil {
		m.player.Pause()
		if err := m.player.Close(); err != nil {
			log.Debug("host: close music", "err", err)
		}
		m.player = nil
	}
	m.stopped = true
}
