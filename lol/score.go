package lol

import "github.com/charmbracelet/log"

// VictoryMode selects which counter ends a level in victory.
type VictoryMode int

const (
	VictoryDestination VictoryMode = iota
	VictoryGoodies
	VictoryEnemies
)

func (m VictoryMode) String() string {
	switch m {
	case VictoryGoodies:
		return "goodies"
	case VictoryEnemies:
		return "enemies"
	default:
		return "destination"
	}
}

// DefeatAll requires every enemy ever created to be defeated.
const DefeatAll = -1

// Score tracks the counters of one level and ends it exactly once.
type Score struct {
	level *Level

	goodies         [4]int
	enemiesCreated  int
	enemiesDefeated int
	heroesCreated   int
	heroesDefeated  int
	arrivals        int

	mode            VictoryMode
	heroesRequired  int
	goodiesRequired [4]int
	enemiesRequired int

	gameOver bool
	won      bool
	winText  string
	loseText string
}

func newScore(l *Level) *Score {
	return &Score{
		level:          l,
		heroesRequired: 1,
		winText:        "Next Level",
		loseText:       "Try Again",
	}
}

// SetVictoryDestination wins the level once n heroes reach destinations.
func (s *Score) SetVictoryDestination(n int) {
	s.mode = VictoryDestination
	s.heroesRequired = n
}

// SetVictoryGoodies wins the level once every per-type count reaches its
// threshold.
func (s *Score) SetVictoryGoodies(a, b, c, d int) {
	s.mode = VictoryGoodies
	s.goodiesRequired = [4]int{a, b, c, d}
}

// SetVictoryEnemies wins the level once n enemies are defeated. DefeatAll
// requires every enemy created.
func (s *Score) SetVictoryEnemies(n int) {
	s.mode = VictoryEnemies
	s.enemiesRequired = n
}

func (s *Score) SetWinText(text string) { s.winText = text }

func (s *Score) SetLoseText(text string) { s.loseText = text }

func (s *Score) Mode() VictoryMode { return s.mode }

// Goodies returns the four per-type collected counts.
func (s *Score) Goodies() [4]int { return s.goodies }

func (s *Score) EnemiesCreated() int { return s.enemiesCreated }

func (s *Score) EnemiesDefeated() int { return s.enemiesDefeated }

func (s *Score) HeroesCreated() int { return s.heroesCreated }

func (s *Score) HeroesDefeated() int { return s.heroesDefeated }

// Arrivals returns how many heroes reached a destination.
func (s *Score) Arrivals() int { return s.arrivals }

// GameOver reports whether the level has ended.
func (s *Score) GameOver() bool { return s.gameOver }

// Won reports whether the ended level was won.
func (s *Score) Won() bool { return s.gameOver && s.won }

// reached reports whether every collected count is at least the matching
// threshold.
func (s *Score) reached(threshold [4]int) bool {
	for i := range s.goodies {
		if s.goodies[i] < threshold[i] {
			return false
		}
	}
	return true
}

// AddGoodies adds deltas to the per-type counts and checks goodie victory.
func (s *Score) AddGoodies(deltas [4]int) {
	for i := range s.goodies {
		s.goodies[i] += deltas[i]
	}
	if s.mode == VictoryGoodies && s.reached(s.goodiesRequired) {
		s.EndLevel(true)
	}
}

func (s *Score) onGoodieCollected(g *Goodie) {
	s.AddGoodies(g.score)
}

func (s *Score) onHeroCreated() { s.heroesCreated++ }

func (s *Score) onEnemyCreated() { s.enemiesCreated++ }

func (s *Score) onEnemyDefeated() {
	s.enemiesDefeated++
	if s.mode != VictoryEnemies {
		return
	}
	if s.enemiesRequired == DefeatAll {
		if s.enemiesDefeated >= s.enemiesCreated {
			s.EndLevel(true)
		}
		return
	}
	if s.enemiesDefeated >= s.enemiesRequired {
		s.EndLevel(true)
	}
}

func (s *Score) onDestinationArrive() {
	s.arrivals++
	if s.mode == VictoryDestination && s.arrivals >= s.heroesRequired {
		s.EndLevel(true)
	}
}

func (s *Score) onHeroDefeated(h *Hero) {
	s.heroesDefeated++
	if h != nil && h.mustSurvive {
		s.EndLevel(false)
		return
	}
	if s.heroesDefeated == s.heroesCreated {
		s.EndLevel(false)
	}
}

// EndLevel schedules the end of the level. Only the first call in a level
// installs the transition and the transition itself runs at most once.
func (s *Score) EndLevel(win bool) {
	l := s.level
	if l.endGame != nil {
		return
	}
	l.endGame = EventFunc(func() {
		if s.gameOver {
			return
		}
		s.gameOver = true
		s.won = win

		g := l.game
		log.Debug("lol: level complete", "level", l.number, "win", win)
		g.author.OnLevelCompleteTrigger(l.number, win)
		if win {
			g.unlockAfter(l.number)
		}
		l.ClearControls()
		g.timers.Clear()

		text := s.loseText
		if win {
			text = s.winText
		}
		g.showModal(&Scene{Kind: ScenePost, Text: text, Win: win})
	})
}
