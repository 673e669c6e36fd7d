package levels

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("levels: invalid spec")

// Spec describes one level. Lengths are meters, times are seconds and y
// points up.
type Spec struct {
	Name          string            `yaml:"name"`
	Size          VecSpec           `yaml:"size"`
	Gravity       *VecSpec          `yaml:"gravity"`
	Intro         string            `yaml:"intro"`
	WinText       string            `yaml:"win_text"`
	LoseText      string            `yaml:"lose_text"`
	Music         string            `yaml:"music"`
	Script        string            `yaml:"script"`
	Bounds        *BoundsSpec       `yaml:"bounds"`
	Victory       VictorySpec       `yaml:"victory"`
	WinCountdown  *CountdownSpec    `yaml:"win_countdown"`
	LoseCountdown *CountdownSpec    `yaml:"lose_countdown"`
	Camera        CameraSpec        `yaml:"camera"`
	Heroes        []HeroSpec        `yaml:"heroes"`
	Enemies       []EnemySpec       `yaml:"enemies"`
	Goodies       []GoodieSpec      `yaml:"goodies"`
	Obstacles     []ObstacleSpec    `yaml:"obstacles"`
	Destinations  []DestinationSpec `yaml:"destinations"`
	Projectiles   *ProjectileSpec   `yaml:"projectiles"`
	Controls      []ControlSpec     `yaml:"controls"`
	Timers        []TimerSpec       `yaml:"timers"`
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type BoundsSpec struct {
	Image      string  `yaml:"image"`
	Density    float64 `yaml:"density"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
}

// VictorySpec selects how the level is won. Mode is destination, goodies or
// enemies. Count is the arrivals or defeats needed; -1 means all enemies.
type VictorySpec struct {
	Mode    string `yaml:"mode"`
	Count   int    `yaml:"count"`
	Goodies []int  `yaml:"goodies"`
}

type CountdownSpec struct {
	Seconds float64 `yaml:"seconds"`
	Text    string  `yaml:"text"`
}

type CameraSpec struct {
	Follow string  `yaml:"follow"`
	Offset VecSpec `yaml:"offset"`
	Zoom   float64 `yaml:"zoom"`
}

type MaterialSpec struct {
	Density    float64 `yaml:"density"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
}

type FrameSpec struct {
	Image string `yaml:"image"`
	MS    int    `yaml:"ms"`
}

type AnimationSpec struct {
	Frames []FrameSpec `yaml:"frames"`
	Loop   bool        `yaml:"loop"`
}

type RouteSpec struct {
	Points [][2]float64 `yaml:"points"`
	Speed  float64      `yaml:"speed"`
	Loop   bool         `yaml:"loop"`
}

type ChaseSpec struct {
	Target  string  `yaml:"target"`
	Speed   float64 `yaml:"speed"`
	IgnoreX bool    `yaml:"ignore_x"`
	IgnoreY bool    `yaml:"ignore_y"`
}

type TouchSpec struct {
	ID         int   `yaml:"id"`
	Activation []int `yaml:"activation"`
	Disappear  bool  `yaml:"disappear"`
}

// BodySpec holds what every entity kind shares. X and Y are the bottom-left
// corner.
type BodySpec struct {
	Name               string         `yaml:"name"`
	Shape              string         `yaml:"shape"`
	X                  float64        `yaml:"x"`
	Y                  float64        `yaml:"y"`
	Width              float64        `yaml:"width"`
	Height             float64        `yaml:"height"`
	Image              string         `yaml:"image"`
	Z                  int            `yaml:"z"`
	Physics            *MaterialSpec  `yaml:"physics"`
	CanMove            bool           `yaml:"can_move"`
	Rotate             bool           `yaml:"rotate"`
	Gravity            *bool          `yaml:"gravity"`
	Sensor             bool           `yaml:"sensor"`
	Velocity           *VecSpec       `yaml:"velocity"`
	Route              *RouteSpec     `yaml:"route"`
	Chase              *ChaseSpec     `yaml:"chase"`
	Hover              *VecSpec       `yaml:"hover"`
	AppearDelay        float64        `yaml:"appear_delay"`
	DisappearDelay     float64        `yaml:"disappear_delay"`
	DisappearSound     string         `yaml:"disappear_sound"`
	Touch              *TouchSpec     `yaml:"touch"`
	Drag               bool           `yaml:"drag"`
	Sticky             []string       `yaml:"sticky"`
	OneSided           string         `yaml:"one_sided"`
	PassThrough        int            `yaml:"pass_through"`
	Animation          *AnimationSpec `yaml:"animation"`
	DisappearAnimation *AnimationSpec `yaml:"disappear_animation"`
}

type HeroSpec struct {
	BodySpec      `yaml:",inline"`
	Strength      int      `yaml:"strength"`
	Jump          *VecSpec `yaml:"jump"`
	MultiJump     bool     `yaml:"multi_jump"`
	MustSurvive   bool     `yaml:"must_survive"`
	JumpSound     string   `yaml:"jump_sound"`
	Invincibility float64  `yaml:"invincibility"`
}

type EnemySpec struct {
	BodySpec      `yaml:",inline"`
	Damage        *int       `yaml:"damage"`
	DefeatByJump  bool       `yaml:"defeat_by_jump"`
	DefeatByCrawl bool       `yaml:"defeat_by_crawl"`
	Immune        bool       `yaml:"immune"`
	AlwaysDamages bool       `yaml:"always_damages"`
	DefeatText    string     `yaml:"defeat_text"`
	DefeatTrigger int        `yaml:"defeat_trigger"`
	Timer         *TimerSpec `yaml:"timer"`
}

type GoodieSpec struct {
	BodySpec      `yaml:",inline"`
	Score         []int   `yaml:"score"`
	StrengthBoost int     `yaml:"strength_boost"`
	Invincibility float64 `yaml:"invincibility"`
}

type CollideTriggerSpec struct {
	ID         int     `yaml:"id"`
	Activation []int   `yaml:"activation"`
	Delay      float64 `yaml:"delay"`
}

type BoostSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Duration float64 `yaml:"duration"`
}

type SoundSpec struct {
	Name       string `yaml:"name"`
	CooldownMS int    `yaml:"cooldown_ms"`
}

type ObstacleSpec struct {
	BodySpec          `yaml:",inline"`
	NoReJump          bool                `yaml:"no_rejump"`
	Damp              float64             `yaml:"damp"`
	SpeedBoost        *BoostSpec          `yaml:"speed_boost"`
	HeroTrigger       *CollideTriggerSpec `yaml:"hero_trigger"`
	EnemyTrigger      *CollideTriggerSpec `yaml:"enemy_trigger"`
	ProjectileTrigger *CollideTriggerSpec `yaml:"projectile_trigger"`
	Sound             *SoundSpec          `yaml:"sound"`
}

type DestinationSpec struct {
	BodySpec   `yaml:",inline"`
	Capacity   int    `yaml:"capacity"`
	Activation []int  `yaml:"activation"`
	Sound      string `yaml:"sound"`
}

// ProjectileSpec configures the level's projectile pool. Shots < 0 or unset
// means unlimited.
type ProjectileSpec struct {
	Size               int     `yaml:"size"`
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	Image              string  `yaml:"image"`
	Strength           int     `yaml:"strength"`
	Z                  int     `yaml:"z"`
	Circle             bool    `yaml:"circle"`
	Shots              *int    `yaml:"shots"`
	Range              float64 `yaml:"range"`
	Gravity            bool    `yaml:"gravity"`
	FixedSpeed         float64 `yaml:"fixed_speed"`
	Multiplier         float64 `yaml:"multiplier"`
	Rotate             bool    `yaml:"rotate"`
	Survive            bool    `yaml:"survive"`
	DisappearOnCollide *bool   `yaml:"disappear_on_collide"`
	ThrowSound         string  `yaml:"throw_sound"`
	DisappearSound     string  `yaml:"disappear_sound"`
}

// ControlSpec places a HUD button in screen pixels. Kind is jump, crawl,
// throw, move or trigger. Target names the hero or entity it drives.
type ControlSpec struct {
	Kind     string  `yaml:"kind"`
	Target   string  `yaml:"target"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Image    string  `yaml:"image"`
	ID       int     `yaml:"id"`
	Offset   VecSpec `yaml:"offset"`
	Velocity VecSpec `yaml:"velocity"`
}

type TimerSpec struct {
	ID    int     `yaml:"id"`
	Delay float64 `yaml:"delay"`
}

// Parse decodes and validates a level spec.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate rejects specs the level factories would panic on and references
// to names that do not exist.
func (s *Spec) Validate() error {
	names := map[string]bool{}
	var bodies []*BodySpec
	for i := range s.Heroes {
		bodies = append(bodies, &s.Heroes[i].BodySpec)
	}
	for i := range s.Enemies {
		bodies = append(bodies, &s.Enemies[i].BodySpec)
	}
	for i := range s.Goodies {
		bodies = append(bodies, &s.Goodies[i].BodySpec)
	}
	for i := range s.Obstacles {
		bodies = append(bodies, &s.Obstacles[i].BodySpec)
	}
	for i := range s.Destinations {
		bodies = append(bodies, &s.Destinations[i].BodySpec)
	}

	for _, b := range bodies {
		if err := b.validate(); err != nil {
			return err
		}
		if b.Name == "" {
			continue
		}
		if names[b.Name] {
			return invalid("duplicate entity name %q", b.Name)
		}
		names[b.Name] = true
	}
	for _, b := range bodies {
		if b.Chase != nil && !names[b.Chase.Target] {
			return invalid("%s chases unknown entity %q", b.label(), b.Chase.Target)
		}
	}

	switch s.Victory.Mode {
	case "", "destination", "goodies", "enemies":
	default:
		return invalid("unknown victory mode %q", s.Victory.Mode)
	}
	if len(s.Victory.Goodies) > 4 {
		return invalid("victory goodies has %d entries, at most 4", len(s.Victory.Goodies))
	}
	if s.Camera.Follow != "" && !names[s.Camera.Follow] {
		return invalid("camera follows unknown entity %q", s.Camera.Follow)
	}

	if p := s.Projectiles; p != nil {
		if p.Size <= 0 {
			return invalid("projectile pool size %d must be positive", p.Size)
		}
		if p.Z < -2 || p.Z > 2 {
			return invalid("projectile z %d out of range [-2,2]", p.Z)
		}
	}

	for i, c := range s.Controls {
		switch c.Kind {
		case "trigger":
			continue
		case "jump", "crawl", "throw", "move":
		default:
			return invalid("control %d has unknown kind %q", i, c.Kind)
		}
		if c.Target != "" && !names[c.Target] {
			return invalid("control %d targets unknown entity %q", i, c.Target)
		}
		if c.Kind == "throw" && s.Projectiles == nil {
			return invalid("control %d throws but the level has no projectiles", i)
		}
	}
	return nil
}

func (b *BodySpec) label() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("entity at (%g,%g)", b.X, b.Y)
}

func (b *BodySpec) validate() error {
	switch strings.ToLower(b.Shape) {
	case "", "box", "circle":
	default:
		return invalid("%s has unknown shape %q", b.label(), b.Shape)
	}
	if b.Z < -2 || b.Z > 2 {
		return invalid("%s z %d out of range [-2,2]", b.label(), b.Z)
	}
	if b.Route != nil && len(b.Route.Points) < 2 {
		return invalid("%s route needs at least 2 points, got %d", b.label(), len(b.Route.Points))
	}
	if _, err := parseSide(b.OneSided); err != nil {
		return err
	}
	for _, side := range b.Sticky {
		if _, err := parseSide(side); err != nil {
			return err
		}
	}
	if b.Touch != nil && len(b.Touch.Activation) > 4 {
		return invalid("%s touch activation has %d entries, at most 4", b.label(), len(b.Touch.Activation))
	}
	return nil
}
