package script

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/milk9111/lol/lol"
)

// engine builds the function map a handler receives for c.
func (t *Triggers) engine(c call) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["end_level"] = &tengo.UserFunction{Name: "end_level", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if t.level == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		t.level.Score().EndLevel(!args[0].IsFalsy())
		return tengo.TrueValue, nil
	}}

	values["add_strength"] = &tengo.UserFunction{Name: "add_strength", Value: func(args ...tengo.Object) (tengo.Object, error) {
		h := t.hero(c)
		if h == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		n, ok := tengo.ToInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		h.AddStrength(n)
		return tengo.TrueValue, nil
	}}

	values["remove"] = &tengo.UserFunction{Name: "remove", Value: func(args ...tengo.Object) (tengo.Object, error) {
		target := c.self
		if len(args) > 0 && objectAsString(args[0]) == "other" {
			target = c.other
		}
		r, ok := target.(interface{ Remove(quiet bool) })
		if !ok {
			return tengo.FalseValue, nil
		}
		r.Remove(false)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Info("script: "+strings.Join(parts, " "), "name", t.name, "level", c.level)
		return tengo.UndefinedValue, nil
	}}

	values["schedule"] = &tengo.UserFunction{Name: "schedule", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if t.level == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		id, ok := tengo.ToInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		delay, ok := tengo.ToFloat64(args[1])
		if !ok {
			return tengo.FalseValue, nil
		}
		t.level.SetTimerTrigger(id, delay)
		return tengo.TrueValue, nil
	}}

	values["add_goodies"] = &tengo.UserFunction{Name: "add_goodies", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if t.level == nil {
			return tengo.FalseValue, nil
		}
		var d [4]int
		for i := 0; i < len(args) && i < 4; i++ {
			d[i], _ = tengo.ToInt(args[i])
		}
		t.level.Score().AddGoodies(d)
		return tengo.TrueValue, nil
	}}

	values["goodies"] = &tengo.UserFunction{Name: "goodies", Value: func(args ...tengo.Object) (tengo.Object, error) {
		out := &tengo.Array{}
		if t.level == nil {
			return out, nil
		}
		for _, n := range t.level.Score().Goodies() {
			out.Value = append(out.Value, &tengo.Int{Value: int64(n)})
		}
		return out, nil
	}}

	values["fact"] = &tengo.UserFunction{Name: "fact", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if t.level == nil || len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		def := 0
		if len(args) > 1 {
			def, _ = tengo.ToInt(args[1])
		}
		v := t.level.Game().Fact(objectAsString(args[0]), def)
		return &tengo.Int{Value: int64(v)}, nil
	}}

	values["put_fact"] = &tengo.UserFunction{Name: "put_fact", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if t.level == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		v, ok := tengo.ToInt(args[1])
		if !ok {
			return tengo.FalseValue, nil
		}
		t.level.Game().PutFact(objectAsString(args[0]), v)
		return tengo.TrueValue, nil
	}}

	values["get"] = &tengo.UserFunction{Name: "get", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		if v, ok := t.state[objectAsString(args[0])]; ok {
			return v, nil
		}
		if len(args) > 1 {
			return args[1], nil
		}
		return tengo.UndefinedValue, nil
	}}

	values["set"] = &tengo.UserFunction{Name: "set", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		t.state[objectAsString(args[0])] = args[1]
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// hero picks the hero a strength change applies to: the one in the event,
// else the level's first hero.
func (t *Triggers) hero(c call) *lol.Hero {
	if h, ok := c.other.(*lol.Hero); ok {
		return h
	}
	if h, ok := c.self.(*lol.Hero); ok {
		return h
	}
	if t.level == nil || len(t.level.Heroes()) == 0 {
		return nil
	}
	return t.level.Heroes()[0]
}

func entityObject(e lol.Entity) tengo.Object {
	a := lol.Base(e)
	if a == nil {
		return tengo.UndefinedValue
	}
	m := map[string]tengo.Object{
		"x":       &tengo.Float{Value: a.X()},
		"y":       &tengo.Float{Value: a.Y()},
		"visible": boolObject(a.Visible()),
		"image":   &tengo.String{Value: a.Image()},
	}
	switch v := e.(type) {
	case *lol.Hero:
		m["kind"] = &tengo.String{Value: "hero"}
		m["strength"] = &tengo.Int{Value: int64(v.Strength())}
	case *lol.Enemy:
		m["kind"] = &tengo.String{Value: "enemy"}
		m["damage"] = &tengo.Int{Value: int64(v.Damage())}
	case *lol.Goodie:
		m["kind"] = &tengo.String{Value: "goodie"}
	case *lol.Obstacle:
		m["kind"] = &tengo.String{Value: "obstacle"}
	case *lol.Destination:
		m["kind"] = &tengo.String{Value: "destination"}
	case *lol.Projectile:
		m["kind"] = &tengo.String{Value: "projectile"}
		m["strength"] = &tengo.Int{Value: int64(v.Strength())}
	}
	return &tengo.ImmutableMap{Value: m}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
