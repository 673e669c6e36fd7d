package lol

import "github.com/milk9111/lol/media"

// Destination absorbs heroes once enough goodies are collected.
type Destination struct {
	Actor

	capacity     int
	holding      int
	activation   [4]int
	arrivalSound media.Sound
}

func (d *Destination) Capacity() int { return d.capacity }

func (d *Destination) SetCapacity(n int) { d.capacity = n }

// Holding returns how many heroes arrived.
func (d *Destination) Holding() int { return d.holding }

// SetActivationScore sets the goodie counts required before heroes are
// accepted.
func (d *Destination) SetActivationScore(a, b, c, e int) { d.activation = [4]int{a, b, c, e} }

func (d *Destination) SetArrivalSound(name string) {
	d.arrivalSound = d.level.game.sounds.Get(name)
}
