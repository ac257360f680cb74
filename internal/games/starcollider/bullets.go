package starcollider

import (
	"iter"
	"slices"
)

// DefaultPoolCapacity bounds the number of live player bullets. At one shot
// every ten frames a full screen holds far fewer than this.
const DefaultPoolCapacity = 256

// Bullet is a live player projectile. Positions are not unique: two
// bullets may share coordinates.
type Bullet struct {
	X, Y int
}

// Pool owns every live player bullet in insertion order.
type Pool struct {
	bullets  []Bullet
	capacity int
}

// NewPool creates an empty pool holding at most capacity bullets.
// A non-positive capacity means DefaultPoolCapacity.
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	return &Pool{
		bullets:  make([]Bullet, 0, min(capacity, 64)),
		capacity: capacity,
	}
}

// Append adds a bullet at the tail. When the pool is full the bullet is
// dropped and Append reports false.
func (p *Pool) Append(x, y int) bool {
	if len(p.bullets) >= p.capacity {
		return false
	}
	p.bullets = append(p.bullets, Bullet{X: x, Y: y})
	return true
}

// RemoveX removes the first bullet, head to tail, whose X equals x.
// Y plays no part in the match, so the removed bullet may not be the one
// the caller was looking at when two bullets share a column.
func (p *Pool) RemoveX(x int) bool {
	i := slices.IndexFunc(p.bullets, func(b Bullet) bool { return b.X == x })
	if i < 0 {
		return false
	}
	p.bullets = slices.Delete(p.bullets, i, i+1)
	return true
}

// RemoveWhere removes, by the RemoveX rule, one bullet for every bullet
// that matches. Matches are collected first so removal never disturbs the
// scan. It returns the number of matches.
func (p *Pool) RemoveWhere(match func(Bullet) bool) int {
	var xs []int
	for _, b := range p.bullets {
		if match(b) {
			xs = append(xs, b.X)
		}
	}
	for _, x := range xs {
		p.RemoveX(x)
	}
	return len(xs)
}

// PruneAbove removes every bullet that has left the top of the playfield.
func (p *Pool) PruneAbove(limit int) int {
	return p.RemoveWhere(func(b Bullet) bool { return b.Y < limit })
}

// Advance moves every bullet up by dy.
func (p *Pool) Advance(dy int) {
	for i := range p.bullets {
		p.bullets[i].Y -= dy
	}
}

// Clear drops every bullet.
func (p *Pool) Clear() {
	p.bullets = p.bullets[:0]
}

// Len returns the number of live bullets.
func (p *Pool) Len() int {
	return len(p.bullets)
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return p.capacity
}

// All iterates the live bullets from head to tail. The pool must not be
// modified during iteration.
func (p *Pool) All() iter.Seq[Bullet] {
	return slices.Values(p.bullets)
}

// Snapshot returns a copy of the live bullets.
func (p *Pool) Snapshot() []Bullet {
	return slices.Clone(p.bullets)
}
