// Package core provides the small value types shared by the simulation and
// every frontend. It has no external dependencies so game logic stays pure
// and testable.
package core

import "cmp"

// Rect is an axis-aligned box in playfield pixels.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// StrictlyContains reports whether (x, y) lies inside the rectangle with
// every edge exclusive.
func (r Rect) StrictlyContains(x, y int) bool {
	return x > r.X && x < r.Right() && y > r.Y && y < r.Bottom()
}

// Intersect returns the overlapping part of two rectangles, or an empty
// rectangle when they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0, y0 := max(r.X, other.X), max(r.Y, other.Y)
	x1, y1 := min(r.Right(), other.Right()), min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clamp restricts a value to be within [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
