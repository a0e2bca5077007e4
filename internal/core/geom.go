// Package core provides the platform types shared by the simulation and the
// terminal front end. It has no UI dependency so game logic stays testable.
package core

// Point is an integer cell position. Y grows downward.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Abs returns |x|.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Wrap maps val into [0, n). n must be positive.
func Wrap(val, n int) int {
	m := val % n
	if m < 0 {
		m += n
	}
	return m
}
