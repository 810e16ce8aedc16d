// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package robot holds the per-session Robot value and the heading algebra
// the Navigator steers with.
package robot

// Point is a position on the 2D integer grid.
type Point struct {
	X, Y int
}

// Origin is the grid's destination cell.
var Origin = Point{0, 0}

// Heading is a unit step on the grid, or Unknown before initialization.
type Heading struct {
	DX, DY int
}

// Cardinal headings, plus Unknown for the pre-initialization state.
var (
	Up      = Heading{0, 1}
	Down    = Heading{0, -1}
	Left    = Heading{-1, 0}
	Right   = Heading{1, 0}
	Unknown = Heading{0, 0}
)

func (h Heading) String() string {
	switch h {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}

// TurnLeft returns the heading reached by a 90° left turn. Unknown is a
// fixed point: initialization turns never establish a heading on their own.
func (h Heading) TurnLeft() Heading {
	switch h {
	case Up:
		return Left
	case Left:
		return Down
	case Down:
		return Right
	case Right:
		return Up
	default:
		return Unknown
	}
}

// TurnRight returns the heading reached by a 90° right turn.
func (h Heading) TurnRight() Heading {
	switch h {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return Unknown
	}
}

// Quadrant returns the desired heading for p under the quadrant-steering
// rule. Boundary cells (on an axis) are covered by exactly one case; the
// origin itself falls through to the default case.
func Quadrant(p Point) Heading {
	switch {
	case p.X >= 0 && p.Y > 0:
		return Down
	case p.X < 0 && p.Y >= 0:
		return Right
	case p.X <= 0 && p.Y < 0:
		return Up
	default: // p.X > 0 && p.Y <= 0, or the origin
		return Left
	}
}

// Robot is the per-session state of an authenticated robot.
type Robot struct {
	Username string
	KeyID    int

	Pos     Point
	PrevPos Point
	Heading Heading
}
