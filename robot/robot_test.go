package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnLeftRightAreInverse(t *testing.T) {
	for _, h := range []Heading{Up, Down, Left, Right} {
		assert.Equal(t, h, h.TurnLeft().TurnRight())
		assert.Equal(t, h, h.TurnRight().TurnLeft())
	}
}

func TestUnknownIsFixedUnderTurns(t *testing.T) {
	assert.Equal(t, Unknown, Unknown.TurnLeft())
	assert.Equal(t, Unknown, Unknown.TurnRight())
}

func TestTurnLeftCycle(t *testing.T) {
	h := Up
	for _, want := range []Heading{Left, Down, Right, Up} {
		h = h.TurnLeft()
		assert.Equal(t, want, h)
	}
}

func TestQuadrant(t *testing.T) {
	cases := []struct {
		p    Point
		want Heading
	}{
		{Point{0, 1}, Down},
		{Point{5, 5}, Down},
		{Point{-1, 0}, Right},
		{Point{-3, 4}, Right},
		{Point{0, -1}, Up},
		{Point{-2, -2}, Up},
		{Point{1, 0}, Left},
		{Point{3, -3}, Left},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Quadrant(c.p), "point %+v", c.p)
	}
}
