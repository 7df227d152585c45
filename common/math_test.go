package common

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestClampMagnitude(t *testing.T) {
	cases := []struct {
		name string
		in   cp.Vector
		max  float64
		want float64
	}{
		{"under", cp.Vector{X: 0.3, Y: 0.4}, 1, 0.5},
		{"over", cp.Vector{X: 3, Y: 4}, 1, 1},
		{"zero_max", cp.Vector{X: 1}, 0, 0},
		{"zero_vector", cp.Vector{}, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, ClampMagnitude(c.in, c.max).Length(), 1e-9)
		})
	}
}

func TestDirection(t *testing.T) {
	d := Direction(cp.Vector{X: 1, Y: 1}, cp.Vector{X: 1, Y: 5})
	assert.InDelta(t, 0, d.X, 1e-9)
	assert.InDelta(t, 1, d.Y, 1e-9)
	assert.Equal(t, cp.Vector{}, Direction(cp.Vector{X: 2}, cp.Vector{X: 2}))
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(1)
	assert.Equal(t, 1.5, c.Advance(0.5))
	c.Advance(-3)
	assert.Equal(t, 1.5, c.Now())
	c.Set(10)
	assert.Equal(t, 10.0, c.Now())
}
