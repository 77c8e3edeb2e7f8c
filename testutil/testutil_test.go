package testutil

import (
	"math"
	"testing"

	"github.com/hupe1980/kmeanspp/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.Float64()
	b := rng.Intn(100)

	rng.Reset()
	assert.Equal(t, a, rng.Float64())
	assert.Equal(t, b, rng.Intn(100))
	assert.Equal(t, int64(42), rng.Seed())
}

func TestRNG_DiskPoints(t *testing.T) {
	points := NewRNG(1).DiskPoints(1000, 10)
	require.Len(t, points, 1000)

	for _, p := range points {
		assert.LessOrEqual(t, math.Hypot(p.X, p.Y), 10.0+1e-9)
		assert.Zero(t, p.Group)
	}

	again := NewRNG(1).DiskPoints(1000, 10)
	assert.Equal(t, points, again)
}

func TestRNG_Blobs(t *testing.T) {
	centers := []geom.Center{{X: 0, Y: 0}, {X: 100, Y: 100}}
	points := NewRNG(7).Blobs(centers, 50, 0.1)
	require.Len(t, points, 100)

	for i, p := range points {
		c := centers[i/50]
		assert.Less(t, geom.Dist(p, c), 1.0)
	}
}

func TestGrid(t *testing.T) {
	points := Grid(2, 3, 5)
	require.Len(t, points, 6)
	assert.Equal(t, geom.Point{X: 10, Y: 0}, points[2])
	assert.Equal(t, geom.Point{X: 0, Y: 5}, points[3])
}

func TestScriptedSource(t *testing.T) {
	src := NewScriptedSource([]int{3, 7}, []float64{0.25})

	assert.Equal(t, 3, src.Intn(10))
	assert.Equal(t, 2, src.Intn(5))
	assert.Equal(t, 2, src.Intn(5))
	assert.Equal(t, 0.25, src.Float64())
	assert.Equal(t, 0.25, src.Float64())

	ints, floats := src.Draws()
	assert.Equal(t, 3, ints)
	assert.Equal(t, 2, floats)

	empty := NewScriptedSource(nil, nil)
	assert.Equal(t, 0, empty.Intn(4))
	assert.Equal(t, 0.0, empty.Float64())
}
