package kmeans

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/hupe1980/kmeanspp/geom"
	"github.com/hupe1980/kmeanspp/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() []geom.Point {
	return []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}}
}

func TestSeed_ScriptedDraws(t *testing.T) {
	points := square()
	src := testutil.NewScriptedSource([]int{0}, []float64{0.5})

	centers, err := Seed(context.Background(), points, 2, src, Options{})
	require.NoError(t, err)
	require.Len(t, centers, 2)

	assert.Equal(t, 0.0, centers[0].X)
	assert.Equal(t, 0.0, centers[0].Y)
	assert.Equal(t, 0.0, centers[1].X)
	assert.Equal(t, 10.0, centers[1].Y)

	groups := []int{points[0].Group, points[1].Group, points[2].Group, points[3].Group}
	assert.Equal(t, []int{0, 0, 1, 1}, groups)

	ints, floats := src.Draws()
	assert.Equal(t, 1, ints)
	assert.Equal(t, 1, floats)
}

func TestSeed_CentersAreCopies(t *testing.T) {
	points := testutil.NewRNG(3).DiskPoints(500, 10)
	centers, err := Seed(context.Background(), points, 7, rand.New(rand.NewSource(1)), Options{})
	require.NoError(t, err)

	for _, c := range centers {
		found := false
		for _, p := range points {
			if p.X == c.X && p.Y == c.Y {
				found = true
				break
			}
		}
		assert.True(t, found, "center %v is not an input point", c)
	}

	before := centers[0]
	for i := range points {
		points[i].X += 1000
	}
	assert.Equal(t, before, centers[0])
}

func TestSeed_AssignsEveryPoint(t *testing.T) {
	points := testutil.NewRNG(9).DiskPoints(2000, 5)
	for i := range points {
		points[i].Group = -1
	}

	k := 5
	centers, err := Seed(context.Background(), points, k, rand.New(rand.NewSource(2)), Options{})
	require.NoError(t, err)

	for _, p := range points {
		require.GreaterOrEqual(t, p.Group, 0)
		require.Less(t, p.Group, k)
		idx, _ := geom.Nearest(p, centers)
		assert.Equal(t, idx, p.Group)
	}
}

func TestSeed_InvalidConfiguration(t *testing.T) {
	src := testutil.NewScriptedSource(nil, nil)
	ctx := context.Background()

	for _, tc := range []struct {
		name string
		n, k int
	}{
		{"ZeroK", 4, 0},
		{"NegativeK", 4, -1},
		{"KGreaterThanN", 4, 5},
		{"NoPoints", 0, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Seed(ctx, make([]geom.Point, tc.n), tc.k, src, Options{})
			require.ErrorIs(t, err, ErrInvalidK)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.k, cfgErr.K)
			assert.Equal(t, tc.n, cfgErr.N)
		})
	}

	ints, floats := src.Draws()
	assert.Zero(t, ints)
	assert.Zero(t, floats)
}

func TestSeed_RejectsOutOfRangePoints(t *testing.T) {
	for _, tc := range []struct {
		name string
		bad  geom.Point
	}{
		{"NaN", geom.Point{X: math.NaN()}},
		{"Inf", geom.Point{Y: math.Inf(1)}},
		{"Overflowing", geom.Point{X: 1e300, Y: -1e300}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			src := testutil.NewScriptedSource(nil, nil)
			points := []geom.Point{{X: 1, Y: 1}, tc.bad, {X: 2, Y: 2}}

			_, err := Seed(context.Background(), points, 2, src, Options{})
			require.ErrorIs(t, err, ErrInvalidCoordinate)

			var pe *PointError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, 1, pe.Index)

			ints, floats := src.Draws()
			assert.Zero(t, ints)
			assert.Zero(t, floats)
		})
	}
}

func TestSeed_ParallelMatchesSequential(t *testing.T) {
	base := testutil.NewRNG(11).DiskPoints(20000, 10)

	a := testutil.ClonePoints(base)
	ca, err := Seed(context.Background(), a, 9, rand.New(rand.NewSource(5)), Options{})
	require.NoError(t, err)

	b := testutil.ClonePoints(base)
	cb, err := Seed(context.Background(), b, 9, rand.New(rand.NewSource(5)), Options{Workers: 4})
	require.NoError(t, err)

	assert.Equal(t, ca, cb)
	assert.Equal(t, a, b)
}

func TestSeed_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Seed(ctx, square(), 2, testutil.NewScriptedSource(nil, nil), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPick(t *testing.T) {
	d := []float64{0, 100, 100, 200}

	assert.Equal(t, 0, pick(d, 0))
	assert.Equal(t, 1, pick(d, 100))
	assert.Equal(t, 2, pick(d, 100.5))
	assert.Equal(t, 3, pick(d, 400))
}

func TestPick_FallsBackToLast(t *testing.T) {
	// Weights that never exhaust the target select the last point.
	assert.Equal(t, 3, pick([]float64{1, 1, 1, 1}, 4.5))
	assert.Equal(t, 2, pick([]float64{0, 0, 0}, 1e-300))
}

func TestPick_AllZeroSelectsFirst(t *testing.T) {
	assert.Equal(t, 0, pick([]float64{0, 0, 0}, 0))
}
