package geo

import (
	"math/rand"
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/soil-series-etl/internal/domain"
)

func gridPoints(coords ...[3]float64) []domain.GridPoint {
	points := make([]domain.GridPoint, len(coords))
	for i, c := range coords {
		points[i] = domain.GridPoint{Lon: c[0], Lat: c[1], GridID: int(c[2]), Index: i}
	}
	return points
}

func TestIndex_Match(t *testing.T) {
	ix := NewIndex(gridPoints(
		[3]float64{-117.08, 46.78, 1},
		[3]float64{-117.07, 46.78, 2},
		[3]float64{-117.08, 46.79, 3},
		[3]float64{-117.07, 46.79, 4},
	))

	p, err := ix.Match(-117.0712, 46.7893)
	require.NoError(t, err)
	assert.Equal(t, 4, p.GridID)

	p, err = ix.Match(-117.0799, 46.7801)
	require.NoError(t, err)
	assert.Equal(t, 1, p.GridID)
}

func TestIndex_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(20190924))

	coords := make([][3]float64, 0, 400)
	for i := range 400 {
		coords = append(coords, [3]float64{
			-117.09 + rng.Float64()*0.02,
			46.77 + rng.Float64()*0.02,
			float64(1000 + i),
		})
	}
	points := gridPoints(coords...)
	ix := NewIndex(points)

	for range 500 {
		lon := -117.095 + rng.Float64()*0.03
		lat := 46.765 + rng.Float64()*0.03

		got, err := ix.Match(lon, lat)
		require.NoError(t, err)

		want, ok := BruteForceNearest(points, lon, lat)
		require.True(t, ok)
		assert.Equal(t, want.GridID, got.GridID, "query (%v, %v)", lon, lat)
	}
}

func TestIndex_CoincidentPointsResolveToFirstLoaded(t *testing.T) {
	ix := NewIndex(gridPoints(
		[3]float64{0, 0, 7},
		[3]float64{1, 1, 8},
		[3]float64{1, 1, 9},
		[3]float64{1, 1, 3},
	))

	p, err := ix.Match(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, p.GridID)
	assert.Equal(t, 1, p.Index)

	p, err = ix.Match(0.9, 1.2)
	require.NoError(t, err)
	assert.Equal(t, 8, p.GridID)
}

func TestIndex_EquidistantPointsResolveToFirstLoaded(t *testing.T) {
	// The query sits exactly halfway between every point.
	ix := NewIndex(gridPoints(
		[3]float64{2, 0, 30},
		[3]float64{0, 2, 20},
		[3]float64{-2, 0, 10},
		[3]float64{0, -2, 40},
	))

	p, err := ix.Match(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, p.GridID)
}

func TestIndex_EmptyGrid(t *testing.T) {
	ix := NewIndex(nil)

	_, err := ix.Match(-117, 46.5)
	require.ErrorIs(t, err, ErrEmptyGrid)
	assert.Nil(t, ix.Extent())
	assert.False(t, ix.Contains(-117, 46.5))
}

func TestIndex_UnionAndExtent(t *testing.T) {
	ix := NewIndex(gridPoints(
		[3]float64{-117.08, 46.78, 1},
		[3]float64{-117.06, 46.77, 2},
		[3]float64{-117.07, 46.80, 3},
	))

	assert.Equal(t, 3, ix.Len())
	assert.Equal(t, geom.MultiPoint{
		{X: -117.08, Y: 46.78},
		{X: -117.06, Y: 46.77},
		{X: -117.07, Y: 46.80},
	}, ix.Union())

	ext := ix.Extent()
	require.NotNil(t, ext)
	assert.Equal(t, geom.Point{X: -117.08, Y: 46.77}, ext.Min)
	assert.Equal(t, geom.Point{X: -117.06, Y: 46.80}, ext.Max)

	assert.True(t, ix.Contains(-117.07, 46.79))
	assert.False(t, ix.Contains(-117.09, 46.79))
}

func TestHaversineMeters(t *testing.T) {
	// One thousandth of a degree of latitude is roughly 111 m.
	d := HaversineMeters(-117.0, 46.5, -117.0, 46.501)
	assert.InDelta(t, 111.19, d, 0.1)
	assert.Zero(t, HaversineMeters(-117.0, 46.5, -117.0, 46.5))
}

func TestBruteForceNearest_Empty(t *testing.T) {
	_, ok := BruteForceNearest(nil, 0, 0)
	assert.False(t, ok)
}
