package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinition(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{code: "EPSG:4326", want: "+proj=longlat +datum=WGS84 +no_defs"},
		{code: "EPSG:32611", want: "+proj=utm +zone=11 +datum=WGS84 +units=m +no_defs"},
		{code: "epsg:32601", want: "+proj=utm +zone=1 +datum=WGS84 +units=m +no_defs"},
		{code: "EPSG:32760", want: "+proj=utm +zone=60 +south +datum=WGS84 +units=m +no_defs"},
		{code: "+proj=longlat +ellps=GRS80", want: "+proj=longlat +ellps=GRS80"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			got, err := Definition(tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"EPSG:3857", "EPSG:abc", "WGS84", ""} {
		_, err := Definition(bad)
		assert.Error(t, err, bad)
	}
}

func TestProjector_CentralMeridian(t *testing.T) {
	p, err := NewSurveyProjector()
	require.NoError(t, err)

	lon, lat, err := p.Forward(500000, 5150000)
	require.NoError(t, err)

	// Easting 500000 lies on zone 11's central meridian.
	assert.InDelta(t, -117.0, lon, 1e-9)
	assert.InDelta(t, 46.50357, lat, 1e-4)
}

func TestProjector_RoundTrip(t *testing.T) {
	p, err := NewSurveyProjector()
	require.NoError(t, err)

	// Positions spread across the Cook East field near Pullman, WA.
	positions := []struct{ lon, lat float64 }{
		{lon: -117.0, lat: 46.5},
		{lon: -117.0824, lat: 46.7813},
		{lon: -117.0876, lat: 46.7865},
		{lon: -117.0790, lat: 46.7780},
	}

	for _, pos := range positions {
		e, n, err := p.Inverse(pos.lon, pos.lat)
		require.NoError(t, err)

		lon, lat, err := p.Forward(e, n)
		require.NoError(t, err)

		assert.InDelta(t, pos.lon, lon, 1e-6)
		assert.InDelta(t, pos.lat, lat, 1e-6)
	}
}

func TestProjector_ProjectedRoundTrip(t *testing.T) {
	p, err := NewSurveyProjector()
	require.NoError(t, err)

	lon, lat, err := p.Forward(493500, 5181000)
	require.NoError(t, err)
	e, n, err := p.Inverse(lon, lat)
	require.NoError(t, err)

	assert.InDelta(t, 493500, e, 1e-3)
	assert.InDelta(t, 5181000, n, 1e-3)
}

func TestProjector_OutOfDomain(t *testing.T) {
	p, err := NewSurveyProjector()
	require.NoError(t, err)

	_, _, err = p.Forward(math.NaN(), 5150000)
	require.ErrorIs(t, err, ErrOutOfDomain)

	_, _, err = p.Forward(500000, math.Inf(1))
	require.ErrorIs(t, err, ErrOutOfDomain)
}

func TestNewProjector_UnknownCRS(t *testing.T) {
	_, err := NewProjector("EPSG:2927", GeographicCRS)
	assert.Error(t, err)
}
