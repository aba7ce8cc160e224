package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoint_Ranges(t *testing.T) {
	cases := []struct {
		name      string
		lon, lat  float64
		wantField string
	}{
		{"origin", 0, 0, ""},
		{"max corner", 180, 90, ""},
		{"min corner", -180, -90, ""},
		{"longitude too large", 180.0001, 0, "longitude"},
		{"longitude too small", -181, 0, "longitude"},
		{"latitude too large", 0, 90.5, "latitude"},
		{"latitude too small", 0, -91, "latitude"},
		{"longitude NaN", math.NaN(), 0, "longitude"},
		{"both invalid reports longitude", 200, 100, "longitude"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewPoint(c.lon, c.lat)
			if c.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCoordinate))

			var coordErr *CoordinateError
			require.True(t, errors.As(err, &coordErr))
			assert.Equal(t, c.wantField, coordErr.Field)
		})
	}
}

func TestNewZone_RadiusBounds(t *testing.T) {
	center := Point{Longitude: 3.3792, Latitude: 6.5244}

	_, err := NewZone(center, 1)
	assert.NoError(t, err)
	_, err = NewZone(center, 1000)
	assert.NoError(t, err)

	_, err = NewZone(center, 0)
	assert.ErrorIs(t, err, ErrInvalidRadius)
	_, err = NewZone(center, 1000.5)
	assert.ErrorIs(t, err, ErrInvalidRadius)
	_, err = NewZone(Point{Longitude: 0, Latitude: 95}, 20)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	a := Point{Longitude: 3.3792, Latitude: 6.5244}
	b := Point{Longitude: 3.3958, Latitude: 6.4531}

	assert.InDelta(t, HaversineDistance(a, b), HaversineDistance(b, a), 1e-9)
	assert.Equal(t, 0.0, HaversineDistance(a, a))
}

func TestValidateWithinZone_NearOrigin(t *testing.T) {
	zone := Zone{Center: Point{Longitude: 0, Latitude: 0}, RadiusMeters: 20}

	check, err := ValidateWithinZone(Point{Longitude: 0, Latitude: 0.00001}, zone)
	require.NoError(t, err)
	assert.True(t, check.WithinZone)
	assert.InDelta(t, 1.1, check.DistanceMeters, 0.05)
}

func TestValidateWithinZone_FarFromOrigin(t *testing.T) {
	zone := Zone{Center: Point{Longitude: 0, Latitude: 0}, RadiusMeters: 20}

	check, err := ValidateWithinZone(Point{Longitude: 0, Latitude: 0.01}, zone)
	require.NoError(t, err)
	assert.False(t, check.WithinZone)
	assert.Equal(t, 1113, check.RoundedDistance())
}

func TestValidateWithinZone_BoundaryInclusive(t *testing.T) {
	center := Point{Longitude: 7.4951, Latitude: 9.0579}
	p := Point{Longitude: 7.4953, Latitude: 9.0580}
	exact := HaversineDistance(p, center)

	check, err := ValidateWithinZone(p, Zone{Center: center, RadiusMeters: exact})
	require.NoError(t, err)
	assert.True(t, check.WithinZone, "distance equal to radius must be inside")

	check, err = ValidateWithinZone(p, Zone{Center: center, RadiusMeters: math.Nextafter(exact, 0)})
	require.NoError(t, err)
	assert.False(t, check.WithinZone)
	assert.Equal(t, exact, check.DistanceMeters)
}

func TestValidateWithinZone_InvalidPoint(t *testing.T) {
	zone := Zone{Center: Point{}, RadiusMeters: 20}

	_, err := ValidateWithinZone(Point{Longitude: -190, Latitude: 0}, zone)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}
