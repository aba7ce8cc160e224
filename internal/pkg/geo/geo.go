package geo

import (
	"errors"
	"fmt"
	"math"
)

const (
	// EarthRadiusMeters is the equatorial radius used for spherical distance.
	EarthRadiusMeters = 6378100.0

	DefaultRadiusMeters = 20
	MinRadiusMeters     = 1
	MaxRadiusMeters     = 1000
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidRadius     = fmt.Errorf("radius must be between %d and %d meters", MinRadiusMeters, MaxRadiusMeters)
)

// CoordinateError reports which coordinate field is out of range.
type CoordinateError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s must be between %g and %g, got %g", e.Field, e.Min, e.Max, e.Value)
}

func (e *CoordinateError) Unwrap() error {
	return ErrInvalidCoordinate
}

// Point is a WGS84 position. Longitude comes first to match GeoJSON ordering.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// NewPoint validates the ranges and returns a Point.
func NewPoint(longitude, latitude float64) (Point, error) {
	p := Point{Longitude: longitude, Latitude: latitude}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// Validate checks longitude first, then latitude.
func (p Point) Validate() error {
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return &CoordinateError{Field: "longitude", Value: p.Longitude, Min: -180, Max: 180}
	}
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return &CoordinateError{Field: "latitude", Value: p.Latitude, Min: -90, Max: 90}
	}
	return nil
}

// Zone is a circular geofence.
type Zone struct {
	Center       Point   `json:"center"`
	RadiusMeters float64 `json:"radius_meters"`
}

// NewZone validates the center and radius bounds.
func NewZone(center Point, radiusMeters float64) (Zone, error) {
	if err := center.Validate(); err != nil {
		return Zone{}, err
	}
	if err := ValidateRadius(radiusMeters); err != nil {
		return Zone{}, err
	}
	return Zone{Center: center, RadiusMeters: radiusMeters}, nil
}

// ValidateRadius enforces the [1, 1000] meter bounds.
func ValidateRadius(radiusMeters float64) error {
	if math.IsNaN(radiusMeters) || radiusMeters < MinRadiusMeters || radiusMeters > MaxRadiusMeters {
		return ErrInvalidRadius
	}
	return nil
}

// HaversineDistance returns the great-circle distance between a and b in meters.
func HaversineDistance(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Check is the outcome of a containment test. DistanceMeters is always set.
type Check struct {
	WithinZone     bool
	DistanceMeters float64
}

// RoundedDistance is the distance rounded to whole meters for messages.
func (c Check) RoundedDistance() int {
	return int(math.Round(c.DistanceMeters))
}

// ValidateWithinZone reports whether p lies inside z. The boundary is inclusive.
func ValidateWithinZone(p Point, z Zone) (Check, error) {
	if err := p.Validate(); err != nil {
		return Check{}, err
	}

	distance := HaversineDistance(p, z.Center)
	return Check{
		WithinZone:     distance <= z.RadiusMeters,
		DistanceMeters: distance,
	}, nil
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
