package company

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/geo"
)

type Company struct {
	ID           string
	AdminID      string
	Name         string
	Address      *string
	Longitude    *float64
	Latitude     *float64
	RadiusMeters *float64
	Timezone     *string
	PlanID       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New builds a company for the given admin. Location fields are optional but
// must be supplied together.
func New(adminID, name string, address *string, location *geo.Point, radiusMeters *float64, timezone *string) (Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Company{}, ErrInvalidCompanyName
	}

	c := Company{
		AdminID: adminID,
		Name:    name,
		Address: address,
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return Company{}, err
		}
		lon, lat := location.Longitude, location.Latitude
		c.Longitude = &lon
		c.Latitude = &lat
	}

	if radiusMeters != nil {
		if err := geo.ValidateRadius(*radiusMeters); err != nil {
			return Company{}, err
		}
		r := *radiusMeters
		c.RadiusMeters = &r
	}

	if timezone != nil && *timezone != "" {
		if _, err := time.LoadLocation(*timezone); err != nil {
			return Company{}, ErrInvalidTimezone
		}
		tz := *timezone
		c.Timezone = &tz
	}

	return c, nil
}

// HasLocation reports whether both coordinates of the zone center are set.
func (c *Company) HasLocation() bool {
	return c.Longitude != nil && c.Latitude != nil
}

// Zone returns the geofence of the company. The radius falls back to the
// default when it was never set. Stored values are re-validated; a stored
// zone outside the bounds is a server-side fault, not a client error.
func (c *Company) Zone(defaultRadius float64) (geo.Zone, error) {
	if !c.HasLocation() {
		return geo.Zone{}, ErrZoneNotConfigured
	}

	radius := defaultRadius
	if radius <= 0 {
		radius = geo.DefaultRadiusMeters
	}
	if c.RadiusMeters != nil {
		radius = *c.RadiusMeters
	}

	zone, err := geo.NewZone(geo.Point{Longitude: *c.Longitude, Latitude: *c.Latitude}, radius)
	if err != nil {
		return geo.Zone{}, fmt.Errorf("%w: company %s: %v", ErrInvalidStoredZone, c.ID, err)
	}
	return zone, nil
}

// Location resolves the company timezone, or fallback when none is stored
// or the stored name is unknown.
func (c *Company) Location(fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	if c.Timezone == nil || *c.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(*c.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}
