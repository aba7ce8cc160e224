package company

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Address      *string    `json:"address,omitempty"`
	Location     *geo.Point `json:"location,omitempty"`
	RadiusMeters float64    `json:"radius"`
	Timezone     *string    `json:"timezone,omitempty"`
	PlanID       *string    `json:"plan_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	resp := CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Address:      c.Address,
		RadiusMeters: geo.DefaultRadiusMeters,
		Timezone:     c.Timezone,
		PlanID:       c.PlanID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.HasLocation() {
		resp.Location = &geo.Point{Longitude: *c.Longitude, Latitude: *c.Latitude}
	}
	if c.RadiusMeters != nil {
		resp.RadiusMeters = *c.RadiusMeters
	}
	return resp
}

type RegisterCompanyRequest struct {
	AdminID   string   `json:"-"`
	Name      string   `json:"name" validate:"required,max=255"`
	Address   *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Radius    *float64 `json:"radius,omitempty" validate:"omitempty,gte=1,lte=1000"`
	Timezone  *string  `json:"timezone,omitempty" validate:"omitempty,timezone"`
	PlanID    *string  `json:"plan_id,omitempty" validate:"omitempty,uuid"`
}

func (r *RegisterCompanyRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if (r.Longitude == nil) != (r.Latitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "longitude and latitude must be provided together",
		})
	}
	if r.Longitude != nil && r.Latitude != nil {
		errs = append(errs, pointErrors(*r.Longitude, *r.Latitude)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Location returns the requested zone center, if any.
func (r *RegisterCompanyRequest) Location() *geo.Point {
	if r.Longitude == nil || r.Latitude == nil {
		return nil
	}
	return &geo.Point{Longitude: *r.Longitude, Latitude: *r.Latitude}
}

type UpdateLocationRequest struct {
	AdminID   string   `json:"-"`
	Longitude float64  `json:"longitude"`
	Latitude  float64  `json:"latitude"`
	Radius    *float64 `json:"radius,omitempty" validate:"omitempty,gte=1,lte=1000"`
	Address   *string  `json:"address,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdateLocationRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	errs := pointErrors(r.Longitude, r.Latitude)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func pointErrors(lon, lat float64) validator.ValidationErrors {
	var errs validator.ValidationErrors
	// Each axis is checked on its own so both fields are reported at once.
	for _, p := range []geo.Point{{Longitude: lon}, {Latitude: lat}} {
		var coordErr *geo.CoordinateError
		if errors.As(p.Validate(), &coordErr) {
			errs = append(errs, validator.ValidationError{
				Field:   coordErr.Field,
				Message: coordErr.Error(),
			})
		}
	}
	return errs
}
