package company

import "errors"

var (
	ErrCompanyNotFound          = errors.New("company not found")
	ErrCompanyAlreadyRegistered = errors.New("admin already has a registered company")
	ErrInvalidCompanyName       = errors.New("company name cannot be empty")
	ErrInvalidTimezone          = errors.New("invalid IANA timezone")
	ErrZoneNotConfigured        = errors.New("company location not configured, please contact administrator")
	ErrInvalidStoredZone        = errors.New("stored company zone is invalid")
)
