package attendance

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrAlreadyClockedIn   = errors.New("already clocked in")
	ErrNoOpenSession      = errors.New("no active session to clock out")
	ErrNotScheduledToday  = errors.New("you are not scheduled to work today")
	ErrOutOfZone          = errors.New("outside of the workplace zone")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrClockInProgress    = errors.New("another clock event for this user is in progress")
)

// OutOfZoneError carries the measured distance and the allowed radius.
type OutOfZoneError struct {
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *OutOfZoneError) Error() string {
	return fmt.Sprintf("You must be within %d meters of your workplace. Current distance: %d meters.",
		int(math.Round(e.RadiusMeters)), int(math.Round(e.DistanceMeters)))
}

func (e *OutOfZoneError) Is(target error) bool {
	return target == ErrOutOfZone
}
