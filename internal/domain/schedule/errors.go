package schedule

import "errors"

var (
	ErrNotScheduled     = errors.New("not scheduled to work today")
	ErrInvalidWeekday   = errors.New("invalid weekday")
	ErrInvalidClockTime = errors.New("invalid time of day, use HH:MM")
	ErrDuplicateWorkDay = errors.New("work day listed more than once")
	ErrShiftEndsBefore  = errors.New("shift end must be after shift start")
)
