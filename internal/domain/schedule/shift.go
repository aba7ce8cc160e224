package schedule

import (
	"fmt"
	"time"
)

// ResolveTodayShift finds the shift for ref's weekday and anchors it to ref's
// calendar date. ref must already be expressed in the governing timezone.
// When the schedule lists a weekday twice the first entry wins.
func ResolveTodayShift(workDays []WorkDay, ref time.Time) (ShiftWindow, error) {
	today := ref.Weekday()
	for _, wd := range workDays {
		if wd.Day != today {
			continue
		}
		return ShiftWindow{
			Day:   today,
			Start: wd.Shift.Start.On(ref),
			End:   wd.Shift.End.On(ref),
		}, nil
	}
	return ShiftWindow{}, fmt.Errorf("%w: %s", ErrNotScheduled, today)
}

// ValidateWorkDays is applied when a schedule is written. Reads tolerate
// whatever is stored.
func ValidateWorkDays(workDays []WorkDay) error {
	seen := make(map[time.Weekday]struct{}, len(workDays))
	for _, wd := range workDays {
		if _, dup := seen[wd.Day]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateWorkDay, wd.Day)
		}
		seen[wd.Day] = struct{}{}

		if wd.Shift.End.Minutes() <= wd.Shift.Start.Minutes() {
			return fmt.Errorf("%w: %s %s-%s", ErrShiftEndsBefore, wd.Day, wd.Shift.Start, wd.Shift.End)
		}
	}
	return nil
}

// IsScheduled reports whether the weekday appears in the schedule.
func IsScheduled(workDays []WorkDay, day time.Weekday) bool {
	for _, wd := range workDays {
		if wd.Day == day {
			return true
		}
	}
	return false
}
