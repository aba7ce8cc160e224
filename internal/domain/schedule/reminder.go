package schedule

import (
	"fmt"
	"time"
)

type ReminderKind string

const (
	ReminderClockIn  ReminderKind = "clock_in"
	ReminderClockOut ReminderKind = "clock_out"
)

// ReminderWindow is how close to a reminder time "now" must be for the
// reminder to fire.
const ReminderWindow = time.Minute

type Reminder struct {
	Kind         ReminderKind `json:"kind"`
	Due          bool         `json:"due"`
	ReminderTime string       `json:"reminder_time"`
	ShiftTime    string       `json:"shift_time"`
	Message      string       `json:"message"`
	// FiresAt is the reminder instant on the reference day.
	FiresAt time.Time `json:"-"`
}

type ReminderStatus struct {
	Scheduled    bool      `json:"scheduled"`
	HasReminders bool      `json:"has_reminders"`
	ClockIn      *Reminder `json:"clock_in,omitempty"`
	ClockOut     *Reminder `json:"clock_out,omitempty"`
}

// Due returns the reminders that should fire now.
func (s ReminderStatus) Due() []Reminder {
	var due []Reminder
	for _, r := range []*Reminder{s.ClockIn, s.ClockOut} {
		if r != nil && r.Due {
			due = append(due, *r)
		}
	}
	return due
}

// CheckReminders evaluates the configured reminders against now. now must
// already be in the company's location. A reminder is due when now is
// within ReminderWindow of it, and only on scheduled days.
func CheckReminders(workDays []WorkDay, reminders Reminders, now time.Time) ReminderStatus {
	window, err := ResolveTodayShift(workDays, now)
	if err != nil {
		return ReminderStatus{}
	}

	status := ReminderStatus{Scheduled: true}
	if reminders.ClockIn != nil {
		status.ClockIn = newReminder(ReminderClockIn, *reminders.ClockIn, window.Start, now,
			"Your shift starts at %s. Please remember to clock in.")
	}
	if reminders.ClockOut != nil {
		status.ClockOut = newReminder(ReminderClockOut, *reminders.ClockOut, window.End, now,
			"Your shift ends at %s. Please remember to clock out.")
	}
	status.HasReminders = len(status.Due()) > 0
	return status
}

func newReminder(kind ReminderKind, at ClockTime, shift time.Time, now time.Time, format string) *Reminder {
	firesAt := at.On(now)
	delta := now.Sub(firesAt)
	if delta < 0 {
		delta = -delta
	}

	shiftTime := shift.Format("3:04 PM")
	return &Reminder{
		Kind:         kind,
		Due:          delta <= ReminderWindow,
		ReminderTime: at.Format12h(),
		ShiftTime:    shiftTime,
		Message:      fmt.Sprintf(format, shiftTime),
		FiresAt:      firesAt,
	}
}
