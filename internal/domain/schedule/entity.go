package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

var clockLayouts = []string{"15:04", "3:04 PM", "03:04 PM", "3:04PM"}

// ParseClockTime accepts "HH:MM" (24h) or "h:MM AM/PM".
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Format12h renders the time as "8:30 AM".
func (c ClockTime) Format12h() string {
	return time.Date(2000, 1, 1, c.Hour, c.Minute, 0, 0, time.UTC).Format("3:04 PM")
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// On anchors the time of day to the calendar date of ref, in ref's location.
func (c ClockTime) On(ref time.Time) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, ref.Location())
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClockTime(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Shift struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// WorkDay is one entry of a user's weekly schedule.
type WorkDay struct {
	Day   time.Weekday
	Shift Shift
}

// NewWorkDay parses a weekday name and "HH:MM" bounds.
func NewWorkDay(day, start, end string) (WorkDay, error) {
	weekday, err := ParseWeekday(day)
	if err != nil {
		return WorkDay{}, err
	}
	s, err := ParseClockTime(start)
	if err != nil {
		return WorkDay{}, err
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return WorkDay{}, err
	}
	return WorkDay{Day: weekday, Shift: Shift{Start: s, End: e}}, nil
}

type workDayJSON struct {
	Day   string `json:"day"`
	Shift Shift  `json:"shift"`
}

func (w WorkDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(workDayJSON{Day: w.Day.String(), Shift: w.Shift})
}

func (w *WorkDay) UnmarshalJSON(b []byte) error {
	var raw workDayJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	weekday, err := ParseWeekday(raw.Day)
	if err != nil {
		return err
	}
	w.Day = weekday
	w.Shift = raw.Shift
	return nil
}

// ParseWeekday accepts full ("Monday") or short ("Mon") English names, any case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if len(name) >= 3 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			full := strings.ToLower(d.String())
			if name == full || name == full[:3] {
				return d, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// ShiftWindow is a shift anchored to a concrete calendar date.
type ShiftWindow struct {
	Day   time.Weekday
	Start time.Time
	End   time.Time
}

// Reminders holds optional daily reminder times.
type Reminders struct {
	ClockIn  *ClockTime `json:"clock_in,omitempty"`
	ClockOut *ClockTime `json:"clock_out,omitempty"`
}
