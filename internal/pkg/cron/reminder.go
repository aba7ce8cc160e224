package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user"
)

// ReminderJobs pushes clock-in and clock-out reminders to employees.
type ReminderJobs struct {
	userRepo        user.UserRepository
	notifier        notification.Notifier
	defaultLocation *time.Location
	now             func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

func NewReminderJobs(userRepo user.UserRepository, notifier notification.Notifier, defaultLocation *time.Location) *ReminderJobs {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &ReminderJobs{
		userRepo:        userRepo,
		notifier:        notifier,
		defaultLocation: defaultLocation,
		now:             time.Now,
		sent:            make(map[string]time.Time),
	}
}

func (j *ReminderJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("send_shift_reminders", time.Minute, j.SendShiftReminders)
}

// SendShiftReminders notifies every user whose reminder is due in their
// company's timezone. A reminder fires at most once per user, kind and day.
func (j *ReminderJobs) SendShiftReminders(ctx context.Context) error {
	users, err := j.userRepo.ListWithReminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users with reminders: %w", err)
	}

	j.prune()

	sent := 0
	for _, u := range users {
		now := j.now().In(j.location(u))
		status := schedule.CheckReminders(u.WorkDays, u.Reminders, now)

		for _, r := range status.Due() {
			key := u.ID + "|" + string(r.Kind) + "|" + r.FiresAt.Format("2006-01-02")
			if j.alreadySent(key) {
				continue
			}

			if err := j.notifier.Notify(ctx, reminderNotification(u, r)); err != nil {
				slog.Warn("Failed to send shift reminder", "user_id", u.ID, "kind", r.Kind, "error", err)
				continue
			}
			j.markSent(key, r.FiresAt)
			sent++
		}
	}

	if sent > 0 {
		slog.Info("Cron: shift reminders sent", "count", sent, "candidates", len(users))
	}
	return nil
}

func reminderNotification(u user.User, r schedule.Reminder) notification.CreateNotificationRequest {
	notifType := notification.TypeClockInReminder
	title := "Clock-in reminder"
	if r.Kind == schedule.ReminderClockOut {
		notifType = notification.TypeClockOutReminder
		title = "Clock-out reminder"
	}

	return notification.CreateNotificationRequest{
		CompanyID:   u.CompanyID,
		RecipientID: u.ID,
		Type:        notifType,
		Title:       title,
		Message:     r.Message,
		Data: map[string]interface{}{
			"reminder_time": r.ReminderTime,
			"shift_time":    r.ShiftTime,
		},
	}
}

func (j *ReminderJobs) location(u user.User) *time.Location {
	if u.CompanyTimezone == nil || *u.CompanyTimezone == "" {
		return j.defaultLocation
	}
	loc, err := time.LoadLocation(*u.CompanyTimezone)
	if err != nil {
		slog.Warn("Invalid company timezone, using default", "user_id", u.ID, "timezone", *u.CompanyTimezone)
		return j.defaultLocation
	}
	return loc
}

func (j *ReminderJobs) alreadySent(key string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, ok := j.sent[key]
	return ok
}

func (j *ReminderJobs) markSent(key string, firesAt time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sent[key] = firesAt
}

// prune drops entries older than two days.
func (j *ReminderJobs) prune() {
	j.mu.Lock()
	defer j.mu.Unlock()
	cutoff := j.now().Add(-48 * time.Hour)
	for key, firesAt := range j.sent {
		if firesAt.Before(cutoff) {
			delete(j.sent, key)
		}
	}
}
