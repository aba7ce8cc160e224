package attendance

import (
	"context"
	"fmt"
	"sync"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/attendance"
)

// memoryAttendanceRepository keeps the one-open-record rule the same way the
// database does: the check and the insert happen under one lock.
type memoryAttendanceRepository struct {
	mu         sync.Mutex
	records    []attendance.Record
	closeCalls int
}

var _ attendance.AttendanceRepository = (*memoryAttendanceRepository)(nil)

func (m *memoryAttendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.UserID == record.UserID && r.IsOpen() {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
	}
	record.ID = fmt.Sprintf("rec-%d", len(m.records)+1)
	record.CreatedAt = record.ClockInTime
	record.UpdatedAt = record.ClockInTime
	m.records = append(m.records, record)
	return record, nil
}

func (m *memoryAttendanceRepository) GetOpenSession(ctx context.Context, userID string) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.UserID == userID && r.IsOpen() {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrNoOpenSession
}

func (m *memoryAttendanceRepository) Close(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeCalls++
	for i, r := range m.records {
		if r.ID == record.ID && r.IsOpen() {
			record.UpdatedAt = *record.ClockOutTime
			m.records[i] = record
			return record, nil
		}
	}
	return attendance.Record{}, attendance.ErrNoOpenSession
}

func (m *memoryAttendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.ID == id && r.CompanyID == companyID {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (m *memoryAttendanceRepository) List(ctx context.Context, companyID string, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	return m.filter(func(r attendance.Record) bool { return r.CompanyID == companyID })
}

func (m *memoryAttendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	return m.filter(func(r attendance.Record) bool { return r.UserID == userID })
}

func (m *memoryAttendanceRepository) filter(keep func(attendance.Record) bool) ([]attendance.Record, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []attendance.Record
	for _, r := range m.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memoryAttendanceRepository) openCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range m.records {
		if r.UserID == userID && r.IsOpen() {
			n++
		}
	}
	return n
}

func (m *memoryAttendanceRepository) snapshot() []attendance.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]attendance.Record(nil), m.records...)
}

// passthroughLocker never blocks, leaving the repository as the only guard.
type passthroughLocker struct{}

func (passthroughLocker) Lock(ctx context.Context, key string) (func(), error) {
	return func() {}, nil
}
