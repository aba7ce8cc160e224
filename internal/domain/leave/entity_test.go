package leave

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestRequest_Overlaps(t *testing.T) {
	r := Request{StartDate: date("2024-06-10"), EndDate: date("2024-06-14")}

	assert.True(t, r.Overlaps(date("2024-06-14"), date("2024-06-20")), "shared last day")
	assert.True(t, r.Overlaps(date("2024-06-01"), date("2024-06-10")), "shared first day")
	assert.True(t, r.Overlaps(date("2024-06-11"), date("2024-06-12")), "contained")
	assert.False(t, r.Overlaps(date("2024-06-15"), date("2024-06-20")))
	assert.False(t, r.Overlaps(date("2024-06-01"), date("2024-06-09")))
	assert.Equal(t, 5, r.Days())
}

func TestRequest_Decide(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	r := Request{Status: StatusPending}

	assert.ErrorIs(t, r.Decide(StatusPending, "admin-1", now), ErrInvalidStatus)

	require.NoError(t, r.Decide(StatusAccepted, "admin-1", now))
	assert.Equal(t, StatusAccepted, r.Status)
	require.NotNil(t, r.ProcessedBy)
	assert.Equal(t, "admin-1", *r.ProcessedBy)

	assert.ErrorIs(t, r.Decide(StatusDeclined, "admin-1", now), ErrLeaveRequestAlreadyProcessed)
	assert.True(t, r.Blocking())
}

func TestCreateLeaveRequest_Validate(t *testing.T) {
	req := CreateLeaveRequest{
		RequestType: " Sick leave ",
		Reason:      "Flu",
		Note:        "Doctor's note attached",
		StartDate:   "2024-06-10",
		EndDate:     "2024-06-12",
	}
	start, end, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Sick leave", req.RequestType)
	assert.Equal(t, date("2024-06-10"), start)
	assert.Equal(t, date("2024-06-12"), end)

	req.EndDate = "2024-06-09"
	_, _, err = req.Validate()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "end_date must not be before start_date", verrs.ToMap()["end_date"])

	bad := CreateLeaveRequest{StartDate: "10/06/2024", EndDate: "2024-06-12"}
	_, _, err = bad.Validate()
	require.True(t, errors.As(err, &verrs))
	m := verrs.ToMap()
	assert.Contains(t, m, "request_type")
	assert.Contains(t, m, "reason")
	assert.Contains(t, m, "note")
	assert.Equal(t, "start_date must be in YYYY-MM-DD format", m["start_date"])
}

func TestLeaveFilter_Validate(t *testing.T) {
	status := "Accepted"
	f := LeaveFilter{Status: &status}
	require.NoError(t, f.Validate())
	assert.Equal(t, "accepted", *f.Status)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)

	bogus := "archived"
	f = LeaveFilter{Status: &bogus, Limit: 500}
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
	assert.Contains(t, err.Error(), "limit")
}
