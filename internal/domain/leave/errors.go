package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestOverlap          = errors.New("a request already exists within this date range")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidStatus                = errors.New("status must be accepted or declined")
)
