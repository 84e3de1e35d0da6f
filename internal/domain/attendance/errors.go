package attendance

import "errors"

// Tracker guard errors
var (
	ErrAlreadyPunchedIn     = errors.New("user is already punched in")
	ErrNotPunchedIn         = errors.New("user is not punched in")
	ErrOutletVisitStillOpen = errors.New("user must check out of all outlets before punching out")
	ErrAlreadyCheckedIn     = errors.New("user is already checked in at this outlet")
	ErrNotCheckedIn         = errors.New("user is not checked in at the specified outlet")
	ErrInvalidLocation      = errors.New("invalid location")
)

// General errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrVisitNotFound      = errors.New("outlet visit record not found")
)
