package attendance

import (
	"fmt"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Validate returns ErrInvalidLocation when either coordinate is out of range.
func (l Location) Validate() error {
	if !validator.IsValidLatitude(l.Latitude) {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidLocation)
	}
	if !validator.IsValidLongitude(l.Longitude) {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidLocation)
	}
	return nil
}

// AttendanceRecord is one shift. It is open while PunchOutTime is nil.
type AttendanceRecord struct {
	ID               string
	UserID           string
	PunchInTime      *time.Time
	PunchInLocation  *Location
	PunchOutTime     *time.Time
	PunchOutLocation *Location
	AutoClosed       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (a AttendanceRecord) IsOpen() bool {
	return a.PunchInTime != nil && a.PunchOutTime == nil
}

// OutletVisitRecord is one visit to an outlet inside a shift. It is open while CheckOutTime is nil.
type OutletVisitRecord struct {
	ID               string
	UserID           string
	OutletID         string
	CheckInTime      *time.Time
	CheckInLocation  *Location
	CheckOutTime     *time.Time
	CheckOutLocation *Location
	DistanceMeters   *float64
	AutoClosed       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO
	OutletName *string
}

func (v OutletVisitRecord) IsOpen() bool {
	return v.CheckInTime != nil && v.CheckOutTime == nil
}

// Status is the derived view of a user's tracker state.
type Status struct {
	IsPunchedIn bool
	IsCheckedIn bool
}

// EventType names a tracker transition pushed to live subscribers.
type EventType string

const (
	EventPunchedIn  EventType = "punched_in"
	EventPunchedOut EventType = "punched_out"
	EventCheckedIn  EventType = "checked_in"
	EventCheckedOut EventType = "checked_out"
	EventAutoClosed EventType = "auto_closed"
)
