package attendance

import (
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

// ========================================
// TRACKER REQUESTS
// ========================================

type PunchRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Validate checks presence only. Range checks belong to Location.Validate so that
// out-of-range coordinates surface as ErrInvalidLocation.
func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude == nil {
		errs.Add("latitude", "latitude is required")
	}
	if r.Longitude == nil {
		errs.Add("longitude", "longitude is required")
	}

	return errs.OrNil()
}

func (r *PunchRequest) Location() Location {
	return Location{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

type OutletVisitRequest struct {
	OutletID  string   `json:"outlet_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// outletId is still sent by older mobile builds
	LegacyOutletID string `json:"outletId,omitempty"`
}

func (r *OutletVisitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OutletID) {
		r.OutletID = r.LegacyOutletID
	}
	if validator.IsEmpty(r.OutletID) {
		errs.Add("outlet_id", "outlet_id is required")
	} else if !validator.IsValidUUID(r.OutletID) {
		errs.Add("outlet_id", "outlet_id must be a valid UUID")
	}
	if r.Latitude == nil {
		errs.Add("latitude", "latitude is required")
	}
	if r.Longitude == nil {
		errs.Add("longitude", "longitude is required")
	}

	return errs.OrNil()
}

func (r *OutletVisitRequest) Location() Location {
	return Location{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

// ========================================
// HISTORY FILTERS
// ========================================

type AttendanceFilter struct {
	From *string `json:"from,omitempty"` // YYYY-MM-DD
	To   *string `json:"to,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors
	validatePage(&f.Page, &f.Limit)
	validateRange(&errs, f.From, f.To)
	return errs.OrNil()
}

type VisitFilter struct {
	OutletID *string `json:"outlet_id,omitempty"`
	From     *string `json:"from,omitempty"`
	To       *string `json:"to,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *VisitFilter) Validate() error {
	var errs validator.ValidationErrors
	validatePage(&f.Page, &f.Limit)
	validateRange(&errs, f.From, f.To)
	if f.OutletID != nil && !validator.IsValidUUID(*f.OutletID) {
		errs.Add("outlet_id", "outlet_id must be a valid UUID")
	}
	return errs.OrNil()
}

func validatePage(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = 20
	}
	if *limit > 100 {
		*limit = 100
	}
}

func validateRange(errs *validator.ValidationErrors, from, to *string) {
	var fromDate, toDate time.Time
	var fromOK, toOK bool
	if from != nil {
		if fromDate, fromOK = validator.IsValidDate(*from); !fromOK {
			errs.Add("from", "from must be in YYYY-MM-DD format")
		}
	}
	if to != nil {
		if toDate, toOK = validator.IsValidDate(*to); !toOK {
			errs.Add("to", "to must be in YYYY-MM-DD format")
		}
	}
	if fromOK && toOK && toDate.Before(fromDate) {
		errs.Add("to", "to must not be before from")
	}
}

// ========================================
// RESPONSES
// ========================================

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func newLocationResponse(l *Location) *LocationResponse {
	if l == nil {
		return nil
	}
	return &LocationResponse{Latitude: l.Latitude, Longitude: l.Longitude}
}

type AttendanceResponse struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	PunchInTime      *time.Time        `json:"punch_in_time"`
	PunchInLocation  *LocationResponse `json:"punch_in_location"`
	PunchOutTime     *time.Time        `json:"punch_out_time"`
	PunchOutLocation *LocationResponse `json:"punch_out_location"`
	AutoClosed       bool              `json:"auto_closed"`
}

func NewAttendanceResponse(a AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		PunchInTime:      a.PunchInTime,
		PunchInLocation:  newLocationResponse(a.PunchInLocation),
		PunchOutTime:     a.PunchOutTime,
		PunchOutLocation: newLocationResponse(a.PunchOutLocation),
		AutoClosed:       a.AutoClosed,
	}
}

type OutletVisitResponse struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	OutletID         string            `json:"outlet_id"`
	OutletName       *string           `json:"outlet_name,omitempty"`
	CheckInTime      *time.Time        `json:"check_in_time"`
	CheckInLocation  *LocationResponse `json:"check_in_location"`
	CheckOutTime     *time.Time        `json:"check_out_time"`
	CheckOutLocation *LocationResponse `json:"check_out_location"`
	DistanceMeters   *float64          `json:"distance_meters,omitempty"`
	AutoClosed       bool              `json:"auto_closed"`
}

func NewOutletVisitResponse(v OutletVisitRecord) OutletVisitResponse {
	return OutletVisitResponse{
		ID:               v.ID,
		UserID:           v.UserID,
		OutletID:         v.OutletID,
		OutletName:       v.OutletName,
		CheckInTime:      v.CheckInTime,
		CheckInLocation:  newLocationResponse(v.CheckInLocation),
		CheckOutTime:     v.CheckOutTime,
		CheckOutLocation: newLocationResponse(v.CheckOutLocation),
		DistanceMeters:   v.DistanceMeters,
		AutoClosed:       v.AutoClosed,
	}
}

func newOutletVisitResponses(visits []OutletVisitRecord) []OutletVisitResponse {
	out := make([]OutletVisitResponse, 0, len(visits))
	for _, v := range visits {
		out = append(out, NewOutletVisitResponse(v))
	}
	return out
}

type AttendanceStatusResponse struct {
	IsPunchedIn bool                  `json:"is_punched_in"`
	IsCheckedIn bool                  `json:"is_checked_in"`
	Attendance  *AttendanceResponse   `json:"attendance,omitempty"`
	OpenVisits  []OutletVisitResponse `json:"open_visits"`
}

func NewAttendanceStatusResponse(status Status, open *AttendanceRecord, visits []OutletVisitRecord) AttendanceStatusResponse {
	resp := AttendanceStatusResponse{
		IsPunchedIn: status.IsPunchedIn,
		IsCheckedIn: status.IsCheckedIn,
		OpenVisits:  newOutletVisitResponses(visits),
	}
	if open != nil {
		a := NewAttendanceResponse(*open)
		resp.Attendance = &a
	}
	return resp
}

type VisitStatusResponse struct {
	IsPunchedIn bool                  `json:"is_punched_in"`
	IsCheckedIn bool                  `json:"is_checked_in"`
	OpenVisits  []OutletVisitResponse `json:"open_visits"`
}

func NewVisitStatusResponse(status Status, visits []OutletVisitRecord) VisitStatusResponse {
	return VisitStatusResponse{
		IsPunchedIn: status.IsPunchedIn,
		IsCheckedIn: status.IsCheckedIn,
		OpenVisits:  newOutletVisitResponses(visits),
	}
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type ListVisitResponse struct {
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
	Showing    string                `json:"showing"`
	Visits     []OutletVisitResponse `json:"visits"`
}

// AutoClosedEvent is the payload pushed when the sweeper closes a stale shift.
type AutoClosedEvent struct {
	Attendance AttendanceResponse    `json:"attendance"`
	Visits     []OutletVisitResponse `json:"visits"`
}

func NewAutoClosedEvent(a AttendanceRecord, visits []OutletVisitRecord) AutoClosedEvent {
	return AutoClosedEvent{
		Attendance: NewAttendanceResponse(a),
		Visits:     newOutletVisitResponses(visits),
	}
}
