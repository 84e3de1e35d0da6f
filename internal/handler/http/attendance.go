package http

import (
	"log/slog"
	"net/http"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func decodePunch(w http.ResponseWriter, r *http.Request, op string) (attendance.Location, bool) {
	var req attendance.PunchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return attendance.Location{}, false
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return attendance.Location{}, false
	}
	return req.Location(), true
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	location, ok := decodePunch(w, r, "PunchIn")
	if !ok {
		return
	}

	record, err := h.attendanceService.PunchIn(r.Context(), userID, location)
	if err != nil {
		slog.Warn("PunchIn service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punched in successfully", attendance.NewAttendanceResponse(record))
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	location, ok := decodePunch(w, r, "PunchOut")
	if !ok {
		return
	}

	record, err := h.attendanceService.PunchOut(r.Context(), userID, location)
	if err != nil {
		slog.Warn("PunchOut service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punched out successfully", attendance.NewAttendanceResponse(record))
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	status, err := h.attendanceService.AttendanceStatus(r.Context(), userID)
	if err != nil {
		slog.Error("AttendanceStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	filter := attendance.AttendanceFilter{
		From:  queryString(r, "from"),
		To:    queryString(r, "to"),
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), userID, filter)
	if err != nil {
		slog.Error("AttendanceHistory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, newMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages, result.Showing))
}
