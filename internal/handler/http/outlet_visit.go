package http

import (
	"log/slog"
	"net/http"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/handler/http/response"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

type OutletVisitHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type outletVisitHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewOutletVisitHandler(attendanceService attendance.AttendanceService) OutletVisitHandler {
	return &outletVisitHandlerImpl{
		attendanceService: attendanceService,
	}
}

func decodeVisit(w http.ResponseWriter, r *http.Request, op string) (attendance.OutletVisitRequest, bool) {
	var req attendance.OutletVisitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}
	return req, true
}

// CheckIn implements OutletVisitHandler.
func (h *outletVisitHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := decodeVisit(w, r, "CheckIn")
	if !ok {
		return
	}

	visit, err := h.attendanceService.CheckIn(r.Context(), userID, req.OutletID, req.Location())
	if err != nil {
		slog.Warn("CheckIn service error", "error", err, "user_id", userID, "outlet_id", req.OutletID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in successfully", attendance.NewOutletVisitResponse(visit))
}

// CheckOut implements OutletVisitHandler.
func (h *outletVisitHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := decodeVisit(w, r, "CheckOut")
	if !ok {
		return
	}

	visit, err := h.attendanceService.CheckOut(r.Context(), userID, req.OutletID, req.Location())
	if err != nil {
		slog.Warn("CheckOut service error", "error", err, "user_id", userID, "outlet_id", req.OutletID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", attendance.NewOutletVisitResponse(visit))
}

// Status implements OutletVisitHandler.
func (h *outletVisitHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	outletID := queryString(r, "outlet_id")
	if outletID == nil {
		// older clients send outletId
		outletID = queryString(r, "outletId")
	}
	if outletID != nil && !validator.IsValidUUID(*outletID) {
		response.BadRequest(w, "Invalid outlet_id format", nil)
		return
	}

	status, err := h.attendanceService.VisitStatus(r.Context(), userID, outletID)
	if err != nil {
		slog.Error("VisitStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// History implements OutletVisitHandler.
func (h *outletVisitHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	filter := attendance.VisitFilter{
		OutletID: queryString(r, "outlet_id"),
		From:     queryString(r, "from"),
		To:       queryString(r, "to"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}

	result, err := h.attendanceService.ListVisits(r.Context(), userID, filter)
	if err != nil {
		slog.Error("VisitHistory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Visits, newMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages, result.Showing))
}
