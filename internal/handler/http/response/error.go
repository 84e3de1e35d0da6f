package response

import (
	"errors"
	"net/http"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/auth"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/brand"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/division"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/outlet"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/product"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/unit"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/vertical"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/order"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/user"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Tracker guard errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn),
		errors.Is(err, attendance.ErrNotPunchedIn),
		errors.Is(err, attendance.ErrOutletVisitStillOpen),
		errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrInvalidLocation):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrVisitNotFound):
		NotFound(w, "Outlet visit record not found")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound):
		BadRequest(w, "Refresh token not provided", nil)
	case errors.Is(err, auth.ErrGoogleAccountNotRegistered):
		Forbidden(w, "No account is registered for this Google email")
	case errors.Is(err, auth.ErrGoogleEmailNotVerified):
		Forbidden(w, "Google email is not verified")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email is already registered")
	case errors.Is(err, user.ErrUserPhoneExists):
		Conflict(w, "Phone number is already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	// Reference data errors
	case errors.Is(err, division.ErrDivisionNotFound):
		NotFound(w, "Division not found")
	case errors.Is(err, division.ErrAbbreviationExists):
		Conflict(w, "Division abbreviation already exists")
	case errors.Is(err, division.ErrDivisionStillInUse):
		Conflict(w, "Division is still in use")
	case errors.Is(err, vertical.ErrVerticalNotFound):
		NotFound(w, "Vertical not found")
	case errors.Is(err, vertical.ErrVerticalStillInUse):
		Conflict(w, "Vertical is still in use")
	case errors.Is(err, brand.ErrBrandNotFound):
		NotFound(w, "Brand not found")
	case errors.Is(err, brand.ErrBrandStillInUse):
		Conflict(w, "Brand is still in use")
	case errors.Is(err, unit.ErrUnitNotFound):
		NotFound(w, "Unit not found")
	case errors.Is(err, unit.ErrUnitStillInUse):
		Conflict(w, "Unit is still in use")
	case errors.Is(err, product.ErrProductNotFound):
		NotFound(w, "Product not found")
	case errors.Is(err, product.ErrProductStillInUse):
		Conflict(w, "Product is still in use")
	case errors.Is(err, outlet.ErrOutletNotFound):
		NotFound(w, "Outlet not found")
	case errors.Is(err, outlet.ErrOutletStillInUse):
		Conflict(w, "Outlet is still in use")

	// Order domain errors
	case errors.Is(err, order.ErrOrderNotFound):
		NotFound(w, "Order not found")
	case errors.Is(err, order.ErrOrderAlreadyShipped):
		Conflict(w, "Order has already been shipped")
	case errors.Is(err, order.ErrProductUnavailable):
		UnprocessableEntity(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
