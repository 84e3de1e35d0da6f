package http

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/auth"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/division"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/order"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/user"
	masterService "github.com/fieldops-id/fieldops-backend-go/internal/service/master"
)

type fakeAuthService struct {
	auth.AuthService
	login  func(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error)
	logout func(ctx context.Context, refreshToken string) error
	me     func(ctx context.Context, userID string) (user.UserResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, _ auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return f.login(ctx, req)
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string) error {
	return f.logout(ctx, refreshToken)
}

func (f *fakeAuthService) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	return f.me(ctx, userID)
}

type fakeAttendanceService struct {
	attendance.AttendanceService
	punchIn     func(ctx context.Context, userID string, location attendance.Location) (attendance.AttendanceRecord, error)
	checkIn     func(ctx context.Context, userID, outletID string, location attendance.Location) (attendance.OutletVisitRecord, error)
	visitStatus func(ctx context.Context, userID string, outletID *string) (attendance.VisitStatusResponse, error)
	list        func(ctx context.Context, userID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error)
}

func (f *fakeAttendanceService) PunchIn(ctx context.Context, userID string, location attendance.Location) (attendance.AttendanceRecord, error) {
	return f.punchIn(ctx, userID, location)
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, userID, outletID string, location attendance.Location) (attendance.OutletVisitRecord, error) {
	return f.checkIn(ctx, userID, outletID, location)
}

func (f *fakeAttendanceService) VisitStatus(ctx context.Context, userID string, outletID *string) (attendance.VisitStatusResponse, error) {
	return f.visitStatus(ctx, userID, outletID)
}

func (f *fakeAttendanceService) ListAttendance(ctx context.Context, userID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return f.list(ctx, userID, filter)
}

type fakeOrderService struct {
	order.OrderService
	create      func(ctx context.Context, userID string, req order.CreateOrderRequest) (order.OrderResponse, error)
	markShipped func(ctx context.Context, userID, id string) (order.OrderResponse, error)
}

func (f *fakeOrderService) Create(ctx context.Context, userID string, req order.CreateOrderRequest) (order.OrderResponse, error) {
	return f.create(ctx, userID, req)
}

func (f *fakeOrderService) MarkShipped(ctx context.Context, userID, id string) (order.OrderResponse, error) {
	return f.markShipped(ctx, userID, id)
}

type fakeMasterService struct {
	masterService.MasterService
	listDivisions  func(ctx context.Context, filter master.ListFilter) (division.ListDivisionResponse, error)
	deleteDivision func(ctx context.Context, id string) error
}

func (f *fakeMasterService) ListDivisions(ctx context.Context, filter master.ListFilter) (division.ListDivisionResponse, error) {
	return f.listDivisions(ctx, filter)
}

func (f *fakeMasterService) DeleteDivision(ctx context.Context, id string) error {
	return f.deleteDivision(ctx, id)
}
