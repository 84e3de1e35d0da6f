package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/outlet"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/product"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/order"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/email"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	salesID   = "user-1"
	outletID  = "0190b3f0-0000-7000-8000-0000000000a1"
	otherID   = "0190b3f0-0000-7000-8000-0000000000a2"
	snackID   = "0190b3f0-0000-7000-8000-0000000000b1"
	drinkID   = "0190b3f0-0000-7000-8000-0000000000b2"
	retiredID = "0190b3f0-0000-7000-8000-0000000000b3"
)

type serialLocker struct{ mu sync.Mutex }

func (l *serialLocker) WithUserLock(ctx context.Context, userID string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(ctx)
}

type fakeAttendances struct {
	attendance.AttendanceRepository
	open map[string]bool
}

func (f *fakeAttendances) GetOpen(ctx context.Context, userID string) (attendance.AttendanceRecord, error) {
	if !f.open[userID] {
		return attendance.AttendanceRecord{}, pgx.ErrNoRows
	}
	return attendance.AttendanceRecord{ID: "att-1", UserID: userID}, nil
}

type fakeVisits struct {
	attendance.OutletVisitRepository
	open map[string]string // outlet id -> visit id
}

func (f *fakeVisits) GetOpen(ctx context.Context, userID string, outletID string) (attendance.OutletVisitRecord, error) {
	id, ok := f.open[outletID]
	if !ok {
		return attendance.OutletVisitRecord{}, pgx.ErrNoRows
	}
	return attendance.OutletVisitRecord{ID: id, UserID: userID, OutletID: outletID}, nil
}

type fakeProducts map[string]product.Product

func (f fakeProducts) GetByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	var out []product.Product
	for _, id := range ids {
		if p, ok := f[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeOutlets map[string]outlet.Outlet

func (f fakeOutlets) GetByID(ctx context.Context, id string) (outlet.Outlet, error) {
	o, ok := f[id]
	if !ok {
		return outlet.Outlet{}, pgx.ErrNoRows
	}
	return o, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders map[string]order.Order
}

func (f *fakeOrders) Create(ctx context.Context, o order.Order) (order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.ID = "order-1"
	o.CreatedAt = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	name := "Budi"
	o.UserName = &name
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeOrders) GetByID(ctx context.Context, id string, userID string) (order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.UserID != userID {
		return order.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (f *fakeOrders) List(ctx context.Context, userID string, filter order.OrderFilter) ([]order.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []order.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrders) MarkShipped(ctx context.Context, id string, userID string) (order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.UserID != userID || o.IsShipped {
		return order.Order{}, pgx.ErrNoRows
	}
	now := time.Now()
	o.IsShipped = true
	o.ShippedAt = &now
	f.orders[id] = o
	return o, nil
}

type sentMail struct {
	to   string
	data email.OrderPlacedData
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) SendOrderPlaced(ctx context.Context, to string, data email.OrderPlacedData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, data: data})
	return m.err
}

type orderFixture struct {
	svc         *OrderServiceImpl
	attendances *fakeAttendances
	visits      *fakeVisits
	orders      *fakeOrders
	mailer      *recordingMailer
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		attendances: &fakeAttendances{open: map[string]bool{salesID: true}},
		visits:      &fakeVisits{open: map[string]string{outletID: "visit-1"}},
		orders:      &fakeOrders{orders: map[string]order.Order{}},
		mailer:      &recordingMailer{},
	}
	products := fakeProducts{
		snackID:   {ID: snackID, Name: "Keripik", Price: 12500.5, IsActive: true},
		drinkID:   {ID: drinkID, Name: "Teh Botol", Price: 4000, IsActive: true},
		retiredID: {ID: retiredID, Name: "Permen", Price: 1000, IsActive: false},
	}
	outlets := fakeOutlets{
		outletID: {ID: outletID, Name: "Toko Maju", OwnerEmail: "owner@example.com"},
		otherID:  {ID: otherID, Name: "Toko Jaya", OwnerEmail: "jaya@example.com"},
	}
	f.svc = NewOrderService(f.orders, &serialLocker{}, f.attendances, f.visits, products, outlets, f.mailer)
	return f
}

func validRequest() order.CreateOrderRequest {
	return order.CreateOrderRequest{
		OutletID: outletID,
		Items: []order.OrderItemRequest{
			{ProductID: snackID, Quantity: 2},
			{ProductID: drinkID, Quantity: 3},
		},
	}
}

func TestOrderService_CreateOrder_SnapshotsPricesAndNotifiesOwner(t *testing.T) {
	f := newOrderFixture()

	resp, err := f.svc.Create(context.Background(), salesID, validRequest())
	f.svc.Wait()

	require.NoError(t, err)
	assert.Equal(t, "visit-1", resp.OutletVisitID)
	assert.Equal(t, 2, resp.ProductCount)
	assert.Equal(t, 37001.0, resp.TotalAmount)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 12500.5, resp.Items[0].UnitPrice)
	assert.Equal(t, 25001.0, resp.Items[0].Subtotal)
	assert.Equal(t, "Keripik", *resp.Items[0].ProductName)

	require.Len(t, f.mailer.sent, 1)
	mail := f.mailer.sent[0]
	assert.Equal(t, "owner@example.com", mail.to)
	assert.Equal(t, "Toko Maju", mail.data.OutletName)
	assert.Equal(t, "Budi", mail.data.SalesName)
	assert.Len(t, mail.data.Items, 2)
}

func TestOrderService_CreateOrder_MailFailureDoesNotFailOrder(t *testing.T) {
	f := newOrderFixture()
	f.mailer.err = errors.New("smtp down")

	_, err := f.svc.Create(context.Background(), salesID, validRequest())
	f.svc.Wait()

	assert.NoError(t, err)
	assert.Len(t, f.orders.orders, 1)
}

func TestOrderService_CreateOrder_Guards(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *orderFixture, req *order.CreateOrderRequest)
		wantErr error
	}{
		{
			name:    "not punched in",
			mutate:  func(f *orderFixture, req *order.CreateOrderRequest) { f.attendances.open = map[string]bool{} },
			wantErr: attendance.ErrNotPunchedIn,
		},
		{
			name:    "not checked in at outlet",
			mutate:  func(f *orderFixture, req *order.CreateOrderRequest) { req.OutletID = otherID },
			wantErr: attendance.ErrNotCheckedIn,
		},
		{
			name:    "unknown outlet",
			mutate:  func(f *orderFixture, req *order.CreateOrderRequest) { req.OutletID = "0190b3f0-0000-7000-8000-0000000000ff" },
			wantErr: outlet.ErrOutletNotFound,
		},
		{
			name: "inactive product",
			mutate: func(f *orderFixture, req *order.CreateOrderRequest) {
				req.Items = append(req.Items, order.OrderItemRequest{ProductID: retiredID, Quantity: 1})
			},
			wantErr: order.ErrProductUnavailable,
		},
		{
			name: "unknown product",
			mutate: func(f *orderFixture, req *order.CreateOrderRequest) {
				req.Items = []order.OrderItemRequest{{ProductID: "0190b3f0-0000-7000-8000-0000000000bf", Quantity: 1}}
			},
			wantErr: order.ErrProductUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			req := validRequest()
			tt.mutate(f, &req)

			_, err := f.svc.Create(context.Background(), salesID, req)
			f.svc.Wait()

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.orders.orders)
			assert.Empty(t, f.mailer.sent)
		})
	}
}

func TestOrderService_CreateOrder_ValidationErrors(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Create(context.Background(), salesID, order.CreateOrderRequest{
		OutletID: outletID,
		Items: []order.OrderItemRequest{
			{ProductID: snackID, Quantity: 0},
			{ProductID: snackID, Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0].quantity")
	assert.Contains(t, err.Error(), "items[1].product_id")
}

func TestOrderService_MarkShipped_Transitions(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	created, err := f.svc.Create(ctx, salesID, validRequest())
	require.NoError(t, err)
	f.svc.Wait()

	shipped, err := f.svc.MarkShipped(ctx, salesID, created.ID)
	require.NoError(t, err)
	assert.True(t, shipped.IsShipped)
	assert.NotNil(t, shipped.ShippedAt)

	_, err = f.svc.MarkShipped(ctx, salesID, created.ID)
	assert.ErrorIs(t, err, order.ErrOrderAlreadyShipped)

	_, err = f.svc.MarkShipped(ctx, salesID, "missing")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	_, err = f.svc.MarkShipped(ctx, "someone-else", created.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestOrderService_GetAndList_ScopedToCaller(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	empty, err := f.svc.List(ctx, salesID, order.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, "0 of 0", empty.Showing)
	assert.NotNil(t, empty.Orders)

	created, err := f.svc.Create(ctx, salesID, validRequest())
	require.NoError(t, err)
	f.svc.Wait()

	got, err := f.svc.Get(ctx, salesID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.Get(ctx, "someone-else", created.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	list, err := f.svc.List(ctx, salesID, order.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
	assert.Equal(t, "1-1 of 1", list.Showing)
	assert.Equal(t, 1, list.TotalPages)
}
