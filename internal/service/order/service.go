package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/outlet"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/product"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/order"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/email"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
)

const notifyTimeout = 30 * time.Second

// ProductFinder is the part of the product repository ordering needs.
type ProductFinder interface {
	GetByIDs(ctx context.Context, ids []string) ([]product.Product, error)
}

type OutletFinder interface {
	GetByID(ctx context.Context, id string) (outlet.Outlet, error)
}

type OrderServiceImpl struct {
	order.OrderRepository
	locker      attendance.UserLocker
	attendances attendance.AttendanceRepository
	visits      attendance.OutletVisitRepository
	products    ProductFinder
	outlets     OutletFinder
	mailer      email.EmailService

	// pending owner notifications
	notifications sync.WaitGroup
}

func NewOrderService(
	orderRepo order.OrderRepository,
	locker attendance.UserLocker,
	attendanceRepo attendance.AttendanceRepository,
	visitRepo attendance.OutletVisitRepository,
	productRepo ProductFinder,
	outletRepo OutletFinder,
	mailer email.EmailService,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		OrderRepository: orderRepo,
		locker:          locker,
		attendances:     attendanceRepo,
		visits:          visitRepo,
		products:        productRepo,
		outlets:         outletRepo,
		mailer:          mailer,
	}
}

// Create implements order.OrderService. The order is attached to the caller's open
// visit at the outlet, so it runs under the same user lock as the tracker.
func (s *OrderServiceImpl) Create(ctx context.Context, userID string, req order.CreateOrderRequest) (order.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return order.OrderResponse{}, err
	}

	target, err := s.outlets.GetByID(ctx, req.OutletID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.OrderResponse{}, outlet.ErrOutletNotFound
		}
		return order.OrderResponse{}, fmt.Errorf("failed to get outlet: %w", err)
	}

	var created order.Order
	err = s.locker.WithUserLock(ctx, userID, func(ctx context.Context) error {
		if _, err := s.attendances.GetOpen(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrNotPunchedIn
			}
			return fmt.Errorf("failed to get open attendance: %w", err)
		}

		visit, err := s.visits.GetOpen(ctx, userID, req.OutletID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrNotCheckedIn
			}
			return fmt.Errorf("failed to get open outlet visit: %w", err)
		}

		items, err := s.priceItems(ctx, req.Items)
		if err != nil {
			return err
		}

		var total float64
		for _, item := range items {
			total += item.Subtotal
		}

		created, err = s.OrderRepository.Create(ctx, order.Order{
			OutletVisitID: visit.ID,
			UserID:        userID,
			OutletID:      req.OutletID,
			ProductCount:  len(items),
			TotalAmount:   utils.RoundTo(total, 2),
			IsOnCall:      req.IsOnCall,
			Items:         items,
		})
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return order.OrderResponse{}, err
	}

	s.notifyOwner(ctx, target, created)
	return order.NewOrderResponse(created), nil
}

// priceItems snapshots the current price of every requested product.
func (s *OrderServiceImpl) priceItems(ctx context.Context, requested []order.OrderItemRequest) ([]order.Item, error) {
	ids := make([]string, 0, len(requested))
	for _, r := range requested {
		ids = append(ids, r.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]order.Item, 0, len(requested))
	for _, r := range requested {
		p, ok := byID[r.ProductID]
		if !ok || !p.IsActive {
			return nil, fmt.Errorf("%w: %s", order.ErrProductUnavailable, r.ProductID)
		}
		name := p.Name
		items = append(items, order.Item{
			ProductID:   p.ID,
			Quantity:    r.Quantity,
			UnitPrice:   p.Price,
			Subtotal:    utils.RoundTo(p.Price*float64(r.Quantity), 2),
			ProductName: &name,
		})
	}
	return items, nil
}

// notifyOwner mails the outlet owner in the background. Failures are only logged.
func (s *OrderServiceImpl) notifyOwner(ctx context.Context, target outlet.Outlet, o order.Order) {
	if s.mailer == nil || target.OwnerEmail == "" {
		return
	}

	data := email.OrderPlacedData{
		OrderID:     o.ID,
		OutletName:  target.Name,
		PlacedAt:    o.CreatedAt.Format("02 Jan 2006 15:04 MST"),
		IsOnCall:    o.IsOnCall,
		TotalAmount: o.TotalAmount,
	}
	if o.UserName != nil {
		data.SalesName = *o.UserName
	}
	for _, item := range o.Items {
		line := email.OrderPlacedItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice, Subtotal: item.Subtotal}
		if item.ProductName != nil {
			line.ProductName = *item.ProductName
		}
		data.Items = append(data.Items, line)
	}

	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.mailer.SendOrderPlaced(ctx, target.OwnerEmail, data); err != nil {
			slog.Error("Failed to notify outlet owner", "order_id", o.ID, "outlet_id", target.ID, "error", err)
		}
	}()
}

// Wait blocks until queued owner notifications have finished.
func (s *OrderServiceImpl) Wait() {
	s.notifications.Wait()
}

// Get implements order.OrderService.
func (s *OrderServiceImpl) Get(ctx context.Context, userID string, id string) (order.OrderResponse, error) {
	o, err := s.OrderRepository.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.OrderResponse{}, order.ErrOrderNotFound
		}
		return order.OrderResponse{}, err
	}
	return order.NewOrderResponse(o), nil
}

// List implements order.OrderService.
func (s *OrderServiceImpl) List(ctx context.Context, userID string, filter order.OrderFilter) (order.ListOrderResponse, error) {
	if err := filter.Validate(); err != nil {
		return order.ListOrderResponse{}, err
	}

	orders, total, err := s.OrderRepository.List(ctx, userID, filter)
	if err != nil {
		return order.ListOrderResponse{}, fmt.Errorf("failed to list orders: %w", err)
	}

	responses := make([]order.OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, order.NewOrderResponse(o))
	}

	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, (filter.Page-1)*filter.Limit+len(responses), total)
	if len(responses) == 0 {
		showing = fmt.Sprintf("0 of %d", total)
	}
	return order.ListOrderResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Showing:    showing,
		Orders:     responses,
	}, nil
}

// MarkShipped implements order.OrderService.
func (s *OrderServiceImpl) MarkShipped(ctx context.Context, userID string, id string) (order.OrderResponse, error) {
	shipped, err := s.OrderRepository.MarkShipped(ctx, id, userID)
	if err == nil {
		return order.NewOrderResponse(shipped), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return order.OrderResponse{}, err
	}

	// no row updated: tell a missing order apart from one already shipped
	if _, err := s.OrderRepository.GetByID(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.OrderResponse{}, order.ErrOrderNotFound
		}
		return order.OrderResponse{}, err
	}
	return order.OrderResponse{}, order.ErrOrderAlreadyShipped
}
