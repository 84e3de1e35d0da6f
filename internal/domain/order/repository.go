package order

import "context"

type OrderRepository interface {
	// Create inserts the order and its items.
	Create(ctx context.Context, order Order) (Order, error)
	GetByID(ctx context.Context, id string, userID string) (Order, error)
	List(ctx context.Context, userID string, filter OrderFilter) ([]Order, int64, error)
	// MarkShipped returns pgx.ErrNoRows when the order is missing or already shipped.
	MarkShipped(ctx context.Context, id string, userID string) (Order, error)
}
