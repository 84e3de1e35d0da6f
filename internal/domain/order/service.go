package order

import "context"

type OrderService interface {
	Create(ctx context.Context, userID string, req CreateOrderRequest) (OrderResponse, error)
	Get(ctx context.Context, userID string, id string) (OrderResponse, error)
	List(ctx context.Context, userID string, filter OrderFilter) (ListOrderResponse, error)
	MarkShipped(ctx context.Context, userID string, id string) (OrderResponse, error)
}
