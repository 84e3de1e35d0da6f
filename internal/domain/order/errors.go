package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderAlreadyShipped = errors.New("order has already been shipped")
	ErrProductUnavailable  = errors.New("one or more products are unavailable")
)
