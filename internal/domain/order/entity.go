package order

import "time"

type Order struct {
	ID            string
	OutletVisitID string
	UserID        string
	OutletID      string
	ProductCount  int
	TotalAmount   float64
	IsOnCall      bool
	IsShipped     bool
	ShippedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []Item

	// DTO
	OutletName *string
	UserName   *string
}

// Item stores the product price at the time the order was placed.
type Item struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice float64
	Subtotal  float64

	// DTO
	ProductName *string
}
