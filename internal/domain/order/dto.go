package order

import (
	"fmt"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

const (
	maxItemsPerOrder = 100
	MaxItemQuantity  = 100000
)

type CreateOrderRequest struct {
	OutletID string            `json:"outlet_id"`
	IsOnCall bool              `json:"is_on_call"`
	Items    []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (r *CreateOrderRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OutletID) {
		errs.Add("outlet_id", "outlet_id is required")
	} else if !validator.IsValidUUID(r.OutletID) {
		errs.Add("outlet_id", "outlet_id must be a valid UUID")
	}

	if len(r.Items) == 0 {
		errs.Add("items", "items must contain at least one product")
	} else if len(r.Items) > maxItemsPerOrder {
		errs.Add("items", fmt.Sprintf("items must not exceed %d products", maxItemsPerOrder))
	}

	seen := make(map[string]bool, len(r.Items))
	for i, item := range r.Items {
		field := fmt.Sprintf("items[%d]", i)
		if !validator.IsValidUUID(item.ProductID) {
			errs.Add(field+".product_id", "product_id must be a valid UUID")
		} else if seen[item.ProductID] {
			errs.Add(field+".product_id", "product_id must not be repeated")
		}
		seen[item.ProductID] = true
		if item.Quantity <= 0 {
			errs.Add(field+".quantity", "quantity must be greater than 0")
		} else if item.Quantity > MaxItemQuantity {
			errs.Add(field+".quantity", fmt.Sprintf("quantity must not exceed %d", MaxItemQuantity))
		}
	}

	return errs.OrNil()
}

// ProductIDs returns the requested product ids in request order.
func (r *CreateOrderRequest) ProductIDs() []string {
	ids := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

type OrderFilter struct {
	OutletID *string `json:"outlet_id,omitempty"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
}

func (f *OrderFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.OutletID != nil && !validator.IsValidUUID(*f.OutletID) {
		errs.Add("outlet_id", "outlet_id must be a valid UUID")
	}
	return errs.OrNil()
}

type OrderItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName *string `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OutletVisitID string              `json:"outlet_visit_id"`
	UserID        string              `json:"user_id"`
	UserName      *string             `json:"user_name,omitempty"`
	OutletID      string              `json:"outlet_id"`
	OutletName    *string             `json:"outlet_name,omitempty"`
	ProductCount  int                 `json:"product_count"`
	TotalAmount   float64             `json:"total_amount"`
	IsOnCall      bool                `json:"is_on_call"`
	IsShipped     bool                `json:"is_shipped"`
	ShippedAt     *time.Time          `json:"shipped_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemResponse `json:"items,omitempty"`
}

func NewOrderResponse(o Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		OutletVisitID: o.OutletVisitID,
		UserID:        o.UserID,
		UserName:      o.UserName,
		OutletID:      o.OutletID,
		OutletName:    o.OutletName,
		ProductCount:  o.ProductCount,
		TotalAmount:   o.TotalAmount,
		IsOnCall:      o.IsOnCall,
		IsShipped:     o.IsShipped,
		ShippedAt:     o.ShippedAt,
		CreatedAt:     o.CreatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return resp
}

type ListOrderResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Showing    string          `json:"showing"`
	Orders     []OrderResponse `json:"orders"`
}
