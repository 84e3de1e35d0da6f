package product

import (
	"strings"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BrandID      string    `json:"brand_id"`
	BrandName    *string   `json:"brand_name,omitempty"`
	UnitID       string    `json:"unit_id"`
	UnitName     *string   `json:"unit_name,omitempty"`
	VerticalID   *string   `json:"vertical_id,omitempty"`
	VerticalName *string   `json:"vertical_name,omitempty"`
	DivisionID   *string   `json:"division_id,omitempty"`
	DivisionName *string   `json:"division_name,omitempty"`
	Price        float64   `json:"price"`
	IsFeatured   bool      `json:"is_featured"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewProductResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		BrandID:      p.BrandID,
		BrandName:    p.BrandName,
		UnitID:       p.UnitID,
		UnitName:     p.UnitName,
		VerticalID:   p.VerticalID,
		VerticalName: p.VerticalName,
		DivisionID:   p.DivisionID,
		DivisionName: p.DivisionName,
		Price:        p.Price,
		IsFeatured:   p.IsFeatured,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type UpsertProductRequest struct {
	Name       string   `json:"name"`
	BrandID    string   `json:"brand_id"`
	UnitID     string   `json:"unit_id"`
	Price      *float64 `json:"price"`
	IsFeatured bool     `json:"is_featured"`
	IsActive   *bool    `json:"is_active"`
}

func (r *UpsertProductRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	master.ValidateName(&errs, r.Name)
	master.ValidateRef(&errs, "brand_id", r.BrandID)
	master.ValidateRef(&errs, "unit_id", r.UnitID)

	if r.Price == nil {
		errs.Add("price", "price is required")
	} else if *r.Price < 0 {
		errs.Add("price", "price must not be negative")
	}

	return errs.OrNil()
}

// Active defaults to true when the request leaves is_active out.
func (r *UpsertProductRequest) Active() bool {
	return r.IsActive == nil || *r.IsActive
}

type ListProductResponse struct {
	master.ListMeta
	Products []ProductResponse `json:"products"`
}
