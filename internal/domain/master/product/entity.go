package product

import "time"

// Product belongs to a brand and a unit. Vertical and division are derived through the brand.
type Product struct {
	ID         string
	Name       string
	BrandID    string
	UnitID     string
	Price      float64
	IsFeatured bool
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	BrandName    *string
	UnitName     *string
	VerticalID   *string
	VerticalName *string
	DivisionID   *string
	DivisionName *string
}
