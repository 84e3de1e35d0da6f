package brand

import (
	"strings"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

type BrandResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	VerticalID   string    `json:"vertical_id"`
	VerticalName *string   `json:"vertical_name,omitempty"`
	DivisionID   *string   `json:"division_id,omitempty"`
	DivisionName *string   `json:"division_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewBrandResponse(b Brand) BrandResponse {
	return BrandResponse{
		ID:           b.ID,
		Name:         b.Name,
		VerticalID:   b.VerticalID,
		VerticalName: b.VerticalName,
		DivisionID:   b.DivisionID,
		DivisionName: b.DivisionName,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

type UpsertBrandRequest struct {
	Name       string `json:"name"`
	VerticalID string `json:"vertical_id"`
}

func (r *UpsertBrandRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Name = strings.TrimSpace(r.Name)
	master.ValidateName(&errs, r.Name)
	master.ValidateRef(&errs, "vertical_id", r.VerticalID)
	return errs.OrNil()
}

type ListBrandResponse struct {
	master.ListMeta
	Brands []BrandResponse `json:"brands"`
}
