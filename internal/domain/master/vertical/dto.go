package vertical

import (
	"strings"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

type VerticalResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DivisionID   string    `json:"division_id"`
	DivisionName *string   `json:"division_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewVerticalResponse(v Vertical) VerticalResponse {
	return VerticalResponse{
		ID:           v.ID,
		Name:         v.Name,
		DivisionID:   v.DivisionID,
		DivisionName: v.DivisionName,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

type UpsertVerticalRequest struct {
	Name       string `json:"name"`
	DivisionID string `json:"division_id"`
}

func (r *UpsertVerticalRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Name = strings.TrimSpace(r.Name)
	master.ValidateName(&errs, r.Name)
	master.ValidateRef(&errs, "division_id", r.DivisionID)
	return errs.OrNil()
}

type ListVerticalResponse struct {
	master.ListMeta
	Verticals []VerticalResponse `json:"verticals"`
}
