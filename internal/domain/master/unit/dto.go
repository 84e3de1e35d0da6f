package unit

import (
	"strings"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

type UnitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUnitResponse(u Unit) UnitResponse {
	return UnitResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

type UpsertUnitRequest struct {
	Name string `json:"name"`
}

func (r *UpsertUnitRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Name = strings.TrimSpace(r.Name)
	master.ValidateName(&errs, r.Name)
	return errs.OrNil()
}

type ListUnitResponse struct {
	master.ListMeta
	Units []UnitResponse `json:"units"`
}
